package admin

import (
	"context"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"tourdesk/internal/api"
	"tourdesk/internal/domain"
	"tourdesk/internal/modules/chat"
	"tourdesk/internal/pkg/validator"
	"tourdesk/internal/session"
	"tourdesk/internal/view"
)

// Service is the admin dashboard view-model: it owns the polled collections,
// derives the filtered rows each tab renders and wraps every mutation with
// validate -> call -> patch-or-reload -> toast.
type Service struct {
	principal session.Principal

	users    UserAPI
	tours    TourAPI
	bookings BookingAPI
	reviews  ReviewAPI
	notifier Notifier
	confirm  ConfirmFunc
	log      *zap.Logger

	// Chat is the chats tab session, wired at construction time.
	Chat *chat.Session

	usersCol    view.Collection[domain.User]
	toursCol    view.Collection[domain.Tour]
	bookingsCol view.Collection[domain.Booking]
	tourReviews view.Collection[domain.Review]

	mu                  sync.Mutex
	activeTab           Tab
	userQuery           string
	tourQuery           string
	bookingQuery        string
	bookingStatusFilter string
	selectedTour        *domain.Tour

	memoUsers    view.Memo[string, domain.User]
	memoTours    view.Memo[string, domain.Tour]
	memoBookings view.Memo[bookingFilter, domain.Booking]
}

// New builds the dashboard for an admin principal. A missing or wrong-role
// principal fails here, before any fetch, and the caller redirects to the
// entry page.
func New(
	p *session.Principal,
	users UserAPI,
	tours TourAPI,
	bookings BookingAPI,
	reviews ReviewAPI,
	chatSession *chat.Session,
	notifier Notifier,
	confirm ConfirmFunc,
	log *zap.Logger,
) (*Service, error) {
	if err := session.RequireRole(p, domain.RoleAdmin); err != nil {
		return nil, err
	}

	return &Service{
		principal:           *p,
		users:               users,
		tours:               tours,
		bookings:            bookings,
		reviews:             reviews,
		Chat:                chatSession,
		notifier:            notifier,
		confirm:             confirm,
		log:                 log,
		activeTab:           TabDashboard,
		bookingStatusFilter: StatusAll,
	}, nil
}

func (s *Service) Principal() session.Principal { return s.principal }

// ===== loaders =====

func (s *Service) LoadAll(ctx context.Context) {
	s.LoadUsers(ctx)
	s.LoadTours(ctx)
	s.LoadBookings(ctx)
}

func (s *Service) LoadUsers(ctx context.Context) {
	s.usersCol.SetLoading(true)
	defer s.usersCol.SetLoading(false)

	users, err := s.users.ListUsers(ctx)
	if err != nil {
		s.notifier.Errorf("Failed to load users.")
		s.usersCol.Replace(nil)
		return
	}
	s.usersCol.Replace(users)
}

func (s *Service) LoadTours(ctx context.Context) {
	s.toursCol.SetLoading(true)
	defer s.toursCol.SetLoading(false)

	tours, err := s.tours.ListTours(ctx)
	if err != nil {
		s.notifier.Errorf("Failed to load tours.")
		s.toursCol.Replace(nil)
		return
	}
	s.toursCol.Replace(tours)
}

func (s *Service) LoadBookings(ctx context.Context) {
	s.bookingsCol.SetLoading(true)
	defer s.bookingsCol.SetLoading(false)

	bookings, err := s.bookings.ListBookings(ctx)
	if err != nil {
		s.notifier.Errorf("Failed to load bookings.")
		s.bookingsCol.Replace(nil)
		return
	}
	s.bookingsCol.Replace(bookings)
}

// ===== tabs and filters =====

// SetTab switches the active tab, resetting that tab's filters. The chats
// tab starts the chat poll loop; every other tab stops it.
func (s *Service) SetTab(ctx context.Context, tab Tab) {
	s.mu.Lock()
	s.activeTab = tab
	switch tab {
	case TabUsers:
		s.userQuery = ""
	case TabTours:
		s.tourQuery = ""
	case TabBookings:
		s.bookingQuery = ""
		s.bookingStatusFilter = StatusAll
	}
	s.mu.Unlock()

	if s.Chat == nil {
		return
	}
	if tab == TabChats {
		s.Chat.Enter(ctx)
	} else {
		s.Chat.Leave()
	}
}

func (s *Service) ActiveTab() Tab {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeTab
}

func (s *Service) SetUserQuery(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userQuery = q
}

func (s *Service) SetTourQuery(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tourQuery = q
}

func (s *Service) SetBookingQuery(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookingQuery = q
}

// SetBookingStatusFilter takes a BookingStatus value or StatusAll.
func (s *Service) SetBookingStatusFilter(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookingStatusFilter = status
}

// ===== derived views =====

func (s *Service) FilteredUsers() []domain.User {
	s.mu.Lock()
	q := s.userQuery
	s.mu.Unlock()

	items, rev := s.usersCol.Snapshot()
	return s.memoUsers.Get(rev, q, func() []domain.User {
		return view.Filter(items, func(u domain.User) bool {
			return view.MatchesQuery(q, u.Name, u.Username, u.Email, string(u.Role))
		})
	})
}

func (s *Service) FilteredTours() []domain.Tour {
	s.mu.Lock()
	q := s.tourQuery
	s.mu.Unlock()

	items, rev := s.toursCol.Snapshot()
	return s.memoTours.Get(rev, q, func() []domain.Tour {
		return view.Filter(items, func(t domain.Tour) bool {
			return view.MatchesQuery(q,
				t.Title,
				t.Description,
				strconv.FormatFloat(t.Price, 'f', -1, 64),
				string(t.Status),
			)
		})
	})
}

// FilteredBookings applies the status filter first, then the free-text
// query, preserving the collection's order.
func (s *Service) FilteredBookings() []domain.Booking {
	s.mu.Lock()
	f := bookingFilter{Query: s.bookingQuery, Status: s.bookingStatusFilter}
	s.mu.Unlock()

	items, rev := s.bookingsCol.Snapshot()
	return s.memoBookings.Get(rev, f, func() []domain.Booking {
		scoped := items
		if f.Status != StatusAll {
			scoped = view.Filter(scoped, func(b domain.Booking) bool {
				return string(b.Status) == f.Status
			})
		}
		return view.Filter(scoped, func(b domain.Booking) bool {
			return view.MatchesQuery(f.Query,
				strconv.FormatInt(b.ID, 10),
				b.TouristName(),
				usernameOf(b.User),
				b.TourTitle(),
				string(b.Status),
			)
		})
	})
}

func usernameOf(u *domain.User) string {
	if u == nil {
		return ""
	}
	return u.Username
}

func (s *Service) TotalUsers() int    { return s.usersCol.Len() }
func (s *Service) TotalTours() int    { return s.toursCol.Len() }
func (s *Service) TotalBookings() int { return s.bookingsCol.Len() }

func (s *Service) PendingBookings() int {
	return view.Count(s.bookingsCol.Items(), func(b domain.Booking) bool {
		return b.Status == domain.BookingPending
	})
}

func (s *Service) LoadingUsers() bool    { return s.usersCol.Loading() }
func (s *Service) LoadingTours() bool    { return s.toursCol.Loading() }
func (s *Service) LoadingBookings() bool { return s.bookingsCol.Loading() }

// ===== users =====

// RegisterGuide validates the form locally, then creates the guide account
// and reloads the user list (the server assigns the id).
func (s *Service) RegisterGuide(ctx context.Context, form GuideForm) error {
	if err := validator.Check(form); err != nil {
		return err
	}

	_, err := s.users.RegisterGuide(ctx, api.RegisterRequest{
		Name:     form.Name,
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		if api.IsConflict(err) {
			s.notifier.Errorf("Username already exists.")
		} else {
			s.notifier.Errorf("Failed to create guide.")
		}
		return err
	}

	s.notifier.Successf("Guide created.")
	s.LoadUsers(ctx)
	return nil
}

func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	if !s.confirm("Delete this user?") {
		return nil
	}

	if err := s.users.DeleteUser(ctx, id); err != nil {
		s.notifier.Errorf("Failed to delete user.")
		return err
	}

	s.notifier.Successf("User deleted.")
	s.LoadUsers(ctx)
	return nil
}

// ===== tours =====

func (s *Service) CreateTour(ctx context.Context, form TourForm) error {
	if err := validator.Check(form); err != nil {
		return err
	}

	_, err := s.tours.CreateTour(ctx, api.CreateTourRequest{
		Title:       form.Title,
		Description: form.Description,
		Price:       form.Price,
		Date:        form.Date,
		UserID:      s.principal.ID,
		Image:       form.Image,
		ImageName:   form.ImageName,
	})
	if err != nil {
		s.notifier.Errorf("Failed to create tour.")
		return err
	}

	s.notifier.Successf("Tour created.")
	s.LoadTours(ctx)
	return nil
}

// UpdateTourStatus requests the transition and patches the local copy with
// the known-new value instead of reloading.
func (s *Service) UpdateTourStatus(ctx context.Context, id int64, status domain.TourStatus) error {
	if !status.Valid() {
		return validator.FieldErrors{"Status": "Unknown tour status."}
	}

	if err := s.tours.SetTourStatus(ctx, id, status); err != nil {
		s.notifier.Errorf("Failed to update tour status.")
		return err
	}

	s.toursCol.Patch(
		func(t domain.Tour) bool { return t.ID == id },
		func(t domain.Tour) domain.Tour { t.Status = status; return t },
	)
	s.notifier.Successf("Tour status updated.")
	return nil
}

func (s *Service) DeleteTour(ctx context.Context, id int64) error {
	if !s.confirm("Delete this tour?") {
		return nil
	}

	if err := s.tours.DeleteTour(ctx, id); err != nil {
		s.notifier.Errorf("Failed to delete tour.")
		return err
	}

	s.notifier.Successf("Tour deleted.")
	s.LoadTours(ctx)
	return nil
}

// ===== tour details + reviews =====

func (s *Service) OpenTourDetails(ctx context.Context, t domain.Tour) {
	s.mu.Lock()
	tour := t
	s.selectedTour = &tour
	s.mu.Unlock()

	s.LoadTourReviews(ctx, t.ID)
}

func (s *Service) CloseTourDetails() {
	s.mu.Lock()
	s.selectedTour = nil
	s.mu.Unlock()
	s.tourReviews.Replace(nil)
}

func (s *Service) SelectedTour() *domain.Tour {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedTour
}

func (s *Service) LoadTourReviews(ctx context.Context, tourID int64) {
	s.tourReviews.SetLoading(true)
	defer s.tourReviews.SetLoading(false)

	reviews, err := s.reviews.ListReviewsByTour(ctx, tourID)
	if err != nil {
		s.notifier.Errorf("Failed to load reviews.")
		s.tourReviews.Replace(nil)
		return
	}
	s.tourReviews.Replace(reviews)
}

func (s *Service) TourReviews() []domain.Review { return s.tourReviews.Items() }
func (s *Service) LoadingReviews() bool         { return s.tourReviews.Loading() }

func (s *Service) DeleteReview(ctx context.Context, id int64) error {
	if !s.confirm("Delete this review?") {
		return nil
	}

	if err := s.reviews.DeleteReview(ctx, id); err != nil {
		s.notifier.Errorf("Failed to delete review.")
		return err
	}

	s.notifier.Successf("Review deleted.")
	if sel := s.SelectedTour(); sel != nil {
		s.LoadTourReviews(ctx, sel.ID)
	}
	return nil
}

// ===== bookings =====

func (s *Service) ApproveBooking(ctx context.Context, id int64) error {
	if err := s.bookings.ApproveBooking(ctx, id); err != nil {
		s.notifier.Errorf("Failed to approve booking.")
		return err
	}

	s.patchBookingStatus(id, domain.BookingApproved)
	s.notifier.Successf("Booking approved.")
	return nil
}

func (s *Service) RejectBooking(ctx context.Context, id int64) error {
	if err := s.bookings.RejectBooking(ctx, id); err != nil {
		s.notifier.Errorf("Failed to reject booking.")
		return err
	}

	s.patchBookingStatus(id, domain.BookingRejected)
	s.notifier.Successf("Booking rejected.")
	return nil
}

func (s *Service) UpdateBookingStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	if !status.Valid() {
		return validator.FieldErrors{"Status": "Unknown booking status."}
	}

	if err := s.bookings.SetBookingStatus(ctx, id, status); err != nil {
		s.notifier.Errorf("Failed to update booking status.")
		return err
	}

	s.patchBookingStatus(id, status)
	s.notifier.Successf("Booking status updated.")
	return nil
}

func (s *Service) DeleteBooking(ctx context.Context, id int64) error {
	if !s.confirm("Delete this booking?") {
		return nil
	}

	if err := s.bookings.DeleteBooking(ctx, id); err != nil {
		s.notifier.Errorf("Failed to delete booking.")
		return err
	}

	s.notifier.Successf("Booking deleted.")
	s.LoadBookings(ctx)
	return nil
}

func (s *Service) patchBookingStatus(id int64, status domain.BookingStatus) {
	s.bookingsCol.Patch(
		func(b domain.Booking) bool { return b.ID == id },
		func(b domain.Booking) domain.Booking { b.Status = status; return b },
	)
}

// ===== reports / settings =====

func (s *Service) ExportReport() {
	s.notifier.Infof("Report exported.")
}

func (s *Service) SaveSettings() {
	s.notifier.Successf("Settings saved.")
}
