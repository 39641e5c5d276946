package guide

import (
	"context"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"tourdesk/internal/api"
	"tourdesk/internal/domain"
	"tourdesk/internal/pkg/validator"
	"tourdesk/internal/session"
	"tourdesk/internal/view"
)

// Service is the guide dashboard view-model. It loads the shared tour,
// booking and review collections and scopes every derived view to the tours
// owned by the signed-in guide. Ownership resolves through the tour's
// fallback owner lookup, so tours whose nested user object never arrived
// still count as mine.
type Service struct {
	principal session.Principal

	tours    TourAPI
	bookings BookingAPI
	reviews  ReviewAPI
	notifier Notifier
	confirm  ConfirmFunc
	log      *zap.Logger

	toursCol    view.Collection[domain.Tour]
	bookingsCol view.Collection[domain.Booking]
	reviewsCol  view.Collection[domain.Review]

	mu                  sync.Mutex
	activeTab           Tab
	tourQuery           string
	tourStatusFilter    string
	bookingQuery        string
	bookingStatusFilter string

	memoTours    view.Memo[tourFilter, domain.Tour]
	memoBookings view.Memo[bookingFilter, domain.Booking]
	memoReviews  view.Memo[uint64, domain.Review]
}

// New builds the dashboard for a guide principal. A missing or wrong-role
// principal fails here, before any fetch.
func New(
	p *session.Principal,
	tours TourAPI,
	bookings BookingAPI,
	reviews ReviewAPI,
	notifier Notifier,
	confirm ConfirmFunc,
	log *zap.Logger,
) (*Service, error) {
	if err := session.RequireRole(p, domain.RoleGuide); err != nil {
		return nil, err
	}

	return &Service{
		principal:           *p,
		tours:               tours,
		bookings:            bookings,
		reviews:             reviews,
		notifier:            notifier,
		confirm:             confirm,
		log:                 log,
		activeTab:           TabDashboard,
		tourStatusFilter:    StatusAll,
		bookingStatusFilter: StatusAll,
	}, nil
}

func (s *Service) Principal() session.Principal { return s.principal }

// ===== loaders =====

func (s *Service) LoadAll(ctx context.Context) {
	s.LoadTours(ctx)
	s.LoadBookings(ctx)
	s.LoadReviews(ctx)
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

func (s *Service) LoadReviews(ctx context.Context) {
	s.reviewsCol.SetLoading(true)
	defer s.reviewsCol.SetLoading(false)

	reviews, err := s.reviews.ListReviews(ctx)
	if err != nil {
		s.notifier.Errorf("Failed to load reviews.")
		s.reviewsCol.Replace(nil)
		return
	}
	s.reviewsCol.Replace(reviews)
}

// ===== tabs and filters =====

// SetTab switches the active tab and resets that tab's filters.
func (s *Service) SetTab(tab Tab) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeTab = tab
	switch tab {
	case TabTours:
		s.tourQuery = ""
		s.tourStatusFilter = StatusAll
	case TabBookings:
		s.bookingQuery = ""
		s.bookingStatusFilter = StatusAll
	}
}

func (s *Service) ActiveTab() Tab {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeTab
}

func (s *Service) SetTourQuery(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tourQuery = q
}

// SetTourStatusFilter takes a TourStatus value or StatusAll.
func (s *Service) SetTourStatusFilter(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tourStatusFilter = status
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

func (s *Service) ownsTour(t domain.Tour) bool {
	return t.OwnerID() == s.principal.ID
}

// myTourIDs is the id set driving the booking and review scopes.
func (s *Service) myTourIDs() map[int64]bool {
	ids := make(map[int64]bool)
	for _, t := range s.toursCol.Items() {
		if s.ownsTour(t) {
			ids[t.ID] = true
		}
	}
	return ids
}

// MyTours derives ownership scope, then status, then free-text query, in
// that order, preserving the collection's order.
func (s *Service) MyTours() []domain.Tour {
	s.mu.Lock()
	f := tourFilter{Query: s.tourQuery, Status: s.tourStatusFilter}
	s.mu.Unlock()

	items, rev := s.toursCol.Snapshot()
	return s.memoTours.Get(rev, f, func() []domain.Tour {
		scoped := view.Filter(items, s.ownsTour)
		if f.Status != StatusAll {
			scoped = view.Filter(scoped, func(t domain.Tour) bool {
				return string(t.Status) == f.Status
			})
		}
		return view.Filter(scoped, func(t domain.Tour) bool {
			return view.MatchesQuery(f.Query,
				t.Title,
				t.Description,
				strconv.FormatFloat(t.Price, 'f', -1, 64),
				string(t.Status),
			)
		})
	})
}

// MyBookings is scoped to bookings against my tours. A booking whose tour
// reference did not resolve cannot be attributed and stays out of the view.
func (s *Service) MyBookings() []domain.Booking {
	s.mu.Lock()
	f := bookingFilter{
		Query:    s.bookingQuery,
		Status:   s.bookingStatusFilter,
		ToursRev: s.toursCol.Rev(),
	}
	s.mu.Unlock()

	items, rev := s.bookingsCol.Snapshot()
	return s.memoBookings.Get(rev, f, func() []domain.Booking {
		mine := s.myTourIDs()
		scoped := view.Filter(items, func(b domain.Booking) bool {
			return b.Tour != nil && mine[b.Tour.ID]
		})
		if f.Status != StatusAll {
			scoped = view.Filter(scoped, func(b domain.Booking) bool {
				return string(b.Status) == f.Status
			})
		}
		return view.Filter(scoped, func(b domain.Booking) bool {
			return view.MatchesQuery(f.Query,
				strconv.FormatInt(b.ID, 10),
				b.TouristName(),
				b.TourTitle(),
				string(b.Status),
			)
		})
	})
}

// MyReviews is scoped to reviews of my tours.
func (s *Service) MyReviews() []domain.Review {
	toursRev := s.toursCol.Rev()

	items, rev := s.reviewsCol.Snapshot()
	return s.memoReviews.Get(rev, toursRev, func() []domain.Review {
		mine := s.myTourIDs()
		return view.Filter(items, func(r domain.Review) bool {
			return mine[r.TourID()]
		})
	})
}

func (s *Service) MyTourCount() int {
	return view.Count(s.toursCol.Items(), s.ownsTour)
}

func (s *Service) PendingBookingCount() int {
	mine := s.myTourIDs()
	return view.Count(s.bookingsCol.Items(), func(b domain.Booking) bool {
		return b.Tour != nil && mine[b.Tour.ID] && b.Status == domain.BookingPending
	})
}

func (s *Service) LoadingTours() bool    { return s.toursCol.Loading() }
func (s *Service) LoadingBookings() bool { return s.bookingsCol.Loading() }
func (s *Service) LoadingReviews() bool  { return s.reviewsCol.Loading() }

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

// DeleteTour refuses tours the guide does not own; the server enforces the
// same rule, this just avoids a doomed round trip.
func (s *Service) DeleteTour(ctx context.Context, id int64) error {
	owned := false
	for _, t := range s.toursCol.Items() {
		if t.ID == id && s.ownsTour(t) {
			owned = true
			break
		}
	}
	if !owned {
		s.notifier.Errorf("You can only delete your own tours.")
		return nil
	}

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

func (s *Service) patchBookingStatus(id int64, status domain.BookingStatus) {
	s.bookingsCol.Patch(
		func(b domain.Booking) bool { return b.ID == id },
		func(b domain.Booking) domain.Booking { b.Status = status; return b },
	)
}

// ===== reviews =====

func (s *Service) DeleteReview(ctx context.Context, id int64) error {
	if !s.confirm("Delete this review?") {
		return nil
	}

	if err := s.reviews.DeleteReview(ctx, id); err != nil {
		s.notifier.Errorf("Failed to delete review.")
		return err
	}

	s.notifier.Successf("Review deleted.")
	s.LoadReviews(ctx)
	return nil
}
