package tourist

import (
	"context"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"tourdesk/internal/api"
	"tourdesk/internal/domain"
	"tourdesk/internal/pkg/images"
	"tourdesk/internal/pkg/validator"
	"tourdesk/internal/session"
	"tourdesk/internal/view"
)

// Service is the tourist dashboard view-model. The browsable catalogue shows
// approved tours only; bookings and reviews are scoped to the signed-in
// tourist.
type Service struct {
	principal session.Principal

	tours    TourAPI
	bookings BookingAPI
	reviews  ReviewAPI
	notifier Notifier
	confirm  ConfirmFunc
	resolver *images.Resolver
	log      *zap.Logger

	toursCol    view.Collection[domain.Tour]
	bookingsCol view.Collection[domain.Booking]
	reviewsCol  view.Collection[domain.Review]

	mu        sync.Mutex
	activeTab Tab
	tourQuery string

	memoTours   view.Memo[string, domain.Tour]
	memoReviews view.Memo[int64, domain.Review]
}

// New builds the dashboard for a tourist principal. A missing or wrong-role
// principal fails here, before any fetch.
func New(
	p *session.Principal,
	tours TourAPI,
	bookings BookingAPI,
	reviews ReviewAPI,
	notifier Notifier,
	confirm ConfirmFunc,
	resolver *images.Resolver,
	log *zap.Logger,
) (*Service, error) {
	if err := session.RequireRole(p, domain.RoleTourist); err != nil {
		return nil, err
	}

	return &Service{
		principal: *p,
		tours:     tours,
		bookings:  bookings,
		reviews:   reviews,
		notifier:  notifier,
		confirm:   confirm,
		resolver:  resolver,
		log:       log,
		activeTab: TabDashboard,
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

	bookings, err := s.bookings.ListBookingsByUser(ctx, s.principal.ID)
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

// SetTab switches the active tab and resets the catalogue query.
func (s *Service) SetTab(tab Tab) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeTab = tab
	if tab == TabTours {
		s.tourQuery = ""
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

// ===== derived views =====

// AvailableTours is the browsable catalogue: approved tours only, narrowed
// by the free-text query, in collection order.
func (s *Service) AvailableTours() []domain.Tour {
	s.mu.Lock()
	q := s.tourQuery
	s.mu.Unlock()

	items, rev := s.toursCol.Snapshot()
	return s.memoTours.Get(rev, q, func() []domain.Tour {
		scoped := view.Filter(items, func(t domain.Tour) bool {
			return t.Status == domain.TourApproved
		})
		return view.Filter(scoped, func(t domain.Tour) bool {
			return view.MatchesQuery(q,
				t.Title,
				t.Description,
				t.Location,
				strconv.FormatFloat(t.Price, 'f', -1, 64),
			)
		})
	})
}

// MyBookings is already tourist-scoped by the endpoint.
func (s *Service) MyBookings() []domain.Booking {
	return s.bookingsCol.Items()
}

// MyReviews keeps only reviews the tourist authored.
func (s *Service) MyReviews() []domain.Review {
	items, rev := s.reviewsCol.Snapshot()
	return s.memoReviews.Get(rev, s.principal.ID, func() []domain.Review {
		return view.Filter(items, func(r domain.Review) bool {
			return r.AuthorID() == s.principal.ID
		})
	})
}

func (s *Service) BookingCount() int { return s.bookingsCol.Len() }

func (s *Service) PendingBookingCount() int {
	return view.Count(s.bookingsCol.Items(), func(b domain.Booking) bool {
		return b.Status == domain.BookingPending
	})
}

func (s *Service) LoadingTours() bool    { return s.toursCol.Loading() }
func (s *Service) LoadingBookings() bool { return s.bookingsCol.Loading() }
func (s *Service) LoadingReviews() bool  { return s.reviewsCol.Loading() }

// TourImageURL resolves a tour's stored image reference into a fetchable
// URL, falling back to the placeholder.
func (s *Service) TourImageURL(t *domain.Tour) string {
	return s.resolver.Resolve(t.ImageRef())
}

// ===== bookings =====

// CreateBooking validates locally; an incomplete form never reaches the
// network.
func (s *Service) CreateBooking(ctx context.Context, form BookingForm) error {
	if err := validator.Check(form); err != nil {
		return err
	}

	err := s.bookings.CreateBooking(ctx, api.CreateBookingRequest{
		UserID: s.principal.ID,
		TourID: form.TourID,
		Date:   form.Date,
	})
	if err != nil {
		s.notifier.Errorf("Failed to create booking.")
		return err
	}

	s.notifier.Successf("Booking created.")
	s.LoadBookings(ctx)
	return nil
}

func (s *Service) CancelBooking(ctx context.Context, id int64) error {
	if !s.confirm("Cancel this booking?") {
		return nil
	}

	if err := s.bookings.DeleteBooking(ctx, id); err != nil {
		s.notifier.Errorf("Failed to cancel booking.")
		return err
	}

	s.notifier.Successf("Booking canceled.")
	s.LoadBookings(ctx)
	return nil
}

// ===== reviews =====

func (s *Service) CreateReview(ctx context.Context, form ReviewForm) error {
	if err := validator.Check(form); err != nil {
		return err
	}

	err := s.reviews.CreateReview(ctx, api.CreateReviewRequest{
		UserID:  s.principal.ID,
		TourID:  form.TourID,
		Rating:  form.Rating,
		Comment: form.Comment,
	})
	if err != nil {
		s.notifier.Errorf("Failed to submit review.")
		return err
	}

	s.notifier.Successf("Review submitted.")
	s.LoadReviews(ctx)
	return nil
}
