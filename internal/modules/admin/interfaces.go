package admin

import (
	"context"

	"tourdesk/internal/api"
	"tourdesk/internal/domain"
)

type UserAPI interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	RegisterGuide(ctx context.Context, req api.RegisterRequest) (*domain.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type TourAPI interface {
	ListTours(ctx context.Context) ([]domain.Tour, error)
	CreateTour(ctx context.Context, req api.CreateTourRequest) (*domain.Tour, error)
	SetTourStatus(ctx context.Context, id int64, status domain.TourStatus) error
	DeleteTour(ctx context.Context, id int64) error
}

type BookingAPI interface {
	ListBookings(ctx context.Context) ([]domain.Booking, error)
	ApproveBooking(ctx context.Context, id int64) error
	RejectBooking(ctx context.Context, id int64) error
	SetBookingStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	DeleteBooking(ctx context.Context, id int64) error
}

type ReviewAPI interface {
	ListReviewsByTour(ctx context.Context, tourID int64) ([]domain.Review, error)
	DeleteReview(ctx context.Context, id int64) error
}

type Notifier interface {
	Successf(text string)
	Errorf(text string)
	Infof(text string)
}

// ConfirmFunc gates destructive actions: it must return true for the remote
// call to be issued. Implementations may render it however they like, but
// silence means no.
type ConfirmFunc func(prompt string) bool
