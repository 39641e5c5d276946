package guide

import (
	"context"

	"tourdesk/internal/api"
	"tourdesk/internal/domain"
)

type TourAPI interface {
	ListTours(ctx context.Context) ([]domain.Tour, error)
	CreateTour(ctx context.Context, req api.CreateTourRequest) (*domain.Tour, error)
	DeleteTour(ctx context.Context, id int64) error
}

type BookingAPI interface {
	ListBookings(ctx context.Context) ([]domain.Booking, error)
	ApproveBooking(ctx context.Context, id int64) error
	RejectBooking(ctx context.Context, id int64) error
}

type ReviewAPI interface {
	ListReviews(ctx context.Context) ([]domain.Review, error)
	DeleteReview(ctx context.Context, id int64) error
}

type Notifier interface {
	Successf(text string)
	Errorf(text string)
}

// ConfirmFunc gates destructive actions; false means skip the remote call.
type ConfirmFunc func(prompt string) bool
