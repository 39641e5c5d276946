package tourist

import (
	"context"

	"tourdesk/internal/api"
	"tourdesk/internal/domain"
)

type TourAPI interface {
	ListTours(ctx context.Context) ([]domain.Tour, error)
}

type BookingAPI interface {
	ListBookingsByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	CreateBooking(ctx context.Context, req api.CreateBookingRequest) error
	DeleteBooking(ctx context.Context, id int64) error
}

type ReviewAPI interface {
	ListReviews(ctx context.Context) ([]domain.Review, error)
	CreateReview(ctx context.Context, req api.CreateReviewRequest) error
}

type Notifier interface {
	Successf(text string)
	Errorf(text string)
}

// ConfirmFunc gates destructive actions; false means skip the remote call.
type ConfirmFunc func(prompt string) bool
