package guide

import "io"

type Tab string

const (
	TabDashboard Tab = "dashboard"
	TabTours     Tab = "tours"
	TabBookings  Tab = "bookings"
	TabReviews   Tab = "reviews"
)

// StatusAll disables status filtering.
const StatusAll = "ALL"

type TourForm struct {
	Title       string    `validate:"required"`
	Description string    `validate:"required"`
	Price       float64   `validate:"required,gt=0"`
	Date        string    `validate:"required"`
	Image       io.Reader `validate:"required"`
	ImageName   string
}

// tourFilter keys the memoized my-tours projection.
type tourFilter struct {
	Query  string
	Status string
}

// bookingFilter additionally carries the tours revision: the booking scope is
// derived from the owned-tour set, so it must recompute when the tour
// collection changes even if the booking collection did not.
type bookingFilter struct {
	Query    string
	Status   string
	ToursRev uint64
}
