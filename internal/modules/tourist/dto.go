package tourist

type Tab string

const (
	TabDashboard Tab = "dashboard"
	TabTours     Tab = "tours"
	TabBookings  Tab = "bookings"
	TabReviews   Tab = "reviews"
)

type BookingForm struct {
	TourID int64  `validate:"required,gt=0"`
	Date   string `validate:"required"`
}

type ReviewForm struct {
	TourID  int64  `validate:"required,gt=0"`
	Rating  int    `validate:"required,min=1,max=5"`
	Comment string `validate:"required"`
}
