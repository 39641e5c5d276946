package admin

import "io"

type Tab string

const (
	TabDashboard Tab = "dashboard"
	TabBookings  Tab = "bookings"
	TabTours     Tab = "tours"
	TabUsers     Tab = "users"
	TabReports   Tab = "reports"
	TabSettings  Tab = "settings"
	TabChats     Tab = "chats"
)

// StatusAll disables status filtering.
const StatusAll = "ALL"

type GuideForm struct {
	Name     string `validate:"required"`
	Username string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type TourForm struct {
	Title       string    `validate:"required"`
	Description string    `validate:"required"`
	Price       float64   `validate:"required,gt=0"`
	Date        string    `validate:"required"`
	Image       io.Reader `validate:"required"`
	ImageName   string
}

// bookingFilter keys the memoized booking projection.
type bookingFilter struct {
	Query  string
	Status string
}
