package domain

// Booking references a tourist and a tour. Either reference may come back
// null when the target was deleted server-side; callers must tolerate nil.
type Booking struct {
	ID     int64         `json:"booking_id"`
	User   *User         `json:"user,omitempty"`
	Tour   *Tour         `json:"tour,omitempty"`
	Date   string        `json:"date"`
	Status BookingStatus `json:"status"`
}

// TouristName is the display name of the booking tourist, empty when the
// user reference did not resolve.
func (b *Booking) TouristName() string {
	if b.User == nil {
		return ""
	}
	return b.User.Name
}

// TourTitle is the title of the booked tour, empty when the tour reference
// did not resolve.
func (b *Booking) TourTitle() string {
	if b.Tour == nil {
		return ""
	}
	return b.Tour.Title
}
