package domain

// TourStatus is the wide status domain used by tours. The backend owns every
// transition; the client only requests one.
type TourStatus string

const (
	TourPending   TourStatus = "Pending"
	TourApproved  TourStatus = "Approved"
	TourRejected  TourStatus = "Rejected"
	TourConfirmed TourStatus = "Confirmed"
	TourCompleted TourStatus = "Completed"
	TourCanceled  TourStatus = "Canceled"
)

var TourStatuses = []TourStatus{
	TourPending,
	TourApproved,
	TourRejected,
	TourConfirmed,
	TourCompleted,
	TourCanceled,
}

func (s TourStatus) Valid() bool {
	for _, v := range TourStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// BookingStatus is the narrow status domain used by bookings. It is a
// separate enum, not a subset alias of TourStatus.
type BookingStatus string

const (
	BookingPending  BookingStatus = "Pending"
	BookingApproved BookingStatus = "Approved"
	BookingRejected BookingStatus = "Rejected"
)

var BookingStatuses = []BookingStatus{
	BookingPending,
	BookingApproved,
	BookingRejected,
}

func (s BookingStatus) Valid() bool {
	for _, v := range BookingStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// BookingStatusForTour is the total mapping from the tour status domain into
// the booking status domain. Confirmed and Completed collapse into Approved,
// Canceled into Rejected.
func BookingStatusForTour(s TourStatus) (BookingStatus, bool) {
	switch s {
	case TourPending:
		return BookingPending, true
	case TourApproved, TourConfirmed, TourCompleted:
		return BookingApproved, true
	case TourRejected, TourCanceled:
		return BookingRejected, true
	}
	return "", false
}
