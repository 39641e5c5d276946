package domain

// Review rating is 1..5, validated client-side before submission.
type Review struct {
	ID      int64  `json:"review_id"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
	Date    string `json:"reviewDate,omitempty"`
	User    *User  `json:"user,omitempty"`
	Tour    *Tour  `json:"tour,omitempty"`
}

func (r *Review) AuthorID() int64 {
	if r.User == nil {
		return 0
	}
	return r.User.ID
}

func (r *Review) TourID() int64 {
	if r.Tour == nil {
		return 0
	}
	return r.Tour.ID
}
