package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"tourdesk/internal/domain"
)

type CreateBookingRequest struct {
	UserID int64
	TourID int64
	Date   string
}

func (c *Client) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	var bookings []domain.Booking
	if err := c.getJSON(ctx, "/booking", &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *Client) ListBookingsByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	var bookings []domain.Booking
	if err := c.getJSON(ctx, fmt.Sprintf("/booking/user/%d", userID), &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// CreateBooking sends userId, tourId and date as query parameters; that is
// the backend's contract, not a JSON body.
func (c *Client) CreateBooking(ctx context.Context, req CreateBookingRequest) error {
	q := url.Values{
		"userId": {strconv.FormatInt(req.UserID, 10)},
		"tourId": {strconv.FormatInt(req.TourID, 10)},
		"date":   {req.Date},
	}
	return c.postQuery(ctx, "/booking/create", q, nil)
}

func (c *Client) ApproveBooking(ctx context.Context, id int64) error {
	return c.putQuery(ctx, fmt.Sprintf("/booking/approve/%d", id), nil)
}

func (c *Client) RejectBooking(ctx context.Context, id int64) error {
	return c.putQuery(ctx, fmt.Sprintf("/booking/reject/%d", id), nil)
}

func (c *Client) SetBookingStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	q := url.Values{"status": {string(status)}}
	return c.putQuery(ctx, fmt.Sprintf("/booking/%d/status", id), q)
}

func (c *Client) DeleteBooking(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/booking/%d", id))
}
