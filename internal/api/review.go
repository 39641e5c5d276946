package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"tourdesk/internal/domain"
)

type CreateReviewRequest struct {
	UserID  int64
	TourID  int64
	Rating  int
	Comment string
}

func (c *Client) ListReviews(ctx context.Context) ([]domain.Review, error) {
	var reviews []domain.Review
	if err := c.getJSON(ctx, "/review", &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (c *Client) ListReviewsByTour(ctx context.Context, tourID int64) ([]domain.Review, error) {
	var reviews []domain.Review
	if err := c.getJSON(ctx, fmt.Sprintf("/review/tour/%d", tourID), &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (c *Client) CreateReview(ctx context.Context, req CreateReviewRequest) error {
	q := url.Values{
		"userId":  {strconv.FormatInt(req.UserID, 10)},
		"tourId":  {strconv.FormatInt(req.TourID, 10)},
		"rating":  {strconv.Itoa(req.Rating)},
		"comment": {req.Comment},
	}
	return c.postQuery(ctx, "/review/create", q, nil)
}

func (c *Client) DeleteReview(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/review/%d", id))
}
