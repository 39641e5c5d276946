package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"tourdesk/internal/domain"
)

type CreateTourRequest struct {
	Title       string
	Description string
	Price       float64
	Date        string
	UserID      int64

	// Image is required by the backend; ImageName becomes the uploaded
	// filename.
	Image     io.Reader
	ImageName string
}

type UpdateTourRequest struct {
	Title       string  `json:"title,omitempty"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price,omitempty"`
	Location    string  `json:"location,omitempty"`
	Date        string  `json:"date,omitempty"`
}

func (c *Client) ListTours(ctx context.Context) ([]domain.Tour, error) {
	var tours []domain.Tour
	if err := c.getJSON(ctx, "/tour", &tours); err != nil {
		return nil, err
	}
	return tours, nil
}

func (c *Client) GetTour(ctx context.Context, id int64) (*domain.Tour, error) {
	var t domain.Tour
	if err := c.getJSON(ctx, fmt.Sprintf("/tour/%d", id), &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTour encodes structured fields plus the image as multipart form data.
func (c *Client) CreateTour(ctx context.Context, req CreateTourRequest) (*domain.Tour, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"title":       req.Title,
		"description": req.Description,
		"price":       strconv.FormatFloat(req.Price, 'f', -1, 64),
		"date":        req.Date,
		"userId":      strconv.FormatInt(req.UserID, 10),
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, err
		}
	}

	name := req.ImageName
	if name == "" {
		name = "image"
	}
	part, err := w.CreateFormFile("image", name)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, req.Image); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	var t domain.Tour
	if err := c.do(ctx, http.MethodPost, "/tour/create", nil, &buf, w.FormDataContentType(), &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) UpdateTour(ctx context.Context, id int64, req UpdateTourRequest) (*domain.Tour, error) {
	var t domain.Tour
	if err := c.putJSON(ctx, fmt.Sprintf("/tour/%d", id), req, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// SetTourStatus requests a transition; the backend stays authoritative over
// which transitions are legal.
func (c *Client) SetTourStatus(ctx context.Context, id int64, status domain.TourStatus) error {
	q := url.Values{"status": {string(status)}}
	return c.putQuery(ctx, fmt.Sprintf("/tour/%d/status", id), q)
}

func (c *Client) DeleteTour(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/tour/%d", id))
}
