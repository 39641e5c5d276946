package api

import (
	"context"
	"fmt"

	"tourdesk/internal/domain"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UpdateUserRequest struct {
	Name     string `json:"name,omitempty"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}

func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := c.getJSON(ctx, "/user", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Register creates a tourist account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	var u domain.User
	if err := c.postJSON(ctx, "/user/register", req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// RegisterGuide creates a guide account; admin only on the backend side.
func (c *Client) RegisterGuide(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	var u domain.User
	if err := c.postJSON(ctx, "/user/register-guide", req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Login returns the full user record; the backend issues no token.
func (c *Client) Login(ctx context.Context, creds Credentials) (*domain.User, error) {
	var u domain.User
	if err := c.postJSON(ctx, "/user/login", creds, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) UpdateUser(ctx context.Context, id int64, req UpdateUserRequest) (*domain.User, error) {
	var u domain.User
	if err := c.putJSON(ctx, fmt.Sprintf("/user/%d", id), req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/user/%d", id))
}
