package auth

import (
	"context"

	"tourdesk/internal/api"
	"tourdesk/internal/domain"
	"tourdesk/internal/session"
)

// UserGateway is the slice of the remote client the auth flows need.
type UserGateway interface {
	Login(ctx context.Context, creds api.Credentials) (*domain.User, error)
	Register(ctx context.Context, req api.RegisterRequest) (*domain.User, error)
}

// PrincipalStore persists the authenticated principal across restarts.
type PrincipalStore interface {
	Save(p session.Principal) error
	Clear() error
}
