package auth

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"tourdesk/internal/api"
	"tourdesk/internal/domain"
	"tourdesk/internal/pkg/validator"
	"tourdesk/internal/session"
)

type Service struct {
	users    UserGateway
	sessions PrincipalStore
	log      *zap.Logger
}

func NewService(users UserGateway, sessions PrincipalStore, log *zap.Logger) *Service {
	return &Service{users: users, sessions: sessions, log: log}
}

// Login authenticates against the backend and persists the returned user as
// the current principal. Validation failures carry field messages and skip
// the network entirely.
func (s *Service) Login(ctx context.Context, form LoginForm) (*session.Principal, error) {
	if err := validator.Check(form); err != nil {
		return nil, err
	}

	user, err := s.users.Login(ctx, api.Credentials{Username: form.Username, Password: form.Password})
	if err != nil {
		var re *api.RemoteError
		if errors.As(err, &re) {
			s.log.Debug("login rejected", zap.Int("status", re.StatusCode))
			if re.Message != "" {
				return nil, fmt.Errorf("%w: %s", ErrInvalidCredentials, re.Message)
			}
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	p := session.PrincipalFromUser(user)
	if err := s.sessions.Save(p); err != nil {
		return nil, err
	}

	s.log.Info("logged in", zap.Int64("user_id", p.ID), zap.String("role", string(p.Role)))
	return &p, nil
}

// Register creates a tourist account. The new user still logs in explicitly;
// no principal is written here.
func (s *Service) Register(ctx context.Context, form RegisterForm) error {
	if err := validator.Check(form); err != nil {
		return err
	}

	_, err := s.users.Register(ctx, api.RegisterRequest{
		Name:     form.Name,
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		if api.IsConflict(err) {
			return ErrUsernameTaken
		}
		return err
	}
	return nil
}

// Logout clears the stored principal.
func (s *Service) Logout() error {
	return s.sessions.Clear()
}

// DashboardFor maps a role to its dashboard route.
func DashboardFor(role domain.Role) string {
	switch role {
	case domain.RoleAdmin:
		return "/admin"
	case domain.RoleGuide:
		return "/guide"
	default:
		return "/tourist"
	}
}
