package session

import "tourdesk/internal/domain"

// RequireRole gates dashboard entry. Callers treat any returned error as an
// immediate redirect to the entry page; no dashboard fetch may be issued
// before this check passes.
func RequireRole(p *Principal, role domain.Role) error {
	if p == nil || p.ID == 0 {
		return ErrNotAuthenticated
	}
	if p.Role != role {
		return ErrWrongRole
	}
	return nil
}
