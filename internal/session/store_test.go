package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourdesk/internal/database"
	"tourdesk/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	db, err := database.Connect(":memory:")
	require.NoError(t, err)

	store, err := NewStore(db)
	require.NoError(t, err)
	return store
}

func TestStore_SaveLoadClear(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	p := Principal{ID: 7, Role: domain.RoleTourist, DisplayName: "Ahmed"}
	require.NoError(t, store.Save(p))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, p, *got)

	require.NoError(t, store.Clear())
	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestStore_SaveReplacesPrevious(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Save(Principal{ID: 1, Role: domain.RoleTourist, DisplayName: "Ahmed"}))
	require.NoError(t, store.Save(Principal{ID: 2, Role: domain.RoleAdmin, DisplayName: "Fatma"}))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.ID)
	assert.Equal(t, domain.RoleAdmin, got.Role)
}

func TestRequireRole(t *testing.T) {
	tourist := &Principal{ID: 5, Role: domain.RoleTourist}

	assert.NoError(t, RequireRole(tourist, domain.RoleTourist))
	assert.ErrorIs(t, RequireRole(tourist, domain.RoleGuide), ErrWrongRole)
	assert.ErrorIs(t, RequireRole(nil, domain.RoleAdmin), ErrNotAuthenticated)
}
