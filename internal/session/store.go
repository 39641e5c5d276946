package session

import (
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tourdesk/internal/domain"
)

const currentUserKey = "current_user"

var (
	ErrNotAuthenticated = errors.New("no authenticated user")
	ErrWrongRole        = errors.New("principal role does not match dashboard")
)

// Principal is the locally stored representation of the authenticated user.
// It is trusted as-is; there is no token or expiry to validate.
type Principal struct {
	ID          int64       `json:"user_id"`
	Role        domain.Role `json:"role"`
	DisplayName string      `json:"name"`
}

func PrincipalFromUser(u *domain.User) Principal {
	return Principal{ID: u.ID, Role: u.Role, DisplayName: u.Name}
}

type record struct {
	Key       string `gorm:"primaryKey;size:64"`
	Payload   string `gorm:"type:text"`
	UpdatedAt time.Time
}

func (record) TableName() string { return "session_records" }

// Store persists at most one principal under a fixed key.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&record{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Load returns the stored principal, or ErrNotAuthenticated when none exists.
func (s *Store) Load() (*Principal, error) {
	var rec record
	err := s.db.First(&rec, "key = ?", currentUserKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotAuthenticated
	}
	if err != nil {
		return nil, err
	}

	var p Principal
	if err := json.Unmarshal([]byte(rec.Payload), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Save writes the principal, replacing any previous one.
func (s *Store) Save(p Principal) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return err
	}

	rec := record{Key: currentUserKey, Payload: string(payload), UpdatedAt: time.Now()}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&rec).Error
}

// Clear removes the stored principal. Clearing an empty store is not an error.
func (s *Store) Clear() error {
	return s.db.Delete(&record{}, "key = ?", currentUserKey).Error
}
