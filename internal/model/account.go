package model

import (
	"database/sql/driver"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleNone       Role = ""
	RoleArtist     Role = "artist"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// IsAdmin reports whether r passes the admin guard.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

func (r Role) Valid() bool {
	switch r {
	case RoleNone, RoleArtist, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

const (
	MetadataKeyRole     = "role"
	MetadataKeyArtistID = "artistID"
)

// AccountMetadata is the identity provider's free-form metadata map, stored as JSON.
// It is the only place that records which artist an account belongs to.
type AccountMetadata map[string]interface{}

func (m AccountMetadata) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *AccountMetadata) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	return scanJSON(value, m)
}

func (m AccountMetadata) Role() Role {
	s, _ := m[MetadataKeyRole].(string)
	return Role(s)
}

// ArtistID decodes the artistID entry, which may come back from JSON as a number or a string.
func (m AccountMetadata) ArtistID() (uint, bool) {
	switch v := m[MetadataKeyArtistID].(type) {
	case float64:
		if v > 0 {
			return uint(v), true
		}
	case int:
		if v > 0 {
			return uint(v), true
		}
	case uint:
		if v > 0 {
			return v, true
		}
	case string:
		n, err := strconv.ParseUint(v, 10, 64)
		if err == nil && n > 0 {
			return uint(n), true
		}
	}
	return 0, false
}

type Account struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string          `gorm:"type:varchar(320);not null" json:"email"`
	DisplayName  string          `gorm:"type:varchar(200);not null;default:''" json:"display_name"`
	PasswordHash string          `gorm:"type:varchar(255);not null;default:''" json:"-"`
	Metadata     AccountMetadata `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (Account) TableName() string { return "accounts" }

func (a *Account) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Activated reports whether the account has a password set.
func (a *Account) Activated() bool {
	return a.PasswordHash != ""
}
