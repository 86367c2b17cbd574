package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewManager("secret", "gallery", time.Minute, time.Hour)
	id := uuid.New()

	token, err := m.GenerateAccessToken(id, "a@example.com", "admin")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if got, _ := claims.AccountID(); got != id {
		t.Errorf("AccountID() = %s, want %s", got, id)
	}
	if claims.Email != "a@example.com" || claims.Role != "admin" || claims.TokenType != TokenTypeAccess {
		t.Errorf("claims = %+v", claims)
	}
}

func TestValidateRejects(t *testing.T) {
	m := NewManager("secret", "gallery", time.Minute, time.Hour)
	token, _ := m.GenerateAccessToken(uuid.New(), "a@example.com", "")

	tests := []struct {
		name string
		m    *Manager
	}{
		{"wrong key", NewManager("other", "gallery", time.Minute, time.Hour)},
		{"wrong issuer", NewManager("secret", "elsewhere", time.Minute, time.Hour)},
		{"expired", func() *Manager {
			later := NewManager("secret", "gallery", time.Minute, time.Hour)
			later.now = func() time.Time { return time.Now().Add(time.Hour) }
			return later
		}()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.m.Validate(token); err == nil {
				t.Error("Validate() error = nil, want error")
			}
		})
	}
}

func TestRefreshTokenHasUniqueID(t *testing.T) {
	m := NewManager("secret", "gallery", time.Minute, time.Hour)
	_, a, err := m.GenerateRefreshToken(uuid.New())
	if err != nil {
		t.Fatalf("GenerateRefreshToken() error = %v", err)
	}
	_, b, _ := m.GenerateRefreshToken(uuid.New())
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("refresh JTIs %q and %q should be distinct and non-empty", a.ID, b.ID)
	}
	if a.TokenType != TokenTypeRefresh {
		t.Errorf("TokenType = %q, want refresh", a.TokenType)
	}
}
