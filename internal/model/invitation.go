package model

import (
	"time"

	"github.com/google/uuid"
)

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationRedeemed InvitationStatus = "redeemed"
	InvitationExpired  InvitationStatus = "expired"
)

type ArtistInvitation struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"type:varchar(100);not null" json:"name"`
	Email       string     `gorm:"type:varchar(320);not null;index" json:"email"`
	Code        string     `gorm:"type:varchar(64);uniqueIndex;not null" json:"code"`
	InvitedBy   string     `gorm:"type:varchar(200);not null;default:''" json:"invited_by"`
	PreApproved bool       `gorm:"not null;default:false" json:"pre_approved"`
	AccountID   *uuid.UUID `gorm:"type:uuid" json:"account_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UsedAt      *time.Time `json:"used_at,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

func (ArtistInvitation) TableName() string { return "artist_invitations" }

func (i *ArtistInvitation) IsUsed() bool {
	return i.UsedAt != nil
}

// IsExpired reports whether now is past the expiry. Used invitations can still be expired.
func (i *ArtistInvitation) IsExpired(now time.Time) bool {
	return i.ExpiresAt != nil && now.After(*i.ExpiresAt)
}

// Status derives the lifecycle state; it is never stored.
func (i *ArtistInvitation) Status(now time.Time) InvitationStatus {
	switch {
	case i.IsUsed():
		return InvitationRedeemed
	case i.IsExpired(now):
		return InvitationExpired
	default:
		return InvitationPending
	}
}
