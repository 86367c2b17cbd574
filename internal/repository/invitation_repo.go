package repository

import (
	"context"
	"time"

	"gallery/adminhub/internal/model"
)

type InvitationCounts struct {
	Total    int64
	Redeemed int64
}

type InvitationRepository interface {
	Create(ctx context.Context, invitation *model.ArtistInvitation) error
	GetByID(ctx context.Context, id uint) (*model.ArtistInvitation, error)
	GetByCode(ctx context.Context, code string) (*model.ArtistInvitation, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	// ListUnredeemedByEmail returns invitations for email whose used_at is still null, expired or not.
	ListUnredeemedByEmail(ctx context.Context, email string) ([]model.ArtistInvitation, error)
	// List returns invitations newest first; limit <= 0 returns all of them.
	List(ctx context.Context, limit int) ([]model.ArtistInvitation, error)
	Counts(ctx context.Context) (InvitationCounts, error)
	// MarkUsed sets used_at only while it is still null and reports whether a row changed.
	MarkUsed(ctx context.Context, id uint, at time.Time) (bool, error)
	Delete(ctx context.Context, id uint) error
}
