package repository

import (
	"context"

	"gallery/adminhub/internal/model"
)

type ArtistFilter struct {
	PublicOnly bool
}

type ArtistRepository interface {
	Create(ctx context.Context, artist *model.Artist) error
	GetByID(ctx context.Context, id uint) (*model.Artist, error)
	GetBySlug(ctx context.Context, slug string) (*model.Artist, error)
	List(ctx context.Context, filter ArtistFilter) ([]model.Artist, error)
	Update(ctx context.Context, artist *model.Artist) error
	Delete(ctx context.Context, id uint) error
	SlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error)
}
