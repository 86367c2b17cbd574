package repository

import (
	"context"

	"gallery/adminhub/internal/model"
)

type ArtworkOrder int

const (
	// ArtworkOrderNewest lists most recently created first.
	ArtworkOrderNewest ArtworkOrder = iota
	// ArtworkOrderGlobal follows global_display_order.
	ArtworkOrderGlobal
	// ArtworkOrderArtist follows artist_display_order.
	ArtworkOrderArtist
)

type ArtworkFilter struct {
	ArtistID    *uint
	Status      model.ArtworkStatus
	VisibleOnly bool
	Order       ArtworkOrder
}

type ArtworkRepository interface {
	Create(ctx context.Context, artwork *model.Artwork) error
	GetByID(ctx context.Context, id uint) (*model.Artwork, error)
	List(ctx context.Context, filter ArtworkFilter) ([]model.Artwork, error)
	Update(ctx context.Context, artwork *model.Artwork) error
	Delete(ctx context.Context, id uint) error
	CountByArtist(ctx context.Context, artistID uint) (int64, error)

	// ListForOrdering returns every artwork, oldest first (ties broken by id),
	// loading only the columns the display-order routine reads.
	ListForOrdering(ctx context.Context) ([]model.Artwork, error)
	UpdateDisplayOrder(ctx context.Context, id uint, artistOrder, globalOrder int) error
	UpdateArtistDisplayOrder(ctx context.Context, id uint, artistOrder int) error
}
