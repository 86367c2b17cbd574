package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"gallery/adminhub/internal/model"
	"gallery/adminhub/internal/repository"
)

type DisplayOrderService interface {
	// Recompute renumbers artist_display_order and global_display_order for every visible
	// artwork and returns how many rows were written.
	Recompute(ctx context.Context) (int, error)
	// Reorder sets artist_display_order for the given artworks of one artist to their
	// position in artworkIDs, starting at 1.
	Reorder(ctx context.Context, artistID uint, artworkIDs []uint) error
}

type displayOrderService struct {
	store  repository.Store
	logger *zap.Logger
}

func NewDisplayOrderService(store repository.Store, logger *zap.Logger) DisplayOrderService {
	return &displayOrderService{store: store, logger: logger}
}

type displayOrder struct {
	ArtworkID   uint
	ArtistOrder int
	GlobalOrder int
}

// assignDisplayOrder expects artworks oldest first. Artists are visited in the order
// their first artwork appears; hidden artworks are skipped and advance no counter.
func assignDisplayOrder(artworks []model.Artwork) []displayOrder {
	var artistSeq []uint
	groups := make(map[uint][]model.Artwork)
	for _, a := range artworks {
		if _, seen := groups[a.ArtistID]; !seen {
			artistSeq = append(artistSeq, a.ArtistID)
		}
		groups[a.ArtistID] = append(groups[a.ArtistID], a)
	}

	orders := make([]displayOrder, 0, len(artworks))
	global := 1
	for _, artistID := range artistSeq {
		artistOrder := 1
		for _, a := range groups[artistID] {
			if !a.IsVisible {
				continue
			}
			orders = append(orders, displayOrder{ArtworkID: a.ID, ArtistOrder: artistOrder, GlobalOrder: global})
			artistOrder++
			global++
		}
	}
	return orders
}

func (s *displayOrderService) Recompute(ctx context.Context) (int, error) {
	var updated int
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		artworks, err := tx.Artworks().ListForOrdering(ctx)
		if err != nil {
			return fmt.Errorf("load artworks: %w", err)
		}
		for _, o := range assignDisplayOrder(artworks) {
			if err := tx.Artworks().UpdateDisplayOrder(ctx, o.ArtworkID, o.ArtistOrder, o.GlobalOrder); err != nil {
				return fmt.Errorf("update artwork %d: %w", o.ArtworkID, err)
			}
			updated++
		}
		return nil
	})
	if err != nil {
		s.logger.Error("display order recompute failed", zap.Error(err))
		return 0, err
	}
	s.logger.Info("display order recomputed", zap.Int("updated", updated))
	return updated, nil
}

func (s *displayOrderService) Reorder(ctx context.Context, artistID uint, artworkIDs []uint) error {
	if len(artworkIDs) == 0 {
		return ErrInvalidReorder
	}
	return s.store.Transaction(ctx, func(tx repository.Store) error {
		owned, err := tx.Artworks().List(ctx, repository.ArtworkFilter{ArtistID: &artistID})
		if err != nil {
			return fmt.Errorf("load artworks: %w", err)
		}
		belongs := make(map[uint]bool, len(owned))
		for _, a := range owned {
			belongs[a.ID] = true
		}
		seen := make(map[uint]bool, len(artworkIDs))
		for _, id := range artworkIDs {
			if !belongs[id] || seen[id] {
				return ErrInvalidReorder
			}
			seen[id] = true
		}

		for i, id := range artworkIDs {
			if err := tx.Artworks().UpdateArtistDisplayOrder(ctx, id, i+1); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrArtworkNotFound
				}
				return fmt.Errorf("update artwork %d: %w", id, err)
			}
		}
		return nil
	})
}

var _ DisplayOrderService = (*displayOrderService)(nil)
