package repository

import (
	"context"

	"gorm.io/gorm"

	"gallery/adminhub/internal/model"
)

type pgArtworkRepository struct {
	db *gorm.DB
}

func NewPGArtworkRepository(db *gorm.DB) ArtworkRepository {
	return &pgArtworkRepository{db: db}
}

func (r *pgArtworkRepository) Create(ctx context.Context, artwork *model.Artwork) error {
	return r.db.WithContext(ctx).Create(artwork).Error
}

func (r *pgArtworkRepository) GetByID(ctx context.Context, id uint) (*model.Artwork, error) {
	var artwork model.Artwork
	if err := r.db.WithContext(ctx).First(&artwork, id).Error; err != nil {
		return nil, err
	}
	return &artwork, nil
}

func (r *pgArtworkRepository) List(ctx context.Context, filter ArtworkFilter) ([]model.Artwork, error) {
	q := r.db.WithContext(ctx).Model(&model.Artwork{})
	if filter.ArtistID != nil {
		q = q.Where("artist_id = ?", *filter.ArtistID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.VisibleOnly {
		q = q.Where("is_visible = ?", true)
	}

	switch filter.Order {
	case ArtworkOrderGlobal:
		q = q.Order("global_display_order ASC").Order("id ASC")
	case ArtworkOrderArtist:
		q = q.Order("artist_display_order ASC").Order("id ASC")
	default:
		q = q.Order("created_at DESC").Order("id DESC")
	}

	var artworks []model.Artwork
	if err := q.Find(&artworks).Error; err != nil {
		return nil, err
	}
	return artworks, nil
}

func (r *pgArtworkRepository) Update(ctx context.Context, artwork *model.Artwork) error {
	return r.db.WithContext(ctx).Omit("Artist").Save(artwork).Error
}

func (r *pgArtworkRepository) Delete(ctx context.Context, id uint) error {
	return updateOne(r.db.WithContext(ctx).Delete(&model.Artwork{}, id))
}

func (r *pgArtworkRepository) CountByArtist(ctx context.Context, artistID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Artwork{}).Where("artist_id = ?", artistID).Count(&count).Error
	return count, err
}

func (r *pgArtworkRepository) ListForOrdering(ctx context.Context) ([]model.Artwork, error) {
	var artworks []model.Artwork
	err := r.db.WithContext(ctx).
		Select("id", "title", "artist_id", "created_at", "is_visible").
		Order("created_at ASC").
		Order("id ASC").
		Find(&artworks).Error
	return artworks, err
}

func (r *pgArtworkRepository) UpdateDisplayOrder(ctx context.Context, id uint, artistOrder, globalOrder int) error {
	return updateOne(r.db.WithContext(ctx).
		Model(&model.Artwork{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"artist_display_order": artistOrder,
			"global_display_order": globalOrder,
		}))
}

func (r *pgArtworkRepository) UpdateArtistDisplayOrder(ctx context.Context, id uint, artistOrder int) error {
	return updateOne(r.db.WithContext(ctx).
		Model(&model.Artwork{}).
		Where("id = ?", id).
		Update("artist_display_order", artistOrder))
}
