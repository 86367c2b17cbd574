package repository

import (
	"context"

	"gorm.io/gorm"

	"gallery/adminhub/internal/model"
)

type pgArtistRepository struct {
	db *gorm.DB
}

func NewPGArtistRepository(db *gorm.DB) ArtistRepository {
	return &pgArtistRepository{db: db}
}

func (r *pgArtistRepository) Create(ctx context.Context, artist *model.Artist) error {
	return r.db.WithContext(ctx).Create(artist).Error
}

func (r *pgArtistRepository) GetByID(ctx context.Context, id uint) (*model.Artist, error) {
	var artist model.Artist
	if err := r.db.WithContext(ctx).First(&artist, id).Error; err != nil {
		return nil, err
	}
	return &artist, nil
}

func (r *pgArtistRepository) GetBySlug(ctx context.Context, slug string) (*model.Artist, error) {
	var artist model.Artist
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&artist).Error; err != nil {
		return nil, err
	}
	return &artist, nil
}

func (r *pgArtistRepository) List(ctx context.Context, filter ArtistFilter) ([]model.Artist, error) {
	q := r.db.WithContext(ctx)
	if filter.PublicOnly {
		q = q.Where("is_visible = ? AND is_hidden = ?", true, false)
	}

	var artists []model.Artist
	if err := q.Order("featured DESC").Order("name ASC").Find(&artists).Error; err != nil {
		return nil, err
	}
	return artists, nil
}

func (r *pgArtistRepository) Update(ctx context.Context, artist *model.Artist) error {
	return r.db.WithContext(ctx).Save(artist).Error
}

func (r *pgArtistRepository) Delete(ctx context.Context, id uint) error {
	return updateOne(r.db.WithContext(ctx).Delete(&model.Artist{}, id))
}

func (r *pgArtistRepository) SlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Artist{}).
		Where("slug = ? AND id <> ?", slug, excludeID).
		Count(&count).Error
	return count > 0, err
}
