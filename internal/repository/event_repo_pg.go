package repository

import (
	"context"

	"gorm.io/gorm"

	"gallery/adminhub/internal/model"
)

type pgEventRepository struct {
	db *gorm.DB
}

func NewPGEventRepository(db *gorm.DB) EventRepository {
	return &pgEventRepository{db: db}
}

func (r *pgEventRepository) Create(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *pgEventRepository) GetByID(ctx context.Context, id uint) (*model.Event, error) {
	var event model.Event
	if err := r.db.WithContext(ctx).First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *pgEventRepository) List(ctx context.Context, visibleOnly bool) ([]model.Event, error) {
	q := r.db.WithContext(ctx)
	if visibleOnly {
		q = q.Where("is_visible = ?", true)
	}

	var events []model.Event
	if err := q.Order("starts_at ASC").Order("id ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *pgEventRepository) Update(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

func (r *pgEventRepository) Delete(ctx context.Context, id uint) error {
	return updateOne(r.db.WithContext(ctx).Delete(&model.Event{}, id))
}

func (r *pgEventRepository) SlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Event{}).
		Where("slug = ? AND id <> ?", slug, excludeID).
		Count(&count).Error
	return count > 0, err
}
