package repository

import (
	"context"

	"gallery/adminhub/internal/model"
)

type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	GetByID(ctx context.Context, id uint) (*model.Event, error)
	List(ctx context.Context, visibleOnly bool) ([]model.Event, error)
	Update(ctx context.Context, event *model.Event) error
	Delete(ctx context.Context, id uint) error
	SlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error)
}
