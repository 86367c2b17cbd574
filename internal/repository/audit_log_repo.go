package repository

import (
	"context"

	"gorm.io/gorm"

	"gallery/adminhub/internal/model"
)

type AuditLogRepository interface {
	Create(ctx context.Context, entry *model.AuditLog) error
	ListRecent(ctx context.Context, limit int) ([]model.AuditLog, error)
}

type pgAuditLogRepository struct {
	db *gorm.DB
}

func NewPGAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &pgAuditLogRepository{db: db}
}

func (r *pgAuditLogRepository) Create(ctx context.Context, entry *model.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *pgAuditLogRepository) ListRecent(ctx context.Context, limit int) ([]model.AuditLog, error) {
	var entries []model.AuditLog
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
