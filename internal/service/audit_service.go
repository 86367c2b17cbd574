package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gallery/adminhub/internal/model"
	"gallery/adminhub/internal/repository"
)

const defaultAuditLimit = 100

type AuditEntry struct {
	ActorID      uuid.UUID
	Action       string
	ResourceType string
	ResourceID   string
	Detail       string
	IPAddress    string
}

type AuditService interface {
	// Record stores an entry. It never fails the caller; errors are logged.
	Record(ctx context.Context, entry AuditEntry)
	ListRecent(ctx context.Context, limit int) ([]model.AuditLog, error)
}

type auditService struct {
	store  repository.Store
	logger *zap.Logger
}

func NewAuditService(store repository.Store, logger *zap.Logger) AuditService {
	return &auditService{store: store, logger: logger}
}

func (s *auditService) Record(ctx context.Context, entry AuditEntry) {
	log := &model.AuditLog{
		ActorID:      entry.ActorID,
		Action:       entry.Action,
		ResourceType: entry.ResourceType,
		ResourceID:   entry.ResourceID,
		Detail:       entry.Detail,
		IPAddress:    entry.IPAddress,
	}
	if err := s.store.AuditLogs().Create(ctx, log); err != nil {
		s.logger.Warn("failed to record audit log",
			zap.String("action", entry.Action),
			zap.String("resource_type", entry.ResourceType),
			zap.String("resource_id", entry.ResourceID),
			zap.Error(err),
		)
	}
}

func (s *auditService) ListRecent(ctx context.Context, limit int) ([]model.AuditLog, error) {
	if limit <= 0 || limit > 500 {
		limit = defaultAuditLimit
	}
	return s.store.AuditLogs().ListRecent(ctx, limit)
}

var _ AuditService = (*auditService)(nil)
