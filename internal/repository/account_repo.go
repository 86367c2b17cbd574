package repository

import (
	"context"

	"github.com/google/uuid"

	"gallery/adminhub/internal/model"
)

type AccountRepository interface {
	Create(ctx context.Context, account *model.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Account, error)
	GetByEmail(ctx context.Context, email string) (*model.Account, error)
	List(ctx context.Context) ([]model.Account, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateMetadata(ctx context.Context, id uuid.UUID, metadata model.AccountMetadata) error
}
