package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gallery/adminhub/internal/model"
)

type pgAccountRepository struct {
	db *gorm.DB
}

func NewPGAccountRepository(db *gorm.DB) AccountRepository {
	return &pgAccountRepository{db: db}
}

func (r *pgAccountRepository) Create(ctx context.Context, account *model.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *pgAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	var account model.Account
	if err := r.db.WithContext(ctx).First(&account, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *pgAccountRepository) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	var account model.Account
	if err := r.db.WithContext(ctx).Where("lower(email) = lower(?)", email).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *pgAccountRepository) List(ctx context.Context) ([]model.Account, error) {
	var accounts []model.Account
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *pgAccountRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return updateOne(r.db.WithContext(ctx).
		Model(&model.Account{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash))
}

func (r *pgAccountRepository) UpdateMetadata(ctx context.Context, id uuid.UUID, metadata model.AccountMetadata) error {
	return updateOne(r.db.WithContext(ctx).
		Model(&model.Account{}).
		Where("id = ?", id).
		Update("metadata", metadata))
}

// updateOne turns an update that matched nothing into gorm.ErrRecordNotFound.
func updateOne(tx *gorm.DB) error {
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
