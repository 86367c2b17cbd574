package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"gallery/adminhub/internal/model"
)

type pgInvitationRepository struct {
	db *gorm.DB
}

func NewPGInvitationRepository(db *gorm.DB) InvitationRepository {
	return &pgInvitationRepository{db: db}
}

func (r *pgInvitationRepository) Create(ctx context.Context, invitation *model.ArtistInvitation) error {
	return r.db.WithContext(ctx).Create(invitation).Error
}

func (r *pgInvitationRepository) GetByID(ctx context.Context, id uint) (*model.ArtistInvitation, error) {
	var invitation model.ArtistInvitation
	if err := r.db.WithContext(ctx).First(&invitation, id).Error; err != nil {
		return nil, err
	}
	return &invitation, nil
}

func (r *pgInvitationRepository) GetByCode(ctx context.Context, code string) (*model.ArtistInvitation, error) {
	var invitation model.ArtistInvitation
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&invitation).Error; err != nil {
		return nil, err
	}
	return &invitation, nil
}

func (r *pgInvitationRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ArtistInvitation{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

func (r *pgInvitationRepository) ListUnredeemedByEmail(ctx context.Context, email string) ([]model.ArtistInvitation, error) {
	var invitations []model.ArtistInvitation
	err := r.db.WithContext(ctx).
		Where("email = ? AND used_at IS NULL", email).
		Order("created_at DESC").
		Find(&invitations).Error
	return invitations, err
}

func (r *pgInvitationRepository) List(ctx context.Context, limit int) ([]model.ArtistInvitation, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var invitations []model.ArtistInvitation
	if err := q.Find(&invitations).Error; err != nil {
		return nil, err
	}
	return invitations, nil
}

func (r *pgInvitationRepository) Counts(ctx context.Context) (InvitationCounts, error) {
	var counts InvitationCounts
	db := r.db.WithContext(ctx)
	if err := db.Model(&model.ArtistInvitation{}).Count(&counts.Total).Error; err != nil {
		return InvitationCounts{}, err
	}
	if err := db.Model(&model.ArtistInvitation{}).Where("used_at IS NOT NULL").Count(&counts.Redeemed).Error; err != nil {
		return InvitationCounts{}, err
	}
	return counts, nil
}

func (r *pgInvitationRepository) MarkUsed(ctx context.Context, id uint, at time.Time) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&model.ArtistInvitation{}).
		Where("id = ? AND used_at IS NULL", id).
		Update("used_at", at)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}

func (r *pgInvitationRepository) Delete(ctx context.Context, id uint) error {
	return updateOne(r.db.WithContext(ctx).Delete(&model.ArtistInvitation{}, id))
}
