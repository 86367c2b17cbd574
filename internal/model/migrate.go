package model

import "gorm.io/gorm"

// AutoMigrate runs GORM auto-migration for all models and creates custom indexes.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&Account{},
		&Artist{},
		&Artwork{},
		&ArtistInvitation{},
		&Event{},
		&AuditLog{},
	); err != nil {
		return err
	}

	// Case-insensitive unique account email.
	if err := db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_accounts_email_lower ON accounts (lower(email))",
	).Error; err != nil {
		return err
	}

	// Ordering scans read artworks oldest first.
	return db.Exec(
		"CREATE INDEX IF NOT EXISTS idx_artworks_created_id ON artworks (created_at, id)",
	).Error
}
