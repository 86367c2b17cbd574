package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the relational repositories so that multi-write operations can run
// against a single transaction.
type Store interface {
	Accounts() AccountRepository
	Artists() ArtistRepository
	Artworks() ArtworkRepository
	Invitations() InvitationRepository
	Events() EventRepository
	AuditLogs() AuditLogRepository

	// Transaction runs fn with a Store bound to one database transaction.
	// The transaction commits when fn returns nil and rolls back otherwise.
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

type pgStore struct {
	db *gorm.DB
}

func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

func (s *pgStore) Accounts() AccountRepository       { return NewPGAccountRepository(s.db) }
func (s *pgStore) Artists() ArtistRepository         { return NewPGArtistRepository(s.db) }
func (s *pgStore) Artworks() ArtworkRepository       { return NewPGArtworkRepository(s.db) }
func (s *pgStore) Invitations() InvitationRepository { return NewPGInvitationRepository(s.db) }
func (s *pgStore) Events() EventRepository           { return NewPGEventRepository(s.db) }
func (s *pgStore) AuditLogs() AuditLogRepository     { return NewPGAuditLogRepository(s.db) }

func (s *pgStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&pgStore{db: tx})
	})
}
