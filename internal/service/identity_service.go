package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"gallery/adminhub/internal/config"
	"gallery/adminhub/internal/model"
	"gallery/adminhub/internal/repository"
	"gallery/adminhub/pkg/crypto"
)

const passwordResetKeyPrefix = "pwreset:"

// Caller is the authenticated account behind a request.
type Caller struct {
	AccountID   uuid.UUID  `json:"account_id"`
	Email       string     `json:"email"`
	DisplayName string     `json:"display_name"`
	Role        model.Role `json:"role"`
	// ArtistID is 0 when the account has no linked artist profile.
	ArtistID uint `json:"artist_id,omitempty"`
}

// Name returns the display name, falling back to the email.
func (c *Caller) Name() string {
	if c.DisplayName != "" {
		return c.DisplayName
	}
	return c.Email
}

type CreateAccountInput struct {
	Email       string     `json:"email" validate:"required,email,max=320"`
	DisplayName string     `json:"display_name" validate:"max=200"`
	Role        model.Role `json:"role"`
	Password    string     `json:"password" validate:"omitempty,min=8,max=72"`
}

type IdentityService interface {
	CurrentCaller(ctx context.Context, accountID uuid.UUID) (*Caller, error)
	GetAccount(ctx context.Context, id uuid.UUID) (*model.Account, error)
	ListAccounts(ctx context.Context) ([]model.Account, error)
	CreateAccount(ctx context.Context, input CreateAccountInput) (*model.Account, error)
	// EnsureAccount returns the account registered for email, creating a passwordless one if needed.
	EnsureAccount(ctx context.Context, email, displayName string) (*model.Account, error)
	SetPassword(ctx context.Context, id uuid.UUID, password string) error
	SetRole(ctx context.Context, id uuid.UUID, role model.Role) (*model.Account, error)
	// LinkArtist records artistID in the account metadata and grants the artist role.
	LinkArtist(ctx context.Context, accountID uuid.UUID, artistID uint) error
	ResolveArtistID(ctx context.Context, accountID uuid.UUID) (uint, error)
	FindAccountByArtistID(ctx context.Context, artistID uint) (*model.Account, error)
	RequestPasswordReset(ctx context.Context, email string) error
	EnsureSuperAdmin(ctx context.Context, cfg config.AdminConfig) error
}

type identityService struct {
	store       repository.Store
	stateStore  repository.StateStore
	mailer      MailSender
	resetCfg    config.PasswordResetConfig
	galleryName string
	logger      *zap.Logger
}

func NewIdentityService(
	store repository.Store,
	stateStore repository.StateStore,
	mailer MailSender,
	resetCfg config.PasswordResetConfig,
	galleryName string,
	logger *zap.Logger,
) IdentityService {
	return &identityService{
		store:       store,
		stateStore:  stateStore,
		mailer:      mailer,
		resetCfg:    resetCfg,
		galleryName: galleryName,
		logger:      logger,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *identityService) CurrentCaller(ctx context.Context, accountID uuid.UUID) (*Caller, error) {
	account, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	caller := &Caller{
		AccountID:   account.ID,
		Email:       account.Email,
		DisplayName: account.DisplayName,
		Role:        account.Metadata.Role(),
	}
	if artistID, ok := account.Metadata.ArtistID(); ok {
		caller.ArtistID = artistID
	}
	return caller, nil
}

func (s *identityService) GetAccount(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	account, err := s.store.Accounts().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	return account, nil
}

func (s *identityService) ListAccounts(ctx context.Context) ([]model.Account, error) {
	return s.store.Accounts().List(ctx)
}

func (s *identityService) CreateAccount(ctx context.Context, input CreateAccountInput) (*model.Account, error) {
	input.Email = normalizeEmail(input.Email)
	input.DisplayName = strings.TrimSpace(input.DisplayName)
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if !input.Role.Valid() {
		return nil, ErrInvalidRole
	}

	// 1. Email must be free
	_, err := s.store.Accounts().GetByEmail(ctx, input.Email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	// 2. Hash the password when one is given; otherwise the account waits for activation
	account := &model.Account{
		Email:       input.Email,
		DisplayName: input.DisplayName,
	}
	if input.Role != model.RoleNone {
		account.Metadata = model.AccountMetadata{model.MetadataKeyRole: string(input.Role)}
	}
	if input.Password != "" {
		hash, err := crypto.HashPassword(input.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		account.PasswordHash = hash
	}

	if err := s.store.Accounts().Create(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return account, nil
}

func (s *identityService) EnsureAccount(ctx context.Context, email, displayName string) (*model.Account, error) {
	account, err := s.store.Accounts().GetByEmail(ctx, normalizeEmail(email))
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	return s.CreateAccount(ctx, CreateAccountInput{Email: email, DisplayName: displayName})
}

func (s *identityService) SetPassword(ctx context.Context, id uuid.UUID, password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}
	hash, err := crypto.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.store.Accounts().UpdatePassword(ctx, id, hash); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

func (s *identityService) SetRole(ctx context.Context, id uuid.UUID, role model.Role) (*model.Account, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	account, err := s.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}

	meta := copyMetadata(account.Metadata)
	if role == model.RoleNone {
		delete(meta, model.MetadataKeyRole)
	} else {
		meta[model.MetadataKeyRole] = string(role)
	}
	if err := s.store.Accounts().UpdateMetadata(ctx, id, meta); err != nil {
		return nil, fmt.Errorf("failed to update metadata: %w", err)
	}
	account.Metadata = meta
	return account, nil
}

func (s *identityService) LinkArtist(ctx context.Context, accountID uuid.UUID, artistID uint) error {
	account, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return err
	}

	if previous, ok := account.Metadata.ArtistID(); ok && previous != artistID {
		// the earlier artist profile loses its only link to a login
		s.logger.Warn("replacing linked artist on account",
			zap.String("account_id", accountID.String()),
			zap.Uint("previous_artist_id", previous),
			zap.Uint("artist_id", artistID),
		)
	}

	meta := copyMetadata(account.Metadata)
	meta[model.MetadataKeyArtistID] = artistID
	// admins who also exhibit keep their admin role
	if !meta.Role().IsAdmin() {
		meta[model.MetadataKeyRole] = string(model.RoleArtist)
	}
	if err := s.store.Accounts().UpdateMetadata(ctx, accountID, meta); err != nil {
		return fmt.Errorf("failed to update metadata: %w", err)
	}
	return nil
}

func (s *identityService) ResolveArtistID(ctx context.Context, accountID uuid.UUID) (uint, error) {
	account, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return 0, err
	}
	artistID, ok := account.Metadata.ArtistID()
	if !ok {
		return 0, ErrNoArtistProfile
	}
	if _, err := s.store.Artists().GetByID(ctx, artistID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNoArtistProfile
		}
		return 0, fmt.Errorf("failed to find artist: %w", err)
	}
	return artistID, nil
}

// FindAccountByArtistID scans account metadata, which is the only record of the link.
func (s *identityService) FindAccountByArtistID(ctx context.Context, artistID uint) (*model.Account, error) {
	accounts, err := s.store.Accounts().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	for i := range accounts {
		if id, ok := accounts[i].Metadata.ArtistID(); ok && id == artistID {
			return &accounts[i], nil
		}
	}
	return nil, ErrAccountNotFound
}

// RequestPasswordReset emails a one-time reset link. Unknown emails succeed silently.
func (s *identityService) RequestPasswordReset(ctx context.Context, email string) error {
	account, err := s.store.Accounts().GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Info("password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("failed to find account: %w", err)
	}

	token, err := crypto.GeneratePasswordResetToken()
	if err != nil {
		return err
	}
	if err := s.stateStore.Set(ctx, passwordResetKeyPrefix+token, []byte(account.ID.String()), s.resetCfg.TTL); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	subject, body, err := passwordResetEmail(s.galleryName, account.DisplayName, token, s.resetCfg.ResetURL, s.resetCfg.TTL)
	if err != nil {
		return err
	}
	if err := s.mailer.Send(ctx, account.Email, subject, body); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}
	return nil
}

// EnsureSuperAdmin makes sure the configured bootstrap account exists and holds super_admin.
func (s *identityService) EnsureSuperAdmin(ctx context.Context, cfg config.AdminConfig) error {
	if strings.TrimSpace(cfg.BootstrapEmail) == "" {
		return nil
	}
	account, err := s.EnsureAccount(ctx, cfg.BootstrapEmail, cfg.BootstrapName)
	if err != nil {
		return fmt.Errorf("bootstrap admin account: %w", err)
	}
	if account.Metadata.Role() != model.RoleSuperAdmin {
		if _, err := s.SetRole(ctx, account.ID, model.RoleSuperAdmin); err != nil {
			return fmt.Errorf("bootstrap admin role: %w", err)
		}
	}
	if !account.Activated() && cfg.BootstrapPassword != "" {
		if err := s.SetPassword(ctx, account.ID, cfg.BootstrapPassword); err != nil {
			return fmt.Errorf("bootstrap admin password: %w", err)
		}
	}
	s.logger.Info("bootstrap super admin ready", zap.String("email", account.Email))
	return nil
}

func copyMetadata(meta model.AccountMetadata) model.AccountMetadata {
	out := make(model.AccountMetadata, len(meta)+2)
	for k, v := range meta {
		out[k] = v
	}
	return out
}

type passwordInput struct {
	Password string `json:"password" validate:"required,min=8,max=72"`
}

func validatePassword(password string) error {
	return validateInput(passwordInput{Password: password})
}

var _ IdentityService = (*identityService)(nil)
