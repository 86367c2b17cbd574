package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"gallery/adminhub/internal/config"
	"gallery/adminhub/internal/model"
	"gallery/adminhub/internal/repository"
	"gallery/adminhub/pkg/crypto"
)

const (
	invitationCodeLength = 8
	recentInvitations    = 10
)

type IssueInvitationInput struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Email       string `json:"email" validate:"required,email,max=320"`
	PreApproved bool   `json:"pre_approved"`
	// InvitedBy is the display name of the issuing admin.
	InvitedBy string `json:"-"`
}

type RedeemInvitationInput struct {
	Code         string `json:"code" validate:"required,max=64"`
	Bio          string `json:"bio" validate:"max=5000"`
	Specialty    string `json:"specialty" validate:"max=200"`
	Exhibitions  string `json:"exhibitions" validate:"max=10000"`
	ProfileImage string `json:"profile_image" validate:"max=1024"`
}

// InvitationView is what an invitee sees when checking a code.
type InvitationView struct {
	Code      string                 `json:"code"`
	Name      string                 `json:"name"`
	Email     string                 `json:"email"`
	Status    model.InvitationStatus `json:"status"`
	ExpiresAt *time.Time             `json:"expires_at,omitempty"`
}

type RedeemResult struct {
	ArtistID  uint      `json:"artist_id"`
	AccountID uuid.UUID `json:"account_id"`
	Slug      string    `json:"slug"`
}

type InvitationStats struct {
	Total    int64                    `json:"total"`
	Pending  int64                    `json:"pending"`
	Redeemed int64                    `json:"redeemed"`
	Recent   []model.ArtistInvitation `json:"recent"`
}

type InvitationService interface {
	// Issue creates and emails an invitation. When only the email fails, the persisted
	// invitation is returned together with ErrInvitationEmailFailed.
	Issue(ctx context.Context, input IssueInvitationInput) (*model.ArtistInvitation, error)
	Validate(ctx context.Context, code string) (*InvitationView, error)
	// Activate sets the invitee's password for a pending code and signs them in.
	Activate(ctx context.Context, code, password string) (*TokenSet, error)
	Redeem(ctx context.Context, caller *Caller, input RedeemInvitationInput) (*RedeemResult, error)
	Stats(ctx context.Context) (*InvitationStats, error)
	List(ctx context.Context) ([]model.ArtistInvitation, error)
	Delete(ctx context.Context, id uint) error
}

type invitationService struct {
	store       repository.Store
	identity    IdentityService
	auth        AuthService
	mailer      MailSender
	cfg         config.InviteConfig
	galleryName string
	logger      *zap.Logger

	now          func() time.Time
	generateCode func(prefix string) (string, error)
}

func NewInvitationService(
	store repository.Store,
	identity IdentityService,
	auth AuthService,
	mailer MailSender,
	cfg config.InviteConfig,
	galleryName string,
	logger *zap.Logger,
) InvitationService {
	if cfg.MaxCodeAttempts <= 0 {
		cfg.MaxCodeAttempts = 5
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 7 * 24 * time.Hour
	}
	return &invitationService{
		store:       store,
		identity:    identity,
		auth:        auth,
		mailer:      mailer,
		cfg:         cfg,
		galleryName: galleryName,
		logger:      logger,
		now:         time.Now,
		generateCode: func(prefix string) (string, error) {
			return crypto.GenerateCode(prefix, invitationCodeLength)
		},
	}
}

func (s *invitationService) Issue(ctx context.Context, input IssueInvitationInput) (*model.ArtistInvitation, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = normalizeEmail(input.Email)
	if err := validateInput(input); err != nil {
		return nil, err
	}
	now := s.now()

	// 1. At most one unredeemed invitation per email
	open, err := s.store.Invitations().ListUnredeemedByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing invitations: %w", err)
	}
	for i := range open {
		if !open[i].IsExpired(now) {
			return nil, fmt.Errorf("%w: %s", ErrInvitationPending, input.Email)
		}
	}
	if len(open) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvitationUnredeemed, input.Email)
	}

	// 2. Allocate a code nobody holds yet
	code, err := s.allocateCode(ctx)
	if err != nil {
		return nil, err
	}

	expiresAt := now.Add(s.cfg.TTL)
	invitation := &model.ArtistInvitation{
		Name:        input.Name,
		Email:       input.Email,
		Code:        code,
		InvitedBy:   input.InvitedBy,
		PreApproved: input.PreApproved,
		CreatedAt:   now,
		ExpiresAt:   &expiresAt,
	}

	// 3. Pre-provision the identity account; the invitation is still useful without it
	account, err := s.identity.EnsureAccount(ctx, input.Email, input.Name)
	if err != nil {
		s.logger.Warn("failed to provision account for invitation",
			zap.String("email", input.Email),
			zap.Error(err),
		)
	} else {
		invitation.AccountID = &account.ID
	}

	if err := s.store.Invitations().Create(ctx, invitation); err != nil {
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	// 4. Email the invitee
	subject, body, err := invitationEmail(s.galleryName, invitation.Name, invitation.InvitedBy, code, s.cfg.SetupURL, expiresAt)
	if err == nil {
		err = s.mailer.Send(ctx, invitation.Email, subject, body)
	}
	if err != nil {
		s.logger.Error("failed to send invitation email",
			zap.Uint("invitation_id", invitation.ID),
			zap.String("email", invitation.Email),
			zap.Error(err),
		)
		return invitation, fmt.Errorf("%w: %v", ErrInvitationEmailFailed, err)
	}

	s.logger.Info("invitation issued",
		zap.Uint("invitation_id", invitation.ID),
		zap.String("email", invitation.Email),
		zap.Bool("pre_approved", invitation.PreApproved),
	)
	return invitation, nil
}

func (s *invitationService) allocateCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < s.cfg.MaxCodeAttempts; attempt++ {
		code, err := s.generateCode(s.cfg.CodePrefix)
		if err != nil {
			return "", err
		}
		exists, err := s.store.Invitations().CodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("failed to check invitation code: %w", err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", ErrInvitationCodeUnavailable
}

func (s *invitationService) getByCode(ctx context.Context, code string) (*model.ArtistInvitation, error) {
	invitation, err := s.store.Invitations().GetByCode(ctx, strings.TrimSpace(code))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, fmt.Errorf("failed to find invitation: %w", err)
	}
	return invitation, nil
}

func (s *invitationService) Validate(ctx context.Context, code string) (*InvitationView, error) {
	invitation, err := s.getByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return &InvitationView{
		Code:      invitation.Code,
		Name:      invitation.Name,
		Email:     invitation.Email,
		Status:    invitation.Status(s.now()),
		ExpiresAt: invitation.ExpiresAt,
	}, nil
}

// checkRedeemable applies the used-before-expired order every code path shares.
func (s *invitationService) checkRedeemable(invitation *model.ArtistInvitation) error {
	if invitation.IsUsed() {
		return ErrInvitationUsed
	}
	if invitation.IsExpired(s.now()) {
		return ErrInvitationExpired
	}
	return nil
}

func (s *invitationService) Activate(ctx context.Context, code, password string) (*TokenSet, error) {
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	invitation, err := s.getByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if err := s.checkRedeemable(invitation); err != nil {
		return nil, err
	}

	var account *model.Account
	if invitation.AccountID != nil {
		account, err = s.identity.GetAccount(ctx, *invitation.AccountID)
		if err != nil && !errors.Is(err, ErrAccountNotFound) {
			return nil, err
		}
	}
	if account == nil {
		// provisioning failed at issue time
		account, err = s.identity.EnsureAccount(ctx, invitation.Email, invitation.Name)
		if err != nil {
			return nil, err
		}
	}
	if account.Activated() {
		return nil, ErrAccountAlreadyActivated
	}

	if err := s.identity.SetPassword(ctx, account.ID, password); err != nil {
		return nil, err
	}
	return s.auth.IssueTokens(ctx, account)
}

func (s *invitationService) Redeem(ctx context.Context, caller *Caller, input RedeemInvitationInput) (*RedeemResult, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	invitation, err := s.getByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if err := s.checkRedeemable(invitation); err != nil {
		return nil, err
	}
	if caller.Email != invitation.Email {
		return nil, ErrInvitationEmailMismatch
	}

	now := s.now()
	artist := &model.Artist{
		Name:         invitation.Name,
		Bio:          strings.TrimSpace(input.Bio),
		Specialty:    strings.TrimSpace(input.Specialty),
		Exhibitions:  model.StringSlice(splitLines(input.Exhibitions)),
		ProfileImage: strings.TrimSpace(input.ProfileImage),
		IsVisible:    true,
		AutoApprove:  invitation.PreApproved,
	}

	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		slug, err := uniqueSlug(ctx, tx.Artists(), invitation.Name, "artist", 0)
		if err != nil {
			return err
		}
		artist.Slug = slug
		if err := tx.Artists().Create(ctx, artist); err != nil {
			return fmt.Errorf("failed to create artist: %w", err)
		}

		marked, err := tx.Invitations().MarkUsed(ctx, invitation.ID, now)
		if err != nil {
			return fmt.Errorf("failed to mark invitation used: %w", err)
		}
		if !marked {
			return ErrInvitationUsed
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.identity.LinkArtist(ctx, caller.AccountID, artist.ID); err != nil {
		s.logger.Error("failed to link artist to account",
			zap.Uint("artist_id", artist.ID),
			zap.String("account_id", caller.AccountID.String()),
			zap.Error(err),
		)
	}

	s.logger.Info("invitation redeemed",
		zap.Uint("invitation_id", invitation.ID),
		zap.Uint("artist_id", artist.ID),
	)
	return &RedeemResult{ArtistID: artist.ID, AccountID: caller.AccountID, Slug: artist.Slug}, nil
}

func (s *invitationService) Stats(ctx context.Context) (*InvitationStats, error) {
	counts, err := s.store.Invitations().Counts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count invitations: %w", err)
	}
	recent, err := s.store.Invitations().List(ctx, recentInvitations)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	return &InvitationStats{
		Total:    counts.Total,
		Pending:  counts.Total - counts.Redeemed,
		Redeemed: counts.Redeemed,
		Recent:   recent,
	}, nil
}

func (s *invitationService) List(ctx context.Context) ([]model.ArtistInvitation, error) {
	return s.store.Invitations().List(ctx, 0)
}

func (s *invitationService) Delete(ctx context.Context, id uint) error {
	if err := s.store.Invitations().Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvitationNotFound
		}
		return fmt.Errorf("failed to delete invitation: %w", err)
	}
	return nil
}

var _ InvitationService = (*invitationService)(nil)
