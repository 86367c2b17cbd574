package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"gallery/adminhub/internal/model"
	"gallery/adminhub/internal/repository"
	"gallery/adminhub/pkg/crypto"
	jwtpkg "gallery/adminhub/pkg/jwt"
)

const refreshTokenKeyPrefix = "refresh:"

// TokenSet represents a set of tokens returned after authentication.
type TokenSet struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*TokenSet, error)
	// RefreshToken rotates a refresh token: the presented one is revoked and a new pair issued.
	RefreshToken(ctx context.Context, refreshToken string) (*TokenSet, error)
	Logout(ctx context.Context, refreshToken string) error
	IssueTokens(ctx context.Context, account *model.Account) (*TokenSet, error)
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) error
}

type authService struct {
	store      repository.Store
	stateStore repository.StateStore
	identity   IdentityService
	jwtManager *jwtpkg.Manager
	logger     *zap.Logger
}

func NewAuthService(
	store repository.Store,
	stateStore repository.StateStore,
	identity IdentityService,
	jwtManager *jwtpkg.Manager,
	logger *zap.Logger,
) AuthService {
	return &authService{
		store:      store,
		stateStore: stateStore,
		identity:   identity,
		jwtManager: jwtManager,
		logger:     logger,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (*TokenSet, error) {
	account, err := s.store.Accounts().GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	if !account.Activated() || !crypto.CheckPassword(password, account.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return s.IssueTokens(ctx, account)
}

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*TokenSet, error) {
	claims, err := s.jwtManager.Validate(refreshToken)
	if err != nil || claims.TokenType != jwtpkg.TokenTypeRefresh {
		return nil, ErrRefreshTokenInvalid
	}

	// 1. Consume the JTI; a second use of the same token finds nothing
	stored, err := s.stateStore.Take(ctx, refreshTokenKeyPrefix+claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to read refresh token state: %w", err)
	}
	if stored == nil || string(stored) != claims.Subject {
		return nil, ErrRefreshTokenInvalid
	}

	// 2. Re-read the account so role changes take effect on refresh
	accountID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrRefreshTokenInvalid
	}
	account, err := s.store.Accounts().GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRefreshTokenInvalid
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	return s.IssueTokens(ctx, account)
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.jwtManager.Validate(refreshToken)
	if err != nil || claims.TokenType != jwtpkg.TokenTypeRefresh {
		return ErrRefreshTokenInvalid
	}
	return s.stateStore.Delete(ctx, refreshTokenKeyPrefix+claims.ID)
}

func (s *authService) IssueTokens(ctx context.Context, account *model.Account) (*TokenSet, error) {
	access, err := s.jwtManager.GenerateAccessToken(account.ID, account.Email, string(account.Metadata.Role()))
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	refresh, claims, err := s.jwtManager.GenerateRefreshToken(account.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}
	if err := s.stateStore.Set(ctx, refreshTokenKeyPrefix+claims.ID, []byte(account.ID.String()), s.jwtManager.RefreshTokenTTL()); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}
	return &TokenSet{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.jwtManager.AccessTokenTTL().Seconds()),
	}, nil
}

func (s *authService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	stored, err := s.stateStore.Take(ctx, passwordResetKeyPrefix+token)
	if err != nil {
		return fmt.Errorf("failed to read reset token: %w", err)
	}
	if stored == nil {
		return ErrResetTokenInvalid
	}
	accountID, err := uuid.ParseBytes(stored)
	if err != nil {
		return ErrResetTokenInvalid
	}
	if err := s.identity.SetPassword(ctx, accountID, newPassword); err != nil {
		return err
	}
	s.logger.Info("password reset completed", zap.String("account_id", accountID.String()))
	return nil
}

// ensure authService implements AuthService
var _ AuthService = (*authService)(nil)
