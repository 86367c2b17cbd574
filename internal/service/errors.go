package service

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")

	ErrInvitationNotFound        = errors.New("invitation not found")
	ErrInvitationPending         = errors.New("a pending invitation already exists for this email")
	ErrInvitationUnredeemed      = errors.New("an unredeemed invitation already exists for this email")
	ErrInvitationUsed            = errors.New("invitation has already been used")
	ErrInvitationExpired         = errors.New("invitation has expired")
	ErrInvitationEmailMismatch   = errors.New("invitation was issued to a different email")
	ErrInvitationCodeUnavailable = errors.New("could not allocate a unique invitation code")
	ErrInvitationEmailFailed     = errors.New("invitation created but the email could not be sent")

	ErrAccountNotFound         = errors.New("account not found")
	ErrAccountAlreadyActivated = errors.New("account already has a password")
	ErrEmailTaken              = errors.New("email already registered")
	ErrInvalidRole             = errors.New("invalid role")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrRefreshTokenInvalid     = errors.New("refresh token invalid or revoked")
	ErrResetTokenInvalid       = errors.New("password reset token invalid or expired")
	ErrNoArtistProfile         = errors.New("no artist profile linked to this account")

	ErrArtistNotFound    = errors.New("artist not found")
	ErrArtistHasArtworks = errors.New("artist still has artworks")
	ErrArtworkNotFound   = errors.New("artwork not found")
	ErrInvalidReorder    = errors.New("artwork ids must be distinct and belong to the artist")
	ErrEventNotFound     = errors.New("event not found")

	ErrUnsupportedMedia = errors.New("only image uploads are accepted")
	ErrUploadTooLarge   = errors.New("upload exceeds the size limit")
)
