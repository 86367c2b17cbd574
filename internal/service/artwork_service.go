package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"gallery/adminhub/internal/model"
	"gallery/adminhub/internal/repository"
)

type ArtworkInput struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=5000"`
	Medium      string `json:"medium" validate:"max=200"`
	Year        string `json:"year" validate:"max=16"`
	ImageURL    string `json:"image_url" validate:"max=1024"`
	// IsVisible is honoured on admin writes only; artist submissions follow the review status.
	IsVisible *bool `json:"is_visible"`
}

type ArtworkListFilter struct {
	ArtistID *uint
	Status   model.ArtworkStatus
}

type ArtworkService interface {
	List(ctx context.Context, filter ArtworkListFilter) ([]model.Artwork, error)
	Get(ctx context.Context, id uint) (*model.Artwork, error)
	Create(ctx context.Context, artistID uint, input ArtworkInput) (*model.Artwork, error)
	Update(ctx context.Context, id uint, input ArtworkInput) (*model.Artwork, error)
	Delete(ctx context.Context, id uint) error
	Approve(ctx context.Context, id uint) (*model.Artwork, error)
	Reject(ctx context.Context, id uint, note string) (*model.Artwork, error)

	ListOwn(ctx context.Context, artistID uint) ([]model.Artwork, error)
	// Submit adds an artwork for review, or publishes it directly for auto-approved artists.
	Submit(ctx context.Context, artistID uint, input ArtworkInput) (*model.Artwork, error)
	UpdateOwn(ctx context.Context, artistID, id uint, input ArtworkInput) (*model.Artwork, error)
	DeleteOwn(ctx context.Context, artistID, id uint) error

	ListPublic(ctx context.Context) ([]model.Artwork, error)
}

type artworkService struct {
	store       repository.Store
	identity    IdentityService
	mailer      MailSender
	galleryName string
	logger      *zap.Logger
}

func NewArtworkService(
	store repository.Store,
	identity IdentityService,
	mailer MailSender,
	galleryName string,
	logger *zap.Logger,
) ArtworkService {
	return &artworkService{
		store:       store,
		identity:    identity,
		mailer:      mailer,
		galleryName: galleryName,
		logger:      logger,
	}
}

func normalizeArtworkInput(input *ArtworkInput) error {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	input.Medium = strings.TrimSpace(input.Medium)
	input.Year = strings.TrimSpace(input.Year)
	input.ImageURL = strings.TrimSpace(input.ImageURL)
	return validateInput(*input)
}

func applyArtworkInput(artwork *model.Artwork, input ArtworkInput) {
	artwork.Title = input.Title
	artwork.Description = input.Description
	artwork.Medium = input.Medium
	artwork.Year = input.Year
	artwork.ImageURL = input.ImageURL
}

func (s *artworkService) List(ctx context.Context, filter ArtworkListFilter) ([]model.Artwork, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: status must be one of: pending approved rejected", ErrInvalidInput)
	}
	return s.store.Artworks().List(ctx, repository.ArtworkFilter{
		ArtistID: filter.ArtistID,
		Status:   filter.Status,
	})
}

func (s *artworkService) Get(ctx context.Context, id uint) (*model.Artwork, error) {
	artwork, err := s.store.Artworks().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArtworkNotFound
		}
		return nil, fmt.Errorf("failed to find artwork: %w", err)
	}
	return artwork, nil
}

func (s *artworkService) getArtist(ctx context.Context, artistID uint) (*model.Artist, error) {
	artist, err := s.store.Artists().GetByID(ctx, artistID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArtistNotFound
		}
		return nil, fmt.Errorf("failed to find artist: %w", err)
	}
	return artist, nil
}

func (s *artworkService) Create(ctx context.Context, artistID uint, input ArtworkInput) (*model.Artwork, error) {
	if err := normalizeArtworkInput(&input); err != nil {
		return nil, err
	}
	if _, err := s.getArtist(ctx, artistID); err != nil {
		return nil, err
	}

	artwork := &model.Artwork{
		ArtistID:  artistID,
		Status:    model.ArtworkApproved,
		IsVisible: input.IsVisible == nil || *input.IsVisible,
	}
	applyArtworkInput(artwork, input)
	if err := s.store.Artworks().Create(ctx, artwork); err != nil {
		return nil, fmt.Errorf("failed to create artwork: %w", err)
	}
	return artwork, nil
}

func (s *artworkService) Update(ctx context.Context, id uint, input ArtworkInput) (*model.Artwork, error) {
	if err := normalizeArtworkInput(&input); err != nil {
		return nil, err
	}
	artwork, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	applyArtworkInput(artwork, input)
	if input.IsVisible != nil {
		artwork.IsVisible = *input.IsVisible
	}
	if err := s.store.Artworks().Update(ctx, artwork); err != nil {
		return nil, fmt.Errorf("failed to update artwork: %w", err)
	}
	return artwork, nil
}

func (s *artworkService) Delete(ctx context.Context, id uint) error {
	if err := s.store.Artworks().Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrArtworkNotFound
		}
		return fmt.Errorf("failed to delete artwork: %w", err)
	}
	return nil
}

func (s *artworkService) Approve(ctx context.Context, id uint) (*model.Artwork, error) {
	return s.review(ctx, id, true, "")
}

func (s *artworkService) Reject(ctx context.Context, id uint, note string) (*model.Artwork, error) {
	return s.review(ctx, id, false, strings.TrimSpace(note))
}

func (s *artworkService) review(ctx context.Context, id uint, approved bool, note string) (*model.Artwork, error) {
	artwork, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if approved {
		artwork.Status = model.ArtworkApproved
		artwork.IsVisible = true
		artwork.ReviewNote = ""
	} else {
		artwork.Status = model.ArtworkRejected
		artwork.IsVisible = false
		artwork.ReviewNote = note
	}
	if err := s.store.Artworks().Update(ctx, artwork); err != nil {
		return nil, fmt.Errorf("failed to update artwork: %w", err)
	}

	s.notifyReview(ctx, artwork, approved, note)
	return artwork, nil
}

// notifyReview emails the artist's linked account, if any. Failures are only logged.
func (s *artworkService) notifyReview(ctx context.Context, artwork *model.Artwork, approved bool, note string) {
	account, err := s.identity.FindAccountByArtistID(ctx, artwork.ArtistID)
	if err != nil {
		if !errors.Is(err, ErrAccountNotFound) {
			s.logger.Warn("failed to look up artist account", zap.Uint("artist_id", artwork.ArtistID), zap.Error(err))
		}
		return
	}
	name := account.DisplayName
	if name == "" {
		name = account.Email
	}
	subject, body, err := artworkReviewEmail(s.galleryName, name, artwork.Title, approved, note)
	if err == nil {
		err = s.mailer.Send(ctx, account.Email, subject, body)
	}
	if err != nil {
		s.logger.Warn("failed to send review email",
			zap.Uint("artwork_id", artwork.ID),
			zap.String("email", account.Email),
			zap.Error(err),
		)
	}
}

func (s *artworkService) ListOwn(ctx context.Context, artistID uint) ([]model.Artwork, error) {
	return s.store.Artworks().List(ctx, repository.ArtworkFilter{
		ArtistID: &artistID,
		Order:    repository.ArtworkOrderArtist,
	})
}

func (s *artworkService) Submit(ctx context.Context, artistID uint, input ArtworkInput) (*model.Artwork, error) {
	if err := normalizeArtworkInput(&input); err != nil {
		return nil, err
	}
	artist, err := s.getArtist(ctx, artistID)
	if err != nil {
		return nil, err
	}

	artwork := &model.Artwork{ArtistID: artistID}
	applyArtworkInput(artwork, input)
	setSubmissionStatus(artwork, artist)
	if err := s.store.Artworks().Create(ctx, artwork); err != nil {
		return nil, fmt.Errorf("failed to create artwork: %w", err)
	}
	return artwork, nil
}

func setSubmissionStatus(artwork *model.Artwork, artist *model.Artist) {
	if artist.AutoApprove {
		artwork.Status = model.ArtworkApproved
		artwork.IsVisible = true
	} else {
		artwork.Status = model.ArtworkPending
		artwork.IsVisible = false
	}
	artwork.ReviewNote = ""
}

func (s *artworkService) getOwn(ctx context.Context, artistID, id uint) (*model.Artwork, error) {
	artwork, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	// someone else's artwork looks the same as a missing one
	if artwork.ArtistID != artistID {
		return nil, ErrArtworkNotFound
	}
	return artwork, nil
}

func (s *artworkService) UpdateOwn(ctx context.Context, artistID, id uint, input ArtworkInput) (*model.Artwork, error) {
	if err := normalizeArtworkInput(&input); err != nil {
		return nil, err
	}
	artwork, err := s.getOwn(ctx, artistID, id)
	if err != nil {
		return nil, err
	}
	artist, err := s.getArtist(ctx, artistID)
	if err != nil {
		return nil, err
	}

	applyArtworkInput(artwork, input)
	setSubmissionStatus(artwork, artist)
	if err := s.store.Artworks().Update(ctx, artwork); err != nil {
		return nil, fmt.Errorf("failed to update artwork: %w", err)
	}
	return artwork, nil
}

func (s *artworkService) DeleteOwn(ctx context.Context, artistID, id uint) error {
	if _, err := s.getOwn(ctx, artistID, id); err != nil {
		return err
	}
	return s.Delete(ctx, id)
}

func (s *artworkService) ListPublic(ctx context.Context) ([]model.Artwork, error) {
	artworks, err := s.store.Artworks().List(ctx, repository.ArtworkFilter{
		VisibleOnly: true,
		Order:       repository.ArtworkOrderGlobal,
	})
	if err != nil {
		return nil, err
	}

	// drop artworks of artists that are not on public display
	artists, err := s.store.Artists().List(ctx, repository.ArtistFilter{PublicOnly: true})
	if err != nil {
		return nil, err
	}
	public := make(map[uint]bool, len(artists))
	for _, a := range artists {
		public[a.ID] = true
	}
	out := artworks[:0]
	for _, a := range artworks {
		if public[a.ArtistID] {
			out = append(out, a)
		}
	}
	return out, nil
}

var _ ArtworkService = (*artworkService)(nil)
