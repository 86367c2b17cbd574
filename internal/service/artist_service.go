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

type ArtistInput struct {
	Name         string   `json:"name" validate:"required,min=2,max=100"`
	Bio          string   `json:"bio" validate:"max=5000"`
	Specialty    string   `json:"specialty" validate:"max=200"`
	Exhibitions  []string `json:"exhibitions" validate:"max=100,dive,max=300"`
	ProfileImage string   `json:"profile_image" validate:"max=1024"`
	Featured     bool     `json:"featured"`
	AutoApprove  bool     `json:"auto_approve"`
	// IsVisible defaults to true on create and is left alone on update when nil.
	IsVisible *bool `json:"is_visible"`
}

// PublicArtist is an artist profile with its visible artworks in artist display order.
type PublicArtist struct {
	model.Artist
	Artworks []model.Artwork `json:"artworks"`
}

type ArtistService interface {
	Create(ctx context.Context, input ArtistInput) (*model.Artist, error)
	Get(ctx context.Context, id uint) (*model.Artist, error)
	List(ctx context.Context) ([]model.Artist, error)
	Update(ctx context.Context, id uint, input ArtistInput) (*model.Artist, error)
	SetFeatured(ctx context.Context, id uint, featured bool) (*model.Artist, error)
	SetVisibility(ctx context.Context, id uint, visible, hidden bool) (*model.Artist, error)
	// Delete refuses while the artist still has artworks.
	Delete(ctx context.Context, id uint) error

	ListPublic(ctx context.Context) ([]model.Artist, error)
	GetPublicBySlug(ctx context.Context, slug string) (*PublicArtist, error)
}

type artistService struct {
	store  repository.Store
	logger *zap.Logger
}

func NewArtistService(store repository.Store, logger *zap.Logger) ArtistService {
	return &artistService{store: store, logger: logger}
}

func normalizeArtistInput(input *ArtistInput) {
	input.Name = strings.TrimSpace(input.Name)
	input.Bio = strings.TrimSpace(input.Bio)
	input.Specialty = strings.TrimSpace(input.Specialty)
	input.ProfileImage = strings.TrimSpace(input.ProfileImage)
	var exhibitions []string
	for _, e := range input.Exhibitions {
		if e = strings.TrimSpace(e); e != "" {
			exhibitions = append(exhibitions, e)
		}
	}
	input.Exhibitions = exhibitions
}

func (s *artistService) Create(ctx context.Context, input ArtistInput) (*model.Artist, error) {
	normalizeArtistInput(&input)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	slug, err := uniqueSlug(ctx, s.store.Artists(), input.Name, "artist", 0)
	if err != nil {
		return nil, err
	}
	artist := &model.Artist{
		Name:         input.Name,
		Slug:         slug,
		Bio:          input.Bio,
		Specialty:    input.Specialty,
		Exhibitions:  model.StringSlice(input.Exhibitions),
		ProfileImage: input.ProfileImage,
		Featured:     input.Featured,
		AutoApprove:  input.AutoApprove,
		IsVisible:    input.IsVisible == nil || *input.IsVisible,
	}
	if err := s.store.Artists().Create(ctx, artist); err != nil {
		return nil, fmt.Errorf("failed to create artist: %w", err)
	}
	return artist, nil
}

func (s *artistService) Get(ctx context.Context, id uint) (*model.Artist, error) {
	artist, err := s.store.Artists().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArtistNotFound
		}
		return nil, fmt.Errorf("failed to find artist: %w", err)
	}
	return artist, nil
}

func (s *artistService) List(ctx context.Context) ([]model.Artist, error) {
	return s.store.Artists().List(ctx, repository.ArtistFilter{})
}

func (s *artistService) Update(ctx context.Context, id uint, input ArtistInput) (*model.Artist, error) {
	normalizeArtistInput(&input)
	if err := validateInput(input); err != nil {
		return nil, err
	}
	artist, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != artist.Name {
		slug, err := uniqueSlug(ctx, s.store.Artists(), input.Name, "artist", artist.ID)
		if err != nil {
			return nil, err
		}
		artist.Slug = slug
	}
	artist.Name = input.Name
	artist.Bio = input.Bio
	artist.Specialty = input.Specialty
	artist.Exhibitions = model.StringSlice(input.Exhibitions)
	artist.ProfileImage = input.ProfileImage
	artist.Featured = input.Featured
	artist.AutoApprove = input.AutoApprove
	if input.IsVisible != nil {
		artist.IsVisible = *input.IsVisible
	}

	if err := s.store.Artists().Update(ctx, artist); err != nil {
		return nil, fmt.Errorf("failed to update artist: %w", err)
	}
	return artist, nil
}

func (s *artistService) SetFeatured(ctx context.Context, id uint, featured bool) (*model.Artist, error) {
	artist, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	artist.Featured = featured
	if err := s.store.Artists().Update(ctx, artist); err != nil {
		return nil, fmt.Errorf("failed to update artist: %w", err)
	}
	return artist, nil
}

func (s *artistService) SetVisibility(ctx context.Context, id uint, visible, hidden bool) (*model.Artist, error) {
	artist, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	artist.IsVisible = visible
	artist.IsHidden = hidden
	if err := s.store.Artists().Update(ctx, artist); err != nil {
		return nil, fmt.Errorf("failed to update artist: %w", err)
	}
	return artist, nil
}

func (s *artistService) Delete(ctx context.Context, id uint) error {
	return s.store.Transaction(ctx, func(tx repository.Store) error {
		count, err := tx.Artworks().CountByArtist(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to count artworks: %w", err)
		}
		if count > 0 {
			return ErrArtistHasArtworks
		}
		if err := tx.Artists().Delete(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrArtistNotFound
			}
			return fmt.Errorf("failed to delete artist: %w", err)
		}
		return nil
	})
}

func (s *artistService) ListPublic(ctx context.Context) ([]model.Artist, error) {
	return s.store.Artists().List(ctx, repository.ArtistFilter{PublicOnly: true})
}

func (s *artistService) GetPublicBySlug(ctx context.Context, slug string) (*PublicArtist, error) {
	artist, err := s.store.Artists().GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArtistNotFound
		}
		return nil, fmt.Errorf("failed to find artist: %w", err)
	}
	if !artist.Public() {
		return nil, ErrArtistNotFound
	}

	artworks, err := s.store.Artworks().List(ctx, repository.ArtworkFilter{
		ArtistID:    &artist.ID,
		VisibleOnly: true,
		Order:       repository.ArtworkOrderArtist,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list artworks: %w", err)
	}
	return &PublicArtist{Artist: *artist, Artworks: artworks}, nil
}

var _ ArtistService = (*artistService)(nil)
