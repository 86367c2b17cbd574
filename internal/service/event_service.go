package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"gallery/adminhub/internal/model"
	"gallery/adminhub/internal/repository"
)

type EventInput struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description" validate:"max=10000"`
	Location    string     `json:"location" validate:"max=300"`
	ImageURL    string     `json:"image_url" validate:"max=1024"`
	StartsAt    time.Time  `json:"starts_at" validate:"required"`
	EndsAt      *time.Time `json:"ends_at"`
	IsVisible   *bool      `json:"is_visible"`
}

type EventService interface {
	Create(ctx context.Context, input EventInput) (*model.Event, error)
	Get(ctx context.Context, id uint) (*model.Event, error)
	List(ctx context.Context) ([]model.Event, error)
	Update(ctx context.Context, id uint, input EventInput) (*model.Event, error)
	Delete(ctx context.Context, id uint) error
	ListPublic(ctx context.Context) ([]model.Event, error)
}

type eventService struct {
	store repository.Store
}

func NewEventService(store repository.Store) EventService {
	return &eventService{store: store}
}

func normalizeEventInput(input *EventInput) error {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	input.Location = strings.TrimSpace(input.Location)
	input.ImageURL = strings.TrimSpace(input.ImageURL)
	if err := validateInput(*input); err != nil {
		return err
	}
	if input.EndsAt != nil && input.EndsAt.Before(input.StartsAt) {
		return fmt.Errorf("%w: ends_at must not be before starts_at", ErrInvalidInput)
	}
	return nil
}

func (s *eventService) Create(ctx context.Context, input EventInput) (*model.Event, error) {
	if err := normalizeEventInput(&input); err != nil {
		return nil, err
	}
	slug, err := uniqueSlug(ctx, s.store.Events(), input.Title, "event", 0)
	if err != nil {
		return nil, err
	}
	event := &model.Event{
		Title:       input.Title,
		Slug:        slug,
		Description: input.Description,
		Location:    input.Location,
		ImageURL:    input.ImageURL,
		StartsAt:    input.StartsAt,
		EndsAt:      input.EndsAt,
		IsVisible:   input.IsVisible == nil || *input.IsVisible,
	}
	if err := s.store.Events().Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return event, nil
}

func (s *eventService) Get(ctx context.Context, id uint) (*model.Event, error) {
	event, err := s.store.Events().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to find event: %w", err)
	}
	return event, nil
}

func (s *eventService) List(ctx context.Context) ([]model.Event, error) {
	return s.store.Events().List(ctx, false)
}

func (s *eventService) Update(ctx context.Context, id uint, input EventInput) (*model.Event, error) {
	if err := normalizeEventInput(&input); err != nil {
		return nil, err
	}
	event, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Title != event.Title {
		slug, err := uniqueSlug(ctx, s.store.Events(), input.Title, "event", event.ID)
		if err != nil {
			return nil, err
		}
		event.Slug = slug
	}
	event.Title = input.Title
	event.Description = input.Description
	event.Location = input.Location
	event.ImageURL = input.ImageURL
	event.StartsAt = input.StartsAt
	event.EndsAt = input.EndsAt
	if input.IsVisible != nil {
		event.IsVisible = *input.IsVisible
	}
	if err := s.store.Events().Update(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	return event, nil
}

func (s *eventService) Delete(ctx context.Context, id uint) error {
	if err := s.store.Events().Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}

func (s *eventService) ListPublic(ctx context.Context) ([]model.Event, error) {
	return s.store.Events().List(ctx, true)
}

var _ EventService = (*eventService)(nil)
