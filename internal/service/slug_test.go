package service

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Jane Doe":            "jane-doe",
		"  Jane  O'Hara  ":    "jane-o-hara",
		"Zoë & the Machines":  "zo-the-machines",
		"---":                 "",
		"Studio 54 / Archive": "studio-54-archive",
	}
	for in, want := range tests {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSplitLines(t *testing.T) {
	got := splitLines("First\r\n\n  Second  \n\t\nThird")
	want := []string{"First", "Second", "Third"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("splitLines() = %q, want %q", got, want)
	}
	if got := splitLines("  \n "); got != nil {
		t.Errorf("splitLines(blank) = %q, want nil", got)
	}
}

func TestEventService(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := NewEventService(env.store)
	start := time.Date(2026, 5, 1, 18, 0, 0, 0, time.UTC)

	hidden := false
	if _, err := svc.Create(ctx, EventInput{Title: "Private Preview", StartsAt: start, IsVisible: &hidden}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	opening, err := svc.Create(ctx, EventInput{Title: "Spring Opening", StartsAt: start.Add(24 * time.Hour)})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if opening.Slug != "spring-opening" || !opening.IsVisible {
		t.Errorf("Create() = %+v", opening)
	}

	end := start.Add(-time.Hour)
	if _, err := svc.Create(ctx, EventInput{Title: "Backwards", StartsAt: start, EndsAt: &end}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Create() with ends_at before starts_at error = %v, want ErrInvalidInput", err)
	}
	if _, err := svc.Create(ctx, EventInput{Title: "No Date"}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Create() without starts_at error = %v, want ErrInvalidInput", err)
	}

	public, err := svc.ListPublic(ctx)
	if err != nil || len(public) != 1 || public[0].ID != opening.ID {
		t.Errorf("ListPublic() = (%+v, %v), want only the visible event", public, err)
	}

	if err := svc.Delete(ctx, opening.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := svc.Get(ctx, opening.ID); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrEventNotFound", err)
	}
}
