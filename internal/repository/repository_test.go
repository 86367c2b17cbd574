package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"gallery/adminhub/internal/model"
	"gallery/adminhub/internal/testkit"
)

var errBoom = errors.New("boom")

func newArtist(t *testing.T, store Store, slug string) *model.Artist {
	t.Helper()
	artist := &model.Artist{Name: slug, Slug: slug, IsVisible: true}
	if err := store.Artists().Create(context.Background(), artist); err != nil {
		t.Fatalf("create artist: %v", err)
	}
	return artist
}

func TestStoreTransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	store := NewPGStore(testkit.NewDB(t))

	err := store.Transaction(ctx, func(tx Store) error {
		if err := tx.Artists().Create(ctx, &model.Artist{Name: "A", Slug: "a", IsVisible: true}); err != nil {
			return err
		}
		return errBoom
	})
	if !errors.Is(err, errBoom) {
		t.Fatalf("Transaction() error = %v, want errBoom", err)
	}

	if _, err := store.Artists().GetBySlug(ctx, "a"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("GetBySlug() error = %v, want ErrRecordNotFound after rollback", err)
	}
}

func TestListForOrderingOldestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewPGStore(testkit.NewDB(t))
	artist := newArtist(t, store, "a")

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, offset := range []time.Duration{2 * time.Hour, 0, time.Hour, time.Hour} {
		aw := &model.Artwork{
			ArtistID:  artist.ID,
			Title:     string(rune('a' + i)),
			Status:    model.ArtworkApproved,
			IsVisible: true,
			CreatedAt: base.Add(offset),
		}
		if err := store.Artworks().Create(ctx, aw); err != nil {
			t.Fatalf("create artwork: %v", err)
		}
	}

	artworks, err := store.Artworks().ListForOrdering(ctx)
	if err != nil {
		t.Fatalf("ListForOrdering() error = %v", err)
	}
	var titles string
	for _, aw := range artworks {
		titles += aw.Title
	}
	// Equal timestamps fall back to id order.
	if titles != "bcda" {
		t.Errorf("ListForOrdering() order = %q, want %q", titles, "bcda")
	}
}

func TestUpdateDisplayOrderMissingRow(t *testing.T) {
	store := NewPGStore(testkit.NewDB(t))
	err := store.Artworks().UpdateDisplayOrder(context.Background(), 999, 1, 1)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("UpdateDisplayOrder() error = %v, want ErrRecordNotFound", err)
	}
}

func TestInvitationMarkUsedOnce(t *testing.T) {
	ctx := context.Background()
	store := NewPGStore(testkit.NewDB(t))

	inv := &model.ArtistInvitation{Name: "Ann", Email: "ann@example.com", Code: "ART-AAAA1111", CreatedAt: time.Now()}
	if err := store.Invitations().Create(ctx, inv); err != nil {
		t.Fatalf("create invitation: %v", err)
	}

	changed, err := store.Invitations().MarkUsed(ctx, inv.ID, time.Now())
	if err != nil || !changed {
		t.Fatalf("first MarkUsed() = (%v, %v), want (true, nil)", changed, err)
	}
	changed, err = store.Invitations().MarkUsed(ctx, inv.ID, time.Now())
	if err != nil || changed {
		t.Fatalf("second MarkUsed() = (%v, %v), want (false, nil)", changed, err)
	}

	counts, err := store.Invitations().Counts(ctx)
	if err != nil {
		t.Fatalf("Counts() error = %v", err)
	}
	if counts.Total != 1 || counts.Redeemed != 1 {
		t.Errorf("Counts() = %+v, want total 1 redeemed 1", counts)
	}

	unredeemed, err := store.Invitations().ListUnredeemedByEmail(ctx, "ann@example.com")
	if err != nil {
		t.Fatalf("ListUnredeemedByEmail() error = %v", err)
	}
	if len(unredeemed) != 0 {
		t.Errorf("ListUnredeemedByEmail() = %d rows, want 0", len(unredeemed))
	}
}

func TestAccountEmailLookupIgnoresCase(t *testing.T) {
	ctx := context.Background()
	store := NewPGStore(testkit.NewDB(t))

	account := &model.Account{Email: "Mixed@Example.com", DisplayName: "Mixed"}
	if err := store.Accounts().Create(ctx, account); err != nil {
		t.Fatalf("create account: %v", err)
	}

	got, err := store.Accounts().GetByEmail(ctx, "mixed@example.COM")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if got.ID != account.ID {
		t.Errorf("GetByEmail() id = %s, want %s", got.ID, account.ID)
	}

	dup := &model.Account{Email: "mixed@example.com"}
	if err := store.Accounts().Create(ctx, dup); err == nil {
		t.Error("Create() duplicate email (different case) error = nil, want unique violation")
	}
}

func TestAccountMetadataRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewPGStore(testkit.NewDB(t))

	account := &model.Account{Email: "a@example.com"}
	if err := store.Accounts().Create(ctx, account); err != nil {
		t.Fatalf("create account: %v", err)
	}
	meta := model.AccountMetadata{model.MetadataKeyRole: string(model.RoleArtist), model.MetadataKeyArtistID: 12}
	if err := store.Accounts().UpdateMetadata(ctx, account.ID, meta); err != nil {
		t.Fatalf("UpdateMetadata() error = %v", err)
	}

	got, err := store.Accounts().GetByID(ctx, account.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if id, ok := got.Metadata.ArtistID(); !ok || id != 12 {
		t.Errorf("ArtistID() = (%d, %v), want (12, true)", id, ok)
	}
	if got.Metadata.Role() != model.RoleArtist {
		t.Errorf("Role() = %q, want artist", got.Metadata.Role())
	}
}

func TestMemoryStateStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	store := &memoryStateStore{entries: map[string]memEntry{}, now: func() time.Time { return now }}

	if err := store.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if ok, _ := store.Exists(ctx, "k"); !ok {
		t.Fatal("Exists() = false, want true")
	}

	got, _ := store.Take(ctx, "k")
	if string(got) != "v" {
		t.Fatalf("Take() = %q, want v", got)
	}
	if got, _ := store.Take(ctx, "k"); got != nil {
		t.Fatalf("second Take() = %q, want nil", got)
	}

	_ = store.Set(ctx, "ttl", []byte("x"), time.Minute)
	now = now.Add(2 * time.Minute)
	if got, _ := store.Get(ctx, "ttl"); got != nil {
		t.Fatalf("Get() after expiry = %q, want nil", got)
	}
}
