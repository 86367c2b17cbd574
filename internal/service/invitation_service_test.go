package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"gallery/adminhub/internal/model"
	"gallery/adminhub/internal/repository"
)

func (e *testEnv) issue(t *testing.T, name, email string, preApproved bool) *model.ArtistInvitation {
	t.Helper()
	inv, err := e.invitations.Issue(context.Background(), IssueInvitationInput{
		Name:        name,
		Email:       email,
		PreApproved: preApproved,
		InvitedBy:   "Curator",
	})
	if err != nil {
		t.Fatalf("Issue(%q) error = %v", email, err)
	}
	return inv
}

func TestIssueInvitation(t *testing.T) {
	env := newTestEnv(t)

	inv := env.issue(t, "  Jane Doe ", " Jane@Example.COM ", true)

	if inv.Email != "jane@example.com" || inv.Name != "Jane Doe" {
		t.Errorf("stored name/email = %q/%q, want trimmed and lowercased", inv.Name, inv.Email)
	}
	if !strings.HasPrefix(inv.Code, "ART-") || len(inv.Code) != len("ART-")+invitationCodeLength {
		t.Errorf("Code = %q, want ART- plus %d characters", inv.Code, invitationCodeLength)
	}
	if inv.ExpiresAt == nil || !inv.ExpiresAt.Equal(env.now.Add(7*24*time.Hour)) {
		t.Errorf("ExpiresAt = %v, want now + 7 days", inv.ExpiresAt)
	}
	if !inv.PreApproved || inv.InvitedBy != "Curator" {
		t.Errorf("PreApproved/InvitedBy = %v/%q", inv.PreApproved, inv.InvitedBy)
	}
	if inv.AccountID == nil {
		t.Fatal("AccountID = nil, want the provisioned account")
	}
	account := env.mustAccount(t, "jane@example.com")
	if account.ID != *inv.AccountID || account.Activated() {
		t.Errorf("provisioned account = %+v, want passwordless account %s", account, inv.AccountID)
	}

	mail := env.mailer.last(t)
	if mail.To != "jane@example.com" || !strings.Contains(mail.Body, inv.Code) {
		t.Errorf("email = %+v, want it sent to the invitee with the code", mail)
	}
	if !strings.Contains(mail.Body, "https://gallery.test/artist/setup?code="+inv.Code) {
		t.Errorf("email body missing setup link: %s", mail.Body)
	}
}

func TestIssueInvitationValidation(t *testing.T) {
	env := newTestEnv(t)
	tests := []struct {
		name  string
		input IssueInvitationInput
		field string
	}{
		{"short name", IssueInvitationInput{Name: "J", Email: "j@example.com"}, "name"},
		{"long name", IssueInvitationInput{Name: strings.Repeat("x", 101), Email: "j@example.com"}, "name"},
		{"bad email", IssueInvitationInput{Name: "Jane", Email: "not-an-email"}, "email"},
		{"missing email", IssueInvitationInput{Name: "Jane"}, "email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.invitations.Issue(context.Background(), tt.input)
			if !errors.Is(err, ErrInvalidInput) || !strings.Contains(err.Error(), tt.field) {
				t.Errorf("Issue() error = %v, want ErrInvalidInput naming %s", err, tt.field)
			}
		})
	}
}

func TestIssueInvitationConflicts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	first := env.issue(t, "Jane Doe", "jane@example.com", false)

	_, err := env.invitations.Issue(ctx, IssueInvitationInput{Name: "Jane Doe", Email: "JANE@example.com"})
	if !errors.Is(err, ErrInvitationPending) || !strings.Contains(err.Error(), "jane@example.com") {
		t.Fatalf("Issue() with pending invitation error = %v, want ErrInvitationPending naming the email", err)
	}

	env.now = env.now.Add(8 * 24 * time.Hour)
	_, err = env.invitations.Issue(ctx, IssueInvitationInput{Name: "Jane Doe", Email: "jane@example.com"})
	if !errors.Is(err, ErrInvitationUnredeemed) {
		t.Fatalf("Issue() with expired invitation error = %v, want ErrInvitationUnredeemed", err)
	}

	if _, err := env.store.Invitations().MarkUsed(ctx, first.ID, env.now); err != nil {
		t.Fatalf("MarkUsed: %v", err)
	}
	if _, err := env.invitations.Issue(ctx, IssueInvitationInput{Name: "Jane Doe", Email: "jane@example.com"}); err != nil {
		t.Fatalf("Issue() after redemption error = %v, want success", err)
	}
}

func TestIssueInvitationCodeExhausted(t *testing.T) {
	env := newTestEnv(t)
	taken := env.issue(t, "First Artist", "first@example.com", false)

	attempts := 0
	env.invitations.generateCode = func(string) (string, error) {
		attempts++
		return taken.Code, nil
	}

	_, err := env.invitations.Issue(context.Background(), IssueInvitationInput{Name: "Second Artist", Email: "second@example.com"})
	if !errors.Is(err, ErrInvitationCodeUnavailable) {
		t.Fatalf("Issue() error = %v, want ErrInvitationCodeUnavailable", err)
	}
	if attempts != 5 {
		t.Errorf("code attempts = %d, want 5", attempts)
	}
}

func TestIssueInvitationEmailFailure(t *testing.T) {
	env := newTestEnv(t)
	env.mailer.err = errMailDown

	inv, err := env.invitations.Issue(context.Background(), IssueInvitationInput{Name: "Jane Doe", Email: "jane@example.com"})
	if !errors.Is(err, ErrInvitationEmailFailed) {
		t.Fatalf("Issue() error = %v, want ErrInvitationEmailFailed", err)
	}
	if inv == nil || inv.ID == 0 {
		t.Fatal("Issue() should still return the persisted invitation")
	}
	if _, err := env.store.Invitations().GetByCode(context.Background(), inv.Code); err != nil {
		t.Errorf("invitation not persisted: %v", err)
	}
}

func TestValidateInvitation(t *testing.T) {
	env := newTestEnv(t)
	inv := env.issue(t, "Jane Doe", "jane@example.com", false)

	view, err := env.invitations.Validate(context.Background(), inv.Code)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if view.Status != model.InvitationPending || view.Name != "Jane Doe" || view.Email != "jane@example.com" {
		t.Errorf("Validate() = %+v", view)
	}

	env.now = env.now.Add(8 * 24 * time.Hour)
	view, _ = env.invitations.Validate(context.Background(), inv.Code)
	if view.Status != model.InvitationExpired {
		t.Errorf("Status after expiry = %q, want expired", view.Status)
	}

	if _, err := env.invitations.Validate(context.Background(), "ART-NOPE0000"); !errors.Is(err, ErrInvitationNotFound) {
		t.Errorf("Validate(unknown) error = %v, want ErrInvitationNotFound", err)
	}
}

func TestActivateInvitation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	inv := env.issue(t, "Jane Doe", "jane@example.com", false)

	tokens, err := env.invitations.Activate(ctx, inv.Code, "sup3r-secret")
	if err != nil {
		t.Fatalf("Activate() error = %v", err)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Fatalf("Activate() tokens = %+v", tokens)
	}
	if _, err := env.auth.Login(ctx, "jane@example.com", "sup3r-secret"); err != nil {
		t.Errorf("Login() after activation error = %v", err)
	}

	if _, err := env.invitations.Activate(ctx, inv.Code, "another-secret"); !errors.Is(err, ErrAccountAlreadyActivated) {
		t.Errorf("second Activate() error = %v, want ErrAccountAlreadyActivated", err)
	}
	if _, err := env.invitations.Activate(ctx, inv.Code, "short"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Activate() with short password error = %v, want ErrInvalidInput", err)
	}
}

func artistCount(t *testing.T, env *testEnv) int {
	t.Helper()
	artists, err := env.artists.List(context.Background())
	if err != nil {
		t.Fatalf("list artists: %v", err)
	}
	return len(artists)
}

func TestRedeemInvitation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	inv := env.issue(t, "Jane Doe", "a@x.com", true)
	caller := env.callerFor(t, "a@x.com")

	result, err := env.invitations.Redeem(ctx, caller, RedeemInvitationInput{
		Code:        inv.Code,
		Bio:         "Painter.",
		Specialty:   "Oil",
		Exhibitions: "Spring Salon 2024\n\n   \n  Winter Show  \n",
	})
	if err != nil {
		t.Fatalf("Redeem() error = %v", err)
	}
	if result.AccountID != caller.AccountID || result.Slug != "jane-doe" {
		t.Errorf("Redeem() = %+v", result)
	}

	artist, err := env.artists.Get(ctx, result.ArtistID)
	if err != nil {
		t.Fatalf("get artist: %v", err)
	}
	if !artist.IsVisible || artist.IsHidden || artist.Featured || !artist.AutoApprove {
		t.Errorf("artist flags = %+v", artist)
	}
	if len(artist.Exhibitions) != 2 || artist.Exhibitions[0] != "Spring Salon 2024" || artist.Exhibitions[1] != "Winter Show" {
		t.Errorf("Exhibitions = %q", artist.Exhibitions)
	}

	stored, _ := env.store.Invitations().GetByCode(ctx, inv.Code)
	if stored.UsedAt == nil {
		t.Error("invitation used_at still null after redemption")
	}

	linked, err := env.identity.ResolveArtistID(ctx, caller.AccountID)
	if err != nil || linked != artist.ID {
		t.Errorf("ResolveArtistID() = (%d, %v), want %d", linked, err, artist.ID)
	}
	if env.callerFor(t, "a@x.com").Role != model.RoleArtist {
		t.Error("account role not set to artist")
	}

	_, err = env.invitations.Redeem(ctx, caller, RedeemInvitationInput{Code: inv.Code})
	if !errors.Is(err, ErrInvitationUsed) {
		t.Errorf("second Redeem() error = %v, want ErrInvitationUsed", err)
	}
	if n := artistCount(t, env); n != 1 {
		t.Errorf("artist rows = %d, want exactly 1", n)
	}
}

func TestRedeemInvitationSlugSuffix(t *testing.T) {
	env := newTestEnv(t)
	env.createArtist(t, "Jane Doe", false)
	env.createArtist(t, "Jane  Doe!", false)
	inv := env.issue(t, "Jane Doe", "jane@example.com", false)

	result, err := env.invitations.Redeem(context.Background(), env.callerFor(t, "jane@example.com"), RedeemInvitationInput{Code: inv.Code})
	if err != nil {
		t.Fatalf("Redeem() error = %v", err)
	}
	if result.Slug != "jane-doe-3" {
		t.Errorf("Slug = %q, want jane-doe-3", result.Slug)
	}
}

func TestRedeemInvitationRejections(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	inv := env.issue(t, "Jane Doe", "jane@example.com", false)
	caller := env.callerFor(t, "jane@example.com")

	t.Run("unknown code", func(t *testing.T) {
		_, err := env.invitations.Redeem(ctx, caller, RedeemInvitationInput{Code: "ART-UNKNOWN1"})
		if !errors.Is(err, ErrInvitationNotFound) {
			t.Errorf("Redeem() error = %v, want ErrInvitationNotFound", err)
		}
	})

	t.Run("email case differs", func(t *testing.T) {
		shouty := &Caller{AccountID: caller.AccountID, Email: "Jane@Example.com"}
		_, err := env.invitations.Redeem(ctx, shouty, RedeemInvitationInput{Code: inv.Code})
		if !errors.Is(err, ErrInvitationEmailMismatch) {
			t.Errorf("Redeem() error = %v, want ErrInvitationEmailMismatch", err)
		}
	})

	t.Run("other account", func(t *testing.T) {
		other := &Caller{AccountID: uuid.New(), Email: "someone@example.com"}
		_, err := env.invitations.Redeem(ctx, other, RedeemInvitationInput{Code: inv.Code})
		if !errors.Is(err, ErrInvitationEmailMismatch) {
			t.Errorf("Redeem() error = %v, want ErrInvitationEmailMismatch", err)
		}
	})

	t.Run("expired", func(t *testing.T) {
		saved := env.now
		env.now = inv.ExpiresAt.Add(time.Second)
		defer func() { env.now = saved }()

		_, err := env.invitations.Redeem(ctx, caller, RedeemInvitationInput{Code: inv.Code})
		if !errors.Is(err, ErrInvitationExpired) {
			t.Errorf("Redeem() error = %v, want ErrInvitationExpired", err)
		}
	})

	if n := artistCount(t, env); n != 0 {
		t.Errorf("artist rows = %d after rejected redemptions, want 0", n)
	}
}

type staleInvitations struct {
	repository.InvitationRepository
}

func (staleInvitations) MarkUsed(context.Context, uint, time.Time) (bool, error) {
	return false, nil
}

// staleStore behaves as if another request redeemed the code between the read and the update.
type staleStore struct {
	repository.Store
}

func (s staleStore) Invitations() repository.InvitationRepository {
	return staleInvitations{InvitationRepository: s.Store.Invitations()}
}

func (s staleStore) Transaction(ctx context.Context, fn func(tx repository.Store) error) error {
	return s.Store.Transaction(ctx, func(tx repository.Store) error {
		return fn(staleStore{Store: tx})
	})
}

func TestRedeemInvitationLostRaceRollsBack(t *testing.T) {
	env := newTestEnv(t)
	inv := env.issue(t, "Jane Doe", "jane@example.com", false)

	svc := *env.invitations
	svc.store = staleStore{Store: env.store}

	_, err := svc.Redeem(context.Background(), env.callerFor(t, "jane@example.com"), RedeemInvitationInput{Code: inv.Code})
	if !errors.Is(err, ErrInvitationUsed) {
		t.Fatalf("Redeem() error = %v, want ErrInvitationUsed", err)
	}
	if n := artistCount(t, env); n != 0 {
		t.Errorf("artist rows = %d, want the insert rolled back", n)
	}
}

func TestInvitationStats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	for i, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		env.now = env.now.Add(time.Minute)
		inv := env.issue(t, "Artist "+string(rune('A'+i)), email, false)
		if i == 0 {
			if _, err := env.invitations.Redeem(ctx, env.callerFor(t, email), RedeemInvitationInput{Code: inv.Code}); err != nil {
				t.Fatalf("Redeem() error = %v", err)
			}
		}
	}

	stats, err := env.invitations.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Total != 3 || stats.Pending != 2 || stats.Redeemed != 1 {
		t.Errorf("Stats() = total %d pending %d redeemed %d, want 3/2/1", stats.Total, stats.Pending, stats.Redeemed)
	}
	if len(stats.Recent) != 3 || stats.Recent[0].Email != "c@example.com" {
		t.Errorf("Recent = %+v, want newest first", stats.Recent)
	}

	if err := env.invitations.Delete(ctx, stats.Recent[0].ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := env.invitations.Delete(ctx, stats.Recent[0].ID); !errors.Is(err, ErrInvitationNotFound) {
		t.Errorf("second Delete() error = %v, want ErrInvitationNotFound", err)
	}
}

func TestInvitationStatsRecentIsCapped(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	const issued = 12
	for i := 0; i < issued; i++ {
		env.now = env.now.Add(time.Minute)
		env.issue(t, fmt.Sprintf("Artist %02d", i), fmt.Sprintf("artist%02d@example.com", i), false)
	}

	stats, err := env.invitations.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Total != issued || stats.Pending != issued || stats.Redeemed != 0 {
		t.Errorf("Stats() = total %d pending %d redeemed %d, want %d/%d/0",
			stats.Total, stats.Pending, stats.Redeemed, issued, issued)
	}
	if len(stats.Recent) != recentInvitations {
		t.Fatalf("len(Recent) = %d, want %d", len(stats.Recent), recentInvitations)
	}
	// newest first: artist11 down to artist02
	for i, inv := range stats.Recent {
		want := fmt.Sprintf("artist%02d@example.com", issued-1-i)
		if inv.Email != want {
			t.Errorf("Recent[%d].Email = %q, want %q", i, inv.Email, want)
		}
		if i > 0 && inv.CreatedAt.After(stats.Recent[i-1].CreatedAt) {
			t.Errorf("Recent[%d] is newer than Recent[%d]", i, i-1)
		}
	}
}
