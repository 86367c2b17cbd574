package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"gallery/adminhub/internal/config"
	"gallery/adminhub/internal/model"
	"gallery/adminhub/internal/repository"
	"gallery/adminhub/internal/testkit"
	jwtpkg "gallery/adminhub/pkg/jwt"
)

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (m *fakeMailer) last(t *testing.T) sentMail {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		t.Fatal("no email sent")
	}
	return m.sent[len(m.sent)-1]
}

var errMailDown = errors.New("smtp unavailable")

type testEnv struct {
	store       repository.Store
	state       repository.StateStore
	mailer      *fakeMailer
	jwt         *jwtpkg.Manager
	identity    IdentityService
	auth        AuthService
	invitations *invitationService
	artists     ArtistService
	artworks    ArtworkService
	now         time.Time
	logs        *observer.ObservedLogs
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)
	env := &testEnv{
		logs:   logs,
		store:  repository.NewPGStore(testkit.NewDB(t)),
		state:  repository.NewMemoryStateStore(),
		mailer: &fakeMailer{},
		jwt:    jwtpkg.NewManager("test-key", "gallery-test", 15*time.Minute, time.Hour),
		now:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	env.identity = NewIdentityService(env.store, env.state, env.mailer,
		config.PasswordResetConfig{TTL: time.Hour, ResetURL: "https://gallery.test/reset"}, "Test Gallery", logger)
	env.auth = NewAuthService(env.store, env.state, env.identity, env.jwt, logger)
	env.invitations = NewInvitationService(env.store, env.identity, env.auth, env.mailer, config.InviteConfig{
		TTL:             7 * 24 * time.Hour,
		CodePrefix:      "ART-",
		MaxCodeAttempts: 5,
		SetupURL:        "https://gallery.test/artist/setup",
	}, "Test Gallery", logger).(*invitationService)
	env.invitations.now = func() time.Time { return env.now }
	env.artists = NewArtistService(env.store, logger)
	env.artworks = NewArtworkService(env.store, env.identity, env.mailer, "Test Gallery", logger)
	return env
}

func (e *testEnv) createArtist(t *testing.T, name string, autoApprove bool) *model.Artist {
	t.Helper()
	artist, err := e.artists.Create(context.Background(), ArtistInput{Name: name, AutoApprove: autoApprove})
	if err != nil {
		t.Fatalf("create artist %q: %v", name, err)
	}
	return artist
}

func (e *testEnv) createAccount(t *testing.T, email string, role model.Role) *model.Account {
	t.Helper()
	account, err := e.identity.CreateAccount(context.Background(), CreateAccountInput{
		Email:       email,
		DisplayName: email,
		Role:        role,
		Password:    "password123",
	})
	if err != nil {
		t.Fatalf("create account %q: %v", email, err)
	}
	return account
}

func (e *testEnv) callerFor(t *testing.T, email string) *Caller {
	t.Helper()
	account, err := e.store.Accounts().GetByEmail(context.Background(), email)
	if err != nil {
		t.Fatalf("get account %q: %v", email, err)
	}
	c, err := e.identity.CurrentCaller(context.Background(), account.ID)
	if err != nil {
		t.Fatalf("CurrentCaller: %v", err)
	}
	return c
}
