// Package services holds the client's stores: in-memory state plus an
// observable change feed, synchronized with the remote API through the
// api.Client and with the local cache through storage.Repository. Stores are
// constructed once per process by the composition root (cli.NewApp) and
// shared; tests build fresh instances with fakes.
package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vehicleq/vehicleq-go/internal/client/api"
	"github.com/vehicleq/vehicleq-go/internal/client/models"
	"github.com/vehicleq/vehicleq-go/internal/client/storage"
	"github.com/vehicleq/vehicleq-go/internal/logging"
	"github.com/vehicleq/vehicleq-go/internal/observe"
)

// SessionStore is the single source of truth for "who is logged in".
// The current user is mirrored 1:1 into local storage under a fixed key so
// a restart re-hydrates the same session; nil means no session.
type SessionStore struct {
	client api.Client
	repo   storage.Repository
	log    logging.Logger

	user    *observe.Value[*models.User]
	loading *observe.Value[bool]
	lastErr *observe.Value[string]
}

// NewSessionStore builds the store and hydrates the current user from local
// storage. A corrupt or unreadable cache entry is logged and treated as
// absent rather than failing startup.
func NewSessionStore(ctx context.Context, client api.Client, repo storage.Repository, log logging.Logger) *SessionStore {
	s := &SessionStore{
		client:  client,
		repo:    repo,
		log:     log.With("component", "session"),
		user:    observe.NewValue[*models.User](nil),
		loading: observe.NewValue(false),
		lastErr: observe.NewValue(""),
	}

	raw, err := repo.Get(ctx, storage.KeyCurrentUser)
	if err != nil {
		s.log.Warn(ctx, "reading cached session failed", "error", err)
		return s
	}
	if len(raw) == 0 {
		return s
	}
	var u models.User
	if err := json.Unmarshal(raw, &u); err != nil {
		s.log.Warn(ctx, "cached session is corrupt, discarding", "error", err)
		return s
	}
	s.user.Set(&u)
	return s
}

// User exposes the current user as an observable; nil means logged out.
func (s *SessionStore) User() *observe.Value[*models.User] { return s.user }

// Loading exposes the in-flight flag for login/register.
func (s *SessionStore) Loading() *observe.Value[bool] { return s.loading }

// LastError exposes the last failure message; empty when the most recent
// operation settled cleanly.
func (s *SessionStore) LastError() *observe.Value[string] { return s.lastErr }

// CurrentUser returns the latest published user, or nil.
func (s *SessionStore) CurrentUser() *models.User { return s.user.Get() }

// IsLoggedIn reports whether a user session is active.
func (s *SessionStore) IsLoggedIn() bool { return s.user.Get() != nil }

// Login authenticates against the server. On success the returned user is
// persisted and published; on failure a human-readable message is published
// on LastError and the previous session state is left untouched. Navigation
// on success is the caller's concern.
func (s *SessionStore) Login(ctx context.Context, username, password string) error {
	return s.settle(ctx, "Login failed", func() (*models.User, error) {
		return s.client.LoginUser(ctx, username, password)
	})
}

// Register creates an account; the contract is identical to Login.
func (s *SessionStore) Register(ctx context.Context, p api.RegisterParams) error {
	return s.settle(ctx, "Registration failed", func() (*models.User, error) {
		return s.client.RegisterUser(ctx, p)
	})
}

func (s *SessionStore) settle(ctx context.Context, fallback string, call func() (*models.User, error)) error {
	s.loading.Set(true)
	s.lastErr.Set("")

	u, err := call()
	if err != nil {
		s.log.Debug(ctx, "auth call failed", "error", err)
		s.lastErr.Set(api.ErrorMessage(err, fallback))
		s.loading.Set(false)
		return err
	}

	if err := s.persist(ctx, u); err != nil {
		s.lastErr.Set(fallback)
		s.loading.Set(false)
		return err
	}
	s.user.Set(u)
	s.loading.Set(false)
	return nil
}

// Logout clears the persisted session and publishes absence. Idempotent;
// a storage failure is returned but the in-memory state is cleared anyway.
func (s *SessionStore) Logout(ctx context.Context) error {
	err := s.repo.Delete(ctx, storage.KeyCurrentUser)
	if err != nil {
		s.log.Warn(ctx, "clearing cached session failed", "error", err)
	}
	s.user.Set(nil)
	return err
}

// UpdateCurrentUser overwrites both the persisted and the published user
// with a server-confirmed record (after a profile edit). No network call.
func (s *SessionStore) UpdateCurrentUser(ctx context.Context, u *models.User) error {
	if err := s.persist(ctx, u); err != nil {
		return err
	}
	s.user.Set(u)
	return nil
}

func (s *SessionStore) persist(ctx context.Context, u *models.User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.repo.Set(ctx, storage.KeyCurrentUser, raw); err != nil {
		s.log.Error(ctx, "persisting session failed", "error", err)
		return err
	}
	return nil
}
