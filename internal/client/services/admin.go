package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vehicleq/vehicleq-go/internal/client/api"
	"github.com/vehicleq/vehicleq-go/internal/client/export"
	"github.com/vehicleq/vehicleq-go/internal/client/models"
	"github.com/vehicleq/vehicleq-go/internal/client/storage"
	"github.com/vehicleq/vehicleq-go/internal/logging"
	"github.com/vehicleq/vehicleq-go/internal/observe"
)

// AdminStore holds the administrator session gate and the admin-only
// operations. The gate is a boolean capability backed by a locally stored
// flag, orthogonal to the regular user session: holding one says nothing
// about the other.
type AdminStore struct {
	client api.Client
	repo   storage.Repository
	log    logging.Logger

	authed *observe.Value[bool]
}

// NewAdminStore builds the store and hydrates the gate from local storage.
func NewAdminStore(ctx context.Context, client api.Client, repo storage.Repository, log logging.Logger) *AdminStore {
	s := &AdminStore{
		client: client,
		repo:   repo,
		log:    log.With("component", "admin"),
		authed: observe.NewValue(false),
	}
	raw, err := repo.Get(ctx, storage.KeyAdminToken)
	if err != nil {
		s.log.Warn(ctx, "reading admin flag failed", "error", err)
		return s
	}
	if len(raw) > 0 {
		s.authed.Set(true)
	}
	return s
}

// Authenticated exposes the gate as an observable.
func (s *AdminStore) Authenticated() *observe.Value[bool] { return s.authed }

// IsAuthenticated consults the persisted flag. External clearing of storage
// (another process wiping the cache) logs the admin out, so the durable
// flag is authoritative, not the in-memory copy.
func (s *AdminStore) IsAuthenticated(ctx context.Context) bool {
	raw, err := s.repo.Get(ctx, storage.KeyAdminToken)
	if err != nil {
		s.log.Warn(ctx, "reading admin flag failed", "error", err)
		return false
	}
	ok := len(raw) > 0
	if s.authed.Get() != ok {
		s.authed.Set(ok)
	}
	return ok
}

// Login authenticates the administrator; on success the flag is persisted
// and the gate opens. The server's acknowledgement body is opaque and never
// stored — only a fixed local marker.
func (s *AdminStore) Login(ctx context.Context, username, password string) error {
	if err := s.client.AdminLogin(ctx, username, password); err != nil {
		s.log.Debug(ctx, "admin login failed", "error", err)
		return err
	}
	if err := s.repo.Set(ctx, storage.KeyAdminToken, []byte(storage.AdminTokenValue)); err != nil {
		s.log.Error(ctx, "persisting admin flag failed", "error", err)
		return err
	}
	s.authed.Set(true)
	return nil
}

// Logout clears the flag. Idempotent.
func (s *AdminStore) Logout(ctx context.Context) error {
	err := s.repo.Delete(ctx, storage.KeyAdminToken)
	if err != nil {
		s.log.Warn(ctx, "clearing admin flag failed", "error", err)
	}
	s.authed.Set(false)
	return err
}

// ListAll returns the administrator projection of every vehicle.
func (s *AdminStore) ListAll(ctx context.Context) ([]models.AdminVehicle, error) {
	return s.client.GetAllVehicles(ctx)
}

// Delete removes any user's vehicle through the admin endpoint.
func (s *AdminStore) Delete(ctx context.Context, vehicleID int64) error {
	return s.client.DeleteAdminVehicle(ctx, vehicleID)
}

// ImageURL is a pure passthrough to the API client.
func (s *AdminStore) ImageURL(vehicleID int64) string {
	return s.client.ImageURL(vehicleID)
}

// exportFileName builds the artifact name for a given moment:
// vehicleq-export-<ISO-date>.json.
func exportFileName(now time.Time) string {
	return fmt.Sprintf("vehicleq-export-%s.json", now.Format("2006-01-02"))
}

// Export fetches the full dataset and saves it through the given exporter.
// Returns the location the artifact was written to.
func (s *AdminStore) Export(ctx context.Context, exp export.FileExporter) (string, error) {
	bundle, err := s.client.ExportAll(ctx)
	if err != nil {
		s.log.Debug(ctx, "export fetch failed", "error", err)
		return "", err
	}
	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode export: %w", err)
	}
	loc, err := exp.Save(ctx, exportFileName(time.Now()), data)
	if err != nil {
		s.log.Debug(ctx, "export save failed", "error", err)
		return "", err
	}
	s.log.Info(ctx, "export saved", "location", loc, "users", len(bundle.Users), "vehicles", len(bundle.Vehicles))
	return loc, nil
}

// Import decodes a previously exported bundle and posts it back verbatim,
// so importing an untouched export is a no-op on server state.
func (s *AdminStore) Import(ctx context.Context, data []byte) error {
	var bundle models.ExportBundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return fmt.Errorf("%w: decode bundle: %v", api.ErrValidation, err)
	}
	if err := s.client.ImportAll(ctx, &bundle); err != nil {
		s.log.Debug(ctx, "import failed", "error", err)
		return err
	}
	return nil
}
