package services

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vehicleq/vehicleq-go/internal/client/api"
	"github.com/vehicleq/vehicleq-go/internal/client/export"
	"github.com/vehicleq/vehicleq-go/internal/client/models"
	"github.com/vehicleq/vehicleq-go/internal/client/storage"
)

func TestAdminStore_GateClosedByDefault(t *testing.T) {
	ctx := context.Background()
	s := NewAdminStore(ctx, &fakeClient{}, setupStorage(t), testLogger())

	require.False(t, s.IsAuthenticated(ctx))
	require.False(t, s.Authenticated().Get())
}

func TestAdminStore_LoginOpensGateAndPersistsFlag(t *testing.T) {
	ctx := context.Background()
	repo := setupStorage(t)
	fc := &fakeClient{}
	s := NewAdminStore(ctx, fc, repo, testLogger())

	require.NoError(t, s.Login(ctx, "admin", "secret"))
	require.Equal(t, "admin", fc.LastAdminUser)
	require.True(t, s.IsAuthenticated(ctx))

	raw, err := repo.Get(ctx, storage.KeyAdminToken)
	require.NoError(t, err)
	require.Equal(t, []byte(storage.AdminTokenValue), raw)
}

func TestAdminStore_LoginFailureKeepsGateClosed(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{AdminLoginErr: &api.HTTPError{Status: 401, Detail: "Invalid admin credentials"}}
	s := NewAdminStore(ctx, fc, setupStorage(t), testLogger())

	require.Error(t, s.Login(ctx, "admin", "wrong"))
	require.False(t, s.IsAuthenticated(ctx))
}

func TestAdminStore_LogoutClosesGate(t *testing.T) {
	ctx := context.Background()
	repo := setupStorage(t)
	s := NewAdminStore(ctx, &fakeClient{}, repo, testLogger())

	require.NoError(t, s.Login(ctx, "admin", "secret"))
	require.NoError(t, s.Logout(ctx))
	require.False(t, s.IsAuthenticated(ctx))

	raw, err := repo.Get(ctx, storage.KeyAdminToken)
	require.NoError(t, err)
	require.Nil(t, raw)

	// idempotent
	require.NoError(t, s.Logout(ctx))
}

func TestAdminStore_HydratesFromPersistedFlag(t *testing.T) {
	ctx := context.Background()
	repo := setupStorage(t)
	require.NoError(t, repo.Set(ctx, storage.KeyAdminToken, []byte(storage.AdminTokenValue)))

	s := NewAdminStore(ctx, &fakeClient{}, repo, testLogger())
	require.True(t, s.Authenticated().Get())
	require.True(t, s.IsAuthenticated(ctx))
}

func TestAdminStore_ExternalClearingClosesGate(t *testing.T) {
	ctx := context.Background()
	repo := setupStorage(t)
	s := NewAdminStore(ctx, &fakeClient{}, repo, testLogger())
	require.NoError(t, s.Login(ctx, "admin", "secret"))

	// another process wipes the cache
	require.NoError(t, repo.Clear(ctx))

	require.False(t, s.IsAuthenticated(ctx))
	require.False(t, s.Authenticated().Get())
}

func TestAdminStore_ExportWritesBundleFile(t *testing.T) {
	ctx := context.Background()
	bundle := &models.ExportBundle{
		ExportDate: "2026-09-01T10:00:00",
		Users:      []models.User{alice},
		Vehicles:   []models.Vehicle{{ID: 10, Number: "KA01AB1234", Owner: "Bob", Timestamp: "2026-08-31 09:00:00"}},
	}
	fc := &fakeClient{ExportRet: bundle}
	s := NewAdminStore(ctx, fc, setupStorage(t), testLogger())

	dir := t.TempDir()
	loc, err := s.Export(ctx, export.NewLocal(dir))
	require.NoError(t, err)

	wantName := "vehicleq-export-" + time.Now().Format("2006-01-02") + ".json"
	require.Equal(t, filepath.Join(dir, wantName), loc)

	raw, err := os.ReadFile(loc)
	require.NoError(t, err)
	var got models.ExportBundle
	require.NoError(t, json.Unmarshal(raw, &got))
	require.Equal(t, *bundle, got)
}

func TestAdminStore_ImportRoundTripsExportedBundle(t *testing.T) {
	ctx := context.Background()
	bundle := &models.ExportBundle{
		ExportDate: "2026-09-01T10:00:00",
		Users:      []models.User{alice},
		Vehicles:   []models.Vehicle{{ID: 10}},
	}
	fc := &fakeClient{ExportRet: bundle}
	s := NewAdminStore(ctx, fc, setupStorage(t), testLogger())

	loc, err := s.Export(ctx, export.NewLocal(t.TempDir()))
	require.NoError(t, err)

	raw, err := os.ReadFile(loc)
	require.NoError(t, err)
	require.NoError(t, s.Import(ctx, raw))

	// what went back to the server is exactly what came out of it
	require.Equal(t, bundle, fc.LastImported)
}

func TestAdminStore_ImportRejectsMalformedBundle(t *testing.T) {
	ctx := context.Background()
	s := NewAdminStore(ctx, &fakeClient{}, setupStorage(t), testLogger())

	err := s.Import(ctx, []byte("not json"))
	require.ErrorIs(t, err, api.ErrValidation)
}

func TestAdminStore_ListAllAndDelete(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{AllVehiclesRet: []models.AdminVehicle{
		{Vehicle: models.Vehicle{ID: 10}, Username: "alice", UserEmail: "a@x.com"},
	}}
	s := NewAdminStore(ctx, fc, setupStorage(t), testLogger())

	vs, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, vs, 1)
	require.Equal(t, "alice", vs[0].Username)

	require.NoError(t, s.Delete(ctx, 10))
	require.Equal(t, int64(10), fc.LastAdminDelete)
}
