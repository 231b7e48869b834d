package services

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/vehicleq/vehicleq-go/internal/client/api"
	"github.com/vehicleq/vehicleq-go/internal/client/models"
	"github.com/vehicleq/vehicleq-go/internal/logging"
	"github.com/vehicleq/vehicleq-go/internal/observe"
)

// VehicleStore is the cached view of "the vehicles relevant to the current
// context" (one user's or all). The published list's membership reflects
// exactly the successful load/upload/delete operations since the last full
// reload; entries are never mutated in place, only replaced wholesale or
// spliced by id.
type VehicleStore struct {
	client api.Client
	log    logging.Logger

	vehicles *observe.Value[[]models.Vehicle]
	loading  *observe.Value[bool]

	// loadSeq hands out a ticket per load; only the holder of the newest
	// ticket may publish its result, so a slow earlier load can never
	// overwrite a later one.
	loadSeq atomic.Uint64

	mu sync.Mutex // serializes list mutations (prepend/splice/replace)
}

func NewVehicleStore(client api.Client, log logging.Logger) *VehicleStore {
	return &VehicleStore{
		client:   client,
		log:      log.With("component", "vehicles"),
		vehicles: observe.NewValue([]models.Vehicle{}),
		loading:  observe.NewValue(false),
	}
}

// Vehicles exposes the published list as an observable.
func (s *VehicleStore) Vehicles() *observe.Value[[]models.Vehicle] { return s.vehicles }

// Loading exposes the in-flight flag for loads.
func (s *VehicleStore) Loading() *observe.Value[bool] { return s.loading }

// LoadAll replaces the list with every vehicle on the server.
// On failure the previous list stays published (stale but present).
func (s *VehicleStore) LoadAll(ctx context.Context) error {
	return s.load(ctx, func() ([]models.Vehicle, error) {
		return s.client.GetVehicles(ctx)
	})
}

// LoadForUser replaces the list with one user's vehicles.
func (s *VehicleStore) LoadForUser(ctx context.Context, userID int64) error {
	return s.load(ctx, func() ([]models.Vehicle, error) {
		return s.client.GetUserVehicles(ctx, userID)
	})
}

func (s *VehicleStore) load(ctx context.Context, fetch func() ([]models.Vehicle, error)) error {
	ticket := s.loadSeq.Add(1)
	s.loading.Set(true)

	vs, err := fetch()

	if ticket != s.loadSeq.Load() {
		// A newer load was issued while this one was in flight; its
		// result wins regardless of arrival order.
		s.log.Debug(ctx, "stale load result discarded", "ticket", ticket)
		return err
	}

	if err != nil {
		s.log.Debug(ctx, "load failed, keeping previous list", "error", err)
		s.loading.Set(false)
		return err
	}

	s.mu.Lock()
	s.vehicles.Set(vs)
	s.mu.Unlock()
	s.loading.Set(false)
	return nil
}

// Upload sends a new vehicle to the server and, on success, prepends the
// returned entry to the published list (newest-first, no full reload).
// On failure the list is unchanged and the error propagates.
func (s *VehicleStore) Upload(ctx context.Context, p api.UploadParams) (*models.Vehicle, error) {
	v, err := s.client.UploadVehicle(ctx, p)
	if err != nil {
		s.log.Debug(ctx, "upload failed", "error", err)
		return nil, err
	}

	s.mu.Lock()
	cur := s.vehicles.Get()
	next := make([]models.Vehicle, 0, len(cur)+1)
	next = append(next, *v)
	next = append(next, cur...)
	s.vehicles.Set(next)
	s.mu.Unlock()

	return v, nil
}

// Delete removes a vehicle on the server and, on success, splices the
// matching entry out of the published list by id.
func (s *VehicleStore) Delete(ctx context.Context, vehicleID int64) error {
	if err := s.client.DeleteVehicle(ctx, vehicleID); err != nil {
		s.log.Debug(ctx, "delete failed", "error", err)
		return err
	}

	s.mu.Lock()
	cur := s.vehicles.Get()
	next := make([]models.Vehicle, 0, len(cur))
	for _, v := range cur {
		if v.ID != vehicleID {
			next = append(next, v)
		}
	}
	s.vehicles.Set(next)
	s.mu.Unlock()
	return nil
}

// ImageURL is a pure passthrough to the API client.
func (s *VehicleStore) ImageURL(vehicleID int64) string {
	return s.client.ImageURL(vehicleID)
}
