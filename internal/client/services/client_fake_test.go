package services

import (
	"context"
	"fmt"

	"github.com/vehicleq/vehicleq-go/internal/client/api"
	"github.com/vehicleq/vehicleq-go/internal/client/models"
)

// fakeClient implements api.Client for store unit tests. Fields configure
// returned values/errors; Last* fields record arguments for assertions.
// Optional hook funcs allow a test to block or reorder individual calls.
type fakeClient struct {
	PingErr error

	RegisterRet *models.User
	RegisterErr error

	LoginRet *models.User
	LoginErr error

	ProfileRet *models.User
	ProfileErr error

	UpdateRet *models.User
	UpdateErr error

	VehiclesRet []models.Vehicle
	VehiclesErr error

	UserVehiclesFn  func(ctx context.Context, userID int64) ([]models.Vehicle, error)
	UserVehiclesRet []models.Vehicle
	UserVehiclesErr error

	UploadRet *models.Vehicle
	UploadErr error

	DeleteErr error

	ImageRet []byte
	ImageErr error

	AdminLoginErr   error
	AllVehiclesRet  []models.AdminVehicle
	AllVehiclesErr  error
	AdminDeleteErr  error
	ExportRet       *models.ExportBundle
	ExportErr       error
	ImportErr       error
	LastImported    *models.ExportBundle
	LastLoginUser   string
	LastLoginPass   string
	LastRegister    api.RegisterParams
	LastUpload      api.UploadParams
	LastDeletedID   int64
	LastAdminUser   string
	LastAdminDelete int64
}

var _ api.Client = (*fakeClient)(nil)

func (f *fakeClient) Ping(ctx context.Context) error { return f.PingErr }

func (f *fakeClient) RegisterUser(ctx context.Context, p api.RegisterParams) (*models.User, error) {
	f.LastRegister = p
	return f.RegisterRet, f.RegisterErr
}

func (f *fakeClient) LoginUser(ctx context.Context, username, password string) (*models.User, error) {
	f.LastLoginUser = username
	f.LastLoginPass = password
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) GetUserProfile(ctx context.Context, userID int64) (*models.User, error) {
	return f.ProfileRet, f.ProfileErr
}

func (f *fakeClient) UpdateProfile(ctx context.Context, userID int64, fullName, phone string) (*models.User, error) {
	return f.UpdateRet, f.UpdateErr
}

func (f *fakeClient) GetVehicles(ctx context.Context) ([]models.Vehicle, error) {
	return f.VehiclesRet, f.VehiclesErr
}

func (f *fakeClient) GetUserVehicles(ctx context.Context, userID int64) ([]models.Vehicle, error) {
	if f.UserVehiclesFn != nil {
		return f.UserVehiclesFn(ctx, userID)
	}
	return f.UserVehiclesRet, f.UserVehiclesErr
}

func (f *fakeClient) UploadVehicle(ctx context.Context, p api.UploadParams) (*models.Vehicle, error) {
	f.LastUpload = p
	return f.UploadRet, f.UploadErr
}

func (f *fakeClient) DeleteVehicle(ctx context.Context, vehicleID int64) error {
	f.LastDeletedID = vehicleID
	return f.DeleteErr
}

func (f *fakeClient) GetImage(ctx context.Context, vehicleID int64) ([]byte, error) {
	return f.ImageRet, f.ImageErr
}

func (f *fakeClient) ImageURL(vehicleID int64) string {
	return fmt.Sprintf("http://example.test/image/%d", vehicleID)
}

func (f *fakeClient) AdminLogin(ctx context.Context, username, password string) error {
	f.LastAdminUser = username
	return f.AdminLoginErr
}

func (f *fakeClient) GetAllVehicles(ctx context.Context) ([]models.AdminVehicle, error) {
	return f.AllVehiclesRet, f.AllVehiclesErr
}

func (f *fakeClient) DeleteAdminVehicle(ctx context.Context, vehicleID int64) error {
	f.LastAdminDelete = vehicleID
	return f.AdminDeleteErr
}

func (f *fakeClient) ExportAll(ctx context.Context) (*models.ExportBundle, error) {
	return f.ExportRet, f.ExportErr
}

func (f *fakeClient) ImportAll(ctx context.Context, bundle *models.ExportBundle) error {
	f.LastImported = bundle
	return f.ImportErr
}
