// Package api is the single point of contact with the remote VehicleQ
// service; no other package performs network I/O. The Client interface
// mirrors the backend's HTTP surface one call per endpoint, and HTTPClient
// is its production implementation.
package api

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/vehicleq/vehicleq-go/internal/client/models"
)

// Client defines every operation the stores may perform against the
// backend. All methods honor context cancellation and return either
// ErrValidation (before any network call), ErrUnavailable (transport
// failure) or *HTTPError (non-success response).
//
// Authentication note: after login no token is attached to subsequent
// requests; the deployed backend does not issue or check one.
type Client interface {
	// Ping probes the backend health endpoint.
	Ping(ctx context.Context) error

	RegisterUser(ctx context.Context, p RegisterParams) (*models.User, error)
	LoginUser(ctx context.Context, username, password string) (*models.User, error)
	GetUserProfile(ctx context.Context, userID int64) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int64, fullName, phone string) (*models.User, error)

	GetVehicles(ctx context.Context) ([]models.Vehicle, error)
	GetUserVehicles(ctx context.Context, userID int64) ([]models.Vehicle, error)
	UploadVehicle(ctx context.Context, p UploadParams) (*models.Vehicle, error)
	DeleteVehicle(ctx context.Context, vehicleID int64) error
	GetImage(ctx context.Context, vehicleID int64) ([]byte, error)

	// ImageURL constructs the address of a vehicle's image. Pure; does
	// not fetch.
	ImageURL(vehicleID int64) string

	AdminLogin(ctx context.Context, username, password string) error
	GetAllVehicles(ctx context.Context) ([]models.AdminVehicle, error)
	DeleteAdminVehicle(ctx context.Context, vehicleID int64) error
	ExportAll(ctx context.Context) (*models.ExportBundle, error)
	ImportAll(ctx context.Context, bundle *models.ExportBundle) error
}

// RegisterParams carries the registration form fields.
type RegisterParams struct {
	Username string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
	FullName string `validate:"required"`
	Phone    string `validate:"required"`
}

// UploadParams carries the vehicle upload form fields plus the raw image.
type UploadParams struct {
	UserID int64  `validate:"required,gt=0"`
	Number string `validate:"required"`
	Owner  string `validate:"required"`
	Image  []byte `validate:"required"`

	// ImageName is the filename reported in the multipart part; the server
	// stores uploads under it. Defaults to a generated name when empty.
	ImageName string
}

type loginParams struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

type profileParams struct {
	FullName string `validate:"required"`
	Phone    string `validate:"required"`
}

var validate = validator.New()

// checkParams validates a params struct and wraps any failure in
// ErrValidation so callers can match with errors.Is.
func checkParams(p any) error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}
