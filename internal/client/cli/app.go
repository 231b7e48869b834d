// Package cli implements the interactive VehicleQ command-line client: a
// REPL over the session, vehicle and admin stores. It is the composition
// root — the single place where the API client, local storage and stores
// are built and shared.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/vehicleq/vehicleq-go/internal/client/api"
	"github.com/vehicleq/vehicleq-go/internal/client/config"
	"github.com/vehicleq/vehicleq-go/internal/client/export"
	"github.com/vehicleq/vehicleq-go/internal/client/services"
	"github.com/vehicleq/vehicleq-go/internal/client/storage"
	"github.com/vehicleq/vehicleq-go/internal/logging"
)

type App struct {
	config   *config.Config
	client   api.Client
	session  *services.SessionStore
	vehicles *services.VehicleStore
	admin    *services.AdminStore
	log      logging.Logger
	reader   *bufio.Reader
	db       *sql.DB
}

// NewApp wires the client together: opens the local state database, builds
// the API client and constructs the stores (hydrating cached session state).
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logging.NewSlogLogger(slog.Default())

	db, err := storage.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("init local storage: %w", err)
	}
	repo := storage.NewSQLiteRepository(db)

	client := api.NewHTTPClient(cfg.ServerBaseURL, cfg.RequestTimeout, log)

	return &App{
		config:   cfg,
		client:   client,
		session:  services.NewSessionStore(ctx, client, repo, log),
		vehicles: services.NewVehicleStore(client, log),
		admin:    services.NewAdminStore(ctx, client, repo, log),
		log:      log,
		reader:   bufio.NewReader(os.Stdin),
		db:       db,
	}, nil
}

// Close releases the local database handle.
func (a *App) Close() error {
	return a.db.Close()
}

// Run starts the REPL and blocks until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	fmt.Println("Welcome to VehicleQ CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

// getStatus renders the prompt suffix: "(alice admin)" style, empty when
// neither session is active.
func (a *App) getStatus() string {
	s := ""
	if u := a.session.CurrentUser(); u != nil {
		s = u.Username
	}
	if a.admin.Authenticated().Get() {
		if s != "" {
			s += " "
		}
		s += "admin"
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) isLoggedIn() bool {
	return a.session.IsLoggedIn()
}

// requireAdmin is the gate in front of every admin command. When the gate
// is closed the command is cancelled and the user is redirected to the
// admin login prompt instead.
func (a *App) requireAdmin(ctx context.Context) bool {
	if a.admin.IsAuthenticated(ctx) {
		return true
	}
	printlnFn("Admin login required.")
	_ = a.AdminLogin(ctx)
	return false
}

// exporter picks the export destination. S3 is offered only when a bucket
// is configured; the default is a local file in the configured export dir.
func (a *App) exporter(dest string) export.FileExporter {
	if dest == "s3" && a.config.S3Bucket != "" {
		return export.NewS3(a.config.S3Endpoint, a.config.S3Region, a.config.S3Bucket,
			a.config.S3AccessKey, a.config.S3SecretKey)
	}
	return export.NewLocal(a.config.ExportDir)
}
