// Package devapi initializes and runs the sandbox pharmacy API: an in-memory
// record store, an asset store on disk or S3, and the HTTP endpoint the admin
// client talks to.
package devapi

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/pharmadmin/internal/devapi/blob"
	"github.com/dmitrijs2005/pharmadmin/internal/devapi/config"
	"github.com/dmitrijs2005/pharmadmin/internal/devapi/httpapi"
	"github.com/dmitrijs2005/pharmadmin/internal/devapi/store"
	"github.com/dmitrijs2005/pharmadmin/internal/logging"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	store    *store.Memory
	blobs    blob.Store
	mediaDir string
}

// NewApp builds the store, seeds it and prepares the asset backend.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	s := store.NewMemory()
	if _, err := s.AddAccount(ctx, "Administrator", c.AdminEmail, httpapi.RoleAdmin, []byte(c.AdminPassword)); err != nil {
		return nil, fmt.Errorf("admin account: %w", err)
	}
	if c.SeedDemoData {
		if err := store.Seed(ctx, s); err != nil {
			return nil, err
		}
	}

	app := &App{config: c, logger: logger, store: s}
	switch c.Storage {
	case config.StorageS3:
		b, err := blob.NewS3(ctx, blob.S3Options{
			User:         c.S3User,
			Password:     c.S3Password,
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
		})
		if err != nil {
			return nil, fmt.Errorf("s3 init error: %w", err)
		}
		app.blobs = b
	default:
		d, err := blob.NewDisk(c.MediaDir, c.PublicBaseURL)
		if err != nil {
			return nil, fmt.Errorf("media init error: %w", err)
		}
		app.blobs, app.mediaDir = d, d.Root()
	}
	return app, nil
}

// Handler returns the fully wired HTTP handler.
func (app *App) Handler() *httpapi.Handler {
	return httpapi.NewHandler(app.store, app.blobs, app.config.SecretKey, app.config.TokenValidity, app.logger)
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewServer(app.config.ListenAddr, httpapi.NewRouter(app.Handler(), app.mediaDir), app.logger)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until a termination signal arrives.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "storage", app.config.Storage, "admin", app.config.AdminEmail)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

}
