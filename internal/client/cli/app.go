package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/pharmadmin/internal/client/client"
	"github.com/dmitrijs2005/pharmadmin/internal/client/config"
	"github.com/dmitrijs2005/pharmadmin/internal/client/listing"
	"github.com/dmitrijs2005/pharmadmin/internal/client/models"
	"github.com/dmitrijs2005/pharmadmin/internal/client/save"
	"github.com/dmitrijs2005/pharmadmin/internal/client/services"
	"github.com/dmitrijs2005/pharmadmin/internal/client/session"
	"github.com/dmitrijs2005/pharmadmin/internal/logging"
)

type App struct {
	config    *config.Config
	session   *session.Session
	auth      services.AuthService
	catalog   services.CatalogService
	editor    services.EditorService
	dashboard services.DashboardService
	logger    logging.Logger
	db        *sql.DB
	reader    *bufio.Reader
	out       io.Writer

	// current list screen
	resource models.Resource
	list     *listing.State

	// current edit session, nil when no record is open
	edit *save.Orchestrator
}

// NewApp opens the session database, restores nothing yet and wires the
// services against the configured API.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := session.OpenDB(ctx, c.SessionDBPath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	sess := session.New(session.NewSQLiteStore(db), session.WithLogger(logger))
	apiClient, err := client.NewRESTClient(c.APIBaseURL, sess,
		client.WithTimeout(c.RequestTimeout),
		client.WithLogger(logger),
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	a := newApp(c, sess, apiClient, logger, bufio.NewReader(os.Stdin), os.Stdout)
	a.db = db
	return a, nil
}

func newApp(c *config.Config, sess *session.Session, api client.Client, logger logging.Logger, r *bufio.Reader, w io.Writer) *App {
	return &App{
		config:    c,
		session:   sess,
		auth:      services.NewAuthService(api, sess, logger),
		catalog:   services.NewCatalogService(api),
		editor:    services.NewEditorService(api, sess, logger),
		dashboard: services.NewDashboardService(api, logger),
		logger:    logger,
		reader:    r,
		out:       w,
	}
}

// Run restores a previous session, shows the dashboard and starts the REPL.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Fprintln(a.out, titleStyle.Render("pharmadmin")+mutedStyle.Render(" (type 'help' for commands)"))

	id, ok, err := a.auth.Restore(ctx)
	switch {
	case err != nil:
		a.logger.Warn(ctx, "session restore failed", "error", err)
	case ok:
		fmt.Fprintf(a.out, "Signed in as %s <%s>\n", id.Name, id.Email)
		_ = a.Stats(ctx)
	default:
		fmt.Fprintln(a.out, "Not signed in. Use 'login'.")
	}

	runREPL(ctx, a, a.status, a.reader)
}

// Close releases the session database.
func (a *App) Close() {
	if a.edit != nil {
		a.edit.Abandon()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.Authenticated()
}

func (a *App) status() string {
	s := ""
	if id, ok := a.session.Identity(); ok && a.isLoggedIn() {
		s = id.Name
	}
	if a.resource != "" {
		s += fmt.Sprintf(" %s p%d", a.resource, a.list.Page())
		if n := a.list.TotalPages(); n > 0 {
			s += fmt.Sprintf("/%d", n)
		}
	}
	if a.edit != nil {
		d := a.edit.Draft()
		id := d.ID()
		if id == "" {
			id = "new"
		}
		s += fmt.Sprintf(" editing %s/%s", d.Schema().Resource, id)
		if !a.edit.Changes().Empty() {
			s += "*"
		}
	}
	return s
}
