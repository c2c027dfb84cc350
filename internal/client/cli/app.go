package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/cofrap/cofrap-cli/internal/client/api"
	"github.com/cofrap/cofrap-cli/internal/client/config"
	"github.com/cofrap/cofrap-cli/internal/client/repositories/state"
	"github.com/cofrap/cofrap-cli/internal/client/services"
	"github.com/cofrap/cofrap-cli/internal/client/session"
	"github.com/cofrap/cofrap-cli/internal/logging"

	_ "modernc.org/sqlite"
)

// Mode reflects gateway reachability as seen by the background probe.
type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

type App struct {
	config *config.Config
	logger logging.Logger

	api    api.Client
	store  *session.Store
	auth   services.AuthService
	enroll services.EnrollmentService

	db     *sql.DB
	reader *bufio.Reader

	// mode is written by the gateway watcher goroutine and read by the
	// prompt; guarded by modeMu.
	modeMu sync.RWMutex
	mode   Mode
}

func NewApp(cfg *config.Config, logger logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := state.Open(ctx, cfg.StateFile)
	if err != nil {
		return nil, fmt.Errorf("opening state file %q: %w", cfg.StateFile, err)
	}

	apiClient := api.NewHTTPClient(cfg.GatewayAddr, cfg.RequestTimeout, logger)
	store := session.NewStore(db, logger)

	return &App{
		config: cfg,
		logger: logger,
		api:    apiClient,
		store:  store,
		auth:   services.NewAuthService(apiClient, store),
		enroll: services.NewEnrollmentService(apiClient),
		db:     db,
		reader: bufio.NewReader(os.Stdin),
	}, nil
}

// Run restores persisted session state, starts the gateway reachability
// probe, and enters the REPL. It returns when the user exits or ctx is done.
func (a *App) Run(ctx context.Context) {
	defer a.close(ctx)

	if err := a.store.Restore(ctx); err != nil {
		a.logger.Error(ctx, "restoring session state", "err", err)
	}

	go a.startGatewayWatcher(ctx, a.config.GatewayCheckInterval)

	printlnFn("COFRAP secure console (type 'help' for commands)")
	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
}

func (a *App) close(ctx context.Context) {
	if err := a.auth.Close(ctx); err != nil {
		a.logger.Warn(ctx, "closing api client", "err", err)
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn(ctx, "closing state file", "err", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.store.Authenticated()
}

// status builds the prompt suffix: username when signed in plus the
// reachability mode.
func (a *App) status() string {
	s := ""
	if a.isLoggedIn() {
		s = a.store.Profile().Username + " "
	}
	if mode := a.currentMode(); mode != "" {
		s = s + string(mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) currentMode() Mode {
	a.modeMu.RLock()
	defer a.modeMu.RUnlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.modeMu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.modeMu.Unlock()

	if changed {
		a.logger.Info(ctx, "gateway reachability changed", "mode", string(mode))
	}
}

// startGatewayWatcher probes the gateway on a fixed interval and flips the
// prompt's mode indicator. It runs until ctx is done.
func (a *App) startGatewayWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			probeCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := a.api.Ping(probeCtx)
			cancel()

			if err != nil {
				a.setMode(ctx, ModeOffline)
			} else {
				a.setMode(ctx, ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
