package app

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/hirafus/matchday/internal/config"
	"github.com/hirafus/matchday/internal/infrastructure/repository/memory"
	"github.com/hirafus/matchday/internal/infrastructure/repository/sqlite"
	"github.com/hirafus/matchday/internal/interfaces/httpapi"
	idgen "github.com/hirafus/matchday/internal/platform/id"
	"github.com/hirafus/matchday/internal/platform/logging"
	"github.com/hirafus/matchday/internal/usecase"
)

// App wires the repositories, services and HTTP server together and owns
// their shutdown order.
type App struct {
	Server *http.Server

	state  *usecase.StateService
	store  *sqlite.Store
	logger *logging.Logger
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	store, err := sqlite.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	playerRepo := memory.NewParticipantRepository(nil)
	guestRepo := memory.NewGuestRepository()
	matchRepo := memory.NewMatchRepository()
	settingsRepo := memory.NewSettingsRepository()
	gamedayRepo := memory.NewGamedayRepository()

	state, err := usecase.NewStateService(
		sqlite.NewKV(store),
		playerRepo,
		guestRepo,
		matchRepo,
		settingsRepo,
		gamedayRepo,
		memory.SeedRoster,
		logger,
	)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("build state service: %w", err)
	}
	if err := state.Load(ctx); err != nil {
		state.Close()
		store.Close()
		return nil, fmt.Errorf("load state: %w", err)
	}

	guard := usecase.NewGuard()
	ids := idgen.NewRandomGenerator()

	rosterSvc := usecase.NewRosterService(guard, playerRepo, guestRepo, ids, state, logger)
	matchdaySvc := usecase.NewMatchdayService(
		guard, playerRepo, guestRepo, matchRepo, settingsRepo, gamedayRepo, ids, state, logger,
	)
	ledgerSvc := usecase.NewLedgerService(guard, playerRepo, matchRepo, settingsRepo, state, logger)
	leagueSvc := usecase.NewLeagueService(guard, playerRepo, settingsRepo, state, logger)
	backupSvc := usecase.NewBackupService(
		guard, playerRepo, guestRepo, matchRepo, settingsRepo, gamedayRepo, state, logger,
	)

	handler := httpapi.NewHandler(rosterSvc, matchdaySvc, ledgerSvc, leagueSvc, backupSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		state.Close()
		store.Close()
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &App{
		Server: server,
		state:  state,
		store:  store,
		logger: logger,
	}, nil
}

// Shutdown stops the HTTP server, flushes a final state snapshot and closes
// the database.
func (a *App) Shutdown(ctx context.Context) error {
	if err := a.Server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	a.state.Close()
	if err := a.state.SaveNow(ctx); err != nil {
		a.logger.ErrorContext(ctx, "final state save failed", "error", err)
	}
	if err := a.store.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}

	return nil
}
