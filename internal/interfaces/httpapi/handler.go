package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"

	"github.com/hirafus/matchday/internal/platform/logging"
	"github.com/hirafus/matchday/internal/usecase"
)

type Handler struct {
	rosterService   *usecase.RosterService
	matchdayService *usecase.MatchdayService
	ledgerService   *usecase.LedgerService
	leagueService   *usecase.LeagueService
	backupService   *usecase.BackupService
	logger          *logging.Logger
	validator       *validator.Validate
}

func NewHandler(
	rosterService *usecase.RosterService,
	matchdayService *usecase.MatchdayService,
	ledgerService *usecase.LedgerService,
	leagueService *usecase.LeagueService,
	backupService *usecase.BackupService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		rosterService:   rosterService,
		matchdayService: matchdayService,
		ledgerService:   ledgerService,
		leagueService:   leagueService,
		backupService:   backupService,
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, target any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.decodeRequest")
	defer span.End()

	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return h.validateRequest(ctx, target)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
