package httpapi

import (
	"net/http"

	"github.com/hirafus/matchday/internal/platform/logging"
)

func NewRouter(
	handler *Handler,
	logger *logging.Logger,
	corsAllowedOrigins []string,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler)
	registerRosterRoutes(mux, handler)
	registerGameRoutes(mux, handler)
	registerLeagueRoutes(mux, handler)
	registerBackupRoutes(mux, handler)

	return RequestTracing(RequestLogging(logger, CORS(corsAllowedOrigins, recoverPanic(logger, mux))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerRosterRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/participants", handler.ListParticipants)
	mux.HandleFunc("POST /v1/participants", handler.AddPlayer)
	mux.HandleFunc("PUT /v1/participants/{playerID}", handler.UpdatePlayer)
	mux.HandleFunc("DELETE /v1/participants/{playerID}", handler.DeletePlayer)
	mux.HandleFunc("PUT /v1/participants/{participantID}/availability", handler.SetAvailability)
	mux.HandleFunc("POST /v1/guests", handler.AddGuest)
	mux.HandleFunc("DELETE /v1/guests/{guestID}", handler.RemoveGuest)
}

func registerGameRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/game", handler.GetGameState)
	mux.HandleFunc("POST /v1/game/draft", handler.Draft)
	mux.HandleFunc("PUT /v1/game/assignments", handler.AssignPlayer)
	mux.HandleFunc("POST /v1/game/confirm", handler.ConfirmManualDraft)
	mux.HandleFunc("POST /v1/game/cancel", handler.CancelDraft)
	mux.HandleFunc("PUT /v1/game/penalties", handler.TogglePenalty)
	mux.HandleFunc("POST /v1/game/result", handler.RecordResult)
	mux.HandleFunc("POST /v1/game/reset", handler.ResetGame)
}

func registerLeagueRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/standings", handler.ListStandings)
	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/matches/progress", handler.GetSeasonProgress)
	mux.HandleFunc("DELETE /v1/matches/{matchID}", handler.DeleteMatch)
	mux.HandleFunc("GET /v1/settings", handler.GetSettings)
	mux.HandleFunc("PUT /v1/settings", handler.UpdateSettings)
}

func registerBackupRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/backup", handler.ExportBackup)
	mux.HandleFunc("POST /v1/backup", handler.ImportBackup)
	mux.HandleFunc("POST /v1/season/reset", handler.ResetSeason)
}
