package httpapi

import (
	"fmt"
	"io"
	"net/http"

	"github.com/hirafus/matchday/internal/usecase"
)

// maxBackupBytes bounds import payloads. A full 38-match season with photos
// inlined stays well under this.
const maxBackupBytes = 8 << 20

func (h *Handler) ExportBackup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExportBackup")
	defer span.End()

	data, err := h.backupService.Export(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "export backup failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="matchday-backup.json"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *Handler) ImportBackup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportBackup")
	defer span.End()

	data, err := io.ReadAll(io.LimitReader(r.Body, maxBackupBytes+1))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: read backup payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if len(data) > maxBackupBytes {
		writeError(ctx, w, fmt.Errorf("%w: backup exceeds %d bytes", usecase.ErrInvalidInput, maxBackupBytes))
		return
	}

	if err := h.backupService.Import(ctx, data); err != nil {
		h.logger.WarnContext(ctx, "import backup failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "imported"})
}

func (h *Handler) ResetSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResetSeason")
	defer span.End()

	if err := h.backupService.ResetSeason(ctx); err != nil {
		h.logger.ErrorContext(ctx, "reset season failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "reset"})
}
