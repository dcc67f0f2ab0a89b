package httpapi

import (
	"fmt"
	"net/http"

	"github.com/hirafus/matchday/internal/domain/gameday"
	"github.com/hirafus/matchday/internal/domain/match"
	"github.com/hirafus/matchday/internal/usecase"
)

type draftRequest struct {
	Method string `json:"method" validate:"required,oneof=points manual"`
}

type assignPlayerRequest struct {
	ParticipantID string `json:"participantId" validate:"required"`
	Team          string `json:"team" validate:"required,oneof=teamA teamB unassigned"`
}

type penaltyToggleRequest struct {
	PlayerID string `json:"playerId" validate:"required"`
	Penalty  string `json:"penalty" validate:"required,oneof=late no-show"`
}

type recordResultRequest struct {
	ScoreA int `json:"scoreA" validate:"min=0"`
	ScoreB int `json:"scoreB" validate:"min=0"`
}

func (h *Handler) GetGameState(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGameState")
	defer span.End()

	state, err := h.matchdayService.State(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get game state failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameStateToDTO(state))
}

func (h *Handler) Draft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Draft")
	defer span.End()

	var req draftRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	state, err := h.matchdayService.Draft(ctx, usecase.DraftMethod(req.Method))
	if err != nil {
		h.logger.WarnContext(ctx, "draft failed", "method", req.Method, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameStateToDTO(state))
}

func (h *Handler) AssignPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AssignPlayer")
	defer span.End()

	var req assignPlayerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	side, err := gameday.ParseTeamAssignment(req.Team)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	state, err := h.matchdayService.AssignPlayer(ctx, req.ParticipantID, side)
	if err != nil {
		h.logger.WarnContext(ctx, "assign player failed",
			"participant_id", req.ParticipantID, "team", req.Team, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameStateToDTO(state))
}

func (h *Handler) ConfirmManualDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ConfirmManualDraft")
	defer span.End()

	state, err := h.matchdayService.ConfirmManualDraft(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "confirm manual draft failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameStateToDTO(state))
}

func (h *Handler) CancelDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CancelDraft")
	defer span.End()

	if err := h.matchdayService.CancelDraft(ctx); err != nil {
		h.logger.WarnContext(ctx, "cancel draft failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	state, err := h.matchdayService.State(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameStateToDTO(state))
}

func (h *Handler) TogglePenalty(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TogglePenalty")
	defer span.End()

	var req penaltyToggleRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	penalty, err := match.ParsePenalty(req.Penalty)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	state, err := h.matchdayService.TogglePenalty(ctx, req.PlayerID, penalty)
	if err != nil {
		h.logger.WarnContext(ctx, "toggle penalty failed",
			"player_id", req.PlayerID, "penalty", req.Penalty, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameStateToDTO(state))
}

func (h *Handler) RecordResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordResult")
	defer span.End()

	var req recordResultRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	view, err := h.matchdayService.RecordResult(ctx, req.ScoreA, req.ScoreB)
	if err != nil {
		h.logger.WarnContext(ctx, "record result failed",
			"score_a", req.ScoreA, "score_b", req.ScoreB, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchViewToDTO(view))
}

func (h *Handler) ResetGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResetGame")
	defer span.End()

	if err := h.matchdayService.ResetGame(ctx); err != nil {
		h.logger.ErrorContext(ctx, "reset game failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	state, err := h.matchdayService.State(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameStateToDTO(state))
}
