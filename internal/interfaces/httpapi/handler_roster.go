package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/hirafus/matchday/internal/domain/participant"
	"github.com/hirafus/matchday/internal/usecase"
)

type playerUpsertRequest struct {
	Name            string `json:"name" validate:"required,max=100"`
	Points          int    `json:"points" validate:"min=0"`
	PhotoURL        string `json:"photoURL" validate:"omitempty,url"`
	MatchesPlayed   int    `json:"matchesPlayed" validate:"min=0"`
	Wins            int    `json:"wins" validate:"min=0"`
	Draws           int    `json:"draws" validate:"min=0"`
	Losses          int    `json:"losses" validate:"min=0"`
	LatePenalties   int    `json:"latePenalties" validate:"min=0"`
	NoShowPenalties int    `json:"noShowPenalties" validate:"min=0"`
}

type availabilityRequest struct {
	Status string `json:"status" validate:"required"`
}

type guestCreateRequest struct {
	Name string `json:"name" validate:"max=100"`
}

func (h *Handler) ListParticipants(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListParticipants")
	defer span.End()

	view, err := h.rosterService.ListParticipants(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list participants failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, participantsViewDTO{
		In:      participantsToDTOs(view.In),
		Waiting: participantsToDTOs(view.Waiting),
		Others:  participantsToDTOs(view.Others),
	})
}

func (h *Handler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddPlayer")
	defer span.End()

	var req playerUpsertRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	p, err := h.rosterService.AddPlayer(ctx, usecase.PlayerInput{
		Name:          req.Name,
		Points:        req.Points,
		PhotoURL:      req.PhotoURL,
		MatchesPlayed: req.MatchesPlayed,
		Wins:          req.Wins,
		Draws:         req.Draws,
		Losses:        req.Losses,
		LateCount:     req.LatePenalties,
		NoShowCount:   req.NoShowPenalties,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "add player failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, playerToDTO(p))
}

func (h *Handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePlayer")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))

	var req playerUpsertRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	p, err := h.rosterService.UpdatePlayer(ctx, playerID, usecase.PlayerInput{
		Name:          req.Name,
		Points:        req.Points,
		PhotoURL:      req.PhotoURL,
		MatchesPlayed: req.MatchesPlayed,
		Wins:          req.Wins,
		Draws:         req.Draws,
		Losses:        req.Losses,
		LateCount:     req.LatePenalties,
		NoShowCount:   req.NoShowPenalties,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(p))
}

func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeletePlayer")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	if err := h.rosterService.DeletePlayer(ctx, playerID); err != nil {
		h.logger.WarnContext(ctx, "delete player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"id": playerID})
}

func (h *Handler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetAvailability")
	defer span.End()

	participantID := strings.TrimSpace(r.PathValue("participantID"))

	var req availabilityRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	status, err := participant.ParseStatus(req.Status)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	if err := h.matchdayService.SetAvailability(ctx, participantID, status); err != nil {
		h.logger.WarnContext(ctx, "set availability failed",
			"participant_id", participantID, "status", status, "error", err)
		writeError(ctx, w, err)
		return
	}

	view, err := h.rosterService.ListParticipants(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, participantsViewDTO{
		In:      participantsToDTOs(view.In),
		Waiting: participantsToDTOs(view.Waiting),
		Others:  participantsToDTOs(view.Others),
	})
}

func (h *Handler) AddGuest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddGuest")
	defer span.End()

	var req guestCreateRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	g, err := h.matchdayService.AddGuest(ctx, req.Name)
	if err != nil {
		h.logger.WarnContext(ctx, "add guest failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, guestToDTO(g))
}

func (h *Handler) RemoveGuest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveGuest")
	defer span.End()

	guestID := strings.TrimSpace(r.PathValue("guestID"))
	if err := h.matchdayService.RemoveGuest(ctx, guestID); err != nil {
		h.logger.WarnContext(ctx, "remove guest failed", "guest_id", guestID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"id": guestID})
}
