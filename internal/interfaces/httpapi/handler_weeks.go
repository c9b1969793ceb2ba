package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/quiniela/internal/usecase"
)

func (h *Handler) ParseWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ParseWeek")
	defer span.End()

	var req parseWeekRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	parsed, err := h.weekService.ParseWeekText(ctx, req.Text)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, parsedWeekToDTO(parsed))
}

func (h *Handler) CreateWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateWeek")
	defer span.End()

	var req createWeekRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.weekService.CreateWeek(ctx, req.toInput())
	if err != nil {
		h.logger.WarnContext(ctx, "create week failed", "name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, weekToDTO(created))
}

func (h *Handler) ListWeeks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListWeeks")
	defer span.End()

	items, err := h.weekService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list weeks failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, weeksToDTO(items))
}

func (h *Handler) GetCurrentWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCurrentWeek")
	defer span.End()

	item, err := h.weekService.Current(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, weekToDTO(item))
}

func (h *Handler) GetWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWeek")
	defer span.End()

	weekID := weekIDFromPath(r)
	item, err := h.weekService.Get(ctx, weekID)
	if err != nil {
		h.logger.WarnContext(ctx, "get week failed", "week_id", weekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, weekToDTO(item))
}

func (h *Handler) RecordMatchResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordMatchResult")
	defer span.End()

	var req recordResultRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	weekID := weekIDFromPath(r)
	matchID := strings.TrimSpace(r.PathValue("matchID"))
	updated, err := h.weekService.RecordResult(ctx, usecase.RecordResultInput{
		WeekID:    weekID,
		MatchID:   matchID,
		HomeScore: *req.HomeScore,
		AwayScore: *req.AwayScore,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "record match result failed", "week_id", weekID, "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, weekToDTO(updated))
}

func (h *Handler) CloseWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CloseWeek")
	defer span.End()

	weekID := weekIDFromPath(r)
	closed, err := h.weekService.Close(ctx, weekID)
	if err != nil {
		h.logger.WarnContext(ctx, "close week failed", "week_id", weekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, weekToDTO(closed))
}
