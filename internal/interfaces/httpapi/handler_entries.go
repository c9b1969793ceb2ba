package httpapi

import (
	"net/http"
)

// SubmitEntry serves both the public and the admin pick routes. Only requests
// that passed RequireAdminToken may submit after the week has closed.
func (h *Handler) SubmitEntry(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitEntry")
	defer span.End()

	var req submitEntryRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.entryService.Submit(ctx, req.toInput(), isAdminRequest(ctx))
	if err != nil {
		h.logger.WarnContext(ctx, "submit entry failed",
			"week_id", req.WeekID,
			"participant", req.ParticipantName,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, entryToDTO(created))
}

func (h *Handler) ListEntriesByWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListEntriesByWeek")
	defer span.End()

	weekID := weekIDFromPath(r)
	if err := h.validateRequest(ctx, weekPathRequest{WeekID: weekID}); err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.entryService.ListByWeek(ctx, weekID)
	if err != nil {
		h.logger.WarnContext(ctx, "list entries failed", "week_id", weekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, entriesToDTO(items))
}

func (h *Handler) GetScoreboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetScoreboard")
	defer span.End()

	weekID := weekIDFromPath(r)
	board, err := h.scoreboardService.Get(ctx, weekID)
	if err != nil {
		h.logger.WarnContext(ctx, "get scoreboard failed", "week_id", weekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scoreboardToDTO(board))
}

func (h *Handler) RecalculateScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecalculateScores")
	defer span.End()

	result, err := h.scoreboardService.RecalculateAll(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "recalculate scores failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
