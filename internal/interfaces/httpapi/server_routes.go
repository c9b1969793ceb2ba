package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/weeks/parse", handler.ParseWeek)
	mux.HandleFunc("GET /v1/weeks", handler.ListWeeks)
	mux.HandleFunc("GET /v1/weeks/current", handler.GetCurrentWeek)
	mux.HandleFunc("GET /v1/weeks/{weekID}", handler.GetWeek)
	mux.HandleFunc("GET /v1/weeks/{weekID}/picks", handler.ListEntriesByWeek)
	mux.HandleFunc("GET /v1/weeks/{weekID}/scoreboard", handler.GetScoreboard)
	mux.HandleFunc("POST /v1/picks", handler.SubmitEntry)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, adminToken string) {
	mux.Handle("POST /v1/weeks", RequireAdminToken(adminToken, http.HandlerFunc(handler.CreateWeek)))
	mux.Handle("PATCH /v1/weeks/{weekID}/matches/{matchID}", RequireAdminToken(adminToken, http.HandlerFunc(handler.RecordMatchResult)))
	mux.Handle("POST /v1/weeks/{weekID}/close", RequireAdminToken(adminToken, http.HandlerFunc(handler.CloseWeek)))
	mux.Handle("POST /v1/picks/admin", RequireAdminToken(adminToken, http.HandlerFunc(handler.SubmitEntry)))
	mux.Handle("POST /v1/internal/scores/recalculate", RequireAdminToken(adminToken, http.HandlerFunc(handler.RecalculateScores)))
}
