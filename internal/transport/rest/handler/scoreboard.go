package handler

import (
	"net/http"
	"strconv"

	"auditdesk/internal/cache"
)

// ScoreboardHandler serves the performance boards straight from Redis
type ScoreboardHandler struct {
	scoreboard cache.ScoreboardCache
}

// NewScoreboardHandler creates a new scoreboard handler
func NewScoreboardHandler(scoreboard cache.ScoreboardCache) *ScoreboardHandler {
	return &ScoreboardHandler{scoreboard: scoreboard}
}

// Agents handles GET /v1/scoreboard/agents
func (h *ScoreboardHandler) Agents(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, cache.BoardAgents)
}

// Auditors handles GET /v1/scoreboard/auditors
func (h *ScoreboardHandler) Auditors(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, cache.BoardAuditors)
}

func (h *ScoreboardHandler) serve(w http.ResponseWriter, r *http.Request, board string) {
	limit := 50
	if n, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && n > 0 {
		limit = n
	}

	entries, err := h.scoreboard.GetTop(r.Context(), board, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"board": board, "entries": entries})
}
