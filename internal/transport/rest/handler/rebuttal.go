package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"auditdesk/internal/engine"
	"auditdesk/internal/service"
	"auditdesk/internal/transport/rest/middleware"

	"github.com/gorilla/mux"
)

// RebuttalHandler handles workflow-action endpoints
type RebuttalHandler struct {
	rebuttalSvc *service.RebuttalService
}

// NewRebuttalHandler creates a new rebuttal handler
func NewRebuttalHandler(rebuttalSvc *service.RebuttalService) *RebuttalHandler {
	return &RebuttalHandler{rebuttalSvc: rebuttalSvc}
}

// ActionRequest is the request body for a workflow action. Text is the
// rebuttal text for partner disputes and the handler response for
// management outcomes.
type ActionRequest struct {
	Action engine.RebuttalAction `json:"action"`
	Text   string                `json:"text,omitempty"`
}

// Act handles POST /v1/reports/{id}/rebuttal
func (h *RebuttalHandler) Act(w http.ResponseWriter, r *http.Request) {
	reportID := mux.Vars(r)["id"]

	var req ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	in := engine.RebuttalInput{
		Action: req.Action,
		Actor:  middleware.GetIdentity(r.Context()),
		Text:   req.Text,
	}

	report, err := h.rebuttalSvc.Act(r.Context(), reportID, in)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReportNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, engine.ErrIllegalTransition), errors.Is(err, service.ErrStatusConflict):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, engine.ErrRebuttalTextRequired), errors.Is(err, engine.ErrHandlerResponseRequired):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, report)
}
