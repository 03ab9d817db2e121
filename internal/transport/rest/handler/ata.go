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

// ATAHandler handles master-auditor review endpoints
type ATAHandler struct {
	ataSvc *service.ATAService
}

// NewATAHandler creates a new ATA handler
func NewATAHandler(ataSvc *service.ATAService) *ATAHandler {
	return &ATAHandler{ataSvc: ataSvc}
}

// ReviewRequest is the request body for submitting an ATA review
type ReviewRequest struct {
	MasterRating int                           `json:"masterRating"`
	Ratings      map[string]engine.RatingInput `json:"ratings"`
}

// Review handles POST /v1/reports/{id}/ata
func (h *ATAHandler) Review(w http.ResponseWriter, r *http.Request) {
	reportID := mux.Vars(r)["id"]

	var req ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	in := engine.ReviewInput{
		MasterAuditor: middleware.GetIdentity(r.Context()),
		MasterRating:  req.MasterRating,
		Ratings:       req.Ratings,
	}

	review, err := h.ataSvc.Review(r.Context(), reportID, in)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReportNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, engine.ErrMasterRatingRange):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusCreated, review)
}

// Get handles GET /v1/reports/{id}/ata
func (h *ATAHandler) Get(w http.ResponseWriter, r *http.Request) {
	reportID := mux.Vars(r)["id"]

	review, err := h.ataSvc.GetReview(r.Context(), reportID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReportNotFound), errors.Is(err, service.ErrNoATAReview):
			writeError(w, http.StatusNotFound, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, review)
}
