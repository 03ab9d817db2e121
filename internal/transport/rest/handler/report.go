package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"auditdesk/internal/model"
	"auditdesk/internal/repository"
	"auditdesk/internal/service"
	"auditdesk/internal/transport/rest/middleware"

	"github.com/gorilla/mux"
)

// ReportHandler handles audit report endpoints
type ReportHandler struct {
	auditSvc *service.AuditService
}

// NewReportHandler creates a new report handler
func NewReportHandler(auditSvc *service.AuditService) *ReportHandler {
	return &ReportHandler{auditSvc: auditSvc}
}

// Submit handles POST /v1/reports
func (h *ReportHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req service.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	auditor := middleware.GetIdentity(r.Context())
	report, err := h.auditSvc.Submit(r.Context(), auditor, &req)
	if err != nil {
		var vErr *service.ValidationError
		switch {
		case errors.As(err, &vErr):
			writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
				"error":   vErr.Error(),
				"missing": vErr.Result.Missing,
			})
		case errors.Is(err, service.ErrFormNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusCreated, report)
}

// Preview handles POST /v1/reports/preview
func (h *ReportHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req service.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.auditSvc.Preview(r.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrFormNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Get handles GET /v1/reports/{id}
func (h *ReportHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	report, err := h.auditSvc.Get(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if report == nil {
		writeError(w, http.StatusNotFound, "report not found")
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// List handles GET /v1/reports
func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.ReportFilter{
		AgentID:   q.Get("agentId"),
		AuditorID: q.Get("auditorId"),
		FormName:  q.Get("formName"),
		Status:    model.ReportStatus(q.Get("status")),
	}
	if limit, err := strconv.ParseInt(q.Get("limit"), 10, 64); err == nil {
		filter.Limit = limit
	}

	if filter.Status != "" && !filter.Status.Valid() {
		writeError(w, http.StatusBadRequest, "unknown status filter")
		return
	}

	reports, err := h.auditSvc.List(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"reports": reports})
}
