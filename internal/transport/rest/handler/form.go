package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"auditdesk/internal/model"
	"auditdesk/internal/service"
	"auditdesk/internal/transport/rest/middleware"

	"github.com/gorilla/mux"
)

// FormHandler handles form-definition endpoints
type FormHandler struct {
	formSvc *service.FormService
}

// NewFormHandler creates a new form handler
func NewFormHandler(formSvc *service.FormService) *FormHandler {
	return &FormHandler{formSvc: formSvc}
}

// CreateFormRequest is the request body for creating or updating a form
type CreateFormRequest struct {
	Name     string          `json:"name"`
	Sections []model.Section `json:"sections"`
}

// Create handles POST /v1/forms
func (h *FormHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateFormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	creator := middleware.GetIdentity(r.Context())
	form := &model.FormDefinition{
		Name:      req.Name,
		Sections:  req.Sections,
		CreatedBy: creator.ID,
	}

	id, err := h.formSvc.Create(r.Context(), form)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFormExists):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrFormInvalid):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"formId": id, "name": form.Name})
}

// Get handles GET /v1/forms/{name}
func (h *FormHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	form, err := h.formSvc.GetByName(r.Context(), name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if form == nil {
		writeError(w, http.StatusNotFound, "form not found")
		return
	}

	writeJSON(w, http.StatusOK, form)
}

// List handles GET /v1/forms
func (h *FormHandler) List(w http.ResponseWriter, r *http.Request) {
	forms, err := h.formSvc.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"forms": forms})
}

// Update handles PUT /v1/forms/{name}
func (h *FormHandler) Update(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	var req CreateFormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	form := &model.FormDefinition{
		Name:     name,
		Sections: req.Sections,
	}

	if err := h.formSvc.Update(r.Context(), form); err != nil {
		switch {
		case errors.Is(err, service.ErrFormNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrFormInvalid):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, form)
}

// Delete handles DELETE /v1/forms/{name}
func (h *FormHandler) Delete(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	if err := h.formSvc.Delete(r.Context(), name); err != nil {
		if errors.Is(err, service.ErrFormNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"deleted": name})
}
