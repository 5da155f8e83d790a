package handlers

import (
	"net/http"

	"github.com/greentable/site-backend/services"
)

type LeadHandler struct {
	leadService services.LeadService
}

func NewLeadHandler(ls services.LeadService) *LeadHandler {
	return &LeadHandler{leadService: ls}
}

func (h *LeadHandler) CreateLead(w http.ResponseWriter, r *http.Request) {
	var input services.LeadInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	lead, err := h.leadService.CreateLead(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"lead":    lead,
		"message": "Enviado com sucesso!",
	}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *LeadHandler) ListLeads(w http.ResponseWriter, r *http.Request) {
	leads, err := h.leadService.ListLeads(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"leads": leads}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
