package handlers

import (
	"net/http"

	"github.com/courtside/badminton-scoring/services"
)

type CourtHandler struct {
	dashboardService services.DashboardService
}

func NewCourtHandler(dashboardService services.DashboardService) *CourtHandler {
	return &CourtHandler{dashboardService: dashboardService}
}

func (h *CourtHandler) List(w http.ResponseWriter, r *http.Request) {
	courts, err := h.dashboardService.Courts(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"courts": courts}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *CourtHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.dashboardService.Snapshot(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"dashboard": dashboard}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
