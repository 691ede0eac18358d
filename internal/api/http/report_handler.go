package http

import (
	"net/http"

	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/service"
)

// ReportHandler exposes the read-only reporting views.
type ReportHandler struct {
	reports service.ReportService
}

func NewReportHandler(reports service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

func (h *ReportHandler) Overview(w http.ResponseWriter, r *http.Request) {
	rep, err := h.reports.Overview(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, rep)
}

func (h *ReportHandler) ByClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	rows, err := h.reports.ByClient(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

func (h *ReportHandler) EquipmentUsage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	rows, err := h.reports.EquipmentUsage(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

func (h *ReportHandler) StatusSummary(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reports.StatusSummary(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, rows)
}
