package http

import (
	"net/http"

	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/service"
)

// DamageHandler exposes the append-only damage log.
type DamageHandler struct {
	damages service.DamageService
}

func NewDamageHandler(damages service.DamageService) *DamageHandler {
	return &DamageHandler{damages: damages}
}

type recordDamageRequest struct {
	ContractID         int32  `json:"contract_id"`
	EquipmentTypeID    int32  `json:"equipment_type_id"`
	DamagedQuantity    int32  `json:"damaged_quantity"`
	ProblemDescription string `json:"problem_description"`
}

func (h *DamageHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req recordDamageRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	report, err := h.damages.Record(r.Context(), req.ContractID, req.EquipmentTypeID, req.DamagedQuantity, req.ProblemDescription)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, report)
}

func (h *DamageHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	reports, err := h.damages.ListAll(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, reports)
}

func (h *DamageHandler) ListByContract(w http.ResponseWriter, r *http.Request) {
	contractID, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	reports, err := h.damages.ListByContract(r.Context(), contractID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, reports)
}
