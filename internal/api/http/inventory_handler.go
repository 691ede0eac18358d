package http

import (
	"net/http"

	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/domain"
	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/service"
)

// InventoryHandler exposes the equipment stock pool over JSON. List responses
// carry the derived availability status alongside the raw counters.
type InventoryHandler struct {
	inventory service.InventoryService
}

func NewInventoryHandler(inventory service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

type equipmentResponse struct {
	domain.EquipmentType
	Status domain.EquipmentStatus `json:"status"`
}

func toEquipmentResponse(eq *domain.EquipmentType) equipmentResponse {
	return equipmentResponse{EquipmentType: *eq, Status: eq.AvailabilityStatus()}
}

type createEquipmentRequest struct {
	Name          string `json:"name"`
	Category      string `json:"category"`
	TotalQuantity int32  `json:"total_quantity"`
}

func (h *InventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createEquipmentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	eq := &domain.EquipmentType{
		Name:          req.Name,
		Category:      req.Category,
		TotalQuantity: req.TotalQuantity,
	}
	if err := h.inventory.Create(r.Context(), eq); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, toEquipmentResponse(eq))
}

func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.inventory.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	out := make([]equipmentResponse, 0, len(list))
	for i := range list {
		out = append(out, toEquipmentResponse(&list[i]))
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *InventoryHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	list, err := h.inventory.ListAvailable(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	out := make([]equipmentResponse, 0, len(list))
	for i := range list {
		out = append(out, toEquipmentResponse(&list[i]))
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *InventoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	eq, err := h.inventory.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toEquipmentResponse(eq))
}

type setTotalRequest struct {
	TotalQuantity int32 `json:"total_quantity"`
}

func (h *InventoryHandler) SetTotal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req setTotalRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	eq, err := h.inventory.SetTotal(r.Context(), id, req.TotalQuantity)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toEquipmentResponse(eq))
}

func (h *InventoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.inventory.Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

type reconcileResponse struct {
	RowsCorrected int                    `json:"rows_corrected"`
	Mismatches    []domain.StockMismatch `json:"mismatches"`
}

func (h *InventoryHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	mismatches, err := h.inventory.Reconcile(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, reconcileResponse{
		RowsCorrected: len(mismatches),
		Mismatches:    mismatches,
	})
}
