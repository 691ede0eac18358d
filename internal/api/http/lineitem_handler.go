package http

import (
	"net/http"
	"time"

	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/service"
)

// LineItemHandler exposes per-item allocation operations.
type LineItemHandler struct {
	lineItems service.LineItemService
}

func NewLineItemHandler(lineItems service.LineItemService) *LineItemHandler {
	return &LineItemHandler{lineItems: lineItems}
}

type addItemRequest struct {
	ContractID      int32 `json:"contract_id"`
	EquipmentTypeID int32 `json:"equipment_type_id"`
	Quantity        int32 `json:"quantity"`
}

func (h *LineItemHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	item, err := h.lineItems.AddItem(r.Context(), req.ContractID, req.EquipmentTypeID, req.Quantity)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

func (h *LineItemHandler) ListByContract(w http.ResponseWriter, r *http.Request) {
	contractID, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	items, err := h.lineItems.ListByContract(r.Context(), contractID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

type markReturnedRequest struct {
	EquipmentTypeID *int32 `json:"equipment_type_id,omitempty"`
	ReturnDate      string `json:"return_date,omitempty"`
}

type markReturnedResponse struct {
	RowsReturned int64 `json:"rows_returned"`
}

func (h *LineItemHandler) MarkReturned(w http.ResponseWriter, r *http.Request) {
	contractID, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req markReturnedRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	var returnDate time.Time
	if req.ReturnDate != "" {
		returnDate, err = parseDate("return_date", req.ReturnDate)
		if err != nil {
			respondError(w, r, err)
			return
		}
	}
	rows, err := h.lineItems.MarkReturned(r.Context(), contractID, req.EquipmentTypeID, returnDate)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, markReturnedResponse{RowsReturned: rows})
}

type updateQuantityRequest struct {
	EquipmentTypeID int32 `json:"equipment_type_id"`
	Quantity        int32 `json:"quantity"`
}

func (h *LineItemHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	contractID, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req updateQuantityRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.lineItems.UpdateQuantity(r.Context(), contractID, req.EquipmentTypeID, req.Quantity); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
