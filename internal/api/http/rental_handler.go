package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/domain"
	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/service"
)

// RentalHandler exposes the contract lifecycle over JSON.
type RentalHandler struct {
	rentals service.RentalService
}

func NewRentalHandler(rentals service.RentalService) *RentalHandler {
	return &RentalHandler{rentals: rentals}
}

const dateLayout = "2006-01-02"

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, domain.NewValidationError(field, "expected YYYY-MM-DD")
	}
	return t, nil
}

func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(name, "must be a positive integer")
	}
	return int32(id), nil
}

type createContractRequest struct {
	ClientID             int32              `json:"client_id"`
	Client               *service.NewClient `json:"client,omitempty"`
	StartDate            string             `json:"start_date"`
	EndDate              string             `json:"end_date"`
	TotalValue           float64            `json:"total_value"`
	AmountPaidAtDelivery float64            `json:"amount_paid_at_delivery"`
	Items                []struct {
		EquipmentTypeID int32  `json:"equipment_type_id"`
		EquipmentName   string `json:"equipment_name"`
		Quantity        int32  `json:"quantity"`
	} `json:"items"`
}

func (h *RentalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createContractRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	start, err := parseDate("start_date", req.StartDate)
	if err != nil {
		respondError(w, r, err)
		return
	}
	end, err := parseDate("end_date", req.EndDate)
	if err != nil {
		respondError(w, r, err)
		return
	}

	nc := &service.NewContract{
		ClientID:             req.ClientID,
		Client:               req.Client,
		StartDate:            start,
		EndDate:              end,
		TotalValue:           req.TotalValue,
		AmountPaidAtDelivery: req.AmountPaidAtDelivery,
	}
	for _, item := range req.Items {
		nc.Items = append(nc.Items, service.NewContractItem{
			EquipmentTypeID: item.EquipmentTypeID,
			EquipmentName:   item.EquipmentName,
			Quantity:        item.Quantity,
		})
	}

	contract, err := h.rentals.Create(r.Context(), nc)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, contract)
}

func (h *RentalHandler) List(w http.ResponseWriter, r *http.Request) {
	details, err := h.rentals.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, details)
}

func (h *RentalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	details, err := h.rentals.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, details)
}

func (h *RentalHandler) ListByClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	details, err := h.rentals.ListByClient(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, details)
}

func (h *RentalHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	details, err := h.rentals.ListActive(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, details)
}

func (h *RentalHandler) ListOverdue(w http.ResponseWriter, r *http.Request) {
	details, err := h.rentals.ListOverdue(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, details)
}

type extendRequest struct {
	AdditionalDays int32   `json:"additional_days"`
	NewTotalValue  float64 `json:"new_total_value"`
	DiscountAmount float64 `json:"discount_amount"`
	Reason         string  `json:"reason"`
}

func (h *RentalHandler) Extend(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req extendRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	contract, err := h.rentals.Extend(r.Context(), id, req.AdditionalDays, req.NewTotalValue, req.DiscountAmount, req.Reason)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, contract)
}

func (h *RentalHandler) ConfirmReturn(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	contract, err := h.rentals.ConfirmReturn(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, contract)
}

type finalizeEarlyRequest struct {
	NewEndDate    string  `json:"new_end_date"`
	NewFinalValue float64 `json:"new_final_value"`
	Reason        string  `json:"reason"`
}

func (h *RentalHandler) FinalizeEarly(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req finalizeEarlyRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	endDate, err := parseDate("new_end_date", req.NewEndDate)
	if err != nil {
		respondError(w, r, err)
		return
	}
	contract, err := h.rentals.FinalizeEarly(r.Context(), id, endDate, req.NewFinalValue, req.Reason)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, contract)
}

func (h *RentalHandler) Reactivate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	contract, err := h.rentals.Reactivate(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, contract)
}
