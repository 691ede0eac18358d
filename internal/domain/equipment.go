package domain

import "time"

type EquipmentStatus string

const (
	EquipmentStatusAvailable          EquipmentStatus = "available"
	EquipmentStatusPartiallyAvailable EquipmentStatus = "partially_available"
	EquipmentStatusUnavailable        EquipmentStatus = "unavailable"
)

// EquipmentType is one row of the shared inventory pool. Quantities are per
// type, not per physical unit. AvailableQuantity is mutated only through the
// inventory reserve/release path.
type EquipmentType struct {
	ID                int32     `json:"id"`
	Name              string    `json:"name"`
	Category          string    `json:"category"`
	TotalQuantity     int32     `json:"total_quantity"`
	AvailableQuantity int32     `json:"available_quantity"`
	CreatedOn         time.Time `json:"created_on"`
	UpdatedOn         time.Time `json:"updated_on"`
}

// AvailabilityStatus derives the stock status from the two quantity columns.
func (e *EquipmentType) AvailabilityStatus() EquipmentStatus {
	switch {
	case e.AvailableQuantity <= 0:
		return EquipmentStatusUnavailable
	case e.AvailableQuantity < e.TotalQuantity:
		return EquipmentStatusPartiallyAvailable
	default:
		return EquipmentStatusAvailable
	}
}

// StockMismatch reports one equipment type whose stored available quantity
// disagreed with the value derived from open allocations.
type StockMismatch struct {
	EquipmentTypeID   int32  `json:"equipment_type_id"`
	Name              string `json:"name"`
	StoredAvailable   int32  `json:"stored_available"`
	ExpectedAvailable int32  `json:"expected_available"`
}
