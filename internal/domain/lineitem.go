package domain

import "time"

type AllocationStatus string

const (
	AllocationStatusReturned AllocationStatus = "returned"
	AllocationStatusLate     AllocationStatus = "late"
	AllocationStatusAwaiting AllocationStatus = "awaiting"
)

// LineItemAllocation records how many units of one equipment type are held
// out under one contract. One row per equipment type per contract; a nil
// ReturnDate means the units are still out.
type LineItemAllocation struct {
	ID              int32      `json:"id"`
	ContractID      int32      `json:"contract_id"`
	EquipmentTypeID int32      `json:"equipment_type_id"`
	EquipmentName   string     `json:"equipment_name,omitempty"`
	Quantity        int32      `json:"quantity"`
	AllocationDate  time.Time  `json:"allocation_date"`
	ReturnDate      *time.Time `json:"return_date,omitempty"`
}

// Returned reports whether the allocation has been closed out.
func (a *LineItemAllocation) Returned() bool {
	return a.ReturnDate != nil
}

// Status derives the per-row state from the return date and the owning
// contract's end date.
func (a *LineItemAllocation) Status(contractEndDate, today time.Time) AllocationStatus {
	if a.ReturnDate != nil {
		return AllocationStatusReturned
	}
	if contractEndDate.Before(TruncateToDay(today)) {
		return AllocationStatusLate
	}
	return AllocationStatusAwaiting
}
