package domain

import "time"

// DamageReport is an append-only record of a problem with rented units.
// Damage is logged for follow-up; it is never written off from stock here.
type DamageReport struct {
	ID                 int32     `json:"id"`
	ContractID         int32     `json:"contract_id"`
	EquipmentTypeID    int32     `json:"equipment_type_id"`
	DamagedQuantity    int32     `json:"damaged_quantity"`
	ProblemDescription string    `json:"problem_description"`
	RecordedDate       time.Time `json:"recorded_date"`
}
