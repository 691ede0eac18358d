package domain

import "time"

type ContractStatus string

const (
	ContractStatusActive    ContractStatus = "active"
	ContractStatusCompleted ContractStatus = "completed"
	// ContractStatusPending is never written to storage. It is the read-time
	// classification of an active contract whose end date has passed without a
	// recorded return.
	ContractStatusPending ContractStatus = "pending"
)

// RentalContract is one rental agreement with a client over a date range.
// EndDate is mutable (extension, early finalize); the value it had at creation
// is kept in OriginalEndDate.
type RentalContract struct {
	ID                    int32          `json:"id"`
	ClientID              int32          `json:"client_id"`
	StartDate             time.Time      `json:"start_date"`
	EndDate               time.Time      `json:"end_date"`
	OriginalEndDate       time.Time      `json:"original_end_date"`
	TotalValue            float64        `json:"total_value"`
	AmountPaidAtDelivery  float64        `json:"amount_paid_at_delivery"`
	AmountDueAtClose      float64        `json:"amount_due_at_close"`
	AdjustedTotalValue    *float64       `json:"adjusted_total_value,omitempty"`
	DiscountAmount        float64        `json:"discount_amount"`
	AdjustmentReason      string         `json:"adjustment_reason,omitempty"`
	ActualReturnDate      *time.Time     `json:"actual_return_date,omitempty"`
	Status                ContractStatus `json:"status"`
	CreatedOn             time.Time      `json:"created_on"`
	UpdatedOn             time.Time      `json:"updated_on"`
}

// FinalValue resolves the value the contract closes at: the adjusted value
// once an extension or early finalize has set it, the original total before.
func (r *RentalContract) FinalValue() float64 {
	if r.AdjustedTotalValue != nil {
		return *r.AdjustedTotalValue
	}
	return r.TotalValue
}

// DerivedStatus classifies the contract for read-time projections. Stored
// state only ever holds active/completed; "pending" (overdue) is computed
// here so it can never drift from the dates.
func (r *RentalContract) DerivedStatus(today time.Time) ContractStatus {
	if r.Status == ContractStatusCompleted {
		return ContractStatusCompleted
	}
	if r.EndDate.Before(TruncateToDay(today)) {
		return ContractStatusPending
	}
	return ContractStatusActive
}

// DaysLate returns how many whole days the contract is past its end date,
// zero when it is not overdue.
func (r *RentalContract) DaysLate(today time.Time) int {
	if r.Status == ContractStatusCompleted {
		return 0
	}
	late := int(TruncateToDay(today).Sub(TruncateToDay(r.EndDate)).Hours() / 24)
	if late < 0 {
		return 0
	}
	return late
}

// TruncateToDay drops the time-of-day component. Overdue comparisons work on
// whole days, so callers truncate "now" before comparing or querying against
// end dates.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ContractDetails is the read-time projection joining client info and the
// contract's allocations, with the financial fields resolved.
type ContractDetails struct {
	Contract        RentalContract       `json:"contract"`
	ClientName      string               `json:"client_name"`
	ClientAddress   string               `json:"client_address"`
	ClientPhone     string               `json:"client_phone"`
	Items           []LineItemAllocation `json:"items"`
	Status          ContractStatus       `json:"status"`
	FinalValue      float64              `json:"final_value"`
	DaysLate        int                  `json:"days_late"`
	LatePenalty     float64              `json:"late_penalty"`
	AmountStillOwed float64              `json:"amount_still_owed"`
}
