package domain

import "time"

// OverviewReport aggregates the whole contract base.
type OverviewReport struct {
	TotalContracts int32   `json:"total_contracts"`
	TotalRevenue   float64 `json:"total_revenue"`
}

// ClientReportRow is one rented item in a client's rental history.
type ClientReportRow struct {
	ContractID    int32          `json:"contract_id"`
	StartDate     time.Time      `json:"start_date"`
	EndDate       time.Time      `json:"end_date"`
	TotalValue    float64        `json:"total_value"`
	Status        ContractStatus `json:"status"`
	EquipmentName string         `json:"equipment_name"`
	Category      string         `json:"category"`
	Quantity      int32          `json:"quantity"`
}

// EquipmentUsageRow is one contract that held units of an equipment type.
type EquipmentUsageRow struct {
	ContractID    int32          `json:"contract_id"`
	StartDate     time.Time      `json:"start_date"`
	EndDate       time.Time      `json:"end_date"`
	Status        ContractStatus `json:"status"`
	EquipmentName string         `json:"equipment_name"`
	Quantity      int32          `json:"quantity"`
}

// StatusSummaryRow counts contracts per stored status.
type StatusSummaryRow struct {
	Status         ContractStatus `json:"status"`
	TotalContracts int32          `json:"total_contracts"`
}
