package postgres

import (
	"context"

	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/domain"
)

type reportRepository struct {
	db DBTX
}

func (r *reportRepository) Overview(ctx context.Context) (*domain.OverviewReport, error) {
	rep := &domain.OverviewReport{}
	query := `SELECT COUNT(*), COALESCE(SUM(total_value), 0) FROM rental_contracts`
	err := r.db.QueryRowContext(ctx, query).Scan(&rep.TotalContracts, &rep.TotalRevenue)
	if err != nil {
		return nil, err
	}
	return rep, nil
}

func (r *reportRepository) ByClient(ctx context.Context, clientID int32) ([]domain.ClientReportRow, error) {
	query := `SELECT rc.id, rc.start_date, rc.end_date, rc.total_value, rc.status, et.name, et.category, li.quantity
	          FROM rental_contracts rc
	          JOIN line_item_allocations li ON li.contract_id = rc.id
	          JOIN equipment_types et ON et.id = li.equipment_type_id
	          WHERE rc.client_id = $1
	          ORDER BY rc.start_date DESC, et.name`
	rows, err := r.db.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var report []domain.ClientReportRow
	for rows.Next() {
		var row domain.ClientReportRow
		if err := rows.Scan(&row.ContractID, &row.StartDate, &row.EndDate, &row.TotalValue,
			&row.Status, &row.EquipmentName, &row.Category, &row.Quantity); err != nil {
			return nil, err
		}
		report = append(report, row)
	}
	return report, rows.Err()
}

func (r *reportRepository) EquipmentUsage(ctx context.Context, equipmentTypeID int32) ([]domain.EquipmentUsageRow, error) {
	query := `SELECT rc.id, rc.start_date, rc.end_date, rc.status, et.name, li.quantity
	          FROM rental_contracts rc
	          JOIN line_item_allocations li ON li.contract_id = rc.id
	          JOIN equipment_types et ON et.id = li.equipment_type_id
	          WHERE li.equipment_type_id = $1
	          ORDER BY rc.start_date DESC`
	rows, err := r.db.QueryContext(ctx, query, equipmentTypeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var report []domain.EquipmentUsageRow
	for rows.Next() {
		var row domain.EquipmentUsageRow
		if err := rows.Scan(&row.ContractID, &row.StartDate, &row.EndDate,
			&row.Status, &row.EquipmentName, &row.Quantity); err != nil {
			return nil, err
		}
		report = append(report, row)
	}
	return report, rows.Err()
}

func (r *reportRepository) StatusSummary(ctx context.Context) ([]domain.StatusSummaryRow, error) {
	query := `SELECT status, COUNT(*) FROM rental_contracts GROUP BY status ORDER BY status`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summary []domain.StatusSummaryRow
	for rows.Next() {
		var row domain.StatusSummaryRow
		if err := rows.Scan(&row.Status, &row.TotalContracts); err != nil {
			return nil, err
		}
		summary = append(summary, row)
	}
	return summary, rows.Err()
}
