package postgres

import (
	"context"

	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/domain"
)

type damageReportRepository struct {
	db DBTX
}

func (r *damageReportRepository) Create(ctx context.Context, dr *domain.DamageReport) error {
	query := `INSERT INTO damage_reports (contract_id, equipment_type_id, damaged_quantity, problem_description, recorded_date)
	          VALUES ($1, $2, $3, $4, NOW()) RETURNING id, recorded_date`
	return r.db.QueryRowContext(ctx, query,
		dr.ContractID, dr.EquipmentTypeID, dr.DamagedQuantity, dr.ProblemDescription).
		Scan(&dr.ID, &dr.RecordedDate)
}

func (r *damageReportRepository) ListByContract(ctx context.Context, contractID int32) ([]domain.DamageReport, error) {
	query := `SELECT id, contract_id, equipment_type_id, damaged_quantity, problem_description, recorded_date
	          FROM damage_reports WHERE contract_id = $1 ORDER BY recorded_date DESC`
	return r.list(ctx, query, contractID)
}

func (r *damageReportRepository) ListAll(ctx context.Context) ([]domain.DamageReport, error) {
	query := `SELECT id, contract_id, equipment_type_id, damaged_quantity, problem_description, recorded_date
	          FROM damage_reports ORDER BY recorded_date DESC`
	return r.list(ctx, query)
}

func (r *damageReportRepository) list(ctx context.Context, query string, args ...any) ([]domain.DamageReport, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []domain.DamageReport
	for rows.Next() {
		var dr domain.DamageReport
		if err := rows.Scan(&dr.ID, &dr.ContractID, &dr.EquipmentTypeID, &dr.DamagedQuantity, &dr.ProblemDescription, &dr.RecordedDate); err != nil {
			return nil, err
		}
		reports = append(reports, dr)
	}
	return reports, rows.Err()
}
