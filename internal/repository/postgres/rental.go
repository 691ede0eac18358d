package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/domain"
)

type rentalRepository struct {
	db DBTX
}

const rentalColumns = `id, client_id, start_date, end_date, original_end_date, total_value,
	amount_paid_at_delivery, amount_due_at_close, adjusted_total_value, discount_amount,
	adjustment_reason, actual_return_date, status, created_on, updated_on`

func (r *rentalRepository) Create(ctx context.Context, rc *domain.RentalContract) error {
	query := `INSERT INTO rental_contracts
	          (client_id, start_date, end_date, original_end_date, total_value, amount_paid_at_delivery,
	           amount_due_at_close, discount_amount, adjustment_reason, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW()) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		rc.ClientID, rc.StartDate, rc.EndDate, rc.OriginalEndDate, rc.TotalValue,
		rc.AmountPaidAtDelivery, rc.AmountDueAtClose, rc.DiscountAmount, rc.AdjustmentReason, rc.Status,
	).Scan(&rc.ID)
}

func (r *rentalRepository) GetByID(ctx context.Context, id int32) (*domain.RentalContract, error) {
	rc := &domain.RentalContract{}
	query := `SELECT ` + rentalColumns + ` FROM rental_contracts WHERE id = $1`
	err := r.scanOne(r.db.QueryRowContext(ctx, query, id), rc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrContractNotFound
	}
	if err != nil {
		return nil, err
	}
	return rc, nil
}

func (r *rentalRepository) Update(ctx context.Context, rc *domain.RentalContract) error {
	query := `UPDATE rental_contracts
	          SET end_date = $1, total_value = $2, amount_paid_at_delivery = $3, amount_due_at_close = $4,
	              adjusted_total_value = $5, discount_amount = $6, adjustment_reason = $7,
	              actual_return_date = $8, status = $9, updated_on = NOW()
	          WHERE id = $10`
	res, err := r.db.ExecContext(ctx, query,
		rc.EndDate, rc.TotalValue, rc.AmountPaidAtDelivery, rc.AmountDueAtClose,
		rc.AdjustedTotalValue, rc.DiscountAmount, rc.AdjustmentReason,
		rc.ActualReturnDate, rc.Status, rc.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrContractNotFound
	}
	return nil
}

func (r *rentalRepository) ListAll(ctx context.Context) ([]domain.RentalContract, error) {
	query := `SELECT ` + rentalColumns + ` FROM rental_contracts ORDER BY created_on DESC`
	return r.list(ctx, query)
}

func (r *rentalRepository) ListByClient(ctx context.Context, clientID int32) ([]domain.RentalContract, error) {
	query := `SELECT ` + rentalColumns + ` FROM rental_contracts WHERE client_id = $1 ORDER BY created_on DESC`
	return r.list(ctx, query, clientID)
}

func (r *rentalRepository) ListActive(ctx context.Context) ([]domain.RentalContract, error) {
	query := `SELECT ` + rentalColumns + ` FROM rental_contracts WHERE status = $1 ORDER BY end_date`
	return r.list(ctx, query, domain.ContractStatusActive)
}

// ListOverdue returns contracts past their end date without a recorded
// return. today must be day-truncated: end_date is a DATE, and a contract
// due today is not overdue until tomorrow.
func (r *rentalRepository) ListOverdue(ctx context.Context, today time.Time) ([]domain.RentalContract, error) {
	query := `SELECT ` + rentalColumns + ` FROM rental_contracts
	          WHERE end_date < $1 AND status != $2 ORDER BY end_date`
	return r.list(ctx, query, today, domain.ContractStatusCompleted)
}

func (r *rentalRepository) list(ctx context.Context, query string, args ...any) ([]domain.RentalContract, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contracts []domain.RentalContract
	for rows.Next() {
		var rc domain.RentalContract
		if err := r.scanRow(rows, &rc); err != nil {
			return nil, err
		}
		contracts = append(contracts, rc)
	}
	return contracts, rows.Err()
}

func (r *rentalRepository) scanOne(row *sql.Row, rc *domain.RentalContract) error {
	var adjusted sql.NullFloat64
	var reason sql.NullString
	var returned sql.NullTime
	err := row.Scan(&rc.ID, &rc.ClientID, &rc.StartDate, &rc.EndDate, &rc.OriginalEndDate,
		&rc.TotalValue, &rc.AmountPaidAtDelivery, &rc.AmountDueAtClose, &adjusted, &rc.DiscountAmount,
		&reason, &returned, &rc.Status, &rc.CreatedOn, &rc.UpdatedOn)
	if err != nil {
		return err
	}
	applyNullables(rc, adjusted, reason, returned)
	return nil
}

func (r *rentalRepository) scanRow(rows *sql.Rows, rc *domain.RentalContract) error {
	var adjusted sql.NullFloat64
	var reason sql.NullString
	var returned sql.NullTime
	err := rows.Scan(&rc.ID, &rc.ClientID, &rc.StartDate, &rc.EndDate, &rc.OriginalEndDate,
		&rc.TotalValue, &rc.AmountPaidAtDelivery, &rc.AmountDueAtClose, &adjusted, &rc.DiscountAmount,
		&reason, &returned, &rc.Status, &rc.CreatedOn, &rc.UpdatedOn)
	if err != nil {
		return err
	}
	applyNullables(rc, adjusted, reason, returned)
	return nil
}

func applyNullables(rc *domain.RentalContract, adjusted sql.NullFloat64, reason sql.NullString, returned sql.NullTime) {
	if adjusted.Valid {
		v := adjusted.Float64
		rc.AdjustedTotalValue = &v
	}
	if reason.Valid {
		rc.AdjustmentReason = reason.String
	}
	if returned.Valid {
		t := returned.Time
		rc.ActualReturnDate = &t
	}
}
