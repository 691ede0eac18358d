package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/domain"
)

type lineItemRepository struct {
	db DBTX
}

const lineItemColumns = `li.id, li.contract_id, li.equipment_type_id, et.name, li.quantity, li.allocation_date, li.return_date`

const lineItemSelect = `SELECT ` + lineItemColumns + `
	FROM line_item_allocations li
	JOIN equipment_types et ON li.equipment_type_id = et.id`

func (r *lineItemRepository) Add(ctx context.Context, item *domain.LineItemAllocation) error {
	query := `INSERT INTO line_item_allocations (contract_id, equipment_type_id, quantity, allocation_date)
	          VALUES ($1, $2, $3, $4) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		item.ContractID, item.EquipmentTypeID, item.Quantity, item.AllocationDate).Scan(&item.ID)
}

func (r *lineItemRepository) Get(ctx context.Context, contractID, equipmentTypeID int32) (*domain.LineItemAllocation, error) {
	item := &domain.LineItemAllocation{}
	query := lineItemSelect + ` WHERE li.contract_id = $1 AND li.equipment_type_id = $2`
	var returnDate sql.NullTime
	err := r.db.QueryRowContext(ctx, query, contractID, equipmentTypeID).
		Scan(&item.ID, &item.ContractID, &item.EquipmentTypeID, &item.EquipmentName, &item.Quantity, &item.AllocationDate, &returnDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrEquipmentNotFound
	}
	if err != nil {
		return nil, err
	}
	if returnDate.Valid {
		t := returnDate.Time
		item.ReturnDate = &t
	}
	return item, nil
}

func (r *lineItemRepository) ListByContract(ctx context.Context, contractID int32) ([]domain.LineItemAllocation, error) {
	query := lineItemSelect + ` WHERE li.contract_id = $1 ORDER BY et.name`
	return r.list(ctx, query, contractID)
}

func (r *lineItemRepository) ListOpenByContract(ctx context.Context, contractID int32) ([]domain.LineItemAllocation, error) {
	query := lineItemSelect + ` WHERE li.contract_id = $1 AND li.return_date IS NULL ORDER BY et.name`
	return r.list(ctx, query, contractID)
}

func (r *lineItemRepository) list(ctx context.Context, query string, args ...any) ([]domain.LineItemAllocation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.LineItemAllocation
	for rows.Next() {
		var item domain.LineItemAllocation
		var returnDate sql.NullTime
		if err := rows.Scan(&item.ID, &item.ContractID, &item.EquipmentTypeID, &item.EquipmentName, &item.Quantity, &item.AllocationDate, &returnDate); err != nil {
			return nil, err
		}
		if returnDate.Valid {
			t := returnDate.Time
			item.ReturnDate = &t
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// MarkReturned closes one open row or, with a nil equipmentTypeID, every open
// row of the contract. Already-returned rows are never touched, so a repeat
// call reports zero rows instead of moving return dates.
func (r *lineItemRepository) MarkReturned(ctx context.Context, contractID int32, equipmentTypeID *int32, returnDate time.Time) (int64, error) {
	query := `UPDATE line_item_allocations SET return_date = $1
	          WHERE contract_id = $2 AND return_date IS NULL`
	args := []any{returnDate, contractID}
	if equipmentTypeID != nil {
		query += ` AND equipment_type_id = $3`
		args = append(args, *equipmentTypeID)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *lineItemRepository) Reopen(ctx context.Context, contractID int32) (int64, error) {
	query := `UPDATE line_item_allocations SET return_date = NULL
	          WHERE contract_id = $1 AND return_date IS NOT NULL`
	res, err := r.db.ExecContext(ctx, query, contractID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *lineItemRepository) UpdateQuantity(ctx context.Context, contractID, equipmentTypeID, newQty int32) error {
	query := `UPDATE line_item_allocations SET quantity = $1
	          WHERE contract_id = $2 AND equipment_type_id = $3 AND return_date IS NULL`
	res, err := r.db.ExecContext(ctx, query, newQty, contractID, equipmentTypeID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNothingToReturn
	}
	return nil
}
