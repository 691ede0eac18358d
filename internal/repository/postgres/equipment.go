package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/domain"
	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/logger"
)

type equipmentRepository struct {
	db DBTX
}

const equipmentColumns = `id, name, category, total_quantity, available_quantity, created_on, updated_on`

func (r *equipmentRepository) Create(ctx context.Context, eq *domain.EquipmentType) error {
	query := `INSERT INTO equipment_types (name, category, total_quantity, available_quantity, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, NOW(), NOW()) RETURNING id, created_on, updated_on`
	return r.db.QueryRowContext(ctx, query, eq.Name, eq.Category, eq.TotalQuantity, eq.AvailableQuantity).
		Scan(&eq.ID, &eq.CreatedOn, &eq.UpdatedOn)
}

func (r *equipmentRepository) GetByID(ctx context.Context, id int32) (*domain.EquipmentType, error) {
	eq := &domain.EquipmentType{}
	query := `SELECT ` + equipmentColumns + ` FROM equipment_types WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&eq.ID, &eq.Name, &eq.Category, &eq.TotalQuantity, &eq.AvailableQuantity, &eq.CreatedOn, &eq.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrEquipmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return eq, nil
}

func (r *equipmentRepository) GetByName(ctx context.Context, name string) (*domain.EquipmentType, error) {
	eq := &domain.EquipmentType{}
	query := `SELECT ` + equipmentColumns + ` FROM equipment_types WHERE name = $1`
	err := r.db.QueryRowContext(ctx, query, name).
		Scan(&eq.ID, &eq.Name, &eq.Category, &eq.TotalQuantity, &eq.AvailableQuantity, &eq.CreatedOn, &eq.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrEquipmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return eq, nil
}

func (r *equipmentRepository) ListAll(ctx context.Context) ([]domain.EquipmentType, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment_types ORDER BY name`
	return r.list(ctx, query)
}

func (r *equipmentRepository) ListAvailable(ctx context.Context) ([]domain.EquipmentType, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment_types WHERE available_quantity > 0 ORDER BY name`
	return r.list(ctx, query)
}

func (r *equipmentRepository) ListBelowThreshold(ctx context.Context, fraction float64) ([]domain.EquipmentType, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment_types
	          WHERE total_quantity > 0 AND available_quantity::float / total_quantity < $1
	          ORDER BY name`
	return r.list(ctx, query, fraction)
}

func (r *equipmentRepository) list(ctx context.Context, query string, args ...any) ([]domain.EquipmentType, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.EquipmentType
	for rows.Next() {
		var eq domain.EquipmentType
		if err := rows.Scan(&eq.ID, &eq.Name, &eq.Category, &eq.TotalQuantity, &eq.AvailableQuantity, &eq.CreatedOn, &eq.UpdatedOn); err != nil {
			return nil, err
		}
		items = append(items, eq)
	}
	return items, rows.Err()
}

// Reserve decrements available_quantity with a single conditional update so
// two concurrent reservations can never both succeed on the last units.
func (r *equipmentRepository) Reserve(ctx context.Context, id, qty int32) error {
	if qty <= 0 {
		return domain.NewValidationError("quantity", "must be positive")
	}
	query := `UPDATE equipment_types
	          SET available_quantity = available_quantity - $1, updated_on = NOW()
	          WHERE id = $2 AND available_quantity >= $1`
	logger.DatabaseCall("UPDATE", "equipment_types.reserve", "equipment_type_id", id, "qty", qty)
	res, err := r.db.ExecContext(ctx, query, qty, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return domain.ErrInsufficientStock
	}
	return nil
}

// Release increments available_quantity, refusing any increment that would
// push it past total_quantity. Going over total means a double release or
// corrupted counters, so the call fails rather than clamping silently.
func (r *equipmentRepository) Release(ctx context.Context, id, qty int32) error {
	if qty <= 0 {
		return domain.NewValidationError("quantity", "must be positive")
	}
	query := `UPDATE equipment_types
	          SET available_quantity = available_quantity + $1, updated_on = NOW()
	          WHERE id = $2 AND available_quantity + $1 <= total_quantity`
	logger.DatabaseCall("UPDATE", "equipment_types.release", "equipment_type_id", id, "qty", qty)
	res, err := r.db.ExecContext(ctx, query, qty, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return domain.ErrReleaseExceedsTotal
	}
	return nil
}

// SetTotal adjusts total_quantity only. Keeping available_quantity coherent
// with the new total is the caller's job (restock and writeoff flows differ).
func (r *equipmentRepository) SetTotal(ctx context.Context, id, newTotal int32) error {
	if newTotal < 0 {
		return domain.NewValidationError("total_quantity", "must not be negative")
	}
	query := `UPDATE equipment_types SET total_quantity = $1, updated_on = NOW() WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, newTotal, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrEquipmentNotFound
	}
	return nil
}

func (r *equipmentRepository) SetAvailable(ctx context.Context, id, available int32) error {
	query := `UPDATE equipment_types SET available_quantity = $1, updated_on = NOW() WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, available, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrEquipmentNotFound
	}
	return nil
}

// OpenAllocationTotals sums the units still out per equipment type, counting
// only allocations without a return date on contracts that never completed.
func (r *equipmentRepository) OpenAllocationTotals(ctx context.Context) (map[int32]int32, error) {
	query := `SELECT li.equipment_type_id, COALESCE(SUM(li.quantity), 0)
	          FROM line_item_allocations li
	          JOIN rental_contracts rc ON li.contract_id = rc.id
	          WHERE li.return_date IS NULL AND rc.status != 'completed'
	          GROUP BY li.equipment_type_id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[int32]int32)
	for rows.Next() {
		var id, qty int32
		if err := rows.Scan(&id, &qty); err != nil {
			return nil, err
		}
		totals[id] = qty
	}
	return totals, rows.Err()
}

func (r *equipmentRepository) Delete(ctx context.Context, id int32) error {
	// Referenced equipment must stay; the FK constraint enforces it and the
	// guard here turns the race into a clean error.
	var referenced bool
	check := `SELECT EXISTS(SELECT 1 FROM line_item_allocations WHERE equipment_type_id = $1)`
	if err := r.db.QueryRowContext(ctx, check, id).Scan(&referenced); err != nil {
		return err
	}
	if referenced {
		return domain.NewValidationError("equipment_type", "still referenced by allocations")
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM equipment_types WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrEquipmentNotFound
	}
	return nil
}
