package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/domain"
	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/logger"
	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/metrics"
	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/repository"
)

type inventoryService struct {
	store repository.Store
}

func NewInventoryService(store repository.Store) InventoryService {
	return &inventoryService{store: store}
}

func (s *inventoryService) Create(ctx context.Context, eq *domain.EquipmentType) error {
	eq.Name = strings.TrimSpace(eq.Name)
	if eq.Name == "" {
		return domain.NewValidationError("name", "must not be empty")
	}
	if eq.TotalQuantity < 0 {
		return domain.NewValidationError("total_quantity", "must not be negative")
	}
	// New stock starts fully available.
	eq.AvailableQuantity = eq.TotalQuantity
	return domain.WrapStorage("inventory.Create", s.store.Equipment().Create(ctx, eq))
}

func (s *inventoryService) Get(ctx context.Context, id int32) (*domain.EquipmentType, error) {
	eq, err := s.store.Equipment().GetByID(ctx, id)
	return eq, domain.WrapStorage("inventory.Get", err)
}

func (s *inventoryService) List(ctx context.Context) ([]domain.EquipmentType, error) {
	list, err := s.store.Equipment().ListAll(ctx)
	return list, domain.WrapStorage("inventory.List", err)
}

func (s *inventoryService) ListAvailable(ctx context.Context) ([]domain.EquipmentType, error) {
	list, err := s.store.Equipment().ListAvailable(ctx)
	return list, domain.WrapStorage("inventory.ListAvailable", err)
}

// SetTotal resizes the stock pool. The available count moves by the same
// delta so units currently out on contracts stay accounted for; shrinking
// below the number of units out is rejected.
func (s *inventoryService) SetTotal(ctx context.Context, id, newTotal int32) (*domain.EquipmentType, error) {
	if newTotal < 0 {
		return nil, domain.NewValidationError("total_quantity", "must not be negative")
	}
	var updated *domain.EquipmentType
	err := s.store.ExecTx(ctx, func(tx repository.Store) error {
		eq, err := tx.Equipment().GetByID(ctx, id)
		if err != nil {
			return err
		}
		delta := newTotal - eq.TotalQuantity
		newAvailable := eq.AvailableQuantity + delta
		if newAvailable < 0 {
			out := eq.TotalQuantity - eq.AvailableQuantity
			return domain.NewValidationError("total_quantity",
				fmt.Sprintf("cannot shrink below the %d units currently rented out", out))
		}
		// Shrinking lowers available first so the quantities stay coherent at
		// every point; growing raises total first for the same reason.
		if delta < 0 {
			if err := tx.Equipment().SetAvailable(ctx, id, newAvailable); err != nil {
				return err
			}
			if err := tx.Equipment().SetTotal(ctx, id, newTotal); err != nil {
				return err
			}
		} else {
			if err := tx.Equipment().SetTotal(ctx, id, newTotal); err != nil {
				return err
			}
			if err := tx.Equipment().SetAvailable(ctx, id, newAvailable); err != nil {
				return err
			}
		}
		eq.TotalQuantity = newTotal
		eq.AvailableQuantity = newAvailable
		updated = eq
		return nil
	})
	if err != nil {
		return nil, domain.WrapStorage("inventory.SetTotal", err)
	}
	return updated, nil
}

func (s *inventoryService) Delete(ctx context.Context, id int32) error {
	return domain.WrapStorage("inventory.Delete", s.store.Equipment().Delete(ctx, id))
}

// Reconcile recomputes each equipment type's availability from its open
// allocations and patches any row that drifted. The stored counter is the
// fast path; the allocations are the source of truth.
func (s *inventoryService) Reconcile(ctx context.Context) ([]domain.StockMismatch, error) {
	var mismatches []domain.StockMismatch
	err := s.store.ExecTx(ctx, func(tx repository.Store) error {
		mismatches = nil
		equipment, err := tx.Equipment().ListAll(ctx)
		if err != nil {
			return err
		}
		openTotals, err := tx.Equipment().OpenAllocationTotals(ctx)
		if err != nil {
			return err
		}
		for _, eq := range equipment {
			expected := eq.TotalQuantity - openTotals[eq.ID]
			if expected < 0 {
				expected = 0
			}
			if expected == eq.AvailableQuantity {
				continue
			}
			logger.Warn("stock drift detected",
				"equipment_type_id", eq.ID,
				"name", eq.Name,
				"stored_available", eq.AvailableQuantity,
				"expected_available", expected)
			if err := tx.Equipment().SetAvailable(ctx, eq.ID, expected); err != nil {
				return err
			}
			mismatches = append(mismatches, domain.StockMismatch{
				EquipmentTypeID:   eq.ID,
				Name:              eq.Name,
				StoredAvailable:   eq.AvailableQuantity,
				ExpectedAvailable: expected,
			})
		}
		return nil
	})
	if err != nil {
		return nil, domain.WrapStorage("inventory.Reconcile", err)
	}
	for range mismatches {
		metrics.StockMismatchesFound.Inc()
	}
	if len(mismatches) > 0 {
		logger.Info("inventory reconciled", "rows_corrected", len(mismatches))
	}
	return mismatches, nil
}
