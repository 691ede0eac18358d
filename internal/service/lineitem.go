package service

import (
	"context"
	"time"

	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/domain"
	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/logger"
	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/repository"
)

type lineItemService struct {
	store repository.Store
	now   func() time.Time
}

func NewLineItemService(store repository.Store) LineItemService {
	return &lineItemService{store: store, now: time.Now}
}

// AddItem attaches more equipment to a running contract, reserving the stock
// and inserting the allocation in one transaction.
func (s *lineItemService) AddItem(ctx context.Context, contractID, equipmentTypeID, quantity int32) (*domain.LineItemAllocation, error) {
	if quantity <= 0 {
		return nil, domain.NewValidationError("quantity", "must be positive")
	}

	alloc := &domain.LineItemAllocation{
		ContractID:      contractID,
		EquipmentTypeID: equipmentTypeID,
		Quantity:        quantity,
		AllocationDate:  s.now(),
	}
	err := s.store.ExecTx(ctx, func(tx repository.Store) error {
		contract, err := tx.Rentals().GetByID(ctx, contractID)
		if err != nil {
			return err
		}
		if contract.Status != domain.ContractStatusActive {
			return domain.ErrContractClosed
		}
		if err := tx.Equipment().Reserve(ctx, equipmentTypeID, quantity); err != nil {
			return err
		}
		return tx.LineItems().Add(ctx, alloc)
	})
	if err != nil {
		return nil, domain.WrapStorage("lineitem.AddItem", err)
	}
	return alloc, nil
}

func (s *lineItemService) ListByContract(ctx context.Context, contractID int32) ([]domain.LineItemAllocation, error) {
	items, err := s.store.LineItems().ListByContract(ctx, contractID)
	return items, domain.WrapStorage("lineitem.ListByContract", err)
}

// MarkReturned closes allocations ahead of the contract itself: one equipment
// type when equipmentTypeID is set, everything still open otherwise. Stock is
// released only for the rows actually closed, so repeating the call cannot
// release twice.
func (s *lineItemService) MarkReturned(ctx context.Context, contractID int32, equipmentTypeID *int32, returnDate time.Time) (int64, error) {
	if returnDate.IsZero() {
		returnDate = s.now()
	}

	var closed int64
	err := s.store.ExecTx(ctx, func(tx repository.Store) error {
		open, err := tx.LineItems().ListOpenByContract(ctx, contractID)
		if err != nil {
			return err
		}
		for _, item := range open {
			if equipmentTypeID != nil && item.EquipmentTypeID != *equipmentTypeID {
				continue
			}
			if err := tx.Equipment().Release(ctx, item.EquipmentTypeID, item.Quantity); err != nil {
				return err
			}
		}
		closed, err = tx.LineItems().MarkReturned(ctx, contractID, equipmentTypeID, returnDate)
		if err != nil {
			return err
		}
		if closed == 0 {
			return domain.ErrNothingToReturn
		}
		return nil
	})
	if err != nil {
		return 0, domain.WrapStorage("lineitem.MarkReturned", err)
	}

	logger.Info("allocations returned", "contract_id", contractID, "rows", closed)
	return closed, nil
}

// UpdateQuantity resizes an open allocation. Growth reserves the extra units
// and fails on insufficient stock; shrinkage releases the difference.
func (s *lineItemService) UpdateQuantity(ctx context.Context, contractID, equipmentTypeID, newQuantity int32) error {
	if newQuantity <= 0 {
		return domain.NewValidationError("quantity", "must be positive")
	}

	err := s.store.ExecTx(ctx, func(tx repository.Store) error {
		item, err := tx.LineItems().Get(ctx, contractID, equipmentTypeID)
		if err != nil {
			return err
		}
		if item.Returned() {
			return domain.ErrNothingToReturn
		}

		delta := newQuantity - item.Quantity
		switch {
		case delta > 0:
			if err := tx.Equipment().Reserve(ctx, equipmentTypeID, delta); err != nil {
				return err
			}
		case delta < 0:
			if err := tx.Equipment().Release(ctx, equipmentTypeID, -delta); err != nil {
				return err
			}
		default:
			return nil
		}
		return tx.LineItems().UpdateQuantity(ctx, contractID, equipmentTypeID, newQuantity)
	})
	return domain.WrapStorage("lineitem.UpdateQuantity", err)
}
