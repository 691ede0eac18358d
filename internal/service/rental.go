package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/domain"
	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/logger"
	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/metrics"
	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/repository"
)

type rentalService struct {
	store         repository.Store
	lateFeePerDay float64
	now           func() time.Time
}

func NewRentalService(store repository.Store, lateFeePerDay float64) RentalService {
	return &rentalService{
		store:         store,
		lateFeePerDay: lateFeePerDay,
		now:           time.Now,
	}
}

// Create opens a contract and reserves stock for every item inside one
// transaction. Any item failing to reserve rolls the whole contract back, so
// a contract never exists with only part of its equipment held.
func (s *rentalService) Create(ctx context.Context, req *NewContract) (*domain.RentalContract, error) {
	if err := validateNewContract(req); err != nil {
		return nil, err
	}

	contract := &domain.RentalContract{
		ClientID:             req.ClientID,
		StartDate:            req.StartDate,
		EndDate:              req.EndDate,
		OriginalEndDate:      req.EndDate,
		TotalValue:           req.TotalValue,
		AmountPaidAtDelivery: req.AmountPaidAtDelivery,
		AmountDueAtClose:     req.TotalValue - req.AmountPaidAtDelivery,
		Status:               domain.ContractStatusActive,
	}

	err := s.store.ExecTx(ctx, func(tx repository.Store) error {
		if req.Client != nil {
			client := &domain.Client{
				Name:      req.Client.Name,
				Address:   req.Client.Address,
				Phone:     req.Client.Phone,
				Reference: req.Client.Reference,
			}
			if err := tx.Clients().Create(ctx, client); err != nil {
				return err
			}
			contract.ClientID = client.ID
		} else {
			if _, err := tx.Clients().GetByID(ctx, contract.ClientID); err != nil {
				return err
			}
		}

		if err := tx.Rentals().Create(ctx, contract); err != nil {
			return err
		}

		for _, item := range req.Items {
			eq, err := resolveEquipment(ctx, tx, item)
			if err != nil {
				return err
			}
			if err := tx.Equipment().Reserve(ctx, eq.ID, item.Quantity); err != nil {
				return err
			}
			alloc := &domain.LineItemAllocation{
				ContractID:      contract.ID,
				EquipmentTypeID: eq.ID,
				Quantity:        item.Quantity,
				AllocationDate:  req.StartDate,
			}
			if err := tx.LineItems().Add(ctx, alloc); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			metrics.InsufficientStockRejections.Inc()
		}
		return nil, domain.WrapStorage("rental.Create", err)
	}

	metrics.ContractsCreated.Inc()
	logger.Info("contract created",
		"contract_id", contract.ID,
		"client_id", contract.ClientID,
		"items", len(req.Items))
	return contract, nil
}

func validateNewContract(req *NewContract) error {
	if req.Client == nil && req.ClientID == 0 {
		return domain.NewValidationError("client", "client_id or inline client is required")
	}
	if req.Client != nil && strings.TrimSpace(req.Client.Name) == "" {
		return domain.NewValidationError("client.name", "must not be empty")
	}
	if !req.StartDate.Before(req.EndDate) {
		return domain.NewValidationError("end_date", "must be after start_date")
	}
	if req.TotalValue < 0 {
		return domain.NewValidationError("total_value", "must not be negative")
	}
	if req.AmountPaidAtDelivery < 0 || req.AmountPaidAtDelivery > req.TotalValue {
		return domain.NewValidationError("amount_paid_at_delivery", "must be between zero and total_value")
	}
	if len(req.Items) == 0 {
		return domain.NewValidationError("items", "at least one item is required")
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return domain.NewValidationError("items.quantity", "must be positive")
		}
		if item.EquipmentTypeID == 0 && strings.TrimSpace(item.EquipmentName) == "" {
			return domain.NewValidationError("items", "equipment_type_id or equipment_name is required")
		}
	}
	return nil
}

func resolveEquipment(ctx context.Context, tx repository.Store, item NewContractItem) (*domain.EquipmentType, error) {
	if item.EquipmentTypeID != 0 {
		return tx.Equipment().GetByID(ctx, item.EquipmentTypeID)
	}
	return tx.Equipment().GetByName(ctx, strings.TrimSpace(item.EquipmentName))
}

func (s *rentalService) Get(ctx context.Context, id int32) (*domain.ContractDetails, error) {
	contract, err := s.store.Rentals().GetByID(ctx, id)
	if err != nil {
		return nil, domain.WrapStorage("rental.Get", err)
	}
	details, err := s.buildDetails(ctx, contract)
	if err != nil {
		return nil, domain.WrapStorage("rental.Get", err)
	}
	return details, nil
}

func (s *rentalService) List(ctx context.Context) ([]domain.ContractDetails, error) {
	contracts, err := s.store.Rentals().ListAll(ctx)
	if err != nil {
		return nil, domain.WrapStorage("rental.List", err)
	}
	return s.buildDetailsList(ctx, "rental.List", contracts)
}

func (s *rentalService) ListByClient(ctx context.Context, clientID int32) ([]domain.ContractDetails, error) {
	contracts, err := s.store.Rentals().ListByClient(ctx, clientID)
	if err != nil {
		return nil, domain.WrapStorage("rental.ListByClient", err)
	}
	return s.buildDetailsList(ctx, "rental.ListByClient", contracts)
}

func (s *rentalService) ListActive(ctx context.Context) ([]domain.ContractDetails, error) {
	contracts, err := s.store.Rentals().ListActive(ctx)
	if err != nil {
		return nil, domain.WrapStorage("rental.ListActive", err)
	}
	return s.buildDetailsList(ctx, "rental.ListActive", contracts)
}

func (s *rentalService) ListOverdue(ctx context.Context) ([]domain.ContractDetails, error) {
	contracts, err := s.store.Rentals().ListOverdue(ctx, domain.TruncateToDay(s.now()))
	if err != nil {
		return nil, domain.WrapStorage("rental.ListOverdue", err)
	}
	return s.buildDetailsList(ctx, "rental.ListOverdue", contracts)
}

func (s *rentalService) buildDetailsList(ctx context.Context, op string, contracts []domain.RentalContract) ([]domain.ContractDetails, error) {
	details := make([]domain.ContractDetails, 0, len(contracts))
	for i := range contracts {
		d, err := s.buildDetails(ctx, &contracts[i])
		if err != nil {
			return nil, domain.WrapStorage(op, err)
		}
		details = append(details, *d)
	}
	return details, nil
}

// buildDetails joins client and allocations onto the contract and resolves
// every derived field. Status and lateness are computed from dates at read
// time; only active/completed ever reach storage.
func (s *rentalService) buildDetails(ctx context.Context, contract *domain.RentalContract) (*domain.ContractDetails, error) {
	client, err := s.store.Clients().GetByID(ctx, contract.ClientID)
	if err != nil {
		return nil, err
	}
	items, err := s.store.LineItems().ListByContract(ctx, contract.ID)
	if err != nil {
		return nil, err
	}

	today := s.now()
	daysLate := contract.DaysLate(today)
	penalty := float64(daysLate) * s.lateFeePerDay
	final := contract.FinalValue()

	return &domain.ContractDetails{
		Contract:        *contract,
		ClientName:      client.Name,
		ClientAddress:   client.Address,
		ClientPhone:     client.Phone,
		Items:           items,
		Status:          contract.DerivedStatus(today),
		FinalValue:      final,
		DaysLate:        daysLate,
		LatePenalty:     penalty,
		AmountStillOwed: final - contract.AmountPaidAtDelivery + penalty,
	}, nil
}

// Extend pushes the end date out and rewrites the money fields. Stock is
// untouched: the units are already out under the same allocations.
func (s *rentalService) Extend(ctx context.Context, id, additionalDays int32, newTotal, discount float64, reason string) (*domain.RentalContract, error) {
	if additionalDays <= 0 {
		return nil, domain.NewValidationError("additional_days", "must be positive")
	}
	if newTotal < 0 {
		return nil, domain.NewValidationError("new_total_value", "must not be negative")
	}
	if discount < 0 || discount > newTotal {
		return nil, domain.NewValidationError("discount_amount", "must be between zero and the new total")
	}

	var contract *domain.RentalContract
	err := s.store.ExecTx(ctx, func(tx repository.Store) error {
		var err error
		contract, err = tx.Rentals().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if contract.Status != domain.ContractStatusActive {
			return domain.ErrContractClosed
		}

		adjusted := newTotal
		contract.EndDate = contract.EndDate.AddDate(0, 0, int(additionalDays))
		contract.AdjustedTotalValue = &adjusted
		contract.DiscountAmount = discount
		contract.AdjustmentReason = reason
		contract.AmountDueAtClose = newTotal - discount
		return tx.Rentals().Update(ctx, contract)
	})
	if err != nil {
		return nil, domain.WrapStorage("rental.Extend", err)
	}

	logger.Info("contract extended",
		"contract_id", id,
		"additional_days", additionalDays,
		"new_end_date", contract.EndDate.Format("2006-01-02"))
	return contract, nil
}

// ConfirmReturn closes the contract: every open allocation is stamped
// returned and its stock released, then the contract goes to completed. A
// release that would overflow the stock pool is logged and skipped so one bad
// counter cannot block the client's return; the skipped item keeps its
// return_date open and the nightly reconciliation settles the drift.
func (s *rentalService) ConfirmReturn(ctx context.Context, id int32) (*domain.RentalContract, error) {
	return s.closeContract(ctx, "rental.ConfirmReturn", id, nil, nil, "")
}

// FinalizeEarly is ConfirmReturn with the end date pulled in and the final
// value renegotiated.
func (s *rentalService) FinalizeEarly(ctx context.Context, id int32, newEndDate time.Time, newFinalValue float64, reason string) (*domain.RentalContract, error) {
	if newFinalValue < 0 {
		return nil, domain.NewValidationError("new_final_value", "must not be negative")
	}
	return s.closeContract(ctx, "rental.FinalizeEarly", id, &newEndDate, &newFinalValue, reason)
}

func (s *rentalService) closeContract(ctx context.Context, op string, id int32, newEndDate *time.Time, newFinalValue *float64, reason string) (*domain.RentalContract, error) {
	var contract *domain.RentalContract
	returnDate := s.now()
	if newEndDate != nil {
		returnDate = *newEndDate
	}

	err := s.store.ExecTx(ctx, func(tx repository.Store) error {
		var err error
		contract, err = tx.Rentals().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if contract.Status == domain.ContractStatusCompleted {
			return domain.ErrContractClosed
		}
		if newEndDate != nil && newEndDate.Before(contract.StartDate) {
			return domain.NewValidationError("new_end_date", "must not precede start_date")
		}

		open, err := tx.LineItems().ListOpenByContract(ctx, id)
		if err != nil {
			return err
		}
		for _, item := range open {
			if err := tx.Equipment().Release(ctx, item.EquipmentTypeID, item.Quantity); err != nil {
				if errors.Is(err, domain.ErrReleaseExceedsTotal) {
					// Leave the row open: its units were never accepted back
					// into the pool.
					logger.Warn("stock release skipped on return",
						"contract_id", id,
						"equipment_type_id", item.EquipmentTypeID,
						"quantity", item.Quantity)
					continue
				}
				return err
			}
			eqID := item.EquipmentTypeID
			if _, err := tx.LineItems().MarkReturned(ctx, id, &eqID, returnDate); err != nil {
				return err
			}
		}

		contract.Status = domain.ContractStatusCompleted
		contract.ActualReturnDate = &returnDate
		if newEndDate != nil {
			contract.EndDate = *newEndDate
		}
		if newFinalValue != nil {
			contract.AdjustedTotalValue = newFinalValue
			contract.AdjustmentReason = reason
		}
		return tx.Rentals().Update(ctx, contract)
	})
	if err != nil {
		return nil, domain.WrapStorage(op, err)
	}

	logger.Info("contract completed", "contract_id", id, "return_date", returnDate.Format("2006-01-02"))
	return contract, nil
}

// Reactivate reopens a completed contract: every allocation is re-reserved
// and its return date cleared. Insufficient stock for any item rolls the
// whole reactivation back.
func (s *rentalService) Reactivate(ctx context.Context, id int32) (*domain.RentalContract, error) {
	var contract *domain.RentalContract
	err := s.store.ExecTx(ctx, func(tx repository.Store) error {
		var err error
		contract, err = tx.Rentals().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if contract.Status != domain.ContractStatusCompleted {
			return domain.NewValidationError("status", "only completed contracts can be reactivated")
		}

		items, err := tx.LineItems().ListByContract(ctx, id)
		if err != nil {
			return err
		}
		for _, item := range items {
			if err := tx.Equipment().Reserve(ctx, item.EquipmentTypeID, item.Quantity); err != nil {
				return err
			}
		}
		if _, err := tx.LineItems().Reopen(ctx, id); err != nil {
			return err
		}

		contract.Status = domain.ContractStatusActive
		contract.ActualReturnDate = nil
		return tx.Rentals().Update(ctx, contract)
	})
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			metrics.InsufficientStockRejections.Inc()
		}
		return nil, domain.WrapStorage("rental.Reactivate", err)
	}

	logger.Info("contract reactivated", "contract_id", id)
	return contract, nil
}
