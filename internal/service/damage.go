package service

import (
	"context"
	"strings"

	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/domain"
	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/repository"
)

type damageService struct {
	store repository.Store
}

func NewDamageService(store repository.Store) DamageService {
	return &damageService{store: store}
}

// Record appends a damage report. Stock is deliberately untouched: damaged
// units are settled through a later total-quantity adjustment once the damage
// is assessed. A report carries a quantity, a description, or both; a
// description-only report (quantity zero) covers damage found before the
// units are counted.
func (s *damageService) Record(ctx context.Context, contractID, equipmentTypeID, damagedQuantity int32, description string) (*domain.DamageReport, error) {
	description = strings.TrimSpace(description)
	if damagedQuantity < 0 {
		return nil, domain.NewValidationError("damaged_quantity", "must not be negative")
	}
	if damagedQuantity == 0 && description == "" {
		return nil, domain.NewValidationError("damage_report", "damaged_quantity or problem_description is required")
	}

	report := &domain.DamageReport{
		ContractID:         contractID,
		EquipmentTypeID:    equipmentTypeID,
		DamagedQuantity:    damagedQuantity,
		ProblemDescription: description,
	}
	err := s.store.ExecTx(ctx, func(tx repository.Store) error {
		if _, err := tx.Rentals().GetByID(ctx, contractID); err != nil {
			return err
		}
		if _, err := tx.Equipment().GetByID(ctx, equipmentTypeID); err != nil {
			return err
		}
		return tx.Damages().Create(ctx, report)
	})
	if err != nil {
		return nil, domain.WrapStorage("damage.Record", err)
	}
	return report, nil
}

func (s *damageService) ListByContract(ctx context.Context, contractID int32) ([]domain.DamageReport, error) {
	reports, err := s.store.Damages().ListByContract(ctx, contractID)
	return reports, domain.WrapStorage("damage.ListByContract", err)
}

func (s *damageService) ListAll(ctx context.Context) ([]domain.DamageReport, error) {
	reports, err := s.store.Damages().ListAll(ctx)
	return reports, domain.WrapStorage("damage.ListAll", err)
}
