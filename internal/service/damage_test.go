package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/domain"
)

func expectDamageLookups(store *mockStore) {
	store.rentals.On("GetByID", mock.Anything, int32(1)).
		Return(&domain.RentalContract{ID: 1, Status: domain.ContractStatusActive}, nil)
	store.equipment.On("GetByID", mock.Anything, int32(2)).
		Return(&domain.EquipmentType{ID: 2, Name: "Escora 3m"}, nil)
	store.damages.On("Create", mock.Anything, mock.AnythingOfType("*domain.DamageReport")).Return(nil)
}

func TestRecordDamageWithQuantityAndDescription(t *testing.T) {
	store := newMockStore()
	svc := NewDamageService(store)
	expectDamageLookups(store)

	report, err := svc.Record(context.Background(), 1, 2, 3, "escoras tortas")
	require.NoError(t, err)
	assert.Equal(t, int32(3), report.DamagedQuantity)
	assert.Equal(t, "escoras tortas", report.ProblemDescription)
}

func TestRecordDamageDescriptionOnly(t *testing.T) {
	store := newMockStore()
	svc := NewDamageService(store)
	expectDamageLookups(store)

	// Damage noticed before the units are counted: quantity zero is fine as
	// long as there is a description.
	report, err := svc.Record(context.Background(), 1, 2, 0, "ferrugem na base, contagem pendente")
	require.NoError(t, err)
	assert.Equal(t, int32(0), report.DamagedQuantity)
	assert.Equal(t, "ferrugem na base, contagem pendente", report.ProblemDescription)
}

func TestRecordDamageQuantityOnly(t *testing.T) {
	store := newMockStore()
	svc := NewDamageService(store)
	expectDamageLookups(store)

	report, err := svc.Record(context.Background(), 1, 2, 4, "")
	require.NoError(t, err)
	assert.Equal(t, int32(4), report.DamagedQuantity)
}

func TestRecordDamageRejectsEmptyReport(t *testing.T) {
	store := newMockStore()
	svc := NewDamageService(store)

	_, err := svc.Record(context.Background(), 1, 2, 0, "   ")
	assert.True(t, domain.IsValidation(err))
	store.damages.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRecordDamageRejectsNegativeQuantity(t *testing.T) {
	store := newMockStore()
	svc := NewDamageService(store)

	_, err := svc.Record(context.Background(), 1, 2, -1, "escoras tortas")
	assert.True(t, domain.IsValidation(err))
	store.damages.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
