package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/domain"
)

func newTestLineItemService(store *mockStore) *lineItemService {
	return &lineItemService{
		store: store,
		now:   func() time.Time { return testDate(2025, 6, 15) },
	}
}

func TestAddItemReservesStock(t *testing.T) {
	store := newMockStore()
	svc := newTestLineItemService(store)

	store.rentals.On("GetByID", mock.Anything, int32(1)).Return(&domain.RentalContract{
		ID: 1, Status: domain.ContractStatusActive,
	}, nil)
	store.equipment.On("Reserve", mock.Anything, int32(4), int32(3)).Return(nil)
	store.lineItems.On("Add", mock.Anything, mock.AnythingOfType("*domain.LineItemAllocation")).Return(nil)

	alloc, err := svc.AddItem(context.Background(), 1, 4, 3)
	require.NoError(t, err)
	assert.Equal(t, int32(1), alloc.ContractID)
	assert.Equal(t, int32(4), alloc.EquipmentTypeID)
	assert.Equal(t, int32(3), alloc.Quantity)
	assert.Equal(t, testDate(2025, 6, 15), alloc.AllocationDate)
}

func TestAddItemRejectsClosedContract(t *testing.T) {
	store := newMockStore()
	svc := newTestLineItemService(store)

	store.rentals.On("GetByID", mock.Anything, int32(1)).Return(&domain.RentalContract{
		ID: 1, Status: domain.ContractStatusCompleted,
	}, nil)

	_, err := svc.AddItem(context.Background(), 1, 4, 3)
	assert.ErrorIs(t, err, domain.ErrContractClosed)
	store.equipment.AssertNotCalled(t, "Reserve", mock.Anything, mock.Anything, mock.Anything)
}

func TestMarkReturnedReleasesOnlyOpenRows(t *testing.T) {
	store := newMockStore()
	svc := newTestLineItemService(store)
	returnDate := testDate(2025, 6, 14)

	store.lineItems.On("ListOpenByContract", mock.Anything, int32(1)).Return([]domain.LineItemAllocation{
		{ContractID: 1, EquipmentTypeID: 2, Quantity: 5},
		{ContractID: 1, EquipmentTypeID: 3, Quantity: 2},
	}, nil)
	store.equipment.On("Release", mock.Anything, int32(2), int32(5)).Return(nil)
	store.equipment.On("Release", mock.Anything, int32(3), int32(2)).Return(nil)
	store.lineItems.On("MarkReturned", mock.Anything, int32(1), (*int32)(nil), returnDate).Return(int64(2), nil)

	closed, err := svc.MarkReturned(context.Background(), 1, nil, returnDate)
	require.NoError(t, err)
	assert.Equal(t, int64(2), closed)
	store.equipment.AssertExpectations(t)
}

func TestMarkReturnedFiltersByEquipmentType(t *testing.T) {
	store := newMockStore()
	svc := newTestLineItemService(store)
	returnDate := testDate(2025, 6, 14)
	target := int32(3)

	store.lineItems.On("ListOpenByContract", mock.Anything, int32(1)).Return([]domain.LineItemAllocation{
		{ContractID: 1, EquipmentTypeID: 2, Quantity: 5},
		{ContractID: 1, EquipmentTypeID: 3, Quantity: 2},
	}, nil)
	store.equipment.On("Release", mock.Anything, int32(3), int32(2)).Return(nil)
	store.lineItems.On("MarkReturned", mock.Anything, int32(1), &target, returnDate).Return(int64(1), nil)

	closed, err := svc.MarkReturned(context.Background(), 1, &target, returnDate)
	require.NoError(t, err)
	assert.Equal(t, int64(1), closed)
	store.equipment.AssertNotCalled(t, "Release", mock.Anything, int32(2), mock.Anything)
}

func TestMarkReturnedNothingOpen(t *testing.T) {
	store := newMockStore()
	svc := newTestLineItemService(store)
	returnDate := testDate(2025, 6, 14)

	store.lineItems.On("ListOpenByContract", mock.Anything, int32(1)).Return([]domain.LineItemAllocation{}, nil)
	store.lineItems.On("MarkReturned", mock.Anything, int32(1), (*int32)(nil), returnDate).Return(int64(0), nil)

	_, err := svc.MarkReturned(context.Background(), 1, nil, returnDate)
	assert.ErrorIs(t, err, domain.ErrNothingToReturn)
}

func TestUpdateQuantityGrowthReservesDelta(t *testing.T) {
	store := newMockStore()
	svc := newTestLineItemService(store)

	store.lineItems.On("Get", mock.Anything, int32(1), int32(2)).Return(&domain.LineItemAllocation{
		ContractID: 1, EquipmentTypeID: 2, Quantity: 5,
	}, nil)
	store.equipment.On("Reserve", mock.Anything, int32(2), int32(3)).Return(nil)
	store.lineItems.On("UpdateQuantity", mock.Anything, int32(1), int32(2), int32(8)).Return(nil)

	err := svc.UpdateQuantity(context.Background(), 1, 2, 8)
	assert.NoError(t, err)
	store.equipment.AssertExpectations(t)
}

func TestUpdateQuantityShrinkReleasesDelta(t *testing.T) {
	store := newMockStore()
	svc := newTestLineItemService(store)

	store.lineItems.On("Get", mock.Anything, int32(1), int32(2)).Return(&domain.LineItemAllocation{
		ContractID: 1, EquipmentTypeID: 2, Quantity: 5,
	}, nil)
	store.equipment.On("Release", mock.Anything, int32(2), int32(3)).Return(nil)
	store.lineItems.On("UpdateQuantity", mock.Anything, int32(1), int32(2), int32(2)).Return(nil)

	err := svc.UpdateQuantity(context.Background(), 1, 2, 2)
	assert.NoError(t, err)
	store.equipment.AssertExpectations(t)
}

func TestUpdateQuantityFailsOnInsufficientStock(t *testing.T) {
	store := newMockStore()
	svc := newTestLineItemService(store)

	store.lineItems.On("Get", mock.Anything, int32(1), int32(2)).Return(&domain.LineItemAllocation{
		ContractID: 1, EquipmentTypeID: 2, Quantity: 5,
	}, nil)
	store.equipment.On("Reserve", mock.Anything, int32(2), int32(10)).Return(domain.ErrInsufficientStock)

	err := svc.UpdateQuantity(context.Background(), 1, 2, 15)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	store.lineItems.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateQuantityRejectsReturnedItem(t *testing.T) {
	store := newMockStore()
	svc := newTestLineItemService(store)
	returned := testDate(2025, 6, 10)

	store.lineItems.On("Get", mock.Anything, int32(1), int32(2)).Return(&domain.LineItemAllocation{
		ContractID: 1, EquipmentTypeID: 2, Quantity: 5, ReturnDate: &returned,
	}, nil)

	err := svc.UpdateQuantity(context.Background(), 1, 2, 8)
	assert.ErrorIs(t, err, domain.ErrNothingToReturn)
}
