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

func testDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestRentalService(store *mockStore, today time.Time) *rentalService {
	return &rentalService{
		store:         store,
		lateFeePerDay: 10,
		now:           func() time.Time { return today },
	}
}

func validNewContract() *NewContract {
	return &NewContract{
		ClientID:             1,
		StartDate:            testDate(2025, 6, 1),
		EndDate:              testDate(2025, 6, 30),
		TotalValue:           1000,
		AmountPaidAtDelivery: 200,
		Items: []NewContractItem{
			{EquipmentTypeID: 10, Quantity: 5},
			{EquipmentTypeID: 20, Quantity: 3},
		},
	}
}

func TestCreateReservesEveryItem(t *testing.T) {
	store := newMockStore()
	svc := newTestRentalService(store, testDate(2025, 6, 1))

	store.clients.On("GetByID", mock.Anything, int32(1)).Return(&domain.Client{ID: 1, Name: "Obra Central"}, nil)
	store.rentals.On("Create", mock.Anything, mock.AnythingOfType("*domain.RentalContract")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.RentalContract).ID = 42
		}).Return(nil)
	store.equipment.On("GetByID", mock.Anything, int32(10)).Return(&domain.EquipmentType{ID: 10}, nil)
	store.equipment.On("GetByID", mock.Anything, int32(20)).Return(&domain.EquipmentType{ID: 20}, nil)
	store.equipment.On("Reserve", mock.Anything, int32(10), int32(5)).Return(nil)
	store.equipment.On("Reserve", mock.Anything, int32(20), int32(3)).Return(nil)
	store.lineItems.On("Add", mock.Anything, mock.AnythingOfType("*domain.LineItemAllocation")).Return(nil)

	contract, err := svc.Create(context.Background(), validNewContract())
	require.NoError(t, err)
	assert.Equal(t, int32(42), contract.ID)
	assert.Equal(t, domain.ContractStatusActive, contract.Status)
	assert.Equal(t, testDate(2025, 6, 30), contract.OriginalEndDate)
	assert.Equal(t, 800.0, contract.AmountDueAtClose)
	store.equipment.AssertNumberOfCalls(t, "Reserve", 2)
	store.lineItems.AssertNumberOfCalls(t, "Add", 2)
}

func TestCreateFailsWhenAnyItemShortOnStock(t *testing.T) {
	store := newMockStore()
	svc := newTestRentalService(store, testDate(2025, 6, 1))

	store.clients.On("GetByID", mock.Anything, int32(1)).Return(&domain.Client{ID: 1}, nil)
	store.rentals.On("Create", mock.Anything, mock.Anything).Return(nil)
	store.equipment.On("GetByID", mock.Anything, int32(10)).Return(&domain.EquipmentType{ID: 10}, nil)
	store.equipment.On("GetByID", mock.Anything, int32(20)).Return(&domain.EquipmentType{ID: 20}, nil)
	store.equipment.On("Reserve", mock.Anything, int32(10), int32(5)).Return(nil)
	store.equipment.On("Reserve", mock.Anything, int32(20), int32(3)).Return(domain.ErrInsufficientStock)
	store.lineItems.On("Add", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.Create(context.Background(), validNewContract())
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestCreateResolvesItemsByName(t *testing.T) {
	store := newMockStore()
	svc := newTestRentalService(store, testDate(2025, 6, 1))

	req := validNewContract()
	req.Items = []NewContractItem{{EquipmentName: "Andaime 1m", Quantity: 2}}

	store.clients.On("GetByID", mock.Anything, int32(1)).Return(&domain.Client{ID: 1}, nil)
	store.rentals.On("Create", mock.Anything, mock.Anything).Return(nil)
	store.equipment.On("GetByName", mock.Anything, "Andaime 1m").Return(&domain.EquipmentType{ID: 77}, nil)
	store.equipment.On("Reserve", mock.Anything, int32(77), int32(2)).Return(nil)
	store.lineItems.On("Add", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.Create(context.Background(), req)
	assert.NoError(t, err)
	store.equipment.AssertCalled(t, "Reserve", mock.Anything, int32(77), int32(2))
}

func TestCreateValidation(t *testing.T) {
	store := newMockStore()
	svc := newTestRentalService(store, testDate(2025, 6, 1))

	tests := []struct {
		name   string
		mutate func(*NewContract)
	}{
		{"no client", func(c *NewContract) { c.ClientID = 0 }},
		{"end before start", func(c *NewContract) { c.EndDate = c.StartDate.AddDate(0, 0, -1) }},
		{"end equals start", func(c *NewContract) { c.EndDate = c.StartDate }},
		{"negative total", func(c *NewContract) { c.TotalValue = -1 }},
		{"paid exceeds total", func(c *NewContract) { c.AmountPaidAtDelivery = 2000 }},
		{"no items", func(c *NewContract) { c.Items = nil }},
		{"zero quantity", func(c *NewContract) { c.Items[0].Quantity = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validNewContract()
			tt.mutate(req)
			_, err := svc.Create(context.Background(), req)
			assert.True(t, domain.IsValidation(err), "expected validation error, got %v", err)
		})
	}
}

func TestExtendRecomputesMoney(t *testing.T) {
	store := newMockStore()
	svc := newTestRentalService(store, testDate(2025, 6, 15))

	contract := &domain.RentalContract{
		ID:         7,
		Status:     domain.ContractStatusActive,
		EndDate:    testDate(2025, 6, 30),
		TotalValue: 800,
	}
	store.rentals.On("GetByID", mock.Anything, int32(7)).Return(contract, nil)
	store.rentals.On("Update", mock.Anything, contract).Return(nil)

	updated, err := svc.Extend(context.Background(), 7, 5, 1000, 100, "obra prorrogada")
	require.NoError(t, err)
	assert.Equal(t, testDate(2025, 7, 5), updated.EndDate)
	require.NotNil(t, updated.AdjustedTotalValue)
	assert.Equal(t, 1000.0, *updated.AdjustedTotalValue)
	assert.Equal(t, 100.0, updated.DiscountAmount)
	assert.Equal(t, 900.0, updated.AmountDueAtClose)
	// No stock movement on extension.
	store.equipment.AssertNotCalled(t, "Reserve", mock.Anything, mock.Anything, mock.Anything)
	store.equipment.AssertNotCalled(t, "Release", mock.Anything, mock.Anything, mock.Anything)
}

func TestExtendRejectsCompletedContract(t *testing.T) {
	store := newMockStore()
	svc := newTestRentalService(store, testDate(2025, 6, 15))

	store.rentals.On("GetByID", mock.Anything, int32(7)).
		Return(&domain.RentalContract{ID: 7, Status: domain.ContractStatusCompleted}, nil)

	_, err := svc.Extend(context.Background(), 7, 5, 1000, 0, "")
	assert.ErrorIs(t, err, domain.ErrContractClosed)
}

func TestConfirmReturnReleasesAndCompletes(t *testing.T) {
	store := newMockStore()
	today := testDate(2025, 6, 20)
	svc := newTestRentalService(store, today)

	contract := &domain.RentalContract{ID: 7, Status: domain.ContractStatusActive, StartDate: testDate(2025, 6, 1)}
	store.rentals.On("GetByID", mock.Anything, int32(7)).Return(contract, nil)
	store.lineItems.On("ListOpenByContract", mock.Anything, int32(7)).Return([]domain.LineItemAllocation{
		{ContractID: 7, EquipmentTypeID: 10, Quantity: 5},
		{ContractID: 7, EquipmentTypeID: 20, Quantity: 3},
	}, nil)
	store.equipment.On("Release", mock.Anything, int32(10), int32(5)).Return(nil)
	store.equipment.On("Release", mock.Anything, int32(20), int32(3)).Return(nil)
	store.lineItems.On("MarkReturned", mock.Anything, int32(7), ptr(10), today).Return(int64(1), nil)
	store.lineItems.On("MarkReturned", mock.Anything, int32(7), ptr(20), today).Return(int64(1), nil)
	store.rentals.On("Update", mock.Anything, contract).Return(nil)

	updated, err := svc.ConfirmReturn(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, domain.ContractStatusCompleted, updated.Status)
	require.NotNil(t, updated.ActualReturnDate)
	assert.Equal(t, today, *updated.ActualReturnDate)
	store.lineItems.AssertNumberOfCalls(t, "MarkReturned", 2)
}

func TestConfirmReturnIsNoOpOnCompleted(t *testing.T) {
	store := newMockStore()
	svc := newTestRentalService(store, testDate(2025, 6, 20))

	store.rentals.On("GetByID", mock.Anything, int32(7)).
		Return(&domain.RentalContract{ID: 7, Status: domain.ContractStatusCompleted}, nil)

	_, err := svc.ConfirmReturn(context.Background(), 7)
	assert.ErrorIs(t, err, domain.ErrContractClosed)
	// No stock may move on a repeated confirmation.
	store.equipment.AssertNotCalled(t, "Release", mock.Anything, mock.Anything, mock.Anything)
	store.lineItems.AssertNotCalled(t, "MarkReturned", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmReturnToleratesRejectedRelease(t *testing.T) {
	store := newMockStore()
	today := testDate(2025, 6, 20)
	svc := newTestRentalService(store, today)

	contract := &domain.RentalContract{ID: 7, Status: domain.ContractStatusActive, StartDate: testDate(2025, 6, 1)}
	store.rentals.On("GetByID", mock.Anything, int32(7)).Return(contract, nil)
	store.lineItems.On("ListOpenByContract", mock.Anything, int32(7)).Return([]domain.LineItemAllocation{
		{ContractID: 7, EquipmentTypeID: 10, Quantity: 5},
		{ContractID: 7, EquipmentTypeID: 20, Quantity: 3},
	}, nil)
	store.equipment.On("Release", mock.Anything, int32(10), int32(5)).Return(domain.ErrReleaseExceedsTotal)
	store.equipment.On("Release", mock.Anything, int32(20), int32(3)).Return(nil)
	store.lineItems.On("MarkReturned", mock.Anything, int32(7), ptr(20), today).Return(int64(1), nil)
	store.rentals.On("Update", mock.Anything, contract).Return(nil)

	updated, err := svc.ConfirmReturn(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, domain.ContractStatusCompleted, updated.Status)
	store.equipment.AssertNumberOfCalls(t, "Release", 2)
	// The item whose release was rejected keeps its return_date open: only
	// the released item gets stamped, never the whole contract.
	store.lineItems.AssertNotCalled(t, "MarkReturned", mock.Anything, int32(7), ptr(10), today)
	store.lineItems.AssertNotCalled(t, "MarkReturned", mock.Anything, int32(7), (*int32)(nil), today)
	store.lineItems.AssertNumberOfCalls(t, "MarkReturned", 1)
}

func TestFinalizeEarlySetsAdjustedValue(t *testing.T) {
	store := newMockStore()
	svc := newTestRentalService(store, testDate(2025, 6, 20))

	contract := &domain.RentalContract{
		ID:        7,
		Status:    domain.ContractStatusActive,
		StartDate: testDate(2025, 6, 1),
		EndDate:   testDate(2025, 6, 30),
	}
	newEnd := testDate(2025, 6, 18)
	store.rentals.On("GetByID", mock.Anything, int32(7)).Return(contract, nil)
	store.lineItems.On("ListOpenByContract", mock.Anything, int32(7)).Return([]domain.LineItemAllocation{}, nil)
	store.rentals.On("Update", mock.Anything, contract).Return(nil)

	updated, err := svc.FinalizeEarly(context.Background(), 7, newEnd, 600, "devolução antecipada")
	require.NoError(t, err)
	assert.Equal(t, newEnd, updated.EndDate)
	require.NotNil(t, updated.AdjustedTotalValue)
	assert.Equal(t, 600.0, *updated.AdjustedTotalValue)
	assert.Equal(t, "devolução antecipada", updated.AdjustmentReason)
	require.NotNil(t, updated.ActualReturnDate)
	assert.Equal(t, newEnd, *updated.ActualReturnDate)
}

func TestReactivateReReservesAllItems(t *testing.T) {
	store := newMockStore()
	svc := newTestRentalService(store, testDate(2025, 6, 20))

	returned := testDate(2025, 6, 18)
	contract := &domain.RentalContract{ID: 7, Status: domain.ContractStatusCompleted, ActualReturnDate: &returned}
	store.rentals.On("GetByID", mock.Anything, int32(7)).Return(contract, nil)
	store.lineItems.On("ListByContract", mock.Anything, int32(7)).Return([]domain.LineItemAllocation{
		{ContractID: 7, EquipmentTypeID: 10, Quantity: 5, ReturnDate: &returned},
	}, nil)
	store.equipment.On("Reserve", mock.Anything, int32(10), int32(5)).Return(nil)
	store.lineItems.On("Reopen", mock.Anything, int32(7)).Return(int64(1), nil)
	store.rentals.On("Update", mock.Anything, contract).Return(nil)

	updated, err := svc.Reactivate(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, domain.ContractStatusActive, updated.Status)
	assert.Nil(t, updated.ActualReturnDate)
}

func TestReactivateFailsOnInsufficientStock(t *testing.T) {
	store := newMockStore()
	svc := newTestRentalService(store, testDate(2025, 6, 20))

	returned := testDate(2025, 6, 18)
	contract := &domain.RentalContract{ID: 7, Status: domain.ContractStatusCompleted}
	store.rentals.On("GetByID", mock.Anything, int32(7)).Return(contract, nil)
	store.lineItems.On("ListByContract", mock.Anything, int32(7)).Return([]domain.LineItemAllocation{
		{ContractID: 7, EquipmentTypeID: 10, Quantity: 5, ReturnDate: &returned},
	}, nil)
	store.equipment.On("Reserve", mock.Anything, int32(10), int32(5)).Return(domain.ErrInsufficientStock)

	_, err := svc.Reactivate(context.Background(), 7)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	store.lineItems.AssertNotCalled(t, "Reopen", mock.Anything, mock.Anything)
}

func TestGetComputesLateness(t *testing.T) {
	store := newMockStore()
	svc := newTestRentalService(store, testDate(2025, 6, 20))

	contract := &domain.RentalContract{
		ID:                   7,
		ClientID:             1,
		Status:               domain.ContractStatusActive,
		EndDate:              testDate(2025, 6, 15),
		TotalValue:           1000,
		AmountPaidAtDelivery: 200,
	}
	store.rentals.On("GetByID", mock.Anything, int32(7)).Return(contract, nil)
	store.clients.On("GetByID", mock.Anything, int32(1)).Return(&domain.Client{ID: 1, Name: "Obra Central"}, nil)
	store.lineItems.On("ListByContract", mock.Anything, int32(7)).Return([]domain.LineItemAllocation{}, nil)

	details, err := svc.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, domain.ContractStatusPending, details.Status)
	assert.Equal(t, 5, details.DaysLate)
	assert.Equal(t, 50.0, details.LatePenalty)
	assert.Equal(t, 1000.0-200.0+50.0, details.AmountStillOwed)
	assert.Equal(t, "Obra Central", details.ClientName)
}

func TestListOverdueQueriesByWholeDay(t *testing.T) {
	store := newMockStore()
	// Midday: a contract due today must not be flagged, so the query gets the
	// day-truncated date, not the wall clock.
	svc := newTestRentalService(store, time.Date(2025, 6, 15, 15, 4, 0, 0, time.UTC))

	store.rentals.On("ListOverdue", mock.Anything, testDate(2025, 6, 15)).
		Return([]domain.RentalContract{}, nil)

	overdue, err := svc.ListOverdue(context.Background())
	require.NoError(t, err)
	assert.Empty(t, overdue)
	store.rentals.AssertExpectations(t)
}
