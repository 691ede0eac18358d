package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/domain"
	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/repository"
)

// mockStore satisfies repository.Store for service tests. ExecTx simply runs
// fn against the same store, since transaction scoping is the real store's
// concern.
type mockStore struct {
	equipment     *mockEquipmentRepo
	clients       *mockClientRepo
	rentals       *mockRentalRepo
	lineItems     *mockLineItemRepo
	damages       *mockDamageRepo
	notifications *mockNotificationRepo
	reports       *mockReportRepo
}

func newMockStore() *mockStore {
	return &mockStore{
		equipment:     &mockEquipmentRepo{},
		clients:       &mockClientRepo{},
		rentals:       &mockRentalRepo{},
		lineItems:     &mockLineItemRepo{},
		damages:       &mockDamageRepo{},
		notifications: &mockNotificationRepo{},
		reports:       &mockReportRepo{},
	}
}

func (s *mockStore) Equipment() repository.EquipmentRepository        { return s.equipment }
func (s *mockStore) Clients() repository.ClientRepository             { return s.clients }
func (s *mockStore) Rentals() repository.RentalRepository             { return s.rentals }
func (s *mockStore) LineItems() repository.LineItemRepository         { return s.lineItems }
func (s *mockStore) Damages() repository.DamageReportRepository       { return s.damages }
func (s *mockStore) Notifications() repository.NotificationRepository { return s.notifications }
func (s *mockStore) Reports() repository.ReportRepository             { return s.reports }

func (s *mockStore) ExecTx(ctx context.Context, fn func(repository.Store) error) error {
	return fn(s)
}

type mockEquipmentRepo struct{ mock.Mock }

func (m *mockEquipmentRepo) Create(ctx context.Context, eq *domain.EquipmentType) error {
	return m.Called(ctx, eq).Error(0)
}

func (m *mockEquipmentRepo) GetByID(ctx context.Context, id int32) (*domain.EquipmentType, error) {
	args := m.Called(ctx, id)
	if eq := args.Get(0); eq != nil {
		return eq.(*domain.EquipmentType), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEquipmentRepo) GetByName(ctx context.Context, name string) (*domain.EquipmentType, error) {
	args := m.Called(ctx, name)
	if eq := args.Get(0); eq != nil {
		return eq.(*domain.EquipmentType), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEquipmentRepo) ListAll(ctx context.Context) ([]domain.EquipmentType, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.EquipmentType), args.Error(1)
}

func (m *mockEquipmentRepo) ListAvailable(ctx context.Context) ([]domain.EquipmentType, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.EquipmentType), args.Error(1)
}

func (m *mockEquipmentRepo) ListBelowThreshold(ctx context.Context, fraction float64) ([]domain.EquipmentType, error) {
	args := m.Called(ctx, fraction)
	return args.Get(0).([]domain.EquipmentType), args.Error(1)
}

func (m *mockEquipmentRepo) Reserve(ctx context.Context, id, qty int32) error {
	return m.Called(ctx, id, qty).Error(0)
}

func (m *mockEquipmentRepo) Release(ctx context.Context, id, qty int32) error {
	return m.Called(ctx, id, qty).Error(0)
}

func (m *mockEquipmentRepo) SetTotal(ctx context.Context, id, newTotal int32) error {
	return m.Called(ctx, id, newTotal).Error(0)
}

func (m *mockEquipmentRepo) SetAvailable(ctx context.Context, id, available int32) error {
	return m.Called(ctx, id, available).Error(0)
}

func (m *mockEquipmentRepo) OpenAllocationTotals(ctx context.Context) (map[int32]int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[int32]int32), args.Error(1)
}

func (m *mockEquipmentRepo) Delete(ctx context.Context, id int32) error {
	return m.Called(ctx, id).Error(0)
}

type mockClientRepo struct{ mock.Mock }

func (m *mockClientRepo) Create(ctx context.Context, c *domain.Client) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockClientRepo) GetByID(ctx context.Context, id int32) (*domain.Client, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*domain.Client), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockClientRepo) List(ctx context.Context) ([]domain.Client, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *mockClientRepo) Update(ctx context.Context, c *domain.Client) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockClientRepo) Delete(ctx context.Context, id int32) error {
	return m.Called(ctx, id).Error(0)
}

type mockRentalRepo struct{ mock.Mock }

func (m *mockRentalRepo) Create(ctx context.Context, rc *domain.RentalContract) error {
	return m.Called(ctx, rc).Error(0)
}

func (m *mockRentalRepo) GetByID(ctx context.Context, id int32) (*domain.RentalContract, error) {
	args := m.Called(ctx, id)
	if rc := args.Get(0); rc != nil {
		return rc.(*domain.RentalContract), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRentalRepo) Update(ctx context.Context, rc *domain.RentalContract) error {
	return m.Called(ctx, rc).Error(0)
}

func (m *mockRentalRepo) ListAll(ctx context.Context) ([]domain.RentalContract, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.RentalContract), args.Error(1)
}

func (m *mockRentalRepo) ListByClient(ctx context.Context, clientID int32) ([]domain.RentalContract, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).([]domain.RentalContract), args.Error(1)
}

func (m *mockRentalRepo) ListActive(ctx context.Context) ([]domain.RentalContract, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.RentalContract), args.Error(1)
}

func (m *mockRentalRepo) ListOverdue(ctx context.Context, today time.Time) ([]domain.RentalContract, error) {
	args := m.Called(ctx, today)
	return args.Get(0).([]domain.RentalContract), args.Error(1)
}

type mockLineItemRepo struct{ mock.Mock }

func (m *mockLineItemRepo) Add(ctx context.Context, item *domain.LineItemAllocation) error {
	return m.Called(ctx, item).Error(0)
}

func (m *mockLineItemRepo) Get(ctx context.Context, contractID, equipmentTypeID int32) (*domain.LineItemAllocation, error) {
	args := m.Called(ctx, contractID, equipmentTypeID)
	if item := args.Get(0); item != nil {
		return item.(*domain.LineItemAllocation), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLineItemRepo) ListByContract(ctx context.Context, contractID int32) ([]domain.LineItemAllocation, error) {
	args := m.Called(ctx, contractID)
	return args.Get(0).([]domain.LineItemAllocation), args.Error(1)
}

func (m *mockLineItemRepo) ListOpenByContract(ctx context.Context, contractID int32) ([]domain.LineItemAllocation, error) {
	args := m.Called(ctx, contractID)
	return args.Get(0).([]domain.LineItemAllocation), args.Error(1)
}

func (m *mockLineItemRepo) MarkReturned(ctx context.Context, contractID int32, equipmentTypeID *int32, returnDate time.Time) (int64, error) {
	args := m.Called(ctx, contractID, equipmentTypeID, returnDate)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockLineItemRepo) Reopen(ctx context.Context, contractID int32) (int64, error) {
	args := m.Called(ctx, contractID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockLineItemRepo) UpdateQuantity(ctx context.Context, contractID, equipmentTypeID, newQty int32) error {
	return m.Called(ctx, contractID, equipmentTypeID, newQty).Error(0)
}

type mockDamageRepo struct{ mock.Mock }

func (m *mockDamageRepo) Create(ctx context.Context, dr *domain.DamageReport) error {
	return m.Called(ctx, dr).Error(0)
}

func (m *mockDamageRepo) ListByContract(ctx context.Context, contractID int32) ([]domain.DamageReport, error) {
	args := m.Called(ctx, contractID)
	return args.Get(0).([]domain.DamageReport), args.Error(1)
}

func (m *mockDamageRepo) ListAll(ctx context.Context) ([]domain.DamageReport, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.DamageReport), args.Error(1)
}

type mockNotificationRepo struct{ mock.Mock }

func (m *mockNotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *mockNotificationRepo) ListAll(ctx context.Context) ([]domain.Notification, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *mockNotificationRepo) ListUnread(ctx context.Context) ([]domain.Notification, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *mockNotificationRepo) ExistsUnread(ctx context.Context, kind domain.NotificationKind, relatedID int32) (bool, error) {
	args := m.Called(ctx, kind, relatedID)
	return args.Bool(0), args.Error(1)
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, id int32) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockNotificationRepo) MarkAllRead(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationRepo) Delete(ctx context.Context, id int32) error {
	return m.Called(ctx, id).Error(0)
}

type mockReportRepo struct{ mock.Mock }

func (m *mockReportRepo) Overview(ctx context.Context) (*domain.OverviewReport, error) {
	args := m.Called(ctx)
	if rep := args.Get(0); rep != nil {
		return rep.(*domain.OverviewReport), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReportRepo) ByClient(ctx context.Context, clientID int32) ([]domain.ClientReportRow, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).([]domain.ClientReportRow), args.Error(1)
}

func (m *mockReportRepo) EquipmentUsage(ctx context.Context, equipmentTypeID int32) ([]domain.EquipmentUsageRow, error) {
	args := m.Called(ctx, equipmentTypeID)
	return args.Get(0).([]domain.EquipmentUsageRow), args.Error(1)
}

func (m *mockReportRepo) StatusSummary(ctx context.Context) ([]domain.StatusSummaryRow, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.StatusSummaryRow), args.Error(1)
}
