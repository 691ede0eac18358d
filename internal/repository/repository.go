package repository

import (
	"context"
	"time"

	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/domain"
)

type EquipmentRepository interface {
	Create(ctx context.Context, eq *domain.EquipmentType) error
	GetByID(ctx context.Context, id int32) (*domain.EquipmentType, error)
	GetByName(ctx context.Context, name string) (*domain.EquipmentType, error)
	ListAll(ctx context.Context) ([]domain.EquipmentType, error)
	ListAvailable(ctx context.Context) ([]domain.EquipmentType, error)
	ListBelowThreshold(ctx context.Context, fraction float64) ([]domain.EquipmentType, error)

	// Reserve and Release are the only mutators of available_quantity. Both
	// are single conditional updates so concurrent requests cannot lose
	// writes: Reserve fails with ErrInsufficientStock when the decrement
	// would go negative, Release fails when the increment would exceed
	// total_quantity.
	Reserve(ctx context.Context, id, qty int32) error
	Release(ctx context.Context, id, qty int32) error

	SetTotal(ctx context.Context, id, newTotal int32) error
	SetAvailable(ctx context.Context, id, available int32) error

	// OpenAllocationTotals sums still-out allocation quantities per equipment
	// type, the authoritative input for reconciliation.
	OpenAllocationTotals(ctx context.Context) (map[int32]int32, error)

	Delete(ctx context.Context, id int32) error
}

type ClientRepository interface {
	Create(ctx context.Context, c *domain.Client) error
	GetByID(ctx context.Context, id int32) (*domain.Client, error)
	List(ctx context.Context) ([]domain.Client, error)
	Update(ctx context.Context, c *domain.Client) error
	Delete(ctx context.Context, id int32) error
}

type RentalRepository interface {
	Create(ctx context.Context, rc *domain.RentalContract) error
	GetByID(ctx context.Context, id int32) (*domain.RentalContract, error)
	Update(ctx context.Context, rc *domain.RentalContract) error
	ListAll(ctx context.Context) ([]domain.RentalContract, error)
	ListByClient(ctx context.Context, clientID int32) ([]domain.RentalContract, error)
	ListActive(ctx context.Context) ([]domain.RentalContract, error)
	// ListOverdue returns contracts whose end date is before today and that
	// were never completed.
	ListOverdue(ctx context.Context, today time.Time) ([]domain.RentalContract, error)
}

type LineItemRepository interface {
	Add(ctx context.Context, item *domain.LineItemAllocation) error
	Get(ctx context.Context, contractID, equipmentTypeID int32) (*domain.LineItemAllocation, error)
	ListByContract(ctx context.Context, contractID int32) ([]domain.LineItemAllocation, error)
	ListOpenByContract(ctx context.Context, contractID int32) ([]domain.LineItemAllocation, error)
	// MarkReturned stamps return_date on one open row (equipmentTypeID set)
	// or every open row of the contract (equipmentTypeID nil) and reports how
	// many rows it closed.
	MarkReturned(ctx context.Context, contractID int32, equipmentTypeID *int32, returnDate time.Time) (int64, error)
	// Reopen clears the return date on every allocation of the contract,
	// used when a completed contract is reactivated.
	Reopen(ctx context.Context, contractID int32) (int64, error)
	UpdateQuantity(ctx context.Context, contractID, equipmentTypeID, newQty int32) error
}

type DamageReportRepository interface {
	Create(ctx context.Context, dr *domain.DamageReport) error
	ListByContract(ctx context.Context, contractID int32) ([]domain.DamageReport, error)
	ListAll(ctx context.Context) ([]domain.DamageReport, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListAll(ctx context.Context) ([]domain.Notification, error)
	ListUnread(ctx context.Context) ([]domain.Notification, error)
	ExistsUnread(ctx context.Context, kind domain.NotificationKind, relatedID int32) (bool, error)
	MarkRead(ctx context.Context, id int32) error
	MarkAllRead(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id int32) error
}

type ReportRepository interface {
	Overview(ctx context.Context) (*domain.OverviewReport, error)
	ByClient(ctx context.Context, clientID int32) ([]domain.ClientReportRow, error)
	EquipmentUsage(ctx context.Context, equipmentTypeID int32) ([]domain.EquipmentUsageRow, error)
	StatusSummary(ctx context.Context) ([]domain.StatusSummaryRow, error)
}

// Store bundles the repositories behind one handle. ExecTx runs fn with a
// Store whose repositories are bound to a single database transaction; any
// error rolls the whole transaction back. Write-side operations that touch
// stock and contract rows together must go through ExecTx so both mutations
// commit or fail as one.
type Store interface {
	Equipment() EquipmentRepository
	Clients() ClientRepository
	Rentals() RentalRepository
	LineItems() LineItemRepository
	Damages() DamageReportRepository
	Notifications() NotificationRepository
	Reports() ReportRepository

	ExecTx(ctx context.Context, fn func(Store) error) error
}
