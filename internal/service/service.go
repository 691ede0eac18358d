package service

import (
	"context"
	"time"

	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/domain"
)

// NewContractItem names one equipment line of a new contract. Equipment may be
// referenced by ID or, when ID is zero, resolved by exact name.
type NewContractItem struct {
	EquipmentTypeID int32  `json:"equipment_type_id"`
	EquipmentName   string `json:"equipment_name"`
	Quantity        int32  `json:"quantity"`
}

// NewClient carries inline client details for contract creation.
type NewClient struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	Reference string `json:"reference"`
}

// NewContract is the creation request for a rental contract. Either ClientID
// or Client must be set.
type NewContract struct {
	ClientID             int32             `json:"client_id"`
	Client               *NewClient        `json:"client,omitempty"`
	StartDate            time.Time         `json:"start_date"`
	EndDate              time.Time         `json:"end_date"`
	TotalValue           float64           `json:"total_value"`
	AmountPaidAtDelivery float64           `json:"amount_paid_at_delivery"`
	Items                []NewContractItem `json:"items"`
}

type InventoryService interface {
	Create(ctx context.Context, eq *domain.EquipmentType) error
	Get(ctx context.Context, id int32) (*domain.EquipmentType, error)
	List(ctx context.Context) ([]domain.EquipmentType, error)
	ListAvailable(ctx context.Context) ([]domain.EquipmentType, error)
	SetTotal(ctx context.Context, id, newTotal int32) (*domain.EquipmentType, error)
	Delete(ctx context.Context, id int32) error
	Reconcile(ctx context.Context) ([]domain.StockMismatch, error)
}

type RentalService interface {
	Create(ctx context.Context, req *NewContract) (*domain.RentalContract, error)
	Get(ctx context.Context, id int32) (*domain.ContractDetails, error)
	List(ctx context.Context) ([]domain.ContractDetails, error)
	ListByClient(ctx context.Context, clientID int32) ([]domain.ContractDetails, error)
	ListActive(ctx context.Context) ([]domain.ContractDetails, error)
	ListOverdue(ctx context.Context) ([]domain.ContractDetails, error)
	Extend(ctx context.Context, id, additionalDays int32, newTotal, discount float64, reason string) (*domain.RentalContract, error)
	ConfirmReturn(ctx context.Context, id int32) (*domain.RentalContract, error)
	FinalizeEarly(ctx context.Context, id int32, newEndDate time.Time, newFinalValue float64, reason string) (*domain.RentalContract, error)
	Reactivate(ctx context.Context, id int32) (*domain.RentalContract, error)
}

type LineItemService interface {
	AddItem(ctx context.Context, contractID, equipmentTypeID, quantity int32) (*domain.LineItemAllocation, error)
	ListByContract(ctx context.Context, contractID int32) ([]domain.LineItemAllocation, error)
	// MarkReturned closes one allocation (equipmentTypeID set) or every open
	// allocation of the contract, releasing the stock it closes. Returns how
	// many rows were closed; zero with ErrNothingToReturn when nothing was open.
	MarkReturned(ctx context.Context, contractID int32, equipmentTypeID *int32, returnDate time.Time) (int64, error)
	UpdateQuantity(ctx context.Context, contractID, equipmentTypeID, newQuantity int32) error
}

type DamageService interface {
	Record(ctx context.Context, contractID, equipmentTypeID, damagedQuantity int32, description string) (*domain.DamageReport, error)
	ListByContract(ctx context.Context, contractID int32) ([]domain.DamageReport, error)
	ListAll(ctx context.Context) ([]domain.DamageReport, error)
}

type NotificationService interface {
	// GenerateAutomatic runs one scan for critical stock and overdue returns
	// and returns how many notifications it created.
	GenerateAutomatic(ctx context.Context) (int, error)
	ListAll(ctx context.Context) ([]domain.Notification, error)
	ListUnread(ctx context.Context) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id int32) error
	MarkAllRead(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id int32) error
}

type ClientService interface {
	Create(ctx context.Context, c *domain.Client) error
	Get(ctx context.Context, id int32) (*domain.Client, error)
	List(ctx context.Context) ([]domain.Client, error)
	Update(ctx context.Context, c *domain.Client) error
	Delete(ctx context.Context, id int32) error
}

type ReportService interface {
	Overview(ctx context.Context) (*domain.OverviewReport, error)
	ByClient(ctx context.Context, clientID int32) ([]domain.ClientReportRow, error)
	EquipmentUsage(ctx context.Context, equipmentTypeID int32) ([]domain.EquipmentUsageRow, error)
	StatusSummary(ctx context.Context) ([]domain.StatusSummaryRow, error)
}

type EmailService interface {
	// SendOverdueReminder mails the operations inbox a digest of contracts
	// past their end date.
	SendOverdueReminder(ctx context.Context, to string, overdue []domain.ContractDetails) error
}
