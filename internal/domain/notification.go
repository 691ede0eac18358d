package domain

import "time"

type NotificationKind string

const (
	NotificationKindCriticalStock NotificationKind = "critical_stock"
	NotificationKindOverdueReturn NotificationKind = "overdue_return"
	NotificationKindSystem        NotificationKind = "system"
)

// Notification is an in-app alert produced by the automatic generator or by
// hand. RelatedID points at an equipment type (critical_stock) or a contract
// (overdue_return) and anchors the unread-deduplication.
type Notification struct {
	ID        int32            `json:"id"`
	Kind      NotificationKind `json:"kind"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	CreatedAt time.Time        `json:"created_at"`
	Read      bool             `json:"read"`
	RelatedID *int32           `json:"related_id,omitempty"`
}
