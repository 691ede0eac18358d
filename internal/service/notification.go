package service

import (
	"context"
	"fmt"
	"time"

	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/domain"
	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/logger"
	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/metrics"
	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/repository"
)

type notificationService struct {
	store             repository.Store
	criticalThreshold float64
	now               func() time.Time
}

func NewNotificationService(store repository.Store, criticalThreshold float64) NotificationService {
	return &notificationService{
		store:             store,
		criticalThreshold: criticalThreshold,
		now:               time.Now,
	}
}

// GenerateAutomatic scans for critical stock and overdue contracts and writes
// one notification per finding. A finding that already has an unread
// notification of the same kind and related entity is skipped, so repeated
// runs are idempotent until someone reads the alert. The scan only observes:
// it never mutates stock or contracts.
func (s *notificationService) GenerateAutomatic(ctx context.Context) (int, error) {
	created := 0
	err := s.store.ExecTx(ctx, func(tx repository.Store) error {
		created = 0

		low, err := tx.Equipment().ListBelowThreshold(ctx, s.criticalThreshold)
		if err != nil {
			return err
		}
		for _, eq := range low {
			if eq.TotalQuantity <= 0 {
				continue
			}
			n, err := s.createIfNew(ctx, tx, &domain.Notification{
				Kind:  domain.NotificationKindCriticalStock,
				Title: fmt.Sprintf("Estoque crítico: %s", eq.Name),
				Message: fmt.Sprintf("%s está com %d de %d unidades disponíveis (%.1f%%).",
					eq.Name, eq.AvailableQuantity, eq.TotalQuantity,
					float64(eq.AvailableQuantity)/float64(eq.TotalQuantity)*100),
				RelatedID: ptr(eq.ID),
			})
			if err != nil {
				return err
			}
			if n {
				created++
				metrics.NotificationsGenerated.WithLabelValues(string(domain.NotificationKindCriticalStock)).Inc()
			}
		}

		overdue, err := tx.Rentals().ListOverdue(ctx, domain.TruncateToDay(s.now()))
		if err != nil {
			return err
		}
		for _, contract := range overdue {
			client, err := tx.Clients().GetByID(ctx, contract.ClientID)
			if err != nil {
				return err
			}
			n, err := s.createIfNew(ctx, tx, &domain.Notification{
				Kind:  domain.NotificationKindOverdueReturn,
				Title: fmt.Sprintf("Devolução atrasada: contrato #%d", contract.ID),
				Message: fmt.Sprintf("A locação de %s venceu em %s e não teve devolução registrada.",
					client.Name, contract.EndDate.Format("02/01/2006")),
				RelatedID: ptr(contract.ID),
			})
			if err != nil {
				return err
			}
			if n {
				created++
				metrics.NotificationsGenerated.WithLabelValues(string(domain.NotificationKindOverdueReturn)).Inc()
			}
		}
		return nil
	})
	if err != nil {
		return 0, domain.WrapStorage("notification.GenerateAutomatic", err)
	}

	if created > 0 {
		logger.Info("notifications generated", "count", created)
	}
	return created, nil
}

// createIfNew inserts n unless an unread notification with the same kind and
// related entity already exists. Reports whether it inserted.
func (s *notificationService) createIfNew(ctx context.Context, tx repository.Store, n *domain.Notification) (bool, error) {
	exists, err := tx.Notifications().ExistsUnread(ctx, n.Kind, *n.RelatedID)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	if err := tx.Notifications().Create(ctx, n); err != nil {
		return false, err
	}
	return true, nil
}

func (s *notificationService) ListAll(ctx context.Context) ([]domain.Notification, error) {
	notes, err := s.store.Notifications().ListAll(ctx)
	return notes, domain.WrapStorage("notification.ListAll", err)
}

func (s *notificationService) ListUnread(ctx context.Context) ([]domain.Notification, error) {
	notes, err := s.store.Notifications().ListUnread(ctx)
	return notes, domain.WrapStorage("notification.ListUnread", err)
}

func (s *notificationService) MarkRead(ctx context.Context, id int32) error {
	return domain.WrapStorage("notification.MarkRead", s.store.Notifications().MarkRead(ctx, id))
}

func (s *notificationService) MarkAllRead(ctx context.Context) (int64, error) {
	n, err := s.store.Notifications().MarkAllRead(ctx)
	return n, domain.WrapStorage("notification.MarkAllRead", err)
}

func (s *notificationService) Delete(ctx context.Context, id int32) error {
	return domain.WrapStorage("notification.Delete", s.store.Notifications().Delete(ctx, id))
}

func ptr(v int32) *int32 { return &v }
