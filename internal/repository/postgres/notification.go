package postgres

import (
	"context"

	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/domain"
	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/logger"
)

type notificationRepository struct {
	db DBTX
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	logger.DatabaseCall("INSERT", "notifications", "kind", n.Kind, "related_id", n.RelatedID)
	query := `INSERT INTO notifications (kind, title, message, created_at, read, related_id)
	          VALUES ($1, $2, $3, NOW(), FALSE, $4) RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, n.Kind, n.Title, n.Message, n.RelatedID).
		Scan(&n.ID, &n.CreatedAt)
	logger.DatabaseResult("INSERT", 1, err, "notification_id", n.ID)
	return err
}

func (r *notificationRepository) ListAll(ctx context.Context) ([]domain.Notification, error) {
	query := `SELECT id, kind, title, message, created_at, read, related_id
	          FROM notifications ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *notificationRepository) ListUnread(ctx context.Context) ([]domain.Notification, error) {
	query := `SELECT id, kind, title, message, created_at, read, related_id
	          FROM notifications WHERE read = FALSE ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *notificationRepository) list(ctx context.Context, query string, args ...any) ([]domain.Notification, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.Kind, &n.Title, &n.Message, &n.CreatedAt, &n.Read, &n.RelatedID); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// ExistsUnread anchors the generator's deduplication: one unread notification
// per kind and related entity at a time.
func (r *notificationRepository) ExistsUnread(ctx context.Context, kind domain.NotificationKind, relatedID int32) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM notifications WHERE kind = $1 AND related_id = $2 AND read = FALSE)`
	err := r.db.QueryRowContext(ctx, query, kind, relatedID).Scan(&exists)
	return exists, err
}

func (r *notificationRepository) MarkRead(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `UPDATE notifications SET read = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE notifications SET read = TRUE WHERE read = FALSE`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *notificationRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}
