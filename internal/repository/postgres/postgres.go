package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/repository"
)

// DBTX is the subset of *sql.DB and *sql.Tx the repositories use, so the same
// repository code runs inside and outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store wires every repository to one database handle.
type Store struct {
	db *sql.DB // nil when the store is bound to a transaction

	equipment     *equipmentRepository
	clients       *clientRepository
	rentals       *rentalRepository
	lineItems     *lineItemRepository
	damages       *damageReportRepository
	notifications *notificationRepository
	reports       *reportRepository
}

func NewStore(db *sql.DB) *Store {
	return newStore(db, db)
}

func newStore(db *sql.DB, q DBTX) *Store {
	return &Store{
		db:            db,
		equipment:     &equipmentRepository{db: q},
		clients:       &clientRepository{db: q},
		rentals:       &rentalRepository{db: q},
		lineItems:     &lineItemRepository{db: q},
		damages:       &damageReportRepository{db: q},
		notifications: &notificationRepository{db: q},
		reports:       &reportRepository{db: q},
	}
}

func (s *Store) Equipment() repository.EquipmentRepository        { return s.equipment }
func (s *Store) Clients() repository.ClientRepository             { return s.clients }
func (s *Store) Rentals() repository.RentalRepository             { return s.rentals }
func (s *Store) LineItems() repository.LineItemRepository         { return s.lineItems }
func (s *Store) Damages() repository.DamageReportRepository       { return s.damages }
func (s *Store) Notifications() repository.NotificationRepository { return s.notifications }
func (s *Store) Reports() repository.ReportRepository             { return s.reports }

// ExecTx runs fn against a Store bound to a single transaction. A nested call
// joins the transaction already in flight instead of opening a second one.
func (s *Store) ExecTx(ctx context.Context, fn func(repository.Store) error) error {
	if s.db == nil {
		return fn(s)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	txStore := newStore(nil, tx)
	if err := fn(txStore); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}
	return tx.Commit()
}
