package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/domain"
)

type clientRepository struct {
	db DBTX
}

func (r *clientRepository) Create(ctx context.Context, c *domain.Client) error {
	query := `INSERT INTO clients (name, address, phone, reference, created_on)
	          VALUES ($1, $2, $3, $4, NOW()) RETURNING id, created_on`
	return r.db.QueryRowContext(ctx, query, c.Name, c.Address, c.Phone, c.Reference).
		Scan(&c.ID, &c.CreatedOn)
}

func (r *clientRepository) GetByID(ctx context.Context, id int32) (*domain.Client, error) {
	c := &domain.Client{}
	query := `SELECT id, name, address, phone, reference, created_on FROM clients WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&c.ID, &c.Name, &c.Address, &c.Phone, &c.Reference, &c.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrClientNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *clientRepository) List(ctx context.Context) ([]domain.Client, error) {
	query := `SELECT id, name, address, phone, reference, created_on FROM clients ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Address, &c.Phone, &c.Reference, &c.CreatedOn); err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (r *clientRepository) Update(ctx context.Context, c *domain.Client) error {
	query := `UPDATE clients SET name = $1, address = $2, phone = $3, reference = $4 WHERE id = $5`
	res, err := r.db.ExecContext(ctx, query, c.Name, c.Address, c.Phone, c.Reference, c.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

func (r *clientRepository) Delete(ctx context.Context, id int32) error {
	var referenced bool
	check := `SELECT EXISTS(SELECT 1 FROM rental_contracts WHERE client_id = $1)`
	if err := r.db.QueryRowContext(ctx, check, id).Scan(&referenced); err != nil {
		return err
	}
	if referenced {
		return domain.NewValidationError("client", "still referenced by contracts")
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}
