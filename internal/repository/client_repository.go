package repository

import (
	"context"
	"errors"

	"github.com/Salguod-ohlamar/deposito-teixeira/internal/db"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/domain"
	"github.com/jackc/pgx/v5"
)

type ClientRepository struct {
	DB *db.Postgres
}

func (r ClientRepository) List(ctx context.Context) ([]domain.Client, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, name, phone, email, address, created_at, updated_at
		FROM clients
		WHERE deleted_at IS NULL
		ORDER BY name ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Client
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r ClientRepository) Save(ctx context.Context, c domain.Client) (*domain.Client, error) {
	if c.ID == 0 {
		row := r.DB.Pool.QueryRow(ctx, `
			INSERT INTO clients (name, phone, email, address, created_at, updated_at)
			VALUES ($1,$2,$3,$4, now(), now())
			RETURNING id, name, phone, email, address, created_at, updated_at
		`, c.Name, c.Phone, c.Email, c.Address)
		if err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		return &c, nil
	}

	row := r.DB.Pool.QueryRow(ctx, `
		UPDATE clients
		SET name=$1, phone=$2, email=$3, address=$4, updated_at=now()
		WHERE id=$5 AND deleted_at IS NULL
		RETURNING id, name, phone, email, address, created_at, updated_at
	`, c.Name, c.Phone, c.Email, c.Address, c.ID)
	if err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address,
		&c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r ClientRepository) Delete(ctx context.Context, id int64) error {
	ct, err := r.DB.Pool.Exec(ctx, `
		UPDATE clients SET deleted_at=now() WHERE id=$1 AND deleted_at IS NULL
	`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
