package repository

import (
	"context"
	"errors"

	"github.com/Salguod-ohlamar/deposito-teixeira/internal/db"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/domain"
	"github.com/jackc/pgx/v5"
)

type BannerRepository struct {
	DB *db.Postgres
}

func (r BannerRepository) List(ctx context.Context, activeOnly bool) ([]domain.Banner, error) {
	query := `
		SELECT id, title, image, link, active, position, created_at, updated_at
		FROM banners
		WHERE deleted_at IS NULL
	`
	if activeOnly {
		query += ` AND active`
	}
	query += ` ORDER BY position ASC, id ASC`

	rows, err := r.DB.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Banner
	for rows.Next() {
		var b domain.Banner
		if err := rows.Scan(&b.ID, &b.Title, &b.Image, &b.Link, &b.Active,
			&b.Position, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r BannerRepository) Save(ctx context.Context, b domain.Banner) (*domain.Banner, error) {
	if b.ID == 0 {
		row := r.DB.Pool.QueryRow(ctx, `
			INSERT INTO banners (title, image, link, active, position, created_at, updated_at)
			VALUES ($1,$2,$3,$4,$5, now(), now())
			RETURNING id, title, image, link, active, position, created_at, updated_at
		`, b.Title, b.Image, b.Link, b.Active, b.Position)
		if err := row.Scan(&b.ID, &b.Title, &b.Image, &b.Link, &b.Active,
			&b.Position, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		return &b, nil
	}

	row := r.DB.Pool.QueryRow(ctx, `
		UPDATE banners
		SET title=$1, image=$2, link=$3, active=$4, position=$5, updated_at=now()
		WHERE id=$6 AND deleted_at IS NULL
		RETURNING id, title, image, link, active, position, created_at, updated_at
	`, b.Title, b.Image, b.Link, b.Active, b.Position, b.ID)
	if err := row.Scan(&b.ID, &b.Title, &b.Image, &b.Link, &b.Active,
		&b.Position, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r BannerRepository) Delete(ctx context.Context, id int64) error {
	ct, err := r.DB.Pool.Exec(ctx, `
		UPDATE banners SET deleted_at=now() WHERE id=$1 AND deleted_at IS NULL
	`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
