package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Salguod-ohlamar/deposito-teixeira/internal/db"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/domain"
	"github.com/jackc/pgx/v5"
)

type ServiceRepository struct {
	DB *db.Postgres
}

const serviceColumns = `id, service_name, supplier, brand, repair_type, technician,
	cost, markup_percent, final_price, image, is_featured, is_offer,
	warranty_days, created_at, updated_at`

func (r ServiceRepository) List(ctx context.Context) ([]domain.Service, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT `+serviceColumns+`
		FROM services
		WHERE deleted_at IS NULL
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Service
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

func (r ServiceRepository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT `+serviceColumns+`
		FROM services
		WHERE id=$1 AND deleted_at IS NULL
	`, id)
	s, err := scanService(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r ServiceRepository) Save(ctx context.Context, s domain.Service) (*domain.Service, error) {
	if s.ID == 0 {
		row := r.DB.Pool.QueryRow(ctx, `
			INSERT INTO services (service_name, supplier, brand, repair_type, technician,
				cost, markup_percent, final_price, image, is_featured, is_offer,
				warranty_days, created_at, updated_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12, now(), now())
			RETURNING `+serviceColumns+`
		`, s.ServiceName, s.Supplier, s.Brand, s.RepairType, s.Technician,
			s.Cost, s.MarkupPercent, s.FinalPrice, s.Image, s.IsFeatured, s.IsOffer,
			s.WarrantyDays)
		saved, err := scanService(row)
		if err != nil {
			return nil, err
		}
		return &saved, nil
	}

	row := r.DB.Pool.QueryRow(ctx, `
		UPDATE services
		SET service_name=$1, supplier=$2, brand=$3, repair_type=$4, technician=$5,
			cost=$6, markup_percent=$7, final_price=$8, image=$9, is_featured=$10,
			is_offer=$11, warranty_days=$12, updated_at=now()
		WHERE id=$13 AND deleted_at IS NULL
		RETURNING `+serviceColumns+`
	`, s.ServiceName, s.Supplier, s.Brand, s.RepairType, s.Technician,
		s.Cost, s.MarkupPercent, s.FinalPrice, s.Image, s.IsFeatured, s.IsOffer,
		s.WarrantyDays, s.ID)
	saved, err := scanService(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &saved, nil
}

func (r ServiceRepository) Delete(ctx context.Context, id int64) error {
	ct, err := r.DB.Pool.Exec(ctx, `
		UPDATE services SET deleted_at=now() WHERE id=$1 AND deleted_at IS NULL
	`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r ServiceRepository) AppendHistory(ctx context.Context, serviceID int64, e domain.HistoryEntry) error {
	ts := e.LoggedAt
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err := r.DB.Pool.Exec(ctx, `
		INSERT INTO service_history (service_id, actor, action, details, logged_at)
		VALUES ($1,$2,$3,$4,$5)
	`, serviceID, e.Actor, e.Action, e.Details, ts)
	return err
}

func (r ServiceRepository) ListHistory(ctx context.Context, serviceID int64, limit int) ([]domain.HistoryEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, service_id, actor, action, details, logged_at
		FROM service_history
		WHERE service_id=$1
		ORDER BY logged_at DESC, id DESC
		LIMIT $2
	`, serviceID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.HistoryEntry
	for rows.Next() {
		var e domain.HistoryEntry
		if err := rows.Scan(&e.ID, &e.ItemID, &e.Actor, &e.Action, &e.Details, &e.LoggedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanService(row pgx.Row) (domain.Service, error) {
	var s domain.Service
	err := row.Scan(&s.ID, &s.ServiceName, &s.Supplier, &s.Brand, &s.RepairType,
		&s.Technician, &s.Cost, &s.MarkupPercent, &s.FinalPrice, &s.Image,
		&s.IsFeatured, &s.IsOffer, &s.WarrantyDays, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}
