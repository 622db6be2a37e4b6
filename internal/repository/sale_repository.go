package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Salguod-ohlamar/deposito-teixeira/internal/db"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/domain"
	"github.com/jackc/pgx/v5"
)

type SaleRepository struct {
	DB       *db.Postgres
	Products ProductRepository
}

// Create records a sale and decrements the sold products' stock in one
// transaction. A repeated idempotency key returns the already-recorded
// sale instead of double-charging stock.
func (r SaleRepository) Create(ctx context.Context, sale domain.Sale) (*domain.Sale, error) {
	if existing, err := r.GetByIdempotencyKey(ctx, sale.IdempotencyKey); err == nil {
		return existing, nil
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	tx, err := r.DB.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx, `
		INSERT INTO sales (code, idempotency_key, date, seller, client_id, payment_method, total, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7, now())
		RETURNING id, created_at
	`, sale.Code, sale.IdempotencyKey, sale.Date, sale.Seller, sale.ClientID,
		sale.PaymentMethod, sale.Total).Scan(&sale.ID, &sale.CreatedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return r.GetByIdempotencyKey(ctx, sale.IdempotencyKey)
		}
		return nil, err
	}

	for i := range sale.Items {
		item := &sale.Items[i]
		item.SaleID = sale.ID
		err = tx.QueryRow(ctx, `
			INSERT INTO sale_items (sale_id, product_id, name, qty, unit_price)
			VALUES ($1,$2,$3,$4,$5)
			RETURNING id
		`, item.SaleID, item.ProductID, item.Name, item.Qty, item.UnitPrice).Scan(&item.ID)
		if err != nil {
			return nil, err
		}
		if item.ProductID != nil {
			if err := r.Products.AdjustStock(ctx, tx, *item.ProductID, -item.Qty); err != nil {
				return nil, fmt.Errorf("adjust stock for product %d: %w", *item.ProductID, err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r SaleRepository) GetByIdempotencyKey(ctx context.Context, key string) (*domain.Sale, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT id, code, idempotency_key, date, seller, client_id, payment_method, total, created_at
		FROM sales
		WHERE idempotency_key=$1 AND deleted_at IS NULL
	`, key)
	sale, err := scanSale(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := r.loadItems(ctx, sale); err != nil {
		return nil, err
	}
	return sale, nil
}

func (r SaleRepository) List(ctx context.Context, limit int) ([]domain.Sale, error) {
	if limit <= 0 {
		limit = 200
	}
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, code, idempotency_key, date, seller, client_id, payment_method, total, created_at
		FROM sales
		WHERE deleted_at IS NULL
		ORDER BY date DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Sale
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *sale)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if err := r.loadItems(ctx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r SaleRepository) loadItems(ctx context.Context, sale *domain.Sale) error {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, sale_id, product_id, name, qty, unit_price
		FROM sale_items
		WHERE sale_id=$1
		ORDER BY id ASC
	`, sale.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	sale.Items = sale.Items[:0]
	for rows.Next() {
		var it domain.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Name, &it.Qty, &it.UnitPrice); err != nil {
			return err
		}
		sale.Items = append(sale.Items, it)
	}
	return rows.Err()
}

func scanSale(row pgx.Row) (*domain.Sale, error) {
	var s domain.Sale
	if err := row.Scan(&s.ID, &s.Code, &s.IdempotencyKey, &s.Date, &s.Seller,
		&s.ClientID, &s.PaymentMethod, &s.Total, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
