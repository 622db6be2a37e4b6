package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Salguod-ohlamar/deposito-teixeira/internal/db"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/domain"
	"github.com/jackc/pgx/v5"
)

type ProductRepository struct {
	DB *db.Postgres
}

const productColumns = `id, name, category, brand, supplier, in_stock, min_qty,
	cost, markup_percent, final_price, image, is_featured, is_offer,
	warranty_days, created_at, updated_at`

func (r ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE deleted_at IS NULL
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (r ProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE id=$1 AND deleted_at IS NULL
	`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r ProductRepository) Save(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if p.ID == 0 {
		row := r.DB.Pool.QueryRow(ctx, `
			INSERT INTO products (name, category, brand, supplier, in_stock, min_qty,
				cost, markup_percent, final_price, image, is_featured, is_offer,
				warranty_days, created_at, updated_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13, now(), now())
			RETURNING `+productColumns+`
		`, p.Name, p.Category, p.Brand, p.Supplier, p.InStock, p.MinQty,
			p.Cost, p.MarkupPercent, p.FinalPrice, p.Image, p.IsFeatured, p.IsOffer,
			p.WarrantyDays)
		saved, err := scanProduct(row)
		if err != nil {
			return nil, err
		}
		return &saved, nil
	}

	row := r.DB.Pool.QueryRow(ctx, `
		UPDATE products
		SET name=$1, category=$2, brand=$3, supplier=$4, in_stock=$5, min_qty=$6,
			cost=$7, markup_percent=$8, final_price=$9, image=$10, is_featured=$11,
			is_offer=$12, warranty_days=$13, updated_at=now()
		WHERE id=$14 AND deleted_at IS NULL
		RETURNING `+productColumns+`
	`, p.Name, p.Category, p.Brand, p.Supplier, p.InStock, p.MinQty,
		p.Cost, p.MarkupPercent, p.FinalPrice, p.Image, p.IsFeatured, p.IsOffer,
		p.WarrantyDays, p.ID)
	saved, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &saved, nil
}

func (r ProductRepository) Delete(ctx context.Context, id int64) error {
	ct, err := r.DB.Pool.Exec(ctx, `
		UPDATE products SET deleted_at=now() WHERE id=$1 AND deleted_at IS NULL
	`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// AdjustStock decrements stock for a sold product. The check constraint
// keeps stock non-negative; a violation surfaces as an error.
func (r ProductRepository) AdjustStock(ctx context.Context, tx pgx.Tx, id int64, delta int) error {
	ct, err := tx.Exec(ctx, `
		UPDATE products SET in_stock=in_stock+$1, updated_at=now()
		WHERE id=$2 AND deleted_at IS NULL
	`, delta, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r ProductRepository) AppendHistory(ctx context.Context, productID int64, e domain.HistoryEntry) error {
	ts := e.LoggedAt
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err := r.DB.Pool.Exec(ctx, `
		INSERT INTO product_history (product_id, actor, action, details, logged_at)
		VALUES ($1,$2,$3,$4,$5)
	`, productID, e.Actor, e.Action, e.Details, ts)
	return err
}

// ListHistory returns change-log entries newest-first.
func (r ProductRepository) ListHistory(ctx context.Context, productID int64, limit int) ([]domain.HistoryEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, product_id, actor, action, details, logged_at
		FROM product_history
		WHERE product_id=$1
		ORDER BY logged_at DESC, id DESC
		LIMIT $2
	`, productID, limit)
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

func scanProduct(row pgx.Row) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Brand, &p.Supplier,
		&p.InStock, &p.MinQty, &p.Cost, &p.MarkupPercent, &p.FinalPrice,
		&p.Image, &p.IsFeatured, &p.IsOffer, &p.WarrantyDays,
		&p.CreatedAt, &p.UpdatedAt)
	return p, err
}
