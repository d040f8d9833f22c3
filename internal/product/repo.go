// Package product is the read side of the catalog used by the storefront.
package product

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound = errors.New("product not found")
)

type Query struct {
	Q      string
	Limit  int
	Offset int
}

type Repository interface {
	// GetEnabled returns the product only while it is listed.
	GetEnabled(ctx context.Context, id string) (*Product, error)
	ListEnabled(ctx context.Context, q Query) ([]Product, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

const productColumns = `id, name, description, price::text, currency, COALESCE(images, '{}'), COALESCE(category, ''),
  is_enabled, created_at, updated_at`

func (r *PGRepo) GetEnabled(ctx context.Context, id string) (*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	p, err := scanProduct(r.db.QueryRow(ctx, `
		SELECT `+productColumns+`
		FROM products WHERE id=$1 AND is_enabled
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PGRepo) ListEnabled(ctx context.Context, q Query) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	search := strings.TrimSpace(q.Q)

	rows, err := r.db.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE is_enabled
		  AND ($1 = '' OR name ILIKE '%'||$1||'%' OR description ILIKE '%'||$1||'%')
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, search, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanProduct(row pgx.Row) (Product, error) {
	var (
		p     Product
		price string
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &price, &p.Currency, &p.Images, &p.Category,
		&p.Enabled, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return p, err
	}
	d, err := decimal.NewFromString(price)
	if err != nil {
		return p, err
	}
	p.Price = d
	return p, nil
}
