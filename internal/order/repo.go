package order

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/preordergh/storefront-core/internal/events"
)

var (
	ErrNotFound       = errors.New("order not found")
	ErrStatusConflict = errors.New("order status changed concurrently")
)

type Repository interface {
	// Create inserts o unless an order with the same payment reference exists,
	// in which case o is overwritten with the stored order and created is false.
	Create(ctx context.Context, o *Order) (created bool, err error)
	GetByID(ctx context.Context, id string) (*Order, error)
	GetByCode(ctx context.Context, code string) (*Order, error)
	GetByPaymentReference(ctx context.Context, ref string) (*Order, error)
	ListAll(ctx context.Context) ([]Order, error)
	ListByCustomer(ctx context.Context, customerID, email string) ([]Order, error)
	// UpdateStatus moves id from -> to only if the stored status is still from.
	UpdateStatus(ctx context.Context, id string, from, to Status) (*Order, error)
	ApplyCorrection(ctx context.Context, id string, c Correction) (*Order, error)
}

type PGRepo struct {
	db    *pgxpool.Pool
	topic string
}

func NewPGRepo(db *pgxpool.Pool, eventsTopic string) *PGRepo {
	return &PGRepo{db: db, topic: eventsTopic}
}

const orderColumns = `id::text, code, customer_name, customer_phone, location,
  COALESCE(customer_email, ''), COALESCE(customer_id, ''), total_amount::text, delivery_fee::text,
  payment_status, payment_reference, tracking_number, status, created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, o *Order) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var id string
	err = tx.QueryRow(ctx, `
    INSERT INTO orders (id, code, customer_name, customer_phone, location, customer_email, customer_id,
      total_amount, delivery_fee, payment_status, payment_reference, tracking_number, status, created_at, updated_at)
    VALUES ($1,$2,$3,$4,$5,NULLIF($6,''),NULLIF($7,''),$8::numeric,$9::numeric,$10,$11,$12,$13,$14,$14)
    ON CONFLICT (payment_reference) DO NOTHING
    RETURNING id::text
  `, o.ID, o.Code, o.CustomerName, o.CustomerPhone, o.Location, o.CustomerEmail, o.CustomerID,
		o.TotalAmount.StringFixed(2), o.DeliveryFee.StringFixed(2), string(o.PaymentStatus), o.PaymentReference,
		o.TrackingNumber, string(o.Status), o.CreatedAt).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		_ = tx.Rollback(ctx)
		existing, gerr := r.GetByPaymentReference(ctx, o.PaymentReference)
		if gerr != nil {
			return false, gerr
		}
		*o = *existing
		return false, nil
	}
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "orders_code_key" {
			return false, ErrCodeTaken
		}
		return false, err
	}

	for pos, it := range o.Items {
		if _, err := tx.Exec(ctx, `
      INSERT INTO order_items (order_id, position, product_id, name, price, currency, images, quantity)
      VALUES ($1,$2,$3,$4,$5::numeric,$6,$7,$8)
    `, o.ID, pos, it.ProductID, it.Name, it.Price.StringFixed(2), it.Currency, it.Images, it.Quantity); err != nil {
			return false, err
		}
	}

	evt := events.New(events.TypeOrderCreated, o.ID, o.Code, map[string]any{
		"status":            string(o.Status),
		"total_amount":      o.TotalAmount.StringFixed(2),
		"payment_reference": o.PaymentReference,
	})
	if err := events.Insert(ctx, tx, r.topic, evt); err != nil {
		return false, err
	}
	o.UpdatedAt = o.CreatedAt
	return true, tx.Commit(ctx)
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id)
}

func (r *PGRepo) GetByCode(ctx context.Context, code string) (*Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE code=$1`, code)
}

func (r *PGRepo) GetByPaymentReference(ctx context.Context, ref string) (*Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE payment_reference=$1`, ref)
}

func (r *PGRepo) ListAll(ctx context.Context) ([]Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
}

func (r *PGRepo) ListByCustomer(ctx context.Context, customerID, email string) ([]Order, error) {
	if customerID == "" && email == "" {
		return []Order{}, nil
	}
	return r.list(ctx, `
    SELECT `+orderColumns+` FROM orders
    WHERE ($1 <> '' AND customer_id = $1) OR ($2 <> '' AND lower(customer_email) = lower($2))
    ORDER BY created_at DESC
  `, customerID, email)
}

func (r *PGRepo) UpdateStatus(ctx context.Context, id string, from, to Status) (*Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var code string
	err = tx.QueryRow(ctx, `
    UPDATE orders
    SET status = $3, updated_at = NOW()
    WHERE id = $1 AND status = $2
    RETURNING code
  `, id, string(from), string(to)).Scan(&code)
	if errors.Is(err, pgx.ErrNoRows) {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM orders WHERE id=$1)`, id).Scan(&exists); err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrNotFound
		}
		return nil, ErrStatusConflict
	}
	if err != nil {
		return nil, err
	}

	evt := events.New(events.TypeOrderStatusChanged, id, code, map[string]any{
		"from": string(from),
		"to":   string(to),
	})
	if err := events.Insert(ctx, tx, r.topic, evt); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *PGRepo) ApplyCorrection(ctx context.Context, id string, c Correction) (*Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var code string
	err = tx.QueryRow(ctx, `
    UPDATE orders
    SET delivery_fee    = COALESCE($2::numeric, delivery_fee),
        total_amount    = COALESCE($3::numeric, total_amount),
        tracking_number = COALESCE($4, tracking_number),
        updated_at = NOW()
    WHERE id = $1
    RETURNING code
  `, id, decimalArg(c.DeliveryFee), decimalArg(c.TotalAmount), c.TrackingNumber).Scan(&code)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	payload := map[string]any{}
	if c.DeliveryFee != nil {
		payload["delivery_fee"] = c.DeliveryFee.StringFixed(2)
	}
	if c.TotalAmount != nil {
		payload["total_amount"] = c.TotalAmount.StringFixed(2)
	}
	if c.TrackingNumber != nil {
		payload["shipment_tracking_number"] = *c.TrackingNumber
	}
	if err := events.Insert(ctx, tx, r.topic, events.New(events.TypeOrderCorrected, id, code, payload)); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// MigrateLegacyStatuses rewrites documents still carrying the retired
// tracking vocabulary. Returns the number of orders touched.
func (r *PGRepo) MigrateLegacyStatuses(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
    UPDATE orders
    SET status = CASE status WHEN $1 THEN $2 WHEN $3 THEN $4 END,
        updated_at = NOW()
    WHERE status IN ($1, $3)
  `, string(legacyProcessing), string(NormalizeLegacy(legacyProcessing)),
		string(legacyPacked), string(NormalizeLegacy(legacyPacked)))
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *PGRepo) getOne(ctx context.Context, query string, args ...any) (*Order, error) {
	out, err := r.list(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrNotFound
	}
	return &out[0], nil
}

func (r *PGRepo) list(ctx context.Context, query string, args ...any) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Order{}
	index := map[string]int{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		index[o.ID] = len(out)
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	ids := make([]string, 0, len(out))
	for _, o := range out {
		ids = append(ids, o.ID)
	}
	itemRows, err := r.db.Query(ctx, `
    SELECT order_id::text, product_id, name, price::text, currency, images, quantity
    FROM order_items
    WHERE order_id::text = ANY($1)
    ORDER BY order_id, position
  `, ids)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var (
			orderID, price string
			it             Item
		)
		if err := itemRows.Scan(&orderID, &it.ProductID, &it.Name, &price, &it.Currency, &it.Images, &it.Quantity); err != nil {
			return nil, err
		}
		if it.Price, err = decimal.NewFromString(price); err != nil {
			return nil, err
		}
		if i, ok := index[orderID]; ok {
			out[i].Items = append(out[i].Items, it)
		}
	}
	return out, itemRows.Err()
}

func scanOrder(row pgx.Row) (Order, error) {
	var (
		o                 Order
		total, fee        string
		payStatus, status string
	)
	if err := row.Scan(&o.ID, &o.Code, &o.CustomerName, &o.CustomerPhone, &o.Location,
		&o.CustomerEmail, &o.CustomerID, &total, &fee,
		&payStatus, &o.PaymentReference, &o.TrackingNumber, &status, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return o, err
	}
	var err error
	if o.TotalAmount, err = decimal.NewFromString(total); err != nil {
		return o, err
	}
	if o.DeliveryFee, err = decimal.NewFromString(fee); err != nil {
		return o, err
	}
	o.PaymentStatus = PaymentStatus(payStatus)
	o.Status = Status(status)
	o.Items = []Item{}
	return o, nil
}

func decimalArg(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return d.StringFixed(2)
}
