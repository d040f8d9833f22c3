package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/preordergh/storefront-core/internal/logging"
)

// Execer is satisfied by pgx.Tx and *pgxpool.Pool so events can be written in
// the same transaction as the order change.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Record struct {
	ID        int64           `json:"id"`
	EventID   string          `json:"event_id"`
	Topic     string          `json:"topic"`
	Key       string          `json:"key"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
	SentAt    *time.Time      `json:"sent_at"`
}

func Insert(ctx context.Context, db Execer, topic string, evt Event) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	_, err = db.Exec(ctx, `INSERT INTO outbox(event_id, topic, key, payload) VALUES ($1, $2, $3, $4)`,
		evt.EventID, topic, evt.OrderID, data)
	return err
}

func MarkSent(ctx context.Context, pool *pgxpool.Pool, id int64) error {
	_, err := pool.Exec(ctx, `UPDATE outbox SET sent_at=now() WHERE id=$1`, id)
	return err
}

func FetchPending(ctx context.Context, pool *pgxpool.Pool, limit int) ([]Record, error) {
	rows, err := pool.Query(ctx, `SELECT id, event_id, topic, key, payload, created_at, sent_at FROM outbox WHERE sent_at IS NULL ORDER BY id LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.EventID, &rec.Topic, &rec.Key, &rec.Payload, &rec.CreatedAt, &rec.SentAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Relay drains the outbox into a Publisher until ctx is done.
type Relay struct {
	Pool      *pgxpool.Pool
	Publisher Publisher
	Interval  time.Duration
	Batch     int
}

func (r *Relay) Run(ctx context.Context) {
	interval := r.Interval
	if interval <= 0 {
		interval = time.Second
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if _, err := r.Flush(ctx); err != nil && ctx.Err() == nil {
				logging.Log(logging.Fields{Service: "outbox", Status: "error", Message: err.Error()})
			}
		}
	}
}

// Flush publishes one batch and returns how many records were sent. A record
// that fails to publish stays pending and stops the batch to keep key order.
func (r *Relay) Flush(ctx context.Context) (int, error) {
	batch := r.Batch
	if batch <= 0 {
		batch = 100
	}
	recs, err := FetchPending(ctx, r.Pool, batch)
	if err != nil {
		return 0, err
	}
	sent := 0
	for _, rec := range recs {
		start := time.Now()
		if err := r.Publisher.PublishRaw(ctx, rec.Topic, rec.Key, rec.Payload); err != nil {
			return sent, err
		}
		if err := MarkSent(ctx, r.Pool, rec.ID); err != nil {
			return sent, err
		}
		sent++
		logging.Log(logging.Fields{
			Service:    "outbox",
			OrderID:    rec.Key,
			EventID:    rec.EventID,
			Step:       rec.Topic,
			Status:     "sent",
			DurationMS: time.Since(start).Milliseconds(),
		})
	}
	return sent, nil
}

var _ Execer = (pgx.Tx)(nil)
