package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// DefaultRecentLimit caps Recent when the caller passes a non-positive limit.
const DefaultRecentLimit = 50

const schema = `
CREATE TABLE IF NOT EXISTS webhook_delivery (
    id          BIGSERIAL PRIMARY KEY,
    event_id    TEXT NOT NULL,
    event_type  TEXT NOT NULL,
    outcome     TEXT NOT NULL,
    detail      TEXT NOT NULL DEFAULT '',
    received_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS webhook_delivery_event_id_idx ON webhook_delivery (event_id);
`

// Delivery is one signature-valid webhook delivery and what became of it.
// The same event id appears once per delivery.
type Delivery struct {
	ID         int64
	EventID    string
	EventType  string
	Outcome    string
	Detail     string
	ReceivedAt time.Time
}

// Journal stores webhook deliveries in Postgres.
type Journal struct {
	db *sql.DB
}

func NewJournal(db *sql.DB) *Journal { return &Journal{db: db} }

// EnsureSchema creates the journal table if it does not exist.
func (j *Journal) EnsureSchema(ctx context.Context) error {
	if _, err := j.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("error creating webhook_delivery table: %w", err)
	}
	return nil
}

// Record inserts a delivery. ReceivedAt defaults to now.
func (j *Journal) Record(ctx context.Context, d Delivery) error {
	if d.EventID == "" {
		return errors.New("delivery has no event id")
	}
	if d.ReceivedAt.IsZero() {
		d.ReceivedAt = time.Now().UTC()
	}
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO webhook_delivery (event_id, event_type, outcome, detail, received_at) VALUES ($1, $2, $3, $4, $5)`,
		d.EventID, d.EventType, d.Outcome, d.Detail, d.ReceivedAt)
	if err != nil {
		return fmt.Errorf("error inserting webhook_delivery: %w", err)
	}
	return nil
}

// Recent returns the latest deliveries, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Delivery, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	rows, err := j.db.QueryContext(ctx,
		`SELECT id, event_id, event_type, outcome, detail, received_at FROM webhook_delivery ORDER BY received_at DESC, id DESC LIMIT $1`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("error querying webhook_delivery: %w", err)
	}
	defer rows.Close()

	var out []Delivery
	for rows.Next() {
		var d Delivery
		if err := rows.Scan(&d.ID, &d.EventID, &d.EventType, &d.Outcome, &d.Detail, &d.ReceivedAt); err != nil {
			return nil, fmt.Errorf("error scanning webhook_delivery: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating webhook_delivery: %w", err)
	}
	return out, nil
}

// CountByEvent returns how many deliveries were recorded for an event id.
// More than one means Stripe redelivered it.
func (j *Journal) CountByEvent(ctx context.Context, eventID string) (int, error) {
	var n int
	err := j.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM webhook_delivery WHERE event_id = $1`, eventID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("error counting webhook_delivery: %w", err)
	}
	return n, nil
}
