package eventlog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

type Event struct {
	Seq       int64
	Type      string
	Key       string
	Data      map[string]any
	CreatedAt int64
}

// Repo appends events to event_log. Rows are never updated.
type Repo struct{ db *sql.DB }

func NewRepo(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Append(ctx context.Context, e Event) error {
	data, err := json.Marshal(e.Data)
	if err != nil {
		return fmt.Errorf("eventlog: encode %s: %w", e.Type, err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO event_log (event_type, event_key, data, created_at)
		 VALUES ($1,$2,$3,$4)`,
		e.Type, e.Key, string(data), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("eventlog: append %s: %w", e.Type, err)
	}
	return nil
}

// ByKey returns the events recorded under key, oldest first.
func (r *Repo) ByKey(ctx context.Context, key string) ([]Event, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT seq, event_type, event_key, data, created_at FROM event_log WHERE event_key=$1 ORDER BY seq`, key)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Event
	for rows.Next() {
		var e Event
		var raw string
		if err := rows.Scan(&e.Seq, &e.Type, &e.Key, &raw, &e.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(raw), &e.Data); err != nil {
			return nil, fmt.Errorf("eventlog: decode seq %d: %w", e.Seq, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
