package events

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"departamento/internal/domain"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// Writer appends to and reads from the eventos table.
type Writer struct {
	DB  *sql.DB
	Now func() time.Time
}

type EventPayload map[string]any

// Filter narrows List. Zero values match everything.
type Filter struct {
	Limit      int
	EntityKind string
	EntityID   string
}

func (w Writer) Append(ctx context.Context, evtType, entityKind, entityID string, payload EventPayload) error {
	now := w.Now
	if now == nil {
		now = time.Now
	}
	if payload == nil {
		payload = EventPayload{}
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event payload: %w", err)
	}
	_, err = w.DB.ExecContext(ctx, `INSERT INTO eventos(ts,type,entity_kind,entity_id,payload_json) VALUES (?,?,?,?,?)`,
		now().UTC().Format(time.RFC3339Nano), evtType, entityKind, nullable(entityID), string(data))
	return err
}

// List returns the most recent events first.
func (w Writer) List(ctx context.Context, f Filter) ([]domain.Event, error) {
	var (
		where []string
		args  []any
	)
	if f.EntityKind != "" {
		where = append(where, "entity_kind=?")
		args = append(args, f.EntityKind)
	}
	if f.EntityID != "" {
		where = append(where, "entity_id=?")
		args = append(args, f.EntityID)
	}
	query := `SELECT id, ts, type, entity_kind, COALESCE(entity_id,''), payload_json FROM eventos`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id DESC LIMIT ?"
	args = append(args, NormalizeLimit(f.Limit))

	rows, err := w.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []domain.Event{}
	for rows.Next() {
		var e domain.Event
		if err := rows.Scan(&e.ID, &e.TS, &e.Type, &e.EntityKind, &e.EntityID, &e.Payload); err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, rows.Err()
}

func NormalizeLimit(in int) int {
	if in <= 0 {
		return DefaultLimit
	}
	if in > MaxLimit {
		return MaxLimit
	}
	return in
}

func nullable(v string) any {
	if v == "" {
		return nil
	}
	return v
}
