package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// CallRecord is the metadata of one completion call. Prompts and
// completions are never stored.
type CallRecord struct {
	ID           int64
	Timestamp    time.Time
	Provider     string
	Model        string
	Purpose      string
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// QueryOpts configures call queries.
type QueryOpts struct {
	Limit   int    // max results (0 = unlimited)
	Purpose string // exact match; empty matches all
}

// PurposeUsage aggregates calls for a single purpose.
type PurposeUsage struct {
	Purpose      string
	Calls        int64
	Failures     int64
	AvgLatencyMs float64
}

// CallRepo records and reads completion call metadata.
type CallRepo interface {
	// AppendCall records a single completion call.
	AppendCall(ctx context.Context, rec CallRecord) error

	// RecentCalls returns calls newest first.
	RecentCalls(ctx context.Context, opts QueryOpts) ([]CallRecord, error)

	// UsageByPurpose returns per-purpose totals ordered by purpose.
	UsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
}

type callRepo struct {
	db *sql.DB
}

func (r *callRepo) AppendCall(ctx context.Context, rec CallRecord) error {
	ts := rec.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(callsTable).
		Columns("timestamp", "provider", "model", "purpose", "latency_ms", "success", "error_message").
		Values(ts.UnixMilli(), rec.Provider, rec.Model, rec.Purpose, rec.LatencyMs, rec.Success, rec.ErrorMessage).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save LLM call: %w", err)
	}
	return nil
}

func (r *callRepo) RecentCalls(ctx context.Context, opts QueryOpts) ([]CallRecord, error) {
	d := entsql.Dialect(dialect.SQLite)
	sel := d.Select("id", "timestamp", "provider", "model", "purpose", "latency_ms", "success", "error_message").
		From(d.Table(callsTable)).
		OrderBy(entsql.Desc("id"))
	if opts.Purpose != "" {
		sel.Where(entsql.EQ("purpose", opts.Purpose))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM calls: %w", err)
	}
	defer rows.Close()

	var out []CallRecord
	for rows.Next() {
		var (
			rec CallRecord
			ms  int64
		)
		if err := rows.Scan(&rec.ID, &ms, &rec.Provider, &rec.Model, &rec.Purpose, &rec.LatencyMs, &rec.Success, &rec.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scan LLM call: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ms).UTC()
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *callRepo) UsageByPurpose(ctx context.Context) ([]PurposeUsage, error) {
	d := entsql.Dialect(dialect.SQLite)
	query, args := d.Select(
		"purpose",
		entsql.As(entsql.Count("*"), "calls"),
		entsql.As("SUM(CASE WHEN success THEN 0 ELSE 1 END)", "failures"),
		entsql.As(entsql.Avg("latency_ms"), "avg_latency_ms"),
	).
		From(d.Table(callsTable)).
		GroupBy("purpose").
		OrderBy("purpose").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM usage: %w", err)
	}
	defer rows.Close()

	var out []PurposeUsage
	for rows.Next() {
		var u PurposeUsage
		if err := rows.Scan(&u.Purpose, &u.Calls, &u.Failures, &u.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("scan LLM usage: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
