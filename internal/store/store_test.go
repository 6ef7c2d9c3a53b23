package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err, "open test store")
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrateCreatesCallsTable(t *testing.T) {
	s := openTestStore(t)

	rows, err := s.DB().Query("SELECT name FROM pragma_table_info('llm_calls') ORDER BY cid")
	require.NoError(t, err)
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		cols = append(cols, name)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{
		"id", "timestamp", "provider", "model", "purpose", "latency_ms", "success", "error_message",
	}, cols)

	_, err = s.DB().Exec("INSERT INTO llm_calls (timestamp, provider, model, purpose, latency_ms, success) VALUES (1, 'mock', 'mock', 'feedback', 5, 1)")
	require.NoError(t, err)
	var msg string
	require.NoError(t, s.DB().QueryRow("SELECT error_message FROM llm_calls").Scan(&msg))
	assert.Empty(t, msg)
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.CallRepo().AppendCall(context.Background(), CallRecord{
		Provider: "mock", Model: "mock", Purpose: "feedback", Success: true,
	}))
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	calls, err := s2.CallRepo().RecentCalls(context.Background(), QueryOpts{})
	require.NoError(t, err)
	assert.Len(t, calls, 1)
}

func TestAppendAndRecentCalls(t *testing.T) {
	s := openTestStore(t)
	repo := s.CallRepo()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Millisecond)
	records := []CallRecord{
		{Timestamp: now, Provider: "openrouter", Model: "m1", Purpose: "question-gen", LatencyMs: 1200, Success: true},
		{Timestamp: now.Add(time.Second), Provider: "openrouter", Model: "m1", Purpose: "feedback", LatencyMs: 800, Success: false, ErrorMessage: "LLM provider error (status 503)"},
		{Timestamp: now.Add(2 * time.Second), Provider: "openrouter", Model: "m1", Purpose: "question-gen", LatencyMs: 1000, Success: true},
	}
	for _, rec := range records {
		require.NoError(t, repo.AppendCall(ctx, rec))
	}

	all, err := repo.RecentCalls(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, int64(1000), all[0].LatencyMs, "newest first")
	assert.True(t, all[0].Timestamp.Equal(now.Add(2*time.Second)))
	assert.False(t, all[1].Success)
	assert.Equal(t, "LLM provider error (status 503)", all[1].ErrorMessage)

	limited, err := repo.RecentCalls(ctx, QueryOpts{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	feedback, err := repo.RecentCalls(ctx, QueryOpts{Purpose: "feedback"})
	require.NoError(t, err)
	require.Len(t, feedback, 1)
	assert.Equal(t, "feedback", feedback[0].Purpose)
}

func TestUsageByPurpose(t *testing.T) {
	s := openTestStore(t)
	repo := s.CallRepo()
	ctx := context.Background()

	for _, rec := range []CallRecord{
		{Provider: "mock", Model: "mock", Purpose: "question-gen", LatencyMs: 100, Success: true},
		{Provider: "mock", Model: "mock", Purpose: "question-gen", LatencyMs: 300, Success: false},
		{Provider: "mock", Model: "mock", Purpose: "feedback", LatencyMs: 50, Success: true},
	} {
		require.NoError(t, repo.AppendCall(ctx, rec))
	}

	usage, err := repo.UsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, usage, 2)

	assert.Equal(t, PurposeUsage{Purpose: "feedback", Calls: 1, Failures: 0, AvgLatencyMs: 50}, usage[0])
	assert.Equal(t, PurposeUsage{Purpose: "question-gen", Calls: 2, Failures: 1, AvgLatencyMs: 200}, usage[1])
}

func TestUsageByPurpose_Empty(t *testing.T) {
	s := openTestStore(t)
	usage, err := s.CallRepo().UsageByPurpose(context.Background())
	require.NoError(t, err)
	assert.Empty(t, usage)
}
