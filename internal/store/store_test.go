package store

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	assert.NotNil(t, s.Client(), "expected non-nil ent client")
}

func TestPragmasApplied(t *testing.T) {
	db := openTestStore(t).DB()

	// journal_mode reports "memory" for in-memory databases; see TestOpenFile.
	for pragma, want := range map[string]string{"foreign_keys": "1", "synchronous": "1"} {
		var got string
		require.NoError(t, db.QueryRow("PRAGMA "+pragma).Scan(&got))
		assert.Equal(t, want, got, "PRAGMA %s", pragma)
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.db")
	s, err := Open(path)
	require.NoError(t, err)

	var mode string
	require.NoError(t, s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)

	ctx := context.Background()
	require.NoError(t, s.EventRepo().AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "mock", Purpose: "explanation", Success: true}))
	require.NoError(t, s.Close())

	// Reopening keeps events and continues the sequence.
	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	require.NoError(t, s.EventRepo().AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "mock", Purpose: "explanation"}))

	events, err := s.EventRepo().QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, int64(2), events[0].Sequence)
	assert.Equal(t, int64(1), events[1].Sequence)
}

func seedEvents(t *testing.T, repo EventRepo) {
	t.Helper()
	ctx := context.Background()
	events := []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "explanation", Topology: "SERIES", Target: "Req", InputTokens: 100, OutputTokens: 50, LatencyMs: 200, Success: true, RequestBody: "[user]\nexplain", ResponseBody: `{"steps":[]}`},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "explanation", Topology: "PARALLEL", Target: "Vtotal", InputTokens: 120, OutputTokens: 70, LatencyMs: 400, Success: true},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "explanation", LatencyMs: 30, Success: false, ErrorMessage: "LLM provider unavailable"},
		{Provider: "mock", Model: "mock", Purpose: "smoke-test", InputTokens: 1, OutputTokens: 1, LatencyMs: 1, Success: true},
	}
	for _, e := range events {
		require.NoError(t, repo.AppendLLMRequest(ctx, e))
	}
}

func TestQueryLLMEvents(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	seedEvents(t, repo)
	ctx := context.Background()

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "smoke-test", all[0].Purpose, "newest first")
	assert.False(t, all[1].Success)
	assert.Equal(t, "LLM provider unavailable", all[1].ErrorMessage)
	assert.WithinDuration(t, time.Now(), all[0].Timestamp, time.Minute)

	tests := []struct {
		name string
		opts QueryOpts
		want int
	}{
		{"limit", QueryOpts{Limit: 2}, 2},
		{"after", QueryOpts{After: 2}, 2},
		{"before", QueryOpts{Before: 2}, 1},
		{"purpose", QueryOpts{Purpose: "explanation"}, 3},
		{"purpose and limit", QueryOpts{Purpose: "explanation", Limit: 1}, 1},
		{"topology", QueryOpts{Topology: "SERIES"}, 1},
		{"topology and purpose", QueryOpts{Topology: "PARALLEL", Purpose: "smoke-test"}, 0},
		{"from future", QueryOpts{From: time.Now().Add(time.Hour)}, 0},
		{"to past", QueryOpts{To: time.Now().Add(-time.Hour)}, 0},
		{"window", QueryOpts{From: time.Now().Add(-time.Hour), To: time.Now().Add(time.Hour)}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.QueryLLMEvents(ctx, tt.opts)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestGetLLMEvent(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	seedEvents(t, repo)
	ctx := context.Background()

	e, err := repo.GetLLMEvent(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, "gemini", e.Provider)
	assert.Equal(t, "SERIES", e.Topology)
	assert.Equal(t, "Req", e.Target)
	assert.Equal(t, "[user]\nexplain", e.RequestBody)
	assert.Equal(t, `{"steps":[]}`, e.ResponseBody)
	assert.Equal(t, 100, e.InputTokens)
	assert.True(t, e.Success)

	missing, err := repo.GetLLMEvent(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestLLMUsage(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	ctx := context.Background()

	empty, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	seedEvents(t, repo)

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, byPurpose, 2)
	assert.Equal(t, LLMUsageStats{Purpose: "explanation", Calls: 3, InputTokens: 220, OutputTokens: 120, AvgLatencyMs: 210}, byPurpose[0])
	assert.Equal(t, "smoke-test", byPurpose[1].Purpose)

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 3)
	assert.Equal(t, LLMModelUsage{Model: "gemini-2.5-flash", Calls: 2, InputTokens: 220, OutputTokens: 120}, byModel[0])
	assert.Equal(t, "gpt-4o-mini", byModel[1].Model)
	assert.Equal(t, "mock", byModel[2].Model)
}

func TestLLMUsageByTopology(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	ctx := context.Background()

	for _, e := range []LLMRequestEventData{
		{Provider: "gemini", Model: "m", Purpose: "explanation", Topology: "SERIES", LatencyMs: 100, Success: true},
		{Provider: "gemini", Model: "m", Purpose: "explanation", Topology: "SERIES", LatencyMs: 300, Success: false, ErrorMessage: "timeout"},
		{Provider: "gemini", Model: "m", Purpose: "explanation", Topology: "SERIES", LatencyMs: 200, Success: true},
		{Provider: "gemini", Model: "m", Purpose: "explanation", Topology: "COMBINATION", LatencyMs: 50, Success: true},
		{Provider: "mock", Model: "mock", Purpose: "smoke-test", LatencyMs: 1, Success: true},
	} {
		require.NoError(t, repo.AppendLLMRequest(ctx, e))
	}

	usage, err := repo.LLMUsageByTopology(ctx)
	require.NoError(t, err)
	assert.Equal(t, []LLMTopologyUsage{
		{Topology: "COMBINATION", Calls: 1, AvgLatencyMs: 50},
		{Topology: "SERIES", Calls: 3, Failures: 1, AvgLatencyMs: 200},
	}, usage)
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Run("env override", func(t *testing.T) {
		want := filepath.Join(dir, "nested", "x.db")
		t.Setenv("CIRCUITZ_DB", want)
		got, err := DefaultDBPath()
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.DirExists(t, filepath.Join(dir, "nested"))
	})

	t.Run("xdg data home", func(t *testing.T) {
		t.Setenv("CIRCUITZ_DB", "")
		t.Setenv("XDG_DATA_HOME", dir)
		got, err := DefaultDBPath()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "circuitz", "circuitz.db"), got)
	})
}
