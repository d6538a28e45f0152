package cmd

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/circuitz/internal/store"
)

func seedAuditDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "events.db")
	s, err := store.Open(path)
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	for _, e := range []store.LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "explanation", Topology: "SERIES", Target: "Req", InputTokens: 100, OutputTokens: 50, LatencyMs: 200, Success: true, RequestBody: "[user]\nSolve for Req", ResponseBody: `{"steps":[]}`},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "explanation", Topology: "COMBINATION", Target: "Itotal", InputTokens: 80, OutputTokens: 40, LatencyMs: 300, Success: false, ErrorMessage: "deadline exceeded"},
	} {
		require.NoError(t, s.EventRepo().AppendLLMRequest(ctx, e))
	}
	return path
}

func TestLLMList_ShowsCircuit(t *testing.T) {
	db := seedAuditDB(t)

	out := runCLI(t, "", "llm", "list", "--db", db, "--topology", "", "--limit", "20")
	assert.Contains(t, out, "Solving for")
	assert.Contains(t, out, "Series")
	assert.Contains(t, out, "Total Equivalent Resistance (Req)")
	assert.Contains(t, out, "Combination")

	out = runCLI(t, "", "llm", "list", "--db", db, "--topology", "combination", "--limit", "20")
	assert.Contains(t, out, "Total Current (Itotal)")
	assert.NotContains(t, out, "Series")
}

func TestLLMView_ShowsCircuit(t *testing.T) {
	db := seedAuditDB(t)

	out := runCLI(t, "", "llm", "view", "1", "--db", db)
	assert.Contains(t, out, "Circuit:     Series")
	assert.Contains(t, out, "Solving for: Total Equivalent Resistance (Req)")
	assert.Contains(t, out, "Solve for Req")

	out = runCLI(t, "", "llm", "view", "2", "--db", db)
	assert.Contains(t, out, "failed: deadline exceeded")
}

func TestLLMStats_ByTopology(t *testing.T) {
	db := seedAuditDB(t)

	out := runCLI(t, "", "llm", "stats", "--db", db)
	require.Contains(t, out, "Explanations by circuit")
	var rows []string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "Series") || strings.HasPrefix(line, "Combination") {
			rows = append(rows, strings.Join(strings.Fields(line), " "))
		}
	}
	assert.ElementsMatch(t, []string{"Series 1 0 200", "Combination 1 1 300"}, rows)
	assert.Contains(t, out, "gemini-2.5-flash")
}
