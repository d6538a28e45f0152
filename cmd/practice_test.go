package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/circuitz/internal/circuit"
)

func runCLI(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	t.Setenv("CIRCUITZ_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}

	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestPractice_InvalidAnswerKeepsProblem(t *testing.T) {
	first := circuit.NewSeededGenerator(1).Generate(circuit.TopologySeries)
	answer := circuit.FormatValue(first.CorrectAnswer)

	out := runCLI(t, "abc\n12abc\n"+answer+"\n",
		"practice", "--count", "2", "--seed", "1", "--topology", "series")

	assert.Equal(t, 2, strings.Count(out, circuit.InvalidInputMessage))
	assert.Equal(t, 4, strings.Count(out, "Your answer"), "problem 1 asked three times, problem 2 once")
	assert.Contains(t, out, "✓ Correct!")

	firstStatement := strings.Index(out, "Problem 1/2")
	secondStatement := strings.Index(out, "Problem 2/2")
	correctAt := strings.Index(out, "✓ Correct!")
	require.NotEqual(t, -1, secondStatement)
	assert.Less(t, firstStatement, correctAt)
	assert.Less(t, correctAt, secondStatement, "problem 2 only after problem 1 was answered")

	assert.Contains(t, out, "(input closed)")
	assert.Contains(t, out, "Summary: 1/1 correct")
}

func TestPractice_EmptyAnswerSkips(t *testing.T) {
	out := runCLI(t, "\n", "practice", "--count", "1", "--seed", "2", "--topology", "parallel")
	assert.Contains(t, out, "(skipped)")
	assert.Contains(t, out, "Summary: 0/0 correct")
}

func TestGenerate_AnswerFlag(t *testing.T) {
	p := circuit.NewSeededGenerator(3).Generate(circuit.TopologyCombination)
	out := runCLI(t, "", "generate", "--seed", "3", "--topology", "combination", "--answer")
	assert.Contains(t, out, p.Statement())
	assert.Contains(t, out, "Answer: "+circuit.FormatValue(p.CorrectAnswer)+" "+p.Target.Unit())
}
