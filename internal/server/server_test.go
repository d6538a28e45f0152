package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/circuitz/internal/circuit"
	"github.com/abhisek/circuitz/internal/explain"
	"github.com/abhisek/circuitz/internal/llm"
)

func newTestRouter(t *testing.T, explainer explain.Explainer) http.Handler {
	t.Helper()
	return NewRouter(Deps{Generator: circuit.NewSeededGenerator(1), Explainer: explainer})
}

func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func seriesProblem(t *testing.T, target circuit.Target) circuit.Problem {
	t.Helper()
	p, err := circuit.NewProblem(circuit.TopologySeries, 20, []float64{10, 20, 30}, target)
	require.NoError(t, err)
	return p
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestRouter(t, nil), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestRequestID_Propagated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	newTestRouter(t, nil).ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestTopologies(t *testing.T) {
	rec := do(t, newTestRouter(t, nil), http.MethodGet, "/v1/topologies", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[
		{"name":"SERIES","label":"Series"},
		{"name":"PARALLEL","label":"Parallel"},
		{"name":"COMBINATION","label":"Combination"}
	]`, rec.Body.String())
}

func TestNewProblem(t *testing.T) {
	h := newTestRouter(t, nil)

	rec := do(t, h, http.MethodGet, "/v1/problems?topology=parallel", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var view ProblemView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, circuit.TopologyParallel, view.Topology)
	assert.Len(t, view.Resistors, circuit.ResistorCount)
	assert.Equal(t, view.Problem.Statement(), view.Statement)
	assert.Contains(t, view.Schematic, "R1")
}

func TestNewProblem_SeedIsDeterministic(t *testing.T) {
	h := newTestRouter(t, nil)
	a := do(t, h, http.MethodGet, "/v1/problems?topology=series&seed=42", nil)
	b := do(t, h, http.MethodGet, "/v1/problems?topology=series&seed=42", nil)
	require.Equal(t, http.StatusOK, a.Code)
	assert.Equal(t, a.Body.String(), b.Body.String())
}

func TestNewProblem_BadInput(t *testing.T) {
	h := newTestRouter(t, nil)
	for _, target := range []string{
		"/v1/problems?topology=delta",
		"/v1/problems?seed=-1",
		"/v1/problems?seed=abc",
	} {
		rec := do(t, h, http.MethodGet, target, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestCheckAnswer(t *testing.T) {
	h := newTestRouter(t, nil)
	p := seriesProblem(t, circuit.TargetEquivalentResistance)

	tests := []struct {
		answer string
		want   circuit.Outcome
	}{
		{"60", circuit.OutcomeCorrect},
		{"60.4", circuit.OutcomeCorrect},
		{"61", circuit.OutcomeIncorrect},
		{"sixty", circuit.OutcomeInvalidInput},
	}
	for _, tt := range tests {
		rec := do(t, h, http.MethodPost, "/v1/answers", AnswerRequest{Problem: p, Answer: tt.answer})
		require.Equal(t, http.StatusOK, rec.Code)
		var v circuit.Verdict
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
		assert.Equal(t, tt.want, v.Outcome, tt.answer)
	}
}

func TestCheckAnswer_IgnoresClientAnswer(t *testing.T) {
	p := seriesProblem(t, circuit.TargetEquivalentResistance)
	p.CorrectAnswer = 1

	rec := do(t, newTestRouter(t, nil), http.MethodPost, "/v1/answers", AnswerRequest{Problem: p, Answer: "1"})
	require.Equal(t, http.StatusOK, rec.Code)
	var v circuit.Verdict
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	assert.Equal(t, circuit.OutcomeIncorrect, v.Outcome)
}

func TestCheckAnswer_InvalidProblem(t *testing.T) {
	h := newTestRouter(t, nil)

	p := seriesProblem(t, circuit.TargetEquivalentResistance)
	p.Resistors = p.Resistors[:2]
	rec := do(t, h, http.MethodPost, "/v1/answers", AnswerRequest{Problem: p, Answer: "30"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/v1/answers", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestExplain(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(
		`{"steps":[{"text":"Resistances add in series.","formula":"Req = 10 + 20 + 30 = 60Ω"}],"answer":"60Ω"}`,
	)})
	h := newTestRouter(t, explain.NewService(mock, explain.DefaultConfig()))

	rec := do(t, h, http.MethodPost, "/v1/explanations",
		ProblemRequest{Problem: seriesProblem(t, circuit.TargetEquivalentResistance)})
	require.Equal(t, http.StatusOK, rec.Code)

	var got explain.Explanation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.OK)
	assert.Contains(t, got.Text, "**Answer: 60Ω**")
	assert.Equal(t, 1, mock.CallCount())
}

func TestExplain_FailureIsNotAnHTTPError(t *testing.T) {
	h := newTestRouter(t, explain.NewService(llm.NewMockProvider(), explain.DefaultConfig()))

	rec := do(t, h, http.MethodPost, "/v1/explanations",
		ProblemRequest{Problem: seriesProblem(t, circuit.TargetTotalCurrent)})
	require.Equal(t, http.StatusOK, rec.Code)

	var got explain.Explanation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.False(t, got.OK)
	assert.Equal(t, explain.FailureMessage, got.Text)
}

func TestExplain_NotConfigured(t *testing.T) {
	rec := do(t, newTestRouter(t, nil), http.MethodPost, "/v1/explanations",
		ProblemRequest{Problem: seriesProblem(t, circuit.TargetTotalCurrent)})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestPlot(t *testing.T) {
	h := newTestRouter(t, nil)
	body := ProblemRequest{Problem: seriesProblem(t, circuit.TargetTotalCurrent)}

	rec := do(t, h, http.MethodPost, "/v1/plots", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<svg")

	rec = do(t, h, http.MethodPost, "/v1/plots?format=png", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))

	rec = do(t, h, http.MethodPost, "/v1/plots?format=gif", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNotFoundAndMethod(t *testing.T) {
	h := newTestRouter(t, nil)
	tests := []struct {
		method, target string
		code           int
		message        string
	}{
		{http.MethodGet, "/v1/nope", http.StatusNotFound, "not found"},
		{http.MethodGet, "/v1/answers", http.StatusMethodNotAllowed, "method not allowed"},
		{http.MethodDelete, "/v1/problems", http.StatusMethodNotAllowed, "method not allowed"},
		{http.MethodPost, "/health", http.StatusMethodNotAllowed, "method not allowed"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.target, nil)
			require.Equal(t, tt.code, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.message, body["error"])
		})
	}
}
