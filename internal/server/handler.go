package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/abhisek/circuitz/internal/circuit"
	"github.com/abhisek/circuitz/internal/explain"
	"github.com/abhisek/circuitz/internal/ivplot"
	"github.com/abhisek/circuitz/internal/schematic"
)

const maxBodyBytes = 64 << 10

type handler struct {
	gen       *circuit.Generator
	explainer explain.Explainer
}

// ProblemView is a problem plus its rendered statement and schematic.
type ProblemView struct {
	circuit.Problem
	Statement string `json:"statement"`
	Schematic string `json:"schematic"`
}

type topologyView struct {
	Name  circuit.Topology `json:"name"`
	Label string           `json:"label"`
}

// AnswerRequest is the body of POST /v1/answers.
type AnswerRequest struct {
	Problem circuit.Problem `json:"problem"`
	Answer  string          `json:"answer"`
}

// ProblemRequest is the body of POST /v1/explanations and /v1/plots.
type ProblemRequest struct {
	Problem circuit.Problem `json:"problem"`
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// topologies handles GET /v1/topologies
func (h *handler) topologies(w http.ResponseWriter, _ *http.Request) {
	out := make([]topologyView, 0, len(circuit.Topologies))
	for _, t := range circuit.Topologies {
		out = append(out, topologyView{Name: t, Label: t.Label()})
	}
	writeJSON(w, http.StatusOK, out)
}

// newProblem handles GET /v1/problems?topology=series&seed=42
func (h *handler) newProblem(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	gen := h.gen
	if s := q.Get("seed"); s != "" {
		seed, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "seed must be a non-negative integer")
			return
		}
		gen = circuit.NewSeededGenerator(seed)
	}

	var p circuit.Problem
	if name := q.Get("topology"); name != "" {
		t, err := circuit.ParseTopology(name)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		p = gen.Generate(t)
	} else {
		p = gen.GenerateAny()
	}

	writeJSON(w, http.StatusOK, ProblemView{
		Problem:   p,
		Statement: p.Statement(),
		Schematic: schematic.Render(p),
	})
}

// checkAnswer handles POST /v1/answers
func (h *handler) checkAnswer(w http.ResponseWriter, r *http.Request) {
	var req AnswerRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p, err := rebuild(req.Problem)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, circuit.Evaluate(p, req.Answer))
}

// explain handles POST /v1/explanations
func (h *handler) explain(w http.ResponseWriter, r *http.Request) {
	if h.explainer == nil {
		writeError(w, http.StatusServiceUnavailable, "explanations are not configured")
		return
	}
	var req ProblemRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p, err := rebuild(req.Problem)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.explainer.Explain(r.Context(), p))
}

// plot handles POST /v1/plots?format=svg
func (h *handler) plot(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = "svg"
	}
	contentType, ok := plotContentTypes[format]
	if !ok {
		writeError(w, http.StatusBadRequest, "format must be one of png, svg, pdf")
		return
	}

	var req ProblemRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p, err := rebuild(req.Problem)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := ivplot.WriteTo(&buf, p, format, ivplot.DefaultWidth, ivplot.DefaultHeight); err != nil {
		slog.Error("render plot", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to render plot")
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

var plotContentTypes = map[string]string{
	"svg": "image/svg+xml",
	"png": "image/png",
	"pdf": "application/pdf",
}

// rebuild recomputes the derived fields of a client-supplied problem so a
// tampered correct_answer cannot influence grading.
func rebuild(in circuit.Problem) (circuit.Problem, error) {
	values := make([]float64, len(in.Resistors))
	for i, r := range in.Resistors {
		values[i] = r.Value
	}
	return circuit.NewProblem(in.Topology, in.SourceVoltage, values, in.Target)
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("trailing data after JSON body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
