// Package server exposes problem generation, answer checking, explanations
// and I-V plots over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/abhisek/circuitz/internal/circuit"
	"github.com/abhisek/circuitz/internal/explain"
)

// Deps are the services behind the HTTP handlers. Explainer may be nil, in
// which case explanation requests get 503.
type Deps struct {
	Generator *circuit.Generator
	Explainer explain.Explainer
}

// NewRouter builds the API router.
func NewRouter(d Deps) http.Handler {
	if d.Generator == nil {
		d.Generator = circuit.DefaultGenerator()
	}
	h := &handler{gen: d.Generator, explainer: d.Explainer}

	r := mux.NewRouter()
	r.Use(requestID, accessLog)

	r.HandleFunc("/health", h.health).Methods(http.MethodGet)

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/topologies", h.topologies).Methods(http.MethodGet)
	v1.HandleFunc("/problems", h.newProblem).Methods(http.MethodGet)
	v1.HandleFunc("/answers", h.checkAnswer).Methods(http.MethodPost)
	v1.HandleFunc("/explanations", h.explain).Methods(http.MethodPost)
	v1.HandleFunc("/plots", h.plot).Methods(http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	methodNotAllowed := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	r.MethodNotAllowedHandler = methodNotAllowed
	v1.MethodNotAllowedHandler = methodNotAllowed
	return r
}

// Run serves the API on addr until ctx is cancelled, then shuts down
// gracefully.
func Run(ctx context.Context, addr string, d Deps) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(d),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()
		slog.Info("http server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
