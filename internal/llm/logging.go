package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/abhisek/circuitz/internal/store"
)

// LoggingProvider records every request to the event store and the
// process logger.
type LoggingProvider struct {
	inner    Provider
	provider string
	repo     store.EventRepo
}

// WithLogging wraps p. provider is the backend name recorded with each
// event ("gemini", "openai", ...). repo may be nil.
func WithLogging(p Provider, provider string, repo store.EventRepo) Provider {
	return &LoggingProvider{inner: p, provider: provider, repo: repo}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	subject := SubjectFrom(ctx)
	data := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		Topology:    subject.Topology,
		Target:      subject.Target,
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: describeRequest(req),
	}
	if resp != nil {
		data.Model = resp.Model
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.ResponseBody = string(resp.Content)
	}
	if err != nil {
		data.ErrorMessage = err.Error()
		slog.Warn("LLM request failed",
			"provider", data.Provider,
			"model", data.Model,
			"purpose", data.Purpose,
			"topology", data.Topology,
			"latency_ms", data.LatencyMs,
			"error", err)
	} else {
		slog.Info("LLM request",
			"provider", data.Provider,
			"model", data.Model,
			"purpose", data.Purpose,
			"latency_ms", data.LatencyMs,
			"input_tokens", data.InputTokens,
			"output_tokens", data.OutputTokens)
	}

	// The event store is an audit trail; a write failure never fails the call.
	if l.repo != nil {
		if logErr := l.repo.AppendLLMRequest(context.WithoutCancel(ctx), data); logErr != nil {
			slog.Warn("failed to record LLM event", "error", logErr)
		}
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// describeRequest renders req as sectioned text for the event log.
func describeRequest(req Request) string {
	var b strings.Builder
	if req.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", req.System)
	}
	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}
	return b.String()
}
