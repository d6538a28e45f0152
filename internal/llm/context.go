package llm

import "context"

type ctxKey int

const (
	purposeKey ctxKey = iota
	subjectKey
)

// WithPurpose tags ctx with the reason for an LLM call ("explanation").
// The logging decorator records it with every event.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom returns the purpose tag, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok && v != "" {
		return v
	}
	return "unknown"
}

// Subject identifies the problem a call is about.
type Subject struct {
	Topology string
	Target   string
}

// WithSubject tags ctx with the problem being explained.
func WithSubject(ctx context.Context, s Subject) context.Context {
	return context.WithValue(ctx, subjectKey, s)
}

// SubjectFrom returns the subject tag; the zero Subject when unset.
func SubjectFrom(ctx context.Context) Subject {
	s, _ := ctx.Value(subjectKey).(Subject)
	return s
}
