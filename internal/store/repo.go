package store

import (
	"context"
	"time"
)

// QueryOpts filters and paginates event queries. Zero values disable the
// corresponding filter.
type QueryOpts struct {
	Limit    int
	After    int64 // sequence > After
	Before   int64 // sequence < Before
	From     time.Time
	To       time.Time
	Purpose  string
	Topology string
}

// LLMRequestEventData is what the logging decorator records for one call.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	Topology     string
	Target       string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEventRecord is a stored LLM event.
type LLMEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsageStats aggregates calls by purpose.
type LLMUsageStats struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates calls by model, for cost estimates.
type LLMModelUsage struct {
	Model        string `json:"model"`
	Calls        int    `json:"calls"`
	InputTokens  int    `json:"input_tokens"`
	OutputTokens int    `json:"output_tokens"`
}

// LLMTopologyUsage aggregates explanation calls by circuit topology.
type LLMTopologyUsage struct {
	Topology     string
	Calls        int
	Failures     int
	AvgLatencyMs int64
}

// EventRepo appends and reads LLM request events.
type EventRepo interface {
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)

	// GetLLMEvent returns nil, nil when no event has the given ID.
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)

	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)

	// LLMUsageByTopology covers events tagged with a topology only.
	LLMUsageByTopology(ctx context.Context) ([]LLMTopologyUsage, error)
}
