package store

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/abhisek/circuitz/ent"
	"github.com/abhisek/circuitz/ent/llmrequestevent"
)

// eventRepo implements EventRepo backed by ent and the sequence counter.
type eventRepo struct {
	client *ent.Client
	seq    *sequenceCounter
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.client.LLMRequestEvent.Create().
		SetSequence(seqNum).
		SetProvider(data.Provider).
		SetModel(data.Model).
		SetPurpose(data.Purpose).
		SetTopology(data.Topology).
		SetTarget(data.Target).
		SetInputTokens(data.InputTokens).
		SetOutputTokens(data.OutputTokens).
		SetLatencyMs(data.LatencyMs).
		SetSuccess(data.Success).
		SetErrorMessage(data.ErrorMessage).
		SetRequestBody(data.RequestBody).
		SetResponseBody(data.ResponseBody).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error) {
	query := r.client.LLMRequestEvent.Query().
		Order(ent.Desc(llmrequestevent.FieldSequence))

	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}
	if opts.After > 0 {
		query = query.Where(llmrequestevent.SequenceGT(opts.After))
	}
	if opts.Before > 0 {
		query = query.Where(llmrequestevent.SequenceLT(opts.Before))
	}
	if !opts.From.IsZero() {
		query = query.Where(llmrequestevent.TimestampGTE(opts.From))
	}
	if !opts.To.IsZero() {
		query = query.Where(llmrequestevent.TimestampLTE(opts.To))
	}
	if opts.Purpose != "" {
		query = query.Where(llmrequestevent.PurposeEQ(opts.Purpose))
	}
	if opts.Topology != "" {
		query = query.Where(llmrequestevent.TopologyEQ(opts.Topology))
	}

	events, err := query.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}

	records := make([]LLMEventRecord, len(events))
	for i, e := range events {
		records[i] = toRecord(e)
	}
	return records, nil
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error) {
	e, err := r.client.LLMRequestEvent.Get(ctx, id)
	if ent.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get LLM event %d: %w", id, err)
	}
	rec := toRecord(e)
	return &rec, nil
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error) {
	var rows []struct {
		Purpose      string  `json:"purpose"`
		Calls        int     `json:"calls"`
		InputTokens  int     `json:"input_tokens"`
		OutputTokens int     `json:"output_tokens"`
		AvgLatencyMs float64 `json:"avg_latency_ms"`
	}
	err := r.client.LLMRequestEvent.Query().
		GroupBy(llmrequestevent.FieldPurpose).
		Aggregate(
			ent.As(ent.Count(), "calls"),
			ent.As(ent.Sum(llmrequestevent.FieldInputTokens), "input_tokens"),
			ent.As(ent.Sum(llmrequestevent.FieldOutputTokens), "output_tokens"),
			ent.As(ent.Mean(llmrequestevent.FieldLatencyMs), "avg_latency_ms"),
		).
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("query usage by purpose: %w", err)
	}

	stats := make([]LLMUsageStats, len(rows))
	for i, row := range rows {
		stats[i] = LLMUsageStats{
			Purpose:      row.Purpose,
			Calls:        row.Calls,
			InputTokens:  row.InputTokens,
			OutputTokens: row.OutputTokens,
			AvgLatencyMs: int64(math.Trunc(row.AvgLatencyMs)),
		}
	}
	slices.SortFunc(stats, func(a, b LLMUsageStats) int { return cmp.Compare(a.Purpose, b.Purpose) })
	return stats, nil
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error) {
	var usage []LLMModelUsage
	err := r.client.LLMRequestEvent.Query().
		GroupBy(llmrequestevent.FieldModel).
		Aggregate(
			ent.As(ent.Count(), "calls"),
			ent.As(ent.Sum(llmrequestevent.FieldInputTokens), "input_tokens"),
			ent.As(ent.Sum(llmrequestevent.FieldOutputTokens), "output_tokens"),
		).
		Scan(ctx, &usage)
	if err != nil {
		return nil, fmt.Errorf("query usage by model: %w", err)
	}
	slices.SortFunc(usage, func(a, b LLMModelUsage) int { return cmp.Compare(a.Model, b.Model) })
	return usage, nil
}

func (r *eventRepo) LLMUsageByTopology(ctx context.Context) ([]LLMTopologyUsage, error) {
	var rows []struct {
		Topology     string  `json:"topology"`
		Success      bool    `json:"success"`
		Calls        int     `json:"calls"`
		AvgLatencyMs float64 `json:"avg_latency_ms"`
	}
	err := r.client.LLMRequestEvent.Query().
		Where(llmrequestevent.TopologyNEQ("")).
		GroupBy(llmrequestevent.FieldTopology, llmrequestevent.FieldSuccess).
		Aggregate(
			ent.As(ent.Count(), "calls"),
			ent.As(ent.Mean(llmrequestevent.FieldLatencyMs), "avg_latency_ms"),
		).
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("query usage by topology: %w", err)
	}

	// Fold the success/failure groups of each topology together.
	byTopology := make(map[string]*LLMTopologyUsage)
	totalLatency := make(map[string]float64)
	for _, row := range rows {
		u, ok := byTopology[row.Topology]
		if !ok {
			u = &LLMTopologyUsage{Topology: row.Topology}
			byTopology[row.Topology] = u
		}
		u.Calls += row.Calls
		if !row.Success {
			u.Failures += row.Calls
		}
		totalLatency[row.Topology] += row.AvgLatencyMs * float64(row.Calls)
	}

	usage := make([]LLMTopologyUsage, 0, len(byTopology))
	for topology, u := range byTopology {
		u.AvgLatencyMs = int64(math.Trunc(totalLatency[topology] / float64(u.Calls)))
		usage = append(usage, *u)
	}
	slices.SortFunc(usage, func(a, b LLMTopologyUsage) int { return cmp.Compare(a.Topology, b.Topology) })
	return usage, nil
}

func toRecord(e *ent.LLMRequestEvent) LLMEventRecord {
	return LLMEventRecord{
		ID:        e.ID,
		Sequence:  e.Sequence,
		Timestamp: e.Timestamp,
		LLMRequestEventData: LLMRequestEventData{
			Provider:     e.Provider,
			Model:        e.Model,
			Purpose:      e.Purpose,
			Topology:     e.Topology,
			Target:       e.Target,
			InputTokens:  e.InputTokens,
			OutputTokens: e.OutputTokens,
			LatencyMs:    e.LatencyMs,
			Success:      e.Success,
			ErrorMessage: e.ErrorMessage,
			RequestBody:  e.RequestBody,
			ResponseBody: e.ResponseBody,
		},
	}
}
