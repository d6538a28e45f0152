package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// LLMRequestEvent is the audit record of one tutor call.
type LLMRequestEvent struct {
	ent.Schema
}

func (LLMRequestEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (LLMRequestEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("provider").
			Comment("Backend name: gemini, openai, openrouter, anthropic, mock"),
		field.String("model").
			Comment("Model ID the provider resolved to"),
		field.String("purpose").
			Comment("Caller label, e.g. explanation"),
		field.String("topology").
			Default("").
			Comment("Circuit topology of the explained problem, if any"),
		field.String("target").
			Default("").
			Comment("Unknown quantity of the explained problem, if any"),
		field.Int("input_tokens").
			Default(0),
		field.Int("output_tokens").
			Default(0),
		field.Int64("latency_ms").
			Default(0).
			Comment("Wall-clock time including provider round trip"),
		field.Bool("success"),
		field.String("error_message").
			Default(""),
		field.Text("request_body").
			Default("").
			Comment("Rendered prompt as sent"),
		field.Text("response_body").
			Default("").
			Comment("Raw model output"),
	}
}

func (LLMRequestEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("provider"),
		index.Fields("purpose"),
		index.Fields("model"),
		index.Fields("success"),
	}
}
