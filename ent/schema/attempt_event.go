package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AttemptEvent records one graded quiz attempt for the local history
// view. The platform backend is the source of truth; this is offline
// bookkeeping only.
type AttemptEvent struct {
	ent.Schema
}

func (AttemptEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (AttemptEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("UUID of the attempt"),
		field.String("quiz_id").
			NotEmpty(),
		field.String("course_id").
			NotEmpty(),
		field.String("quiz_title").
			Default(""),
		field.String("course_title").
			Default(""),
		field.Float("score").
			Comment("Percentage 0-100 as graded by the backend"),
		field.Int("correct_count").
			Default(0),
		field.Int("total_questions").
			Default(0),
		field.Bool("passed").
			Default(false),
		field.Int("duration_secs").
			Default(0).
			Comment("Wall-clock seconds from start to submission"),
		field.String("trigger").
			Default("manual").
			Comment("manual or timeout"),
	}
}

func (AttemptEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("quiz_id"),
		index.Fields("course_id"),
	}
}
