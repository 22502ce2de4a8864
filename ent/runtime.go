// Code generated by ent, DO NOT EDIT.

package ent

import (
	"time"

	"github.com/kurso-app/kurso/ent/attemptevent"
	"github.com/kurso-app/kurso/ent/schema"
)

// The init function reads all schema descriptors with runtime code
// (default values, validators, hooks and policies) and stitches it
// to their package variables.
func init() {
	attempteventMixin := schema.AttemptEvent{}.Mixin()
	attempteventMixinFields0 := attempteventMixin[0].Fields()
	_ = attempteventMixinFields0
	attempteventFields := schema.AttemptEvent{}.Fields()
	_ = attempteventFields
	// attempteventDescTimestamp is the schema descriptor for timestamp field.
	attempteventDescTimestamp := attempteventMixinFields0[1].Descriptor()
	// attemptevent.DefaultTimestamp holds the default value on creation for the timestamp field.
	attemptevent.DefaultTimestamp = attempteventDescTimestamp.Default.(func() time.Time)
	// attempteventDescSessionID is the schema descriptor for session_id field.
	attempteventDescSessionID := attempteventFields[0].Descriptor()
	// attemptevent.SessionIDValidator is a validator for the "session_id" field. It is called by the builders before save.
	attemptevent.SessionIDValidator = attempteventDescSessionID.Validators[0].(func(string) error)
	// attempteventDescQuizID is the schema descriptor for quiz_id field.
	attempteventDescQuizID := attempteventFields[1].Descriptor()
	// attemptevent.QuizIDValidator is a validator for the "quiz_id" field. It is called by the builders before save.
	attemptevent.QuizIDValidator = attempteventDescQuizID.Validators[0].(func(string) error)
	// attempteventDescCourseID is the schema descriptor for course_id field.
	attempteventDescCourseID := attempteventFields[2].Descriptor()
	// attemptevent.CourseIDValidator is a validator for the "course_id" field. It is called by the builders before save.
	attemptevent.CourseIDValidator = attempteventDescCourseID.Validators[0].(func(string) error)
	// attempteventDescQuizTitle is the schema descriptor for quiz_title field.
	attempteventDescQuizTitle := attempteventFields[3].Descriptor()
	// attemptevent.DefaultQuizTitle holds the default value on creation for the quiz_title field.
	attemptevent.DefaultQuizTitle = attempteventDescQuizTitle.Default.(string)
	// attempteventDescCourseTitle is the schema descriptor for course_title field.
	attempteventDescCourseTitle := attempteventFields[4].Descriptor()
	// attemptevent.DefaultCourseTitle holds the default value on creation for the course_title field.
	attemptevent.DefaultCourseTitle = attempteventDescCourseTitle.Default.(string)
	// attempteventDescCorrectCount is the schema descriptor for correct_count field.
	attempteventDescCorrectCount := attempteventFields[6].Descriptor()
	// attemptevent.DefaultCorrectCount holds the default value on creation for the correct_count field.
	attemptevent.DefaultCorrectCount = attempteventDescCorrectCount.Default.(int)
	// attempteventDescTotalQuestions is the schema descriptor for total_questions field.
	attempteventDescTotalQuestions := attempteventFields[7].Descriptor()
	// attemptevent.DefaultTotalQuestions holds the default value on creation for the total_questions field.
	attemptevent.DefaultTotalQuestions = attempteventDescTotalQuestions.Default.(int)
	// attempteventDescPassed is the schema descriptor for passed field.
	attempteventDescPassed := attempteventFields[8].Descriptor()
	// attemptevent.DefaultPassed holds the default value on creation for the passed field.
	attemptevent.DefaultPassed = attempteventDescPassed.Default.(bool)
	// attempteventDescDurationSecs is the schema descriptor for duration_secs field.
	attempteventDescDurationSecs := attempteventFields[9].Descriptor()
	// attemptevent.DefaultDurationSecs holds the default value on creation for the duration_secs field.
	attemptevent.DefaultDurationSecs = attempteventDescDurationSecs.Default.(int)
	// attempteventDescTrigger is the schema descriptor for trigger field.
	attempteventDescTrigger := attempteventFields[10].Descriptor()
	// attemptevent.DefaultTrigger holds the default value on creation for the trigger field.
	attemptevent.DefaultTrigger = attempteventDescTrigger.Default.(string)
}
