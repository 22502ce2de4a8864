package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kurso-app/kurso/internal/screen"
	"github.com/kurso-app/kurso/internal/screens"
	"github.com/kurso-app/kurso/internal/screens/course"
	"github.com/kurso-app/kurso/internal/screens/session"
)

var quizCmd = &cobra.Command{
	Use:   "quiz <course-id> <quiz-id>",
	Short: "Jump straight into a quiz",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		courseID, quizID := args[0], args[1]
		return runApp(cmd, func(deps screens.Deps) screen.Screen {
			return session.New(session.Deps{
				Deps: deps,
				CourseScreen: func(id, notice string) screen.Screen {
					return course.New(deps, id, notice)
				},
			}, courseID, quizID)
		})
	},
}
