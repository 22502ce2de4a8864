package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kurso-app/kurso/internal/screen"
	"github.com/kurso-app/kurso/internal/screens"
	"github.com/kurso-app/kurso/internal/screens/catalog"
)

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "Open the course catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, func(deps screens.Deps) screen.Screen {
			return catalog.New(deps)
		})
	},
}
