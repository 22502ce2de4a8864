package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kurso-app/kurso/internal/store"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print recent quiz attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve history path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		defer st.Close()

		repo, err := st.AttemptRepo()
		if err != nil {
			return err
		}
		attempts, err := repo.Recent(context.Background(), historyLimit)
		if err != nil {
			return err
		}
		if len(attempts) == 0 {
			fmt.Println("No attempts recorded yet.")
			return nil
		}

		for _, a := range attempts {
			outcome := "FAIL"
			if a.Passed {
				outcome = "PASS"
			}
			note := ""
			if a.Trigger == "timeout" {
				note = "  (time ran out)"
			}
			fmt.Printf("%s  %-40s %5.0f%%  %d/%d  %s%s\n",
				a.Timestamp.Format("2006-01-02 15:04"),
				a.QuizTitle, a.Score, a.CorrectCount, a.TotalQuestions, outcome, note)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of attempts to print")
}
