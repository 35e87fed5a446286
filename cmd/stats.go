package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/csatquiz/internal/store"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show graded quiz statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		byType, err := s.AttemptRepo().StatsByQuestionType(ctx)
		if err != nil {
			return fmt.Errorf("query stats: %w", err)
		}

		if len(byType) == 0 {
			fmt.Println("No graded quizzes yet.")
			return nil
		}

		fmt.Println("Scores by Question Type")
		fmt.Println(strings.Repeat("─", 72))
		fmt.Printf("%-44s  %8s  %6s  %6s\n", "Type", "Attempts", "Avg", "Best")
		fmt.Println(strings.Repeat("─", 72))

		var total, weighted float64
		for _, st := range byType {
			name := st.QuestionType
			if name == "" {
				name = "(saved quiz)"
			}
			fmt.Printf("%-44s  %8d  %6.1f  %6d\n", truncate(name, 44), st.Attempts, st.AvgScore, st.BestScore)
			total += float64(st.Attempts)
			weighted += st.AvgScore * float64(st.Attempts)
		}
		fmt.Println(strings.Repeat("─", 72))
		fmt.Printf("%-44s  %8d  %6.1f\n", "TOTAL", int(total), weighted/total)

		attempts, err := s.AttemptRepo().QueryAttempts(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query attempts: %w", err)
		}

		fmt.Println()
		fmt.Println("Recent Attempts")
		fmt.Println(strings.Repeat("─", 72))
		for _, a := range attempts {
			fmt.Printf("%-19s  %3d점  %d/%d  %s\n",
				a.Timestamp.Local().Format("2006-01-02 15:04:05"),
				a.Score, a.Correct, a.Total,
				truncate(a.Title, 40),
			)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().IntP("limit", "n", 10, "Number of recent attempts to show")
}
