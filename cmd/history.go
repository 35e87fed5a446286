package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/abhisek/csatquiz/internal/quiz"
	"github.com/abhisek/csatquiz/internal/render"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage saved quizzes",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved quizzes, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		hist := historyStore(cmd)
		names, err := hist.List()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Printf("No saved quizzes in %s.\n", hist.Dir())
			return nil
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Print a saved quiz",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := historyStore(cmd).Load(args[0])
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			out, err := json.MarshalIndent(q, "", "  ")
			if err != nil {
				return fmt.Errorf("encode quiz: %w", err)
			}
			fmt.Println(string(out))
			return nil
		}

		answers, _ := cmd.Flags().GetBool("answers")
		printQuiz(os.Stdout, q, answers)
		return nil
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <file>",
	Short: "Delete a saved quiz",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := historyStore(cmd).Delete(args[0]); err != nil {
			return err
		}
		fmt.Println("Deleted", args[0])
		return nil
	},
}

// printQuiz writes q as plain text. Answers, explanations and vocabulary
// are included only when withAnswers is set.
func printQuiz(w io.Writer, q *quiz.Quiz, withAnswers bool) {
	sep := strings.Repeat("─", 60)

	fmt.Fprintln(w, render.Plain(q.Title))
	fmt.Fprintln(w, sep)
	fmt.Fprintln(w, render.Plain(q.Passage))
	fmt.Fprintln(w, sep)

	for i, question := range q.Questions {
		fmt.Fprintf(w, "\nQ%d. %s\n", i+1, render.Plain(render.QuestionText(question.Question)))
		for _, opt := range question.Options {
			fmt.Fprintf(w, "   %s\n", opt)
		}
	}

	if !withAnswers {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, sep)
	for i, question := range q.Questions {
		fmt.Fprintf(w, "Q%d. 정답: %s\n", i+1, question.Answer)
		if question.Type != "" {
			fmt.Fprintf(w, "유형: %s\n", question.Type)
		}
		if question.Explanation != "" {
			fmt.Fprintf(w, "해설: %s\n", render.Plain(question.Explanation))
		}
	}

	if len(q.Vocabulary) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "단어장")
		for _, v := range q.Vocabulary {
			fmt.Fprintf(w, "  %-24s %s\n", v.Word, v.Meaning)
		}
	}
}

func init() {
	historyShowCmd.Flags().Bool("answers", false, "Include answers, explanations and vocabulary")
	historyShowCmd.Flags().Bool("json", false, "Print the saved JSON document")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyDeleteCmd)
}
