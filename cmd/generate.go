package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/abhisek/csatquiz/internal/csat"
	"github.com/abhisek/csatquiz/internal/quizgen"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one quiz and print it as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := generationRequest(cmd)
		if err != nil {
			return err
		}

		cfg := resolveLLMConfig(cmd)
		if err := cfg.Validate(); err != nil {
			return err
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		if cfg.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
			defer cancel()
		}

		gen, err := quizgen.ProviderFactory(st.EventRepo(), resolveGeneratorConfig(cmd))(ctx, cfg)
		if err != nil {
			return fmt.Errorf("create generator: %w", err)
		}

		fmt.Fprintf(os.Stderr, "Generating with %s (%s)...\n", cfg.Provider, cfg.Model())
		q, err := gen.Generate(ctx, req)
		if err != nil {
			var ne *quizgen.NormalizationError
			if errors.As(err, &ne) && ne.Raw != "" {
				fmt.Fprintln(os.Stderr, "Raw model output:")
				fmt.Fprintln(os.Stderr, ne.Raw)
			}
			return err
		}

		if save, _ := cmd.Flags().GetBool("save"); save {
			name, err := historyStore(cmd).Save(q, req.Topic, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, "Saved:", name)
		}

		out, err := json.MarshalIndent(q, "", "  ")
		if err != nil {
			return fmt.Errorf("encode quiz: %w", err)
		}
		fmt.Println(string(out))
		return nil
	},
}

// generationRequest builds a request from the selection flags. The question
// type accepts a catalogue ID or its full label.
func generationRequest(cmd *cobra.Command) (quizgen.GenerationRequest, error) {
	levelFlag, _ := cmd.Flags().GetString("level")
	gradeFlag, _ := cmd.Flags().GetString("grade")
	difficultyFlag, _ := cmd.Flags().GetString("difficulty")
	typeFlag, _ := cmd.Flags().GetString("type")
	topic, _ := cmd.Flags().GetString("topic")

	level, err := csat.ParseSchoolLevel(levelFlag)
	if err != nil {
		return quizgen.GenerationRequest{}, err
	}
	grade, err := csat.ParseGrade(gradeFlag)
	if err != nil {
		return quizgen.GenerationRequest{}, err
	}
	difficulty, err := csat.ParseDifficulty(difficultyFlag)
	if err != nil {
		return quizgen.GenerationRequest{}, err
	}

	questionType := typeFlag
	if qt, ok := csat.LookupQuestionType(typeFlag); ok {
		questionType = qt.Label
	}

	req := quizgen.GenerationRequest{
		SchoolLevel:  level,
		Grade:        grade,
		Difficulty:   difficulty,
		QuestionType: questionType,
		Topic:        topic,
	}
	return req, req.Validate()
}

func init() {
	addGenerateFlags(generateCmd)
}

func addGenerateFlags(c *cobra.Command) {
	var typeIDs []string
	for _, qt := range csat.QuestionTypes() {
		typeIDs = append(typeIDs, qt.ID)
	}

	f := c.Flags()
	f.String("level", string(csat.SchoolHigh), "School level: middle or high")
	f.String("grade", "3", "Grade within the school level (1-3)")
	f.String("difficulty", string(csat.DifficultyMedium), "Difficulty: easy, medium or hard")
	f.StringP("type", "t", typeIDs[0], "Question type: "+strings.Join(typeIDs, ", "))
	f.String("topic", "", "Passage topic")
	f.Bool("save", false, "Also save the quiz to the history directory")
}
