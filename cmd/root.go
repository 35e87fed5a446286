package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/abhisek/csatquiz/internal/history"
	"github.com/abhisek/csatquiz/internal/llm"
	"github.com/abhisek/csatquiz/internal/quizgen"
	"github.com/abhisek/csatquiz/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "csatquiz",
	Short: "CSAT English reading quiz generator",
	Long:  "csatquiz generates Korean CSAT-style English reading quizzes with an LLM, grades your answers and keeps a history of saved quizzes.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, false)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("db", "", "Path to SQLite database file (overrides CSATQUIZ_DB env var)")
	flags.String("history-dir", "", "Directory for saved quizzes (overrides CSATQUIZ_HISTORY_DIR env var)")
	flags.String("provider", "", "LLM provider: gemini, openai, anthropic, openrouter or mock")
	flags.String("model", "", "Model for the selected provider")
	flags.String("api-key", "", "API key for the selected provider")
	flags.Bool("lenient", false, "Accept incomplete model output instead of rejecting it (overrides CSATQUIZ_LENIENT env var)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then CSATQUIZ_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore resolves the database path and opens it.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

func historyStore(cmd *cobra.Command) *history.Store {
	dir, _ := cmd.Flags().GetString("history-dir")
	return history.New(history.ResolveDir(dir))
}

// resolveLLMConfig loads the environment configuration and applies the
// provider, model and key flags on top. The key is not validated here.
func resolveLLMConfig(cmd *cobra.Command) llm.Config {
	provider, _ := cmd.Flags().GetString("provider")
	model, _ := cmd.Flags().GetString("model")
	key, _ := cmd.Flags().GetString("api-key")
	return applyLLMFlags(llm.LoadConfig(), provider, model, key)
}

func applyLLMFlags(cfg llm.Config, provider, model, key string) llm.Config {
	if provider != "" {
		cfg.Provider = provider
	}
	if model != "" {
		cfg = cfg.WithModel(model)
	}
	if key != "" {
		cfg = cfg.WithAPIKey(key)
	}
	return cfg
}

// resolveGeneratorConfig returns the quiz generator config. --lenient wins
// over CSATQUIZ_LENIENT; an unparsable variable counts as false.
func resolveGeneratorConfig(cmd *cobra.Command) quizgen.Config {
	cfg := quizgen.DefaultConfig()
	if f := cmd.Flags().Lookup("lenient"); f != nil && f.Changed {
		cfg.Lenient, _ = cmd.Flags().GetBool("lenient")
		return cfg
	}
	cfg.Lenient, _ = strconv.ParseBool(os.Getenv("CSATQUIZ_LENIENT"))
	return cfg
}
