package cmd

import (
	"github.com/abhisek/csatquiz/internal/app"
	"github.com/abhisek/csatquiz/internal/quizgen"
	"github.com/abhisek/csatquiz/internal/screens"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds the screen environment, and launches the TUI.
func runApp(cmd *cobra.Command, skipWelcome bool) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	env := screens.NewEnv(
		resolveLLMConfig(cmd),
		quizgen.ProviderFactory(st.EventRepo(), resolveGeneratorConfig(cmd)),
		historyStore(cmd),
		st.AttemptRepo(),
	)

	return app.Run(app.Options{
		Env:         env,
		SkipWelcome: skipWelcome,
	})
}
