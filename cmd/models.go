package cmd

import (
	"errors"
	"fmt"

	"github.com/abhisek/csatquiz/internal/llm"
	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the models available to the configured provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := resolveLLMConfig(cmd)
		if err := cfg.Validate(); err != nil {
			return err
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := llm.WithPurpose(cmd.Context(), llm.PurposeModelList)
		provider, err := llm.NewProvider(ctx, cfg, st.EventRepo())
		if err != nil {
			return err
		}
		lister, ok := provider.(llm.ModelLister)
		if !ok {
			return fmt.Errorf("%s: %w", cfg.Provider, llm.ErrListingUnsupported)
		}

		models, err := lister.ListModels(ctx)
		if errors.Is(err, llm.ErrListingUnsupported) {
			return fmt.Errorf("%s: %w", cfg.Provider, err)
		}
		if err != nil {
			return fmt.Errorf("list models: %w", err)
		}

		if len(models) == 0 {
			fmt.Println("No models reported.")
			return nil
		}
		for _, m := range models {
			marker := " "
			if m.ID == cfg.Model() {
				marker = "*"
			}
			if m.DisplayName != "" && m.DisplayName != m.ID {
				fmt.Printf("%s %-40s  %s\n", marker, m.ID, m.DisplayName)
			} else {
				fmt.Printf("%s %s\n", marker, m.ID)
			}
		}
		return nil
	},
}
