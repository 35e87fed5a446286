package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/abhisek/csatquiz/internal/quizgen"
	"github.com/abhisek/csatquiz/internal/web"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the browser quiz UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		cfg := resolveLLMConfig(cmd)
		if err := cfg.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, "No API key configured:", err)
			fmt.Fprintln(os.Stderr, "The page will ask for one.")
		}

		srv, err := web.NewServer(web.Options{
			LLMConfig:    cfg,
			History:      historyStore(cmd),
			EventRepo:    st.EventRepo(),
			AttemptRepo:  st.AttemptRepo(),
			SessionKey:   []byte(os.Getenv("CSATQUIZ_SESSION_KEY")),
			NewGenerator: quizgen.ProviderFactory(st.EventRepo(), resolveGeneratorConfig(cmd)),
		})
		if err != nil {
			return fmt.Errorf("create server: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Printf("Open http://%s in your browser.\n", addr)
		return srv.ListenAndServe(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "127.0.0.1:8080", "Listen address")
}
