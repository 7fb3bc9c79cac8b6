package commands

import (
	"os/signal"
	"syscall"

	"github.com/leapstack-labs/sqlmark/internal/ui"
	"github.com/spf13/cobra"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Port int
	Host string
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the annotation HTTP service",
		Long: `Serve the annotation core over HTTP.

POST /api/annotate accepts {"sql": ..., "references": [...]} and returns the
segmented lines plus a display badge per reference.`,
		Example: `  # Serve on the configured port
  sqlmark serve

  # Override the port
  sqlmark serve --port 9000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Port, "port", "p", 0, "Port to listen on (default from config)")
	cmd.Flags().StringVar(&opts.Host, "host", "", "Host to bind (default from config)")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cfg := getConfig()
	uiCfg := cfg.GetUIConfig()

	if opts.Port != 0 {
		uiCfg.Port = opts.Port
	}
	if opts.Host != "" {
		uiCfg.Host = opts.Host
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := ui.NewServer(ui.Config{
		Host:        uiCfg.Host,
		Port:        uiCfg.Port,
		Icons:       cfg.IconSet(),
		Diagnostics: cfg.Diagnostics,
		Logger:      newLogger(cfg),
	})
	return server.Serve(ctx)
}
