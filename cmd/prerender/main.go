package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/blaseball-reference/internal/config"
	"github.com/preston-bernstein/blaseball-reference/internal/logging"
	"github.com/preston-bernstein/blaseball-reference/internal/metrics"
	"github.com/preston-bernstein/blaseball-reference/internal/server"
	"github.com/preston-bernstein/blaseball-reference/internal/staticgen"
)

const appVersion = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

type options struct {
	out         string
	provider    string
	apiURL      string
	concurrency int
	skipTeams   bool
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:          "prerender",
		Short:        "Render every player and team page into a static site directory",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Output directory (required)")
	cmd.Flags().StringVar(&opts.provider, "provider", "", "Data source: api or fixture (defaults to PROVIDER)")
	cmd.Flags().StringVar(&opts.apiURL, "api-url", "", "Upstream base URL (defaults to API_BASE_URL)")
	cmd.Flags().IntVarP(&opts.concurrency, "concurrency", "c", 4, "Pages rendered in parallel")
	cmd.Flags().BoolVar(&opts.skipTeams, "skip-teams", false, "Render player pages only")

	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func run(ctx context.Context, cmd *cobra.Command, opts options) error {
	cfg := config.Load()
	if opts.provider != "" {
		cfg.Provider = opts.provider
	}
	if opts.apiURL != "" {
		cfg.API.BaseURL = opts.apiURL
	}

	logger := logging.NewLogger(logging.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		Service: "blaseball-reference-prerender",
		Version: appVersion,
	})

	provider, closeProvider := server.NewProvider(cfg, logger, metrics.NewRecorder())
	if closeProvider != nil {
		defer func() { _ = closeProvider() }()
	}

	gen := staticgen.NewGenerator(provider, staticgen.Config{
		OutDir:      opts.out,
		Concurrency: opts.concurrency,
		SkipTeams:   opts.skipTeams,
		Logger:      logger,
	})
	manifest, err := gen.Generate(ctx)
	fmt.Fprintf(cmd.OutOrStdout(), "rendered %d players, %d teams into %s (%d failed)\n",
		len(manifest.Players), len(manifest.Teams), opts.out, len(manifest.Failed))
	return err
}
