package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/filipexyz/folio/internal/cli/config"
	"github.com/filipexyz/folio/internal/cli/display"
	"github.com/filipexyz/folio/internal/cli/output"
	"github.com/filipexyz/folio/pkg/client"
	"github.com/spf13/cobra"
)

var (
	cfgFile    string
	serverURL  string
	jsonOutput bool
	jqFilter   string
	verbose    bool
	cfg        *config.Config
	out        *output.Output
	colors     *display.Colorizer
	logger     *slog.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "CLI for the folio portfolio API",
	Long:  `folio browses the portfolio project gallery, uploads projects and manages contact messages.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if jqFilter != "" {
			jsonOutput = true
		}
		if w := cmd.OutOrStdout(); w != os.Stdout {
			out = output.NewWriter(w, jsonOutput)
			colors = display.NewColorizer(false)
		} else {
			out = output.New(jsonOutput)
			colors = display.DefaultColorizer()
		}

		level := slog.LevelError
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

		// Load config (ignore errors for commands that don't need it)
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			cfg = &config.Config{}
		}

		// Server URL priority: flag > config > default
		if serverURL == "" && cfg.Server != "" {
			serverURL = cfg.Server
		}
		if serverURL == "" {
			serverURL = client.DefaultServer
		}
	},
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.folio/config.json)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "server URL")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().StringVar(&jqFilter, "jq", "", "jq expression applied to JSON output (implies --json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log requests and fallbacks to stderr")
}

// getClient creates a client with current config.
func getClient() *client.Client {
	return client.New(cfg.AdminToken, client.WithServer(serverURL))
}
