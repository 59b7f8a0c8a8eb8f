package cmd

import (
	"github.com/filipexyz/folio/internal/cli/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Run: func(cmd *cobra.Command, args []string) {
		path := cfgFile
		if path == "" {
			path = config.DefaultPath()
		}

		if jsonOutput {
			printJSON(map[string]any{
				"path":        path,
				"admin_token": maskToken(cfg.AdminToken),
				"server":      serverURL,
			})
			return
		}

		out.Header("Configuration")
		out.KeyValue("Path", path)
		out.KeyValue("Admin Token", maskToken(cfg.AdminToken))
		out.KeyValue("Server", serverURL)
	},
}

func maskToken(token string) string {
	if token == "" {
		return "(not set)"
	}
	if len(token) < 12 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

func init() {
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
