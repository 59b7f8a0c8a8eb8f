package cmd

import (
	"strings"

	"github.com/filipexyz/folio/internal/cli/config"
	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth <admin-token>",
	Short: "Save the admin token",
	Long:  `Save the admin token used for project uploads and the contact inbox.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		token := strings.TrimSpace(args[0])
		if token == "" || strings.ContainsAny(token, " \t\r\n") {
			out.Error("Invalid admin token: must be non-empty and contain no whitespace")
			return
		}

		cfg.AdminToken = token
		if serverURL != "" {
			cfg.Server = serverURL
		}

		if err := config.Save(cfg, cfgFile); err != nil {
			out.Error("Failed to save config: %v", err)
			return
		}

		out.Success("Admin token saved")
	},
}

func init() {
	rootCmd.AddCommand(authCmd)
}
