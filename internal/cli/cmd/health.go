package cmd

import (
	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check server health",
	Long:  `Check the health of the folio API server and its dependencies.`,
	Run: func(cmd *cobra.Command, args []string) {
		c := getClient()

		health, err := c.Health(cmd.Context())
		if err != nil {
			if jsonOutput {
				printJSON(map[string]any{
					"status": "error",
					"error":  err.Error(),
				})
			} else {
				out.Error("Server unreachable: %v", err)
			}
			return
		}

		ready, readyErr := c.Ready(cmd.Context())

		if jsonOutput {
			result := map[string]any{"health": health}
			if readyErr != nil {
				result["ready"] = map[string]any{"status": "not ready", "error": readyErr.Error()}
			} else {
				result["ready"] = ready
			}
			printJSON(result)
			return
		}

		out.Success("Server is healthy")
		out.KeyValue("Status", health.Status)
		if health.Message != "" {
			out.KeyValue("Message", health.Message)
		}
		if readyErr != nil {
			out.Warn("Server not ready: %v", readyErr)
			return
		}
		out.KeyValue("Database", ready.Database)
		out.KeyValue("Events", ready.Events)
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
