package cmd

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/filipexyz/folio/pkg/client"
	"github.com/spf13/cobra"
)

var (
	auditAction string
	auditSince  string
	auditLimit  int
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Query the audit log",
	Long: `View audit log entries for project uploads and contact messages.
Requires the admin token.

Examples:
  folio audit
  folio audit --since 1h
  folio audit --action project.create --limit 10
  folio audit --jq '.[].target'`,
	Run: func(cmd *cobra.Command, args []string) {
		result, err := getClient().AuditList(cmd.Context(), client.AuditQueryOptions{
			Action: auditAction,
			Since:  auditSince,
			Limit:  auditLimit,
		})
		if err != nil {
			out.Error("Failed to query audit log: %v", err)
			return
		}

		if jsonOutput {
			printJSON(result.Entries)
			return
		}

		if result.Count == 0 {
			out.Info("No audit entries found")
			return
		}

		out.Header("Audit Log")
		out.Divider()

		for _, entry := range result.Entries {
			out.Info("[%d] %s  %s", entry.ID, entry.Timestamp.Local().Format("2006-01-02 15:04:05"), entry.Action)
			out.KeyValue("Actor", entry.Actor)
			if entry.Target != "" {
				out.KeyValue("Target", entry.Target)
			}
			if entry.IPAddress != "" {
				out.KeyValue("IP", entry.IPAddress)
			}
			if entry.Detail != nil {
				var detail map[string]any
				if json.Unmarshal(entry.Detail, &detail) == nil {
					keys := make([]string, 0, len(detail))
					for k := range detail {
						keys = append(keys, k)
					}
					sort.Strings(keys)
					for _, k := range keys {
						out.KeyValue("  "+k, fmt.Sprintf("%v", detail[k]))
					}
				}
			}
			out.Divider()
		}
	},
}

func init() {
	auditCmd.Flags().StringVar(&auditAction, "action", "", "filter by action (e.g. project.create)")
	auditCmd.Flags().StringVar(&auditSince, "since", "", "only entries newer than this duration (e.g. 1h, 30m)")
	auditCmd.Flags().IntVar(&auditLimit, "limit", 50, "maximum number of entries to return")

	rootCmd.AddCommand(auditCmd)
}
