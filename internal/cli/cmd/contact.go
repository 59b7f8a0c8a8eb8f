package cmd

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/filipexyz/folio/internal/cli/display"
	"github.com/filipexyz/folio/pkg/client"
	"github.com/spf13/cobra"
)

var (
	contactName    string
	contactEmail   string
	contactMessage string
)

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Send and read contact messages",
}

var contactSendCmd = &cobra.Command{
	Use:   "send",
	Short: "Submit the contact form",
	Long:  `Submit the contact form. Pass --message - to read the message from stdin.`,
	Run: func(cmd *cobra.Command, args []string) {
		message := contactMessage
		if message == "-" {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				out.Error("Failed to read message: %v", err)
				return
			}
			message = string(data)
		}

		resp, err := getClient().SubmitContact(cmd.Context(), client.ContactRequest{
			Name:    strings.TrimSpace(contactName),
			Email:   strings.TrimSpace(contactEmail),
			Message: strings.TrimSpace(message),
		})
		if err != nil {
			var apiErr *client.APIError
			if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests {
				out.Error("Too many messages, try again later")
			} else {
				out.Error("Failed to send message: %v", err)
			}
			return
		}

		if jsonOutput {
			printJSON(resp)
			return
		}
		out.Success("%s", resp.Message)
		out.KeyValue("ID", resp.ID)
	},
}

var contactListCmd = &cobra.Command{
	Use:   "list",
	Short: "List received contact messages",
	Long:  `List received contact messages, newest first. Requires the admin token.`,
	Run: func(cmd *cobra.Command, args []string) {
		list, err := getClient().ListContactMessages(cmd.Context())
		if err != nil {
			out.Error("Failed to list messages: %v", err)
			return
		}

		if jsonOutput {
			printJSON(list)
			return
		}

		if len(list.Messages) == 0 {
			out.Info("No messages")
			return
		}

		t := display.NewTable(colors,
			display.Column{Title: "RECEIVED", Width: 16, Color: "muted"},
			display.Column{Title: "NAME", Width: 20, Color: "white"},
			display.Column{Title: "EMAIL", Width: 28, Color: "primary"},
			display.Column{Title: "MESSAGE", Width: 60},
		)
		rows := make([][]string, 0, len(list.Messages))
		for _, m := range list.Messages {
			rows = append(rows, []string{
				m.CreatedAt.Local().Format("2006-01-02 15:04"),
				m.Name,
				m.Email,
				strings.Join(strings.Fields(m.Message), " "),
			})
		}
		out.Print(t.Render(rows))
		out.Info("%d messages", len(list.Messages))
	},
}

func init() {
	contactSendCmd.Flags().StringVar(&contactName, "name", "", "your name")
	contactSendCmd.Flags().StringVar(&contactEmail, "email", "", "your email address")
	contactSendCmd.Flags().StringVar(&contactMessage, "message", "", "message text, or - for stdin")
	contactSendCmd.MarkFlagRequired("name")
	contactSendCmd.MarkFlagRequired("email")
	contactSendCmd.MarkFlagRequired("message")

	contactCmd.AddCommand(contactSendCmd)
	contactCmd.AddCommand(contactListCmd)
	rootCmd.AddCommand(contactCmd)
}
