package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/grovecli/grove/internal/services"
)

func newMailCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mail",
		Short: "Work with Gmail",
		Long:  `List and send mail from the authorized Gmail account.`,
	}

	cmd.AddCommand(
		newMailListCmd(),
		newMailSendCmd(),
	)

	return cmd
}

func newMailListCmd() *cobra.Command {
	var query string
	var max int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List messages",
		Long:  `List recent messages, optionally filtered with a Gmail search query.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAuthedClient()
			if err != nil {
				return err
			}

			gmail := services.NewGmail(client)
			messages, err := gmail.ListMessages(cmd.Context(), query, max)
			if err != nil {
				return err
			}

			if len(messages) == 0 {
				Info("No messages found")
				return nil
			}

			dw := NewDataWriter(os.Stdout, CurrentOutputFormat())
			table := NewTableBuilder("ID", "FROM", "SUBJECT", "DATE")
			for _, m := range messages {
				table.AddRow(m.ID, m.From, m.Subject, m.Date)
			}
			return table.Write(dw)
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Gmail search query (e.g. 'is:unread')")
	cmd.Flags().IntVarP(&max, "max", "n", 10, "Maximum number of messages")

	return cmd
}

func newMailSendCmd() *cobra.Command {
	var to string
	var subject string
	var body string

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a message",
		Long:  `Send a plain-text email from the authorized account.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if to == "" {
				return fmt.Errorf("--to is required")
			}

			client, err := newAuthedClient()
			if err != nil {
				return err
			}

			gmail := services.NewGmail(client)
			id, err := gmail.Send(cmd.Context(), to, subject, body)
			if err != nil {
				return err
			}

			Success("Message sent (id: %s)", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Recipient address")
	cmd.Flags().StringVarP(&subject, "subject", "s", "", "Message subject")
	cmd.Flags().StringVarP(&body, "body", "b", "", "Message body")

	return cmd
}
