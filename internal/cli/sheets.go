package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grovecli/grove/internal/services"
)

func newSheetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "Work with Google Sheets",
		Long:  `Read and append spreadsheet values.`,
	}

	cmd.AddCommand(
		newSheetsGetCmd(),
		newSheetsAppendCmd(),
	)

	return cmd
}

func newSheetsGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <spreadsheet-id> <range>",
		Short: "Read a cell range",
		Long:  `Read a cell range in A1 notation, e.g. 'Sheet1!A1:C10'.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAuthedClient()
			if err != nil {
				return err
			}

			sheets := services.NewSheets(client)
			vr, err := sheets.GetValues(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			if len(vr.Values) == 0 {
				Info("Range %s is empty", vr.Range)
				return nil
			}

			// The first row serves as the header when rendering a table.
			dw := NewDataWriter(os.Stdout, CurrentOutputFormat())
			return dw.WriteTable(vr.Values[0], vr.Values[1:])
		},
	}

	return cmd
}

func newSheetsAppendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "append <spreadsheet-id> <range> <cells...>",
		Short: "Append a row",
		Long:  `Append one row of comma-free cell values after the given range.`,
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAuthedClient()
			if err != nil {
				return err
			}

			sheets := services.NewSheets(client)
			row := args[2:]
			if err := sheets.AppendValues(cmd.Context(), args[0], args[1], [][]string{row}); err != nil {
				return err
			}

			Success("Appended row: %s", strings.Join(row, " | "))
			return nil
		},
	}

	return cmd
}
