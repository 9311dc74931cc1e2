package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/grovecli/grove/internal/services"
)

func newDriveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drive",
		Short: "Work with Google Drive",
		Long:  `List and search files in the authorized Drive.`,
	}

	cmd.AddCommand(
		newDriveListCmd(),
		newDriveSearchCmd(),
	)

	return cmd
}

func driveTable(files []services.File) *TableBuilder {
	table := NewTableBuilder("ID", "NAME", "TYPE", "MODIFIED")
	for _, f := range files {
		table.AddRow(f.ID, f.Name, f.MimeType, f.ModifiedTime)
	}
	return table
}

func newDriveListCmd() *cobra.Command {
	var query string
	var max int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent files",
		Long:  `List recently modified files, optionally filtered with a Drive query.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAuthedClient()
			if err != nil {
				return err
			}

			drive := services.NewDrive(client)
			files, err := drive.ListFiles(cmd.Context(), query, max)
			if err != nil {
				return err
			}

			if len(files) == 0 {
				Info("No files found")
				return nil
			}

			dw := NewDataWriter(os.Stdout, CurrentOutputFormat())
			return driveTable(files).Write(dw)
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Drive query (e.g. \"mimeType contains 'image/'\")")
	cmd.Flags().IntVarP(&max, "max", "n", 20, "Maximum number of files")

	return cmd
}

func newDriveSearchCmd() *cobra.Command {
	var max int

	cmd := &cobra.Command{
		Use:   "search <name>",
		Short: "Search files by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAuthedClient()
			if err != nil {
				return err
			}

			drive := services.NewDrive(client)
			files, err := drive.SearchByName(cmd.Context(), args[0], max)
			if err != nil {
				return err
			}

			if len(files) == 0 {
				Info("No files matched %q", args[0])
				return nil
			}

			dw := NewDataWriter(os.Stdout, CurrentOutputFormat())
			return driveTable(files).Write(dw)
		},
	}

	cmd.Flags().IntVarP(&max, "max", "n", 20, "Maximum number of files")

	return cmd
}
