package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/grovecli/grove/internal/services"
)

func newPhotosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "photos",
		Short: "Work with Google Photos",
		Long:  `List photos and albums from the authorized library.`,
	}

	cmd.AddCommand(
		newPhotosListCmd(),
		newPhotosAlbumsCmd(),
	)

	return cmd
}

func newPhotosListCmd() *cobra.Command {
	var max int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent photos",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAuthedClient()
			if err != nil {
				return err
			}

			photos := services.NewPhotos(client)
			items, err := photos.ListMediaItems(cmd.Context(), max)
			if err != nil {
				return err
			}

			if len(items) == 0 {
				Info("No media items found")
				return nil
			}

			dw := NewDataWriter(os.Stdout, CurrentOutputFormat())
			table := NewTableBuilder("ID", "FILENAME", "TYPE", "CREATED")
			for _, item := range items {
				table.AddRow(item.ID, item.Filename, item.MimeType, item.Metadata.CreationTime)
			}
			return table.Write(dw)
		},
	}

	cmd.Flags().IntVarP(&max, "max", "n", 25, "Maximum number of items")

	return cmd
}

func newPhotosAlbumsCmd() *cobra.Command {
	var max int

	cmd := &cobra.Command{
		Use:   "albums",
		Short: "List albums",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAuthedClient()
			if err != nil {
				return err
			}

			photos := services.NewPhotos(client)
			albums, err := photos.ListAlbums(cmd.Context(), max)
			if err != nil {
				return err
			}

			if len(albums) == 0 {
				Info("No albums found")
				return nil
			}

			dw := NewDataWriter(os.Stdout, CurrentOutputFormat())
			table := NewTableBuilder("ID", "TITLE", "ITEMS")
			for _, a := range albums {
				table.AddRow(a.ID, a.Title, a.ItemsCount)
			}
			return table.Write(dw)
		},
	}

	cmd.Flags().IntVarP(&max, "max", "n", 20, "Maximum number of albums")

	return cmd
}
