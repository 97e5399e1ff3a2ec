package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Samik0007/JournalAppPersonal/pkg/export"
	"github.com/Samik0007/JournalAppPersonal/pkg/journal"
)

var outputDirFlag string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export entries to PDF",
	Long: `Export a single entry or all entries to PDF. Files land in the Downloads
directory unless --output is given.`,
}

// exportContext cancels the export on Ctrl-C so an interrupted run never
// leaves a file at the destination path.
func exportContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

var exportEntryCmd = &cobra.Command{
	Use:   "entry [entry-id]",
	Short: "Export one entry to PDF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid entry ID: %w", err)
		}

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		ctx, stop := exportContext()
		defer stop()

		entry, err := journal.GetEntry(ctx, dbConn, id)
		if err != nil {
			return fmt.Errorf("failed to retrieve entry: %w", err)
		}
		if entry == nil {
			fmt.Println("No entry found with that ID.")
			return nil
		}

		path, err := export.ExportEntry(ctx, *entry, outputDirFlag)
		if err != nil {
			return err
		}

		fmt.Printf("Exported to %s\n", path)
		return nil
	},
}

var exportAllCmd = &cobra.Command{
	Use:   "all",
	Short: "Export all entries into one PDF",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		ctx, stop := exportContext()
		defer stop()

		entries, err := journal.ListEntries(ctx, dbConn)
		if err != nil {
			return fmt.Errorf("failed to list entries: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println("No entries to export.")
			return nil
		}

		path, err := export.ExportAll(ctx, entries, outputDirFlag)
		if err != nil {
			return err
		}

		fmt.Printf("Exported %d entries to %s\n", len(entries), path)
		return nil
	},
}

func init() {
	exportCmd.PersistentFlags().StringVar(&outputDirFlag, "output", "", "Destination directory (default: Downloads)")

	exportCmd.AddCommand(exportEntryCmd)
	exportCmd.AddCommand(exportAllCmd)
}
