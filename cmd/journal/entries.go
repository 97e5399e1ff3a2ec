package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Samik0007/JournalAppPersonal/pkg/journal"
)

var (
	titleFlag       string
	descriptionFlag string
	moodFlag        string
	categoryFlag    string
	secondary1Flag  string
	secondary2Flag  string
	tagsFlag        []string
	dateFlag        string
	byTitleFlag     bool
)

var entriesCmd = &cobra.Command{
	Use:   "entries",
	Short: "Manage journal entries",
	Long:  `Create, inspect, update, delete and search daily journal entries.`,
}

func moodFlagsToParams() (journal.Mood, *journal.Mood, *journal.Mood, error) {
	primary, err := journal.ParseMood(moodFlag)
	if err != nil {
		return "", nil, nil, err
	}

	var secondary1, secondary2 *journal.Mood
	if secondary1Flag != "" {
		m, err := journal.ParseMood(secondary1Flag)
		if err != nil {
			return "", nil, nil, err
		}
		secondary1 = &m
	}
	if secondary2Flag != "" {
		m, err := journal.ParseMood(secondary2Flag)
		if err != nil {
			return "", nil, nil, err
		}
		secondary2 = &m
	}
	return primary, secondary1, secondary2, nil
}

var newEntryCmd = &cobra.Command{
	Use:   "new",
	Short: "Create the journal entry for a day",
	Long:  `Create a journal entry. Each calendar day can hold at most one entry; the date defaults to today.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		primary, secondary1, secondary2, err := moodFlagsToParams()
		if err != nil {
			return err
		}

		params := journal.CreateEntryParams{
			Title:          titleFlag,
			Description:    descriptionFlag,
			PrimaryMood:    primary,
			Category:       categoryFlag,
			SecondaryMood1: secondary1,
			SecondaryMood2: secondary2,
			TagNames:       tagsFlag,
		}
		if dateFlag != "" {
			date, err := parseDateFlag(dateFlag)
			if err != nil {
				return err
			}
			params.EntryDate = &date
		}

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		entry, err := journal.CreateEntry(context.Background(), dbConn, params)
		if errors.Is(err, journal.ErrDuplicateDateEntry) {
			return fmt.Errorf("an entry already exists for that date")
		}
		if err != nil {
			return fmt.Errorf("failed to create entry: %w", err)
		}

		fmt.Println("Entry created.")
		printEntry(*entry)
		return nil
	},
}

var showEntryCmd = &cobra.Command{
	Use:   "show [entry-id]",
	Short: "Show an entry by ID",
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

		entry, err := journal.GetEntry(context.Background(), dbConn, id)
		if err != nil {
			return fmt.Errorf("failed to retrieve entry: %w", err)
		}
		if entry == nil {
			fmt.Println("No entry found with that ID.")
			return nil
		}

		printEntry(*entry)
		return nil
	},
}

var todayEntryCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's entry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		entry, err := journal.GetTodayEntry(context.Background(), dbConn)
		if err != nil {
			return fmt.Errorf("failed to retrieve today's entry: %w", err)
		}
		if entry == nil {
			fmt.Println("No entry for today yet.")
			return nil
		}

		printEntry(*entry)
		return nil
	},
}

var listEntriesCmd = &cobra.Command{
	Use:   "list",
	Short: "List all entries, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		entries, err := journal.ListEntries(context.Background(), dbConn)
		if err != nil {
			return fmt.Errorf("failed to list entries: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println("No entries yet.")
			return nil
		}

		printEntryList(entries)
		return nil
	},
}

var updateEntryCmd = &cobra.Command{
	Use:   "update [entry-id]",
	Short: "Update an entry",
	Long: `Update an entry's fields. All scalar flags overwrite the stored values.
Passing --tags replaces the whole tag set (use --tags "" to clear); omitting it
leaves the existing tags untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid entry ID: %w", err)
		}

		primary, secondary1, secondary2, err := moodFlagsToParams()
		if err != nil {
			return err
		}

		params := journal.UpdateEntryParams{
			Title:          titleFlag,
			Description:    descriptionFlag,
			PrimaryMood:    primary,
			Category:       categoryFlag,
			SecondaryMood1: secondary1,
			SecondaryMood2: secondary2,
		}
		if cmd.Flags().Changed("tags") {
			params.TagNames = tagsFlag
			if params.TagNames == nil {
				params.TagNames = []string{}
			}
		}

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		entry, err := journal.UpdateEntry(context.Background(), dbConn, id, params)
		if err != nil {
			return fmt.Errorf("failed to update entry: %w", err)
		}
		if entry == nil {
			fmt.Println("No entry found with that ID.")
			return nil
		}

		fmt.Println("Entry updated.")
		printEntry(*entry)
		return nil
	},
}

var deleteEntryCmd = &cobra.Command{
	Use:   "delete [entry-id]",
	Short: "Delete an entry",
	Long:  `Permanently delete an entry. Its tag associations are removed with it.`,
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

		deleted, err := journal.DeleteEntry(context.Background(), dbConn, id)
		if err != nil {
			return fmt.Errorf("failed to delete entry: %w", err)
		}
		if !deleted {
			fmt.Println("No entry found with that ID.")
			return nil
		}

		fmt.Println("Entry deleted.")
		return nil
	},
}

var searchEntriesCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Search entries by title or content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		var entries []journal.Entry
		if byTitleFlag {
			entries, err = journal.SearchEntriesByTitle(context.Background(), dbConn, args[0])
		} else {
			entries, err = journal.SearchEntriesByContent(context.Background(), dbConn, args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to search entries: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println("No matching entries.")
			return nil
		}

		printEntryList(entries)
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{newEntryCmd, updateEntryCmd} {
		cmd.Flags().StringVar(&titleFlag, "title", "", "Entry title")
		cmd.Flags().StringVar(&descriptionFlag, "description", "", "Entry body (markup allowed)")
		cmd.Flags().StringVar(&moodFlag, "mood", "", "Primary mood (e.g. Happy, Calm, Anxious)")
		cmd.Flags().StringVar(&categoryFlag, "category", "", "Free-text category")
		cmd.Flags().StringVar(&secondary1Flag, "secondary-mood1", "", "Optional secondary mood")
		cmd.Flags().StringVar(&secondary2Flag, "secondary-mood2", "", "Optional secondary mood")
		cmd.Flags().StringSliceVar(&tagsFlag, "tags", nil, "Tag names (comma separated)")
		cmd.MarkFlagRequired("title")
		cmd.MarkFlagRequired("mood")
	}
	newEntryCmd.Flags().StringVar(&dateFlag, "date", "", "Entry date as YYYY-MM-DD (defaults to today)")

	searchEntriesCmd.Flags().BoolVar(&byTitleFlag, "title-only", false, "Match against the title only")

	entriesCmd.AddCommand(newEntryCmd)
	entriesCmd.AddCommand(showEntryCmd)
	entriesCmd.AddCommand(todayEntryCmd)
	entriesCmd.AddCommand(listEntriesCmd)
	entriesCmd.AddCommand(updateEntryCmd)
	entriesCmd.AddCommand(deleteEntryCmd)
	entriesCmd.AddCommand(searchEntriesCmd)
}
