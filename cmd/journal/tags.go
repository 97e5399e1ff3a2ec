package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Samik0007/JournalAppPersonal/pkg/journal"
)

var customOnlyFlag bool

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Manage tags",
	Long:  `List prebuilt and custom tags, and create new custom tags.`,
}

var listTagsCmd = &cobra.Command{
	Use:   "list",
	Short: "List tags",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		ctx := context.Background()

		if !customOnlyFlag {
			prebuilt, err := journal.ListPrebuiltTags(ctx, dbConn)
			if err != nil {
				return fmt.Errorf("failed to list prebuilt tags: %w", err)
			}
			fmt.Println("Prebuilt tags:")
			for _, t := range prebuilt {
				fmt.Printf("  %s\n", t.Name)
			}
		}

		custom, err := journal.ListCustomTags(ctx, dbConn)
		if err != nil {
			return fmt.Errorf("failed to list custom tags: %w", err)
		}
		if len(custom) == 0 {
			fmt.Println("No custom tags.")
			return nil
		}
		fmt.Println("Custom tags:")
		for _, t := range custom {
			fmt.Printf("  %s (created %s)\n", t.Name, formatTimestamp(t.CreatedAt))
		}
		return nil
	},
}

var createTagCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a custom tag",
	Long:  `Create a custom tag. Tag names are unique ignoring case.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		tag, err := journal.CreateCustomTag(context.Background(), dbConn, args[0])
		if errors.Is(err, journal.ErrDuplicateTag) {
			return fmt.Errorf("a tag named '%s' already exists", args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to create tag: %w", err)
		}

		fmt.Printf("Tag '%s' created.\n", tag.Name)
		return nil
	},
}

func init() {
	listTagsCmd.Flags().BoolVar(&customOnlyFlag, "custom", false, "List only custom tags")

	tagsCmd.AddCommand(listTagsCmd)
	tagsCmd.AddCommand(createTagCmd)
}
