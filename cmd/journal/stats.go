package main

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/Samik0007/JournalAppPersonal/pkg/analytics"
	"github.com/Samik0007/JournalAppPersonal/pkg/journal"
)

var (
	startFlag string
	endFlag   string
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Journal analytics",
	Long:  `Streaks, mood distribution, tag usage and word-count statistics.`,
}

// statsRange resolves --start/--end, defaulting to the last 30 days.
func statsRange() (time.Time, time.Time, error) {
	end := journal.Today()
	start := end.AddDate(0, 0, -29)

	if startFlag != "" {
		parsed, err := parseDateFlag(startFlag)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		start = parsed
	}
	if endFlag != "" {
		parsed, err := parseDateFlag(endFlag)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end = parsed
	}
	return start, end, nil
}

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Current and longest journaling streaks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		ctx := context.Background()
		current, err := analytics.CurrentStreak(ctx, dbConn)
		if err != nil {
			return fmt.Errorf("failed to compute current streak: %w", err)
		}
		longest, err := analytics.LongestStreak(ctx, dbConn)
		if err != nil {
			return fmt.Errorf("failed to compute longest streak: %w", err)
		}

		fmt.Printf("Current streak: %d day(s)\n", current)
		fmt.Printf("Longest streak: %d day(s)\n", longest)
		return nil
	},
}

var moodStatsCmd = &cobra.Command{
	Use:   "moods",
	Short: "Mood distribution and percentages over a date range",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		start, end, err := statsRange()
		if err != nil {
			return err
		}

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		ctx := context.Background()
		distribution, err := analytics.MoodDistribution(ctx, dbConn, start, end)
		if err != nil {
			return fmt.Errorf("failed to compute mood distribution: %w", err)
		}
		mostFrequent, err := analytics.MostFrequentMood(ctx, dbConn, start, end)
		if err != nil {
			return fmt.Errorf("failed to compute most frequent mood: %w", err)
		}
		percentages, err := analytics.MoodPercentages(ctx, dbConn, start, end)
		if err != nil {
			return fmt.Errorf("failed to compute mood percentages: %w", err)
		}

		fmt.Printf("Range: %s to %s\n\n", start.Format("2006-01-02"), end.Format("2006-01-02"))
		fmt.Printf("Positive: %d  Neutral: %d  Negative: %d\n", distribution[journal.BucketPositive], distribution[journal.BucketNeutral], distribution[journal.BucketNegative])
		fmt.Printf("Most frequent mood: %s\n", mostFrequent)

		if len(percentages) > 0 {
			fmt.Println("\nPer-mood share of all mood slots:")
			for _, mood := range journal.Moods {
				if pct, ok := percentages[mood]; ok {
					fmt.Printf("  %-10s %6.2f%%\n", mood, pct)
				}
			}
		}
		return nil
	},
}

var tagStatsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Most used tags over a date range",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		start, end, err := statsRange()
		if err != nil {
			return err
		}

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		ctx := context.Background()
		mostUsed, err := analytics.MostUsedTags(ctx, dbConn, start, end, 10)
		if err != nil {
			return fmt.Errorf("failed to compute tag usage: %w", err)
		}
		percentages, err := analytics.TagPercentages(ctx, dbConn, start, end)
		if err != nil {
			return fmt.Errorf("failed to compute tag percentages: %w", err)
		}

		if len(mostUsed) == 0 {
			fmt.Println("No tagged entries in range.")
			return nil
		}

		shares := make(map[string]float64, len(percentages))
		for _, tp := range percentages {
			shares[tp.Name] = tp.Percent
		}

		fmt.Printf("Range: %s to %s\n\n", start.Format("2006-01-02"), end.Format("2006-01-02"))
		fmt.Println("Tag | Entries | Share of entries")
		fmt.Println("--------------------------------")
		for _, tc := range mostUsed {
			fmt.Printf("%s | %d | %.2f%%\n", tc.Name, tc.Count, shares[tc.Name])
		}
		return nil
	},
}

var wordStatsCmd = &cobra.Command{
	Use:   "words",
	Short: "Word-count statistics over a date range",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		start, end, err := statsRange()
		if err != nil {
			return err
		}

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		ctx := context.Background()
		total, err := analytics.TotalEntries(ctx, dbConn, start, end)
		if err != nil {
			return fmt.Errorf("failed to count entries: %w", err)
		}
		average, err := analytics.AverageWordCount(ctx, dbConn, start, end)
		if err != nil {
			return fmt.Errorf("failed to compute average word count: %w", err)
		}
		trends, err := analytics.WordCountTrends(ctx, dbConn, start, end)
		if err != nil {
			return fmt.Errorf("failed to compute word-count trends: %w", err)
		}

		fmt.Printf("Range: %s to %s\n\n", start.Format("2006-01-02"), end.Format("2006-01-02"))
		fmt.Printf("Total entries:      %d\n", total)
		fmt.Printf("Average word count: %.2f\n", average)

		if len(trends) > 0 {
			days := make([]time.Time, 0, len(trends))
			for day := range trends {
				days = append(days, day)
			}
			sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

			fmt.Println("\nWords per day:")
			for _, day := range days {
				fmt.Printf("  %s  %.2f\n", day.Format("2006-01-02"), trends[day])
			}
		}
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{moodStatsCmd, tagStatsCmd, wordStatsCmd} {
		cmd.Flags().StringVar(&startFlag, "start", "", "Range start as YYYY-MM-DD (default: 30 days ago)")
		cmd.Flags().StringVar(&endFlag, "end", "", "Range end as YYYY-MM-DD, inclusive (default: today)")
	}

	statsCmd.AddCommand(streakCmd)
	statsCmd.AddCommand(moodStatsCmd)
	statsCmd.AddCommand(tagStatsCmd)
	statsCmd.AddCommand(wordStatsCmd)
}
