package analytics

import (
	"context"
	"database/sql"
	"math"
	"time"

	"github.com/Samik0007/JournalAppPersonal/pkg/journal"
)

const moodSlotsInRangeStatement = `
	SELECT primary_mood, secondary_mood1, secondary_mood2
	FROM journal_entries
	WHERE entry_date >= ? AND entry_date < ?
	`

// rangeKeys normalizes start/end to whole calendar days as the half-open
// [start, end+1d) pair used by every range query.
func rangeKeys(start, end time.Time) (string, string) {
	startKey := journal.DateOnly(start).Format("2006-01-02")
	endKey := journal.DateOnly(end).AddDate(0, 0, 1).Format("2006-01-02")
	return startKey, endKey
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// moodSlotCounts tallies every mood slot (primary plus up to two secondary)
// of the entries in range, returning per-mood counts and the slot total.
func moodSlotCounts(ctx context.Context, db *sql.DB, start, end time.Time) (map[journal.Mood]int, int, error) {
	startKey, endKey := rangeKeys(start, end)
	rows, err := db.QueryContext(ctx, moodSlotsInRangeStatement, startKey, endKey)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	counts := make(map[journal.Mood]int)
	total := 0
	for rows.Next() {
		var primary string
		var secondary1, secondary2 sql.NullString
		if err := rows.Scan(&primary, &secondary1, &secondary2); err != nil {
			return nil, 0, err
		}

		counts[journal.Mood(primary)]++
		total++
		if secondary1.Valid {
			counts[journal.Mood(secondary1.String)]++
			total++
		}
		if secondary2.Valid {
			counts[journal.Mood(secondary2.String)]++
			total++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return counts, total, nil
}

// MoodDistribution buckets every mood slot in range as Positive, Neutral or
// Negative. All three buckets are always present in the result.
func MoodDistribution(ctx context.Context, db *sql.DB, start, end time.Time) (map[journal.MoodBucket]int, error) {
	counts, _, err := moodSlotCounts(ctx, db, start, end)
	if err != nil {
		return nil, err
	}

	distribution := map[journal.MoodBucket]int{
		journal.BucketPositive: 0,
		journal.BucketNeutral:  0,
		journal.BucketNegative: 0,
	}
	for mood, n := range counts {
		distribution[mood.Bucket()] += n
	}
	return distribution, nil
}

// MostFrequentMood returns the mood with the highest slot count in range.
// Ties break to the lowest mood ordinal (declaration order of the fifteen
// values); an empty range yields Calm.
func MostFrequentMood(ctx context.Context, db *sql.DB, start, end time.Time) (journal.Mood, error) {
	counts, total, err := moodSlotCounts(ctx, db, start, end)
	if err != nil {
		return "", err
	}
	if total == 0 {
		return journal.MoodCalm, nil
	}

	best := journal.MoodCalm
	bestCount := -1
	for _, mood := range journal.Moods {
		if counts[mood] > bestCount {
			best = mood
			bestCount = counts[mood]
		}
	}
	return best, nil
}

// MoodPercentages returns each mood's share of the total mood-slot
// occurrences in range, rounded to two decimals. An empty range yields an
// empty map.
func MoodPercentages(ctx context.Context, db *sql.DB, start, end time.Time) (map[journal.Mood]float64, error) {
	counts, total, err := moodSlotCounts(ctx, db, start, end)
	if err != nil {
		return nil, err
	}

	percentages := make(map[journal.Mood]float64, len(counts))
	if total == 0 {
		return percentages, nil
	}
	for mood, n := range counts {
		percentages[mood] = round2(float64(n) / float64(total) * 100)
	}
	return percentages, nil
}
