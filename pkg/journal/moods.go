package journal

import "fmt"

// Mood is one of the fifteen closed mood values an entry can carry.
type Mood string

const (
	// Positive moods
	MoodHappy     Mood = "Happy"
	MoodExcited   Mood = "Excited"
	MoodRelaxed   Mood = "Relaxed"
	MoodGrateful  Mood = "Grateful"
	MoodConfident Mood = "Confident"

	// Neutral moods
	MoodCalm       Mood = "Calm"
	MoodThoughtful Mood = "Thoughtful"
	MoodCurious    Mood = "Curious"
	MoodNostalgic  Mood = "Nostalgic"
	MoodBored      Mood = "Bored"

	// Negative moods
	MoodSad      Mood = "Sad"
	MoodAngry    Mood = "Angry"
	MoodStressed Mood = "Stressed"
	MoodLonely   Mood = "Lonely"
	MoodAnxious  Mood = "Anxious"
)

// Moods lists every mood in fixed ordinal order. Analytics tie-breaking
// scans this slice, so the order must stay stable.
var Moods = []Mood{
	MoodHappy, MoodExcited, MoodRelaxed, MoodGrateful, MoodConfident,
	MoodCalm, MoodThoughtful, MoodCurious, MoodNostalgic, MoodBored,
	MoodSad, MoodAngry, MoodStressed, MoodLonely, MoodAnxious,
}

// MoodBucket is the derived Positive/Neutral/Negative classification of a
// mood value. It is computed, never stored.
type MoodBucket string

const (
	BucketPositive MoodBucket = "Positive"
	BucketNeutral  MoodBucket = "Neutral"
	BucketNegative MoodBucket = "Negative"
)

var moodBuckets = map[Mood]MoodBucket{
	MoodHappy:     BucketPositive,
	MoodExcited:   BucketPositive,
	MoodRelaxed:   BucketPositive,
	MoodGrateful:  BucketPositive,
	MoodConfident: BucketPositive,

	MoodCalm:       BucketNeutral,
	MoodThoughtful: BucketNeutral,
	MoodCurious:    BucketNeutral,
	MoodNostalgic:  BucketNeutral,
	MoodBored:      BucketNeutral,

	MoodSad:      BucketNegative,
	MoodAngry:    BucketNegative,
	MoodStressed: BucketNegative,
	MoodLonely:   BucketNegative,
	MoodAnxious:  BucketNegative,
}

// Valid reports whether m is one of the fifteen known mood values.
func (m Mood) Valid() bool {
	_, ok := moodBuckets[m]
	return ok
}

// Bucket classifies the mood as Positive, Neutral or Negative. Unknown
// values classify as Neutral.
func (m Mood) Bucket() MoodBucket {
	if bucket, ok := moodBuckets[m]; ok {
		return bucket
	}
	return BucketNeutral
}

// ParseMood converts a user-supplied string to a Mood value.
func ParseMood(s string) (Mood, error) {
	m := Mood(s)
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidMood, s)
	}
	return m, nil
}
