package domain

import "time"

// Default daily targets applied when a user first reads their goal.
const (
	DefaultDailyMinutesTarget = 120
	DefaultDailyWordsTarget   = 50
)

// Goal holds a user's daily study targets. One row per user.
type Goal struct {
	ID                 string
	UserID             string
	DailyMinutesTarget int
	DailyWordsTarget   int
	UpdatedAt          time.Time
}
