package domain

import "time"

// Study type values for Subject.StudyType.
const (
	StudyTypeMinutes = "MINUTES"
	StudyTypeWords   = "WORDS"
)

// Subject is something a user studies: a course, a language, a word book.
type Subject struct {
	ID          string
	UserID      string
	Name        string
	ColorHex    string
	Archived    bool
	StudyType   string // MINUTES or WORDS
	DailyTarget int
	CreatedAt   time.Time
}
