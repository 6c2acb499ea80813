package domain

import "time"

// StudySession is one logged block of study time. Times are stored in UTC.
type StudySession struct {
	ID        string
	UserID    string
	SubjectID string
	StartTime time.Time
	EndTime   time.Time
	Note      string
	CreatedAt time.Time
}

// Minutes returns the session length in whole minutes.
func (s StudySession) Minutes() int {
	return int(s.EndTime.Sub(s.StartTime).Minutes())
}
