package domain

import "time"

// WordLog records vocabulary reviewed on a calendar day. Date is a plain
// "2006-01-02" string; the optional Start/End pair is only present for
// timer-backed sessions.
type WordLog struct {
	ID        string
	UserID    string
	SubjectID *string
	Date      string
	Book      string
	Count     int
	Note      string
	StartTime *time.Time
	EndTime   *time.Time
	CreatedAt time.Time
}

// DateLayout is the calendar-day format used by WordLog.Date and the
// analytics buckets.
const DateLayout = "2006-01-02"
