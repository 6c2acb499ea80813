package service

import (
	"context"
	"errors"
	"time"

	"github.com/quietstudy/studytrack/internal/domain"
	"github.com/quietstudy/studytrack/internal/store"
)

var ErrInvalidRange = errors.New("invalid analytics range")

// Supported analytics windows, in days.
const (
	RangeWeek  = 7
	RangeMonth = 30
)

// AnalyticsService aggregates study minutes and word counts into per-day
// buckets. Days are calendar days of Location, ending today.
type AnalyticsService struct {
	Store    store.Store
	Location *time.Location
}

// DailyBucket is one calendar day of aggregated activity. Days with no
// activity still appear with zero totals.
type DailyBucket struct {
	Date    string
	Minutes int
	Words   int
}

// Daily returns rangeDays buckets ending today, oldest first.
func (s *AnalyticsService) Daily(ctx context.Context, userID string, rangeDays int) ([]DailyBucket, error) {
	if rangeDays != RangeWeek && rangeDays != RangeMonth {
		return nil, ErrInvalidRange
	}

	now := time.Now().In(s.Location)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.Location)
	first := today.AddDate(0, 0, -(rangeDays - 1))

	// Pre-fill the window so quiet days still show up.
	buckets := make([]DailyBucket, rangeDays)
	index := make(map[string]*DailyBucket, rangeDays)
	for i := range buckets {
		date := first.AddDate(0, 0, i).Format(domain.DateLayout)
		buckets[i] = DailyBucket{Date: date}
		index[date] = &buckets[i]
	}

	// Study minutes bucket by the session's start time in local wall clock.
	sessions, err := s.Store.StudySessions().ListStudySessions(ctx, userID, first, today.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	for _, sess := range sessions {
		date := sess.StartTime.In(s.Location).Format(domain.DateLayout)
		if b, ok := index[date]; ok {
			b.Minutes += sess.Minutes()
		}
	}

	// Word logs already carry their calendar day.
	logs, err := s.Store.WordLogs().ListWordLogs(ctx, userID,
		first.Format(domain.DateLayout), today.Format(domain.DateLayout))
	if err != nil {
		return nil, err
	}
	for _, wl := range logs {
		if b, ok := index[wl.Date]; ok {
			b.Words += wl.Count
		}
	}

	return buckets, nil
}
