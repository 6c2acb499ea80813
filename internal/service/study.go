package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/quietstudy/studytrack/internal/domain"
	"github.com/quietstudy/studytrack/internal/store"
	"github.com/quietstudy/studytrack/pkg/idx"
	"github.com/quietstudy/studytrack/pkg/slogx"
)

var (
	ErrInvalidTimeRange = errors.New("end time must be after start time")
	ErrInvalidDate      = errors.New("invalid date")
)

// StudyService logs and queries study sessions. Day boundaries are computed
// in Location so "today" matches the user's wall clock, not UTC.
type StudyService struct {
	Store    store.Store
	Location *time.Location
}

// DaySummary is one calendar day of sessions with the minute total
// precomputed.
type DaySummary struct {
	Date         string
	Sessions     []domain.StudySession
	TotalMinutes int
}

// Create logs a study session against a subject the user owns.
func (s *StudyService) Create(ctx context.Context, userID, subjectID string, start, end time.Time, note string) (domain.StudySession, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate the time range.
	if !end.After(start) {
		return domain.StudySession{}, ErrInvalidTimeRange
	}

	// 2. The subject must exist and belong to the user.
	subject, err := s.Store.Subjects().GetSubjectByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.StudySession{}, ErrSubjectNotFound
		}
		return domain.StudySession{}, err
	}
	if subject.UserID != userID {
		return domain.StudySession{}, ErrSubjectNotFound
	}

	// 3. Persist in UTC.
	session := domain.StudySession{
		ID:        idx.New().String(),
		UserID:    userID,
		SubjectID: subjectID,
		StartTime: start.UTC(),
		EndTime:   end.UTC(),
		Note:      note,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Store.StudySessions().CreateStudySession(ctx, session); err != nil {
		log.Error("failed to create study session", slog.Any("error", err))
		return domain.StudySession{}, err
	}

	log.Debug("study session logged",
		slog.String("session_id", session.ID),
		slog.String("subject_id", subjectID),
		slog.Int("minutes", session.Minutes()),
	)
	return session, nil
}

// List returns the user's sessions with start time in [from, to), oldest
// first.
func (s *StudyService) List(ctx context.Context, userID string, from, to time.Time) ([]domain.StudySession, error) {
	if !to.After(from) {
		return nil, ErrInvalidTimeRange
	}
	return s.Store.StudySessions().ListStudySessions(ctx, userID, from, to)
}

// Range lists sessions over a span of calendar days, both ends inclusive.
// Day boundaries are resolved in the service's location.
func (s *StudyService) Range(ctx context.Context, userID, from, to string) ([]domain.StudySession, error) {
	first, err := time.ParseInLocation(domain.DateLayout, from, s.Location)
	if err != nil {
		return nil, ErrInvalidDate
	}
	last, err := time.ParseInLocation(domain.DateLayout, to, s.Location)
	if err != nil {
		return nil, ErrInvalidDate
	}
	return s.List(ctx, userID, first, last.AddDate(0, 0, 1))
}

// Day returns the sessions falling on one calendar day of the service's
// location, plus the minute total.
func (s *StudyService) Day(ctx context.Context, userID, date string) (DaySummary, error) {
	day, err := time.ParseInLocation(domain.DateLayout, date, s.Location)
	if err != nil {
		return DaySummary{}, ErrInvalidDate
	}

	sessions, err := s.Store.StudySessions().ListStudySessions(ctx, userID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return DaySummary{}, err
	}

	total := 0
	for _, sess := range sessions {
		total += sess.Minutes()
	}

	return DaySummary{Date: date, Sessions: sessions, TotalMinutes: total}, nil
}
