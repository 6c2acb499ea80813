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

var ErrInvalidWordCount = errors.New("word count must be positive")

type WordsService struct {
	Store store.Store
}

// WordLogInput carries the caller-supplied fields for a new word log.
// SubjectID, StartTime and EndTime are optional.
type WordLogInput struct {
	SubjectID *string
	Date      string
	Book      string
	Count     int
	Note      string
	StartTime *time.Time
	EndTime   *time.Time
}

// Create records reviewed vocabulary for a calendar day.
func (s *WordsService) Create(ctx context.Context, userID string, in WordLogInput) (domain.WordLog, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate.
	if in.Count <= 0 {
		return domain.WordLog{}, ErrInvalidWordCount
	}
	if _, err := time.Parse(domain.DateLayout, in.Date); err != nil {
		return domain.WordLog{}, ErrInvalidDate
	}
	if in.StartTime != nil && in.EndTime != nil && !in.EndTime.After(*in.StartTime) {
		return domain.WordLog{}, ErrInvalidTimeRange
	}
	// A timer window is stored only when both ends arrived; a lone start or
	// end is dropped rather than persisted as a half-open window.
	if in.StartTime == nil || in.EndTime == nil {
		in.StartTime = nil
		in.EndTime = nil
	}

	// 2. When a subject is named it must exist and belong to the user.
	if in.SubjectID != nil {
		subject, err := s.Store.Subjects().GetSubjectByID(ctx, *in.SubjectID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return domain.WordLog{}, ErrSubjectNotFound
			}
			return domain.WordLog{}, err
		}
		if subject.UserID != userID {
			return domain.WordLog{}, ErrSubjectNotFound
		}
	}

	wl := domain.WordLog{
		ID:        idx.New().String(),
		UserID:    userID,
		SubjectID: in.SubjectID,
		Date:      in.Date,
		Book:      in.Book,
		Count:     in.Count,
		Note:      in.Note,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Store.WordLogs().CreateWordLog(ctx, wl); err != nil {
		log.Error("failed to create word log", slog.Any("error", err))
		return domain.WordLog{}, err
	}

	log.Debug("word log created",
		slog.String("word_log_id", wl.ID),
		slog.String("date", wl.Date),
		slog.Int("count", wl.Count),
	)
	return wl, nil
}

// List returns the user's word logs with date in [from, to], oldest first.
func (s *WordsService) List(ctx context.Context, userID, from, to string) ([]domain.WordLog, error) {
	if _, err := time.Parse(domain.DateLayout, from); err != nil {
		return nil, ErrInvalidDate
	}
	if _, err := time.Parse(domain.DateLayout, to); err != nil {
		return nil, ErrInvalidDate
	}
	if to < from {
		return nil, ErrInvalidDate
	}
	return s.Store.WordLogs().ListWordLogs(ctx, userID, from, to)
}
