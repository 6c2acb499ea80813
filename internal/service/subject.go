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
	ErrSubjectNotFound    = errors.New("subject not found")
	ErrInvalidStudyType   = errors.New("invalid study type")
	ErrInvalidSubjectName = errors.New("invalid subject name")
)

type SubjectService struct {
	Store store.Store
}

// SubjectPatch carries the mutable subject fields for a partial update.
// Nil means leave unchanged.
type SubjectPatch struct {
	Name        *string
	ColorHex    *string
	Archived    *bool
	StudyType   *string
	DailyTarget *int
}

// List returns the user's active subjects, newest first.
func (s *SubjectService) List(ctx context.Context, userID string) ([]domain.Subject, error) {
	return s.Store.Subjects().ListActiveSubjects(ctx, userID)
}

// Create adds a subject for the user. StudyType defaults to MINUTES when
// empty.
func (s *SubjectService) Create(ctx context.Context, userID, name, colorHex, studyType string, dailyTarget int) (domain.Subject, error) {
	log := slogx.FromContext(ctx)

	if name == "" {
		return domain.Subject{}, ErrInvalidSubjectName
	}
	if studyType == "" {
		studyType = domain.StudyTypeMinutes
	}
	if studyType != domain.StudyTypeMinutes && studyType != domain.StudyTypeWords {
		return domain.Subject{}, ErrInvalidStudyType
	}

	subject := domain.Subject{
		ID:          idx.New().String(),
		UserID:      userID,
		Name:        name,
		ColorHex:    colorHex,
		StudyType:   studyType,
		DailyTarget: dailyTarget,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.Store.Subjects().CreateSubject(ctx, subject); err != nil {
		log.Error("failed to create subject", slog.Any("error", err))
		return domain.Subject{}, err
	}

	log.Debug("subject created",
		slog.String("subject_id", subject.ID),
		slog.String("user_id", userID),
	)
	return subject, nil
}

// Update applies a partial update to a subject the user owns. A subject
// owned by someone else reads as not found.
func (s *SubjectService) Update(ctx context.Context, userID, subjectID string, patch SubjectPatch) (domain.Subject, error) {
	log := slogx.FromContext(ctx)

	subject, err := s.getOwned(ctx, userID, subjectID)
	if err != nil {
		return domain.Subject{}, err
	}

	if patch.Name != nil {
		if *patch.Name == "" {
			return domain.Subject{}, ErrInvalidSubjectName
		}
		subject.Name = *patch.Name
	}
	if patch.ColorHex != nil {
		subject.ColorHex = *patch.ColorHex
	}
	if patch.Archived != nil {
		subject.Archived = *patch.Archived
	}
	if patch.StudyType != nil {
		if *patch.StudyType != domain.StudyTypeMinutes && *patch.StudyType != domain.StudyTypeWords {
			return domain.Subject{}, ErrInvalidStudyType
		}
		subject.StudyType = *patch.StudyType
	}
	if patch.DailyTarget != nil {
		subject.DailyTarget = *patch.DailyTarget
	}

	if err := s.Store.Subjects().UpdateSubject(ctx, subject); err != nil {
		log.Error("failed to update subject", slog.Any("error", err))
		return domain.Subject{}, err
	}
	return subject, nil
}

// Delete removes a subject the user owns along with its study sessions and
// word logs, all in one transaction.
func (s *SubjectService) Delete(ctx context.Context, userID, subjectID string) error {
	log := slogx.FromContext(ctx)

	if _, err := s.getOwned(ctx, userID, subjectID); err != nil {
		return err
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.StudySessions().DeleteStudySessionsBySubject(ctx, subjectID); err != nil {
			return err
		}
		if err := tx.WordLogs().DeleteWordLogsBySubject(ctx, subjectID); err != nil {
			return err
		}
		return tx.Subjects().DeleteSubject(ctx, subjectID)
	})
	if err != nil {
		log.Error("failed to delete subject", slog.Any("error", err))
		return err
	}

	log.Debug("subject deleted",
		slog.String("subject_id", subjectID),
		slog.String("user_id", userID),
	)
	return nil
}

func (s *SubjectService) getOwned(ctx context.Context, userID, subjectID string) (domain.Subject, error) {
	subject, err := s.Store.Subjects().GetSubjectByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Subject{}, ErrSubjectNotFound
		}
		return domain.Subject{}, err
	}
	if subject.UserID != userID {
		return domain.Subject{}, ErrSubjectNotFound
	}
	return subject, nil
}
