package sqlite

import (
	"context"
	"time"

	"github.com/quietstudy/studytrack/internal/domain"
)

type studySessionsRepo struct {
	db dbtx
}

func (r *studySessionsRepo) CreateStudySession(ctx context.Context, s domain.StudySession) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO study_sessions (id, user_id, subject_id, start_time, end_time, note, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.UserID, s.SubjectID, s.StartTime, s.EndTime, s.Note, s.CreatedAt)
	return mapConstraint(err)
}

// ListStudySessions returns sessions with start_time in [from, to), oldest
// first.
func (r *studySessionsRepo) ListStudySessions(ctx context.Context, userID string, from, to time.Time) ([]domain.StudySession, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, subject_id, start_time, end_time, note, created_at
		 FROM study_sessions
		 WHERE user_id = ? AND start_time >= ? AND start_time < ?
		 ORDER BY start_time ASC`, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.StudySession
	for rows.Next() {
		var s domain.StudySession
		if err := rows.Scan(&s.ID, &s.UserID, &s.SubjectID, &s.StartTime,
			&s.EndTime, &s.Note, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *studySessionsRepo) DeleteStudySessionsBySubject(ctx context.Context, subjectID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM study_sessions WHERE subject_id = ?`, subjectID)
	return err
}
