package sqlite

import (
	"context"

	"github.com/quietstudy/studytrack/internal/domain"
)

type subjectsRepo struct {
	db dbtx
}

const subjectColumns = `id, user_id, name, color_hex, archived, study_type, daily_target, created_at`

func (r *subjectsRepo) ListActiveSubjects(ctx context.Context, userID string) ([]domain.Subject, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+subjectColumns+` FROM subjects
		 WHERE user_id = ? AND archived = 0
		 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Subject
	for rows.Next() {
		s, err := scanSubject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *subjectsRepo) GetSubjectByID(ctx context.Context, id string) (domain.Subject, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+subjectColumns+` FROM subjects WHERE id = ?`, id)
	return scanSubject(row)
}

func (r *subjectsRepo) CreateSubject(ctx context.Context, s domain.Subject) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO subjects (id, user_id, name, color_hex, archived, study_type, daily_target, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.UserID, s.Name, s.ColorHex, s.Archived, s.StudyType, s.DailyTarget, s.CreatedAt)
	return mapConstraint(err)
}

func (r *subjectsRepo) UpdateSubject(ctx context.Context, s domain.Subject) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE subjects SET name = ?, color_hex = ?, archived = ?, study_type = ?, daily_target = ?
		 WHERE id = ?`,
		s.Name, s.ColorHex, s.Archived, s.StudyType, s.DailyTarget, s.ID)
	return err
}

func (r *subjectsRepo) DeleteSubject(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM subjects WHERE id = ?`, id)
	return err
}

func scanSubject(row rowScanner) (domain.Subject, error) {
	var s domain.Subject
	err := row.Scan(&s.ID, &s.UserID, &s.Name, &s.ColorHex, &s.Archived,
		&s.StudyType, &s.DailyTarget, &s.CreatedAt)
	if err != nil {
		return domain.Subject{}, mapNotFound(err)
	}
	return s, nil
}
