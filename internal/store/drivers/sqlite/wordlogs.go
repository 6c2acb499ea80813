package sqlite

import (
	"context"
	"database/sql"

	"github.com/quietstudy/studytrack/internal/domain"
)

type wordLogsRepo struct {
	db dbtx
}

func (r *wordLogsRepo) CreateWordLog(ctx context.Context, wl domain.WordLog) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO word_logs (id, user_id, subject_id, date, book, count, note, start_time, end_time, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		wl.ID, wl.UserID, mapOptionalString(wl.SubjectID), wl.Date, wl.Book,
		wl.Count, wl.Note, mapOptionalTime(wl.StartTime), mapOptionalTime(wl.EndTime), wl.CreatedAt)
	return mapConstraint(err)
}

// ListWordLogs returns logs with date in [from, to] inclusive, oldest first.
// Dates are "2006-01-02" strings so lexical order is chronological order.
func (r *wordLogsRepo) ListWordLogs(ctx context.Context, userID string, from, to string) ([]domain.WordLog, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, subject_id, date, book, count, note, start_time, end_time, created_at
		 FROM word_logs
		 WHERE user_id = ? AND date >= ? AND date <= ?
		 ORDER BY date ASC, created_at ASC`, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.WordLog
	for rows.Next() {
		var (
			wl        domain.WordLog
			subjectID sql.NullString
			startTime sql.NullTime
			endTime   sql.NullTime
		)
		if err := rows.Scan(&wl.ID, &wl.UserID, &subjectID, &wl.Date, &wl.Book,
			&wl.Count, &wl.Note, &startTime, &endTime, &wl.CreatedAt); err != nil {
			return nil, err
		}
		wl.SubjectID = mapNullStringPtr(subjectID)
		wl.StartTime = mapNullTimePtr(startTime)
		wl.EndTime = mapNullTimePtr(endTime)
		out = append(out, wl)
	}
	return out, rows.Err()
}

func (r *wordLogsRepo) DeleteWordLogsBySubject(ctx context.Context, subjectID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM word_logs WHERE subject_id = ?`, subjectID)
	return err
}
