package sqlite

import (
	"context"

	"github.com/quietstudy/studytrack/internal/domain"
)

type goalsRepo struct {
	db dbtx
}

func (r *goalsRepo) GetGoalByUser(ctx context.Context, userID string) (domain.Goal, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, daily_minutes_target, daily_words_target, updated_at
		 FROM goals WHERE user_id = ?`, userID)

	var g domain.Goal
	err := row.Scan(&g.ID, &g.UserID, &g.DailyMinutesTarget, &g.DailyWordsTarget, &g.UpdatedAt)
	if err != nil {
		return domain.Goal{}, mapNotFound(err)
	}
	return g, nil
}

func (r *goalsRepo) CreateGoal(ctx context.Context, g domain.Goal) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO goals (id, user_id, daily_minutes_target, daily_words_target, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		g.ID, g.UserID, g.DailyMinutesTarget, g.DailyWordsTarget, g.UpdatedAt)
	return mapConstraint(err)
}

func (r *goalsRepo) UpdateGoal(ctx context.Context, g domain.Goal) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE goals SET daily_minutes_target = ?, daily_words_target = ?, updated_at = ?
		 WHERE user_id = ?`,
		g.DailyMinutesTarget, g.DailyWordsTarget, g.UpdatedAt, g.UserID)
	return err
}
