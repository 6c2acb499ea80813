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

var ErrInvalidGoalTarget = errors.New("goal targets must be positive")

type GoalService struct {
	Store store.Store
}

// Get returns the user's goal, creating it with the default targets on
// first access.
func (s *GoalService) Get(ctx context.Context, userID string) (domain.Goal, error) {
	log := slogx.FromContext(ctx)

	goal, err := s.Store.Goals().GetGoalByUser(ctx, userID)
	if err == nil {
		return goal, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to fetch goal", slog.Any("error", err))
		return domain.Goal{}, err
	}

	goal = domain.Goal{
		ID:                 idx.New().String(),
		UserID:             userID,
		DailyMinutesTarget: domain.DefaultDailyMinutesTarget,
		DailyWordsTarget:   domain.DefaultDailyWordsTarget,
		UpdatedAt:          time.Now().UTC(),
	}
	if err := s.Store.Goals().CreateGoal(ctx, goal); err != nil {
		// A concurrent first access may have created the row already.
		if errors.Is(err, store.ErrAlreadyExists) {
			return s.Store.Goals().GetGoalByUser(ctx, userID)
		}
		log.Error("failed to create default goal", slog.Any("error", err))
		return domain.Goal{}, err
	}

	log.Debug("default goal created", slog.String("user_id", userID))
	return goal, nil
}

// Update sets both daily targets, creating the goal row if the user never
// read it.
func (s *GoalService) Update(ctx context.Context, userID string, minutesTarget, wordsTarget int) (domain.Goal, error) {
	log := slogx.FromContext(ctx)

	if minutesTarget <= 0 || wordsTarget <= 0 {
		return domain.Goal{}, ErrInvalidGoalTarget
	}

	goal, err := s.Get(ctx, userID)
	if err != nil {
		return domain.Goal{}, err
	}

	goal.DailyMinutesTarget = minutesTarget
	goal.DailyWordsTarget = wordsTarget
	goal.UpdatedAt = time.Now().UTC()

	if err := s.Store.Goals().UpdateGoal(ctx, goal); err != nil {
		log.Error("failed to update goal", slog.Any("error", err))
		return domain.Goal{}, err
	}

	log.Debug("goal updated",
		slog.String("user_id", userID),
		slog.Int("daily_minutes_target", minutesTarget),
		slog.Int("daily_words_target", wordsTarget),
	)
	return goal, nil
}
