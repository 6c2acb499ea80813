package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWordLogTimerWindow(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	auth := &AuthService{Store: s, Tokens: newTestIssuer()}
	svc := &WordsService{Store: s}

	user := registerTestUser(t, auth, "alice@example.com")

	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(20 * time.Minute)

	t.Run("both ends kept", func(t *testing.T) {
		wl, err := svc.Create(ctx, user.ID, WordLogInput{
			Date:      "2026-03-10",
			Count:     30,
			StartTime: &start,
			EndTime:   &end,
		})
		require.NoError(t, err)
		require.NotNil(t, wl.StartTime)
		require.NotNil(t, wl.EndTime)
	})

	t.Run("lone start dropped", func(t *testing.T) {
		wl, err := svc.Create(ctx, user.ID, WordLogInput{
			Date:      "2026-03-10",
			Count:     10,
			StartTime: &start,
		})
		require.NoError(t, err)
		require.Nil(t, wl.StartTime)
		require.Nil(t, wl.EndTime)

		stored, err := svc.List(ctx, user.ID, "2026-03-10", "2026-03-10")
		require.NoError(t, err)
		for _, got := range stored {
			if got.ID == wl.ID {
				require.Nil(t, got.StartTime)
				require.Nil(t, got.EndTime)
			}
		}
	})

	t.Run("lone end dropped", func(t *testing.T) {
		wl, err := svc.Create(ctx, user.ID, WordLogInput{
			Date:    "2026-03-10",
			Count:   10,
			EndTime: &end,
		})
		require.NoError(t, err)
		require.Nil(t, wl.StartTime)
		require.Nil(t, wl.EndTime)
	})

	t.Run("inverted window rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, user.ID, WordLogInput{
			Date:      "2026-03-10",
			Count:     10,
			StartTime: &end,
			EndTime:   &start,
		})
		require.ErrorIs(t, err, ErrInvalidTimeRange)
	})
}
