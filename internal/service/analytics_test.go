package service

import (
	"context"
	"testing"
	"time"

	"github.com/quietstudy/studytrack/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestStudyDaySummary(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	auth := &AuthService{Store: s, Tokens: newTestIssuer()}
	subjects := &SubjectService{Store: s}

	loc, err := time.LoadLocation("Asia/Shanghai")
	require.NoError(t, err)
	study := &StudyService{Store: s, Location: loc}

	user := registerTestUser(t, auth, "alice@example.com")
	subject, err := subjects.Create(ctx, user.ID, "Math", "", "", 0)
	require.NoError(t, err)

	// 2026-03-10 09:00 in Shanghai is 01:00 UTC the same day.
	morning := time.Date(2026, 3, 10, 9, 0, 0, 0, loc)
	_, err = study.Create(ctx, user.ID, subject.ID, morning, morning.Add(45*time.Minute), "algebra")
	require.NoError(t, err)

	// 2026-03-10 01:00 in Shanghai is 17:00 UTC on 03-09. A UTC day
	// window would miss it.
	early := time.Date(2026, 3, 10, 1, 0, 0, 0, loc)
	_, err = study.Create(ctx, user.ID, subject.ID, early, early.Add(30*time.Minute), "")
	require.NoError(t, err)

	day, err := study.Day(ctx, user.ID, "2026-03-10")
	require.NoError(t, err)
	require.Len(t, day.Sessions, 2)
	require.Equal(t, 75, day.TotalMinutes)

	t.Run("neighbouring day is empty", func(t *testing.T) {
		day, err := study.Day(ctx, user.ID, "2026-03-11")
		require.NoError(t, err)
		require.Empty(t, day.Sessions)
		require.Zero(t, day.TotalMinutes)
	})

	t.Run("bad date rejected", func(t *testing.T) {
		_, err := study.Day(ctx, user.ID, "10/03/2026")
		require.ErrorIs(t, err, ErrInvalidDate)
	})
}

func TestAnalyticsDaily(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	auth := &AuthService{Store: s, Tokens: newTestIssuer()}
	subjects := &SubjectService{Store: s}
	study := &StudyService{Store: s, Location: time.UTC}
	words := &WordsService{Store: s}
	analytics := &AnalyticsService{Store: s, Location: time.UTC}

	user := registerTestUser(t, auth, "alice@example.com")
	subject, err := subjects.Create(ctx, user.ID, "Japanese", "", domain.StudyTypeWords, 50)
	require.NoError(t, err)

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)

	_, err = study.Create(ctx, user.ID, subject.ID,
		yesterday.Add(10*time.Hour), yesterday.Add(10*time.Hour+40*time.Minute), "")
	require.NoError(t, err)

	_, err = words.Create(ctx, user.ID, WordLogInput{
		Date:  yesterday.Format(domain.DateLayout),
		Book:  "core6000",
		Count: 35,
	})
	require.NoError(t, err)
	_, err = words.Create(ctx, user.ID, WordLogInput{
		Date:  today.Format(domain.DateLayout),
		Count: 10,
	})
	require.NoError(t, err)

	buckets, err := analytics.Daily(ctx, user.ID, RangeWeek)
	require.NoError(t, err)
	require.Len(t, buckets, 7)

	// Oldest first, ending today, with quiet days zero-filled.
	require.Equal(t, today.AddDate(0, 0, -6).Format(domain.DateLayout), buckets[0].Date)
	require.Equal(t, today.Format(domain.DateLayout), buckets[6].Date)
	require.Zero(t, buckets[0].Minutes)
	require.Zero(t, buckets[0].Words)

	require.Equal(t, 40, buckets[5].Minutes)
	require.Equal(t, 35, buckets[5].Words)
	require.Equal(t, 10, buckets[6].Words)

	t.Run("month window", func(t *testing.T) {
		buckets, err := analytics.Daily(ctx, user.ID, RangeMonth)
		require.NoError(t, err)
		require.Len(t, buckets, 30)
	})

	t.Run("unsupported window rejected", func(t *testing.T) {
		_, err := analytics.Daily(ctx, user.ID, 14)
		require.ErrorIs(t, err, ErrInvalidRange)
	})
}

func TestGoalGetOrCreate(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	auth := &AuthService{Store: s, Tokens: newTestIssuer()}
	goals := &GoalService{Store: s}

	user := registerTestUser(t, auth, "alice@example.com")

	goal, err := goals.Get(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, domain.DefaultDailyMinutesTarget, goal.DailyMinutesTarget)
	require.Equal(t, domain.DefaultDailyWordsTarget, goal.DailyWordsTarget)

	updated, err := goals.Update(ctx, user.ID, 90, 100)
	require.NoError(t, err)
	require.Equal(t, 90, updated.DailyMinutesTarget)

	again, err := goals.Get(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, 90, again.DailyMinutesTarget)
	require.Equal(t, 100, again.DailyWordsTarget)

	_, err = goals.Update(ctx, user.ID, 0, 100)
	require.ErrorIs(t, err, ErrInvalidGoalTarget)
}

func TestInviteMint(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := &InviteService{Store: s}

	inv, err := svc.Mint(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, inv.Code, 8)
	require.NotNil(t, inv.ExpiresAt)

	// Default TTL is 30 days.
	require.WithinDuration(t, time.Now().UTC().Add(30*24*time.Hour), *inv.ExpiresAt, time.Minute)

	t.Run("custom ttl", func(t *testing.T) {
		inv, err := svc.Mint(ctx, "", 7)
		require.NoError(t, err)
		require.WithinDuration(t, time.Now().UTC().Add(7*24*time.Hour), *inv.ExpiresAt, time.Minute)
	})

	t.Run("negative ttl rejected", func(t *testing.T) {
		_, err := svc.Mint(ctx, "", -1)
		require.ErrorIs(t, err, ErrInvalidInviteTTL)
	})
}
