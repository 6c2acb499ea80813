package service

import (
	"context"
	"testing"
	"time"

	"github.com/quietstudy/studytrack/internal/domain"
	"github.com/stretchr/testify/require"
)

func registerTestUser(t *testing.T, s *AuthService, email string) domain.User {
	t.Helper()

	inv := mintInvite(t, s.Store)
	user, _, err := s.Register(context.Background(), email, "pw-longenough", "", inv.Code)
	require.NoError(t, err)
	return user
}

func TestSubjectLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	auth := &AuthService{Store: s, Tokens: newTestIssuer()}
	svc := &SubjectService{Store: s}

	user := registerTestUser(t, auth, "alice@example.com")

	subject, err := svc.Create(ctx, user.ID, "Japanese", "#FF8800", domain.StudyTypeWords, 50)
	require.NoError(t, err)
	require.Equal(t, domain.StudyTypeWords, subject.StudyType)

	t.Run("defaults study type to minutes", func(t *testing.T) {
		sub, err := svc.Create(ctx, user.ID, "Math", "", "", 0)
		require.NoError(t, err)
		require.Equal(t, domain.StudyTypeMinutes, sub.StudyType)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		_, err := svc.Create(ctx, user.ID, "", "", "", 0)
		require.ErrorIs(t, err, ErrInvalidSubjectName)

		_, err = svc.Create(ctx, user.ID, "X", "", "HOURS", 0)
		require.ErrorIs(t, err, ErrInvalidStudyType)
	})

	t.Run("partial update", func(t *testing.T) {
		name := "Japanese N2"
		target := 80
		updated, err := svc.Update(ctx, user.ID, subject.ID, SubjectPatch{Name: &name, DailyTarget: &target})
		require.NoError(t, err)
		require.Equal(t, "Japanese N2", updated.Name)
		require.Equal(t, 80, updated.DailyTarget)
		require.Equal(t, "#FF8800", updated.ColorHex) // untouched
	})

	t.Run("archiving hides from list", func(t *testing.T) {
		archived := true
		_, err := svc.Update(ctx, user.ID, subject.ID, SubjectPatch{Archived: &archived})
		require.NoError(t, err)

		list, err := svc.List(ctx, user.ID)
		require.NoError(t, err)
		for _, sub := range list {
			require.NotEqual(t, subject.ID, sub.ID)
		}
	})

	t.Run("other users cannot touch it", func(t *testing.T) {
		other := registerTestUser(t, auth, "bob@example.com")

		_, err := svc.Update(ctx, other.ID, subject.ID, SubjectPatch{})
		require.ErrorIs(t, err, ErrSubjectNotFound)

		err = svc.Delete(ctx, other.ID, subject.ID)
		require.ErrorIs(t, err, ErrSubjectNotFound)
	})
}

func TestSubjectDeleteCascades(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	auth := &AuthService{Store: s, Tokens: newTestIssuer()}
	subjects := &SubjectService{Store: s}
	study := &StudyService{Store: s, Location: time.UTC}
	words := &WordsService{Store: s}

	user := registerTestUser(t, auth, "alice@example.com")
	subject, err := subjects.Create(ctx, user.ID, "Japanese", "", domain.StudyTypeWords, 50)
	require.NoError(t, err)

	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	_, err = study.Create(ctx, user.ID, subject.ID, start, start.Add(30*time.Minute), "")
	require.NoError(t, err)

	_, err = words.Create(ctx, user.ID, WordLogInput{
		SubjectID: &subject.ID,
		Date:      "2026-03-10",
		Count:     25,
	})
	require.NoError(t, err)

	require.NoError(t, subjects.Delete(ctx, user.ID, subject.ID))

	sessions, err := study.List(ctx, user.ID, start.AddDate(0, 0, -1), start.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Empty(t, sessions)

	logs, err := words.List(ctx, user.ID, "2026-03-01", "2026-03-31")
	require.NoError(t, err)
	require.Empty(t, logs)
}
