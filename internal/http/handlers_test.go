package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/quietstudy/studytrack/internal/service"
	"github.com/quietstudy/studytrack/internal/store/drivers/sqlite"
	"github.com/quietstudy/studytrack/pkg/api"
	"github.com/quietstudy/studytrack/pkg/cryptox"
	"github.com/quietstudy/studytrack/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Point the pepper at a throwaway file so tests never touch a real one.
	dir, err := os.MkdirTemp("", "http-test-*")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()

	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func newTestRouter(t *testing.T) *Router {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	issuer := jwtx.NewIssuer("test-secret", "studytrack-test", time.Minute, time.Hour)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := NewRouter(issuer, "test", st, logger)
	r.AuthService = &service.AuthService{Store: st, Tokens: issuer}
	r.InviteService = &service.InviteService{Store: st}
	r.SubjectService = &service.SubjectService{Store: st}
	r.StudyService = &service.StudyService{Store: st, Location: time.UTC}
	r.WordsService = &service.WordsService{Store: st}
	r.GoalService = &service.GoalService{Store: st}
	r.AnalyticsService = &service.AnalyticsService{Store: st, Location: time.UTC}
	r.ApplyRoutes()
	return r
}

func doJSON(t *testing.T, r *Router, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

// registerViaAPI seeds an invite code directly and registers through the
// endpoint, returning the token response.
func registerViaAPI(t *testing.T, r *Router, email string) api.TokenResponse {
	t.Helper()

	inv, err := r.InviteService.Mint(t.Context(), "", 0)
	require.NoError(t, err)

	rec := doJSON(t, r, http.MethodPost, "/api/auth/register", "", api.RegisterRequest{
		Email:      email,
		Password:   "pw-longenough",
		Nickname:   "Tester",
		InviteCode: inv.Code,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	return decodeBody[api.TokenResponse](t, rec)
}

func TestRegisterEndpoint(t *testing.T) {
	r := newTestRouter(t)

	tokens := registerViaAPI(t, r, "alice@example.com")
	require.NotEmpty(t, tokens.AccessToken)
	require.NotEmpty(t, tokens.RefreshToken)
	require.Equal(t, "Bearer", tokens.TokenType)
	require.NotNil(t, tokens.User)
	require.Equal(t, "alice@example.com", tokens.User.Email)

	t.Run("invalid body", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/api/auth/register", "", api.RegisterRequest{
			Email:      "not-an-email",
			Password:   "pw-longenough",
			InviteCode: "ABCD2345",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown invite code", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/api/auth/register", "", api.RegisterRequest{
			Email:      "bob@example.com",
			Password:   "pw-longenough",
			InviteCode: "NOSUCH99",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeBody[api.ErrorResponse](t, rec)
		require.Equal(t, "Invite code is invalid", body.ErrorDescription)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		inv, err := r.InviteService.Mint(t.Context(), "", 0)
		require.NoError(t, err)

		rec := doJSON(t, r, http.MethodPost, "/api/auth/register", "", api.RegisterRequest{
			Email:      "alice@example.com",
			Password:   "pw-longenough",
			InviteCode: inv.Code,
		})
		require.Equal(t, http.StatusConflict, rec.Code)
		body := decodeBody[api.ErrorResponse](t, rec)
		require.Equal(t, "Email already registered", body.ErrorDescription)
	})
}

func TestLoginAndRefreshEndpoints(t *testing.T) {
	r := newTestRouter(t)
	registerViaAPI(t, r, "alice@example.com")

	rec := doJSON(t, r, http.MethodPost, "/api/auth/login", "", api.LoginRequest{
		Email:    "alice@example.com",
		Password: "pw-longenough",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	tokens := decodeBody[api.TokenResponse](t, rec)

	t.Run("wrong password", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/api/auth/login", "", api.LoginRequest{
			Email:    "alice@example.com",
			Password: "nope-nope-nope",
		})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		body := decodeBody[api.ErrorResponse](t, rec)
		require.Equal(t, "Invalid email or password", body.ErrorDescription)
	})

	t.Run("refresh rotates the pair", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/api/auth/refresh", "", api.RefreshRequest{
			RefreshToken: tokens.RefreshToken,
		})
		require.Equal(t, http.StatusOK, rec.Code)
		next := decodeBody[api.TokenResponse](t, rec)
		require.NotEmpty(t, next.AccessToken)
	})

	t.Run("access token rejected by refresh", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/api/auth/refresh", "", api.RefreshRequest{
			RefreshToken: tokens.AccessToken,
		})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestProtectedEndpointsRequireAuth(t *testing.T) {
	r := newTestRouter(t)

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/subjects"},
		{http.MethodPost, "/api/auth/invite-codes"},
		{http.MethodGet, "/api/goals"},
		{http.MethodGet, "/api/analytics/daily"},
	} {
		rec := doJSON(t, r, tc.method, tc.path, "", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)
	}

	t.Run("refresh token rejected as access token", func(t *testing.T) {
		tokens := registerViaAPI(t, r, "alice@example.com")
		rec := doJSON(t, r, http.MethodGet, "/api/subjects", tokens.RefreshToken, nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestSubjectEndpoints(t *testing.T) {
	r := newTestRouter(t)
	tokens := registerViaAPI(t, r, "alice@example.com")

	rec := doJSON(t, r, http.MethodPost, "/api/subjects", tokens.AccessToken, api.SubjectCreateRequest{
		Name:        "Japanese",
		ColorHex:    "#FF8800",
		StudyType:   "WORDS",
		DailyTarget: 50,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	subject := decodeBody[api.SubjectResponse](t, rec)
	require.NotEmpty(t, subject.ID)

	rec = doJSON(t, r, http.MethodGet, "/api/subjects", tokens.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeBody[[]api.SubjectResponse](t, rec)
	require.Len(t, list, 1)

	t.Run("patch", func(t *testing.T) {
		name := "Japanese N2"
		rec := doJSON(t, r, http.MethodPatch, "/api/subjects/"+subject.ID, tokens.AccessToken,
			api.SubjectUpdateRequest{Name: &name})
		require.Equal(t, http.StatusOK, rec.Code)
		updated := decodeBody[api.SubjectResponse](t, rec)
		require.Equal(t, "Japanese N2", updated.Name)
		require.Equal(t, "#FF8800", updated.ColorHex)
	})

	t.Run("another user gets 404", func(t *testing.T) {
		other := registerViaAPI(t, r, "bob@example.com")
		rec := doJSON(t, r, http.MethodDelete, "/api/subjects/"+subject.ID, other.AccessToken, nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("delete", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodDelete, "/api/subjects/"+subject.ID, tokens.AccessToken, nil)
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = doJSON(t, r, http.MethodGet, "/api/subjects", tokens.AccessToken, nil)
		list := decodeBody[[]api.SubjectResponse](t, rec)
		require.Empty(t, list)
	})
}

func TestStudySessionEndpoints(t *testing.T) {
	r := newTestRouter(t)
	tokens := registerViaAPI(t, r, "alice@example.com")

	rec := doJSON(t, r, http.MethodPost, "/api/subjects", tokens.AccessToken, api.SubjectCreateRequest{Name: "Math"})
	require.Equal(t, http.StatusCreated, rec.Code)
	subject := decodeBody[api.SubjectResponse](t, rec)

	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	rec = doJSON(t, r, http.MethodPost, "/api/study-sessions", tokens.AccessToken, api.StudySessionCreateRequest{
		SubjectID: subject.ID,
		StartTime: start.Format(time.RFC3339),
		EndTime:   start.Add(45 * time.Minute).Format(time.RFC3339),
		Note:      "algebra",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	session := decodeBody[api.StudySessionResponse](t, rec)
	require.Equal(t, 45, session.Minutes)

	t.Run("end before start rejected", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/api/study-sessions", tokens.AccessToken, api.StudySessionCreateRequest{
			SubjectID: subject.ID,
			StartTime: start.Format(time.RFC3339),
			EndTime:   start.Add(-time.Minute).Format(time.RFC3339),
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("range list", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet,
			"/api/study-sessions?from=2026-03-10&to=2026-03-10",
			tokens.AccessToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		list := decodeBody[[]api.StudySessionResponse](t, rec)
		require.Len(t, list, 1)
	})

	t.Run("range with bad bounds", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet,
			"/api/study-sessions?from=2026-03-10T00:00:00Z&to=2026-03-11",
			tokens.AccessToken, nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("day view", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/api/study-sessions/days/2026-03-10", tokens.AccessToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		day := decodeBody[api.StudyDayResponse](t, rec)
		require.Equal(t, 45, day.TotalMinutes)
		require.Len(t, day.Sessions, 1)
	})

	t.Run("bad date", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/api/study-sessions/days/10-03-2026", tokens.AccessToken, nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestWordLogAndGoalEndpoints(t *testing.T) {
	r := newTestRouter(t)
	tokens := registerViaAPI(t, r, "alice@example.com")

	rec := doJSON(t, r, http.MethodPost, "/api/word-logs", tokens.AccessToken, api.WordLogCreateRequest{
		Date:  "2026-03-10",
		Book:  "core6000",
		Count: 25,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	t.Run("zero count rejected", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/api/word-logs", tokens.AccessToken, api.WordLogCreateRequest{
			Date:  "2026-03-10",
			Count: 0,
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("list by date range", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/api/word-logs?from=2026-03-01&to=2026-03-31", tokens.AccessToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		list := decodeBody[[]api.WordLogResponse](t, rec)
		require.Len(t, list, 1)
		require.Equal(t, 25, list[0].Count)
	})

	t.Run("goal defaults then update", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/api/goals", tokens.AccessToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		goal := decodeBody[api.GoalResponse](t, rec)
		require.Equal(t, 120, goal.DailyMinutesTarget)
		require.Equal(t, 50, goal.DailyWordsTarget)

		rec = doJSON(t, r, http.MethodPut, "/api/goals", tokens.AccessToken, api.GoalUpdateRequest{
			DailyMinutesTarget: 90,
			DailyWordsTarget:   100,
		})
		require.Equal(t, http.StatusOK, rec.Code)
		goal = decodeBody[api.GoalResponse](t, rec)
		require.Equal(t, 90, goal.DailyMinutesTarget)
	})
}

func TestInviteMintEndpoint(t *testing.T) {
	r := newTestRouter(t)
	tokens := registerViaAPI(t, r, "alice@example.com")

	rec := doJSON(t, r, http.MethodPost, "/api/auth/invite-codes", tokens.AccessToken, api.InviteMintRequest{})
	require.Equal(t, http.StatusCreated, rec.Code)
	inv := decodeBody[api.InviteCodeResponse](t, rec)
	require.Len(t, inv.Code, 8)
	require.NotEmpty(t, inv.ExpiresAt)

	t.Run("minted code registers a new user", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/api/auth/register", "", api.RegisterRequest{
			Email:      "bob@example.com",
			Password:   "pw-longenough",
			InviteCode: inv.Code,
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("non-numeric expiry rejected", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/api/auth/invite-codes", tokens.AccessToken,
			api.InviteMintRequest{ExpiresInDays: "soon"})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeBody[api.ErrorResponse](t, rec)
		require.Equal(t, "Invalid expiresInDays", body.ErrorDescription)
	})
}

func TestAnalyticsEndpoint(t *testing.T) {
	r := newTestRouter(t)
	tokens := registerViaAPI(t, r, "alice@example.com")

	today := time.Now().UTC().Format("2006-01-02")
	rec := doJSON(t, r, http.MethodPost, "/api/word-logs", tokens.AccessToken, api.WordLogCreateRequest{
		Date:  today,
		Count: 40,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/api/analytics/daily", tokens.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	daily := decodeBody[api.DailyAnalyticsResponse](t, rec)
	require.Equal(t, "30d", daily.Range)
	require.Len(t, daily.Days, 30)
	require.Equal(t, today, daily.Days[29].Date)
	require.Equal(t, 40, daily.Days[29].Words)

	t.Run("7d window", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/api/analytics/daily?range=7d", tokens.AccessToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		daily := decodeBody[api.DailyAnalyticsResponse](t, rec)
		require.Equal(t, "7d", daily.Range)
		require.Len(t, daily.Days, 7)
		require.Equal(t, 40, daily.Days[6].Words)
	})

	t.Run("bad range", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/api/analytics/daily?range=90d", tokens.AccessToken, nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHealthEndpoints(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/livez", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[api.HealthResponse](t, rec)
	require.Equal(t, "ok", body.Status)

	rec = doJSON(t, r, http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	ready := decodeBody[api.HealthResponse](t, rec)
	require.Equal(t, "ok", ready.Status)
	require.NotNil(t, ready.Checks)
	require.Equal(t, "ok", ready.Checks.Database)
}
