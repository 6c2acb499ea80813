package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/quietstudy/studytrack/internal/service"
	"github.com/quietstudy/studytrack/internal/store"
	"github.com/quietstudy/studytrack/pkg/httpx"
	"github.com/quietstudy/studytrack/pkg/jwtx"
	"github.com/quietstudy/studytrack/pkg/slogx"

	_ "github.com/quietstudy/studytrack/api/docs" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	AuthService      *service.AuthService
	InviteService    *service.InviteService
	SubjectService   *service.SubjectService
	StudyService     *service.StudyService
	WordsService     *service.WordsService
	GoalService      *service.GoalService
	AnalyticsService *service.AnalyticsService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerInvites()
	r.registerSubjects()
	r.registerStudySessions()
	r.registerWordLogs()
	r.registerGoals()
	r.registerAnalytics()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			StudyTrack API
//	@version		0.1.0
//	@description	Personal study tracking backend: invite-gated accounts, study sessions,
//	@description	vocabulary logs, daily goals and per-day analytics.
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	r.Mux.Handle("POST /api/auth/register", http.HandlerFunc(h.HandleRegister))
	r.Mux.Handle("POST /api/auth/login", http.HandlerFunc(h.HandleLogin))
	r.Mux.Handle("POST /api/auth/refresh", http.HandlerFunc(h.HandleRefresh))
}

func (r *Router) registerInvites() {
	h := &InviteHandler{InviteService: r.InviteService}

	r.Mux.Handle("POST /api/auth/invite-codes",
		httpx.Chain(http.HandlerFunc(h.HandleMint),
			httpx.AuthnMiddleware(r.verifier),
		),
	)
}

func (r *Router) registerSubjects() {
	h := &SubjectsHandler{SubjectService: r.SubjectService}
	authn := httpx.AuthnMiddleware(r.verifier)

	r.Mux.Handle("GET /api/subjects", httpx.Chain(http.HandlerFunc(h.HandleList), authn))
	r.Mux.Handle("POST /api/subjects", httpx.Chain(http.HandlerFunc(h.HandleCreate), authn))
	r.Mux.Handle("PATCH /api/subjects/{id}", httpx.Chain(http.HandlerFunc(h.HandleUpdate), authn))
	r.Mux.Handle("DELETE /api/subjects/{id}", httpx.Chain(http.HandlerFunc(h.HandleDelete), authn))
}

func (r *Router) registerStudySessions() {
	h := &StudySessionsHandler{StudyService: r.StudyService}
	authn := httpx.AuthnMiddleware(r.verifier)

	r.Mux.Handle("POST /api/study-sessions", httpx.Chain(http.HandlerFunc(h.HandleCreate), authn))
	r.Mux.Handle("GET /api/study-sessions", httpx.Chain(http.HandlerFunc(h.HandleList), authn))
	r.Mux.Handle("GET /api/study-sessions/days/{date}", httpx.Chain(http.HandlerFunc(h.HandleDay), authn))
}

func (r *Router) registerWordLogs() {
	h := &WordLogsHandler{WordsService: r.WordsService}
	authn := httpx.AuthnMiddleware(r.verifier)

	r.Mux.Handle("POST /api/word-logs", httpx.Chain(http.HandlerFunc(h.HandleCreate), authn))
	r.Mux.Handle("GET /api/word-logs", httpx.Chain(http.HandlerFunc(h.HandleList), authn))
}

func (r *Router) registerGoals() {
	h := &GoalsHandler{GoalService: r.GoalService}
	authn := httpx.AuthnMiddleware(r.verifier)

	r.Mux.Handle("GET /api/goals", httpx.Chain(http.HandlerFunc(h.HandleGet), authn))
	r.Mux.Handle("PUT /api/goals", httpx.Chain(http.HandlerFunc(h.HandleUpdate), authn))
}

func (r *Router) registerAnalytics() {
	h := &AnalyticsHandler{AnalyticsService: r.AnalyticsService}

	r.Mux.Handle("GET /api/analytics/daily",
		httpx.Chain(http.HandlerFunc(h.HandleDaily),
			httpx.AuthnMiddleware(r.verifier),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
