package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/quietstudy/studytrack/internal/domain"
	"github.com/quietstudy/studytrack/internal/service"
	"github.com/quietstudy/studytrack/pkg/api"
	"github.com/quietstudy/studytrack/pkg/httpx"
	"github.com/quietstudy/studytrack/pkg/slogx"
)

type StudySessionsHandler struct {
	StudyService *service.StudyService
}

// HandleCreate godoc
//
//	@Summary		Log Study Session Endpoint
//	@Description	Record a block of study time against a subject. Times are RFC3339.
//	@Tags			StudySessions
//	@Accept			json
//	@Produce		json
//	@Param			request	body		api.StudySessionCreateRequest	true	"Session"
//	@Success		201		{object}	api.StudySessionResponse
//	@Failure		400		{object}	api.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	api.ErrorResponse	"error, error_description"
//	@Failure		404		{object}	api.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	api.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/api/study-sessions [post].
func (h *StudySessionsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromCtx(ctx)
	if userID == "" {
		writeUnauthorized(w)
		return
	}

	var req api.StudySessionCreateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		writeBadTimestamp(w, "startTime")
		return
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		writeBadTimestamp(w, "endTime")
		return
	}

	session, err := h.StudyService.Create(ctx, userID, req.SubjectID, start, end, req.Note)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSubjectNotFound):
			writeSubjectNotFound(w)
		case errors.Is(err, service.ErrInvalidTimeRange):
			httpx.WriteJSON(w, http.StatusBadRequest, api.ErrorResponse{
				Error:            "invalid_request",
				ErrorDescription: "endTime must be after startTime",
			})
		default:
			log.Error("failed to log study session", "err", err)
			writeServerError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, sessionResponse(session))
}

// HandleList godoc
//
//	@Summary		List Study Sessions Endpoint
//	@Description	List sessions over a span of calendar days, both ends inclusive.
//	@Description	Day boundaries follow the service timezone, not UTC.
//	@Tags			StudySessions
//	@Produce		json
//	@Param			from	query		string	true	"First day (2006-01-02)"
//	@Param			to		query		string	true	"Last day (2006-01-02, inclusive)"
//	@Success		200		{array}		api.StudySessionResponse
//	@Failure		400		{object}	api.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	api.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	api.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/api/study-sessions [get].
func (h *StudySessionsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromCtx(ctx)
	if userID == "" {
		writeUnauthorized(w)
		return
	}

	sessions, err := h.StudyService.Range(ctx, userID, r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDate):
			httpx.WriteJSON(w, http.StatusBadRequest, api.ErrorResponse{
				Error:            "invalid_request",
				ErrorDescription: "from and to must be formatted as 2006-01-02",
			})
		case errors.Is(err, service.ErrInvalidTimeRange):
			httpx.WriteJSON(w, http.StatusBadRequest, api.ErrorResponse{
				Error:            "invalid_request",
				ErrorDescription: "to must not be before from",
			})
		default:
			log.Error("failed to list study sessions", "err", err)
			writeServerError(w)
		}
		return
	}

	resp := make([]api.StudySessionResponse, 0, len(sessions))
	for _, s := range sessions {
		resp = append(resp, sessionResponse(s))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleDay godoc
//
//	@Summary		Study Day Endpoint
//	@Description	Return the sessions falling on one calendar day plus the minute total.
//	@Description	The day boundary follows the service timezone, not UTC.
//	@Tags			StudySessions
//	@Produce		json
//	@Param			date	path		string	true	"Calendar day (2006-01-02)"
//	@Success		200		{object}	api.StudyDayResponse
//	@Failure		400		{object}	api.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	api.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	api.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/api/study-sessions/days/{date} [get].
func (h *StudySessionsHandler) HandleDay(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromCtx(ctx)
	if userID == "" {
		writeUnauthorized(w)
		return
	}

	day, err := h.StudyService.Day(ctx, userID, r.PathValue("date"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			httpx.WriteJSON(w, http.StatusBadRequest, api.ErrorResponse{
				Error:            "invalid_request",
				ErrorDescription: "date must be formatted as 2006-01-02",
			})
			return
		}
		log.Error("failed to load study day", "err", err)
		writeServerError(w)
		return
	}

	resp := api.StudyDayResponse{
		Date:         day.Date,
		Sessions:     make([]api.StudySessionResponse, 0, len(day.Sessions)),
		TotalMinutes: day.TotalMinutes,
	}
	for _, s := range day.Sessions {
		resp.Sessions = append(resp.Sessions, sessionResponse(s))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

func writeBadTimestamp(w http.ResponseWriter, field string) {
	httpx.WriteJSON(w, http.StatusBadRequest, api.ErrorResponse{
		Error:            "invalid_request",
		ErrorDescription: field + " must be an RFC3339 timestamp",
	})
}

func sessionResponse(s domain.StudySession) api.StudySessionResponse {
	return api.StudySessionResponse{
		ID:        s.ID,
		SubjectID: s.SubjectID,
		StartTime: s.StartTime.Format(time.RFC3339),
		EndTime:   s.EndTime.Format(time.RFC3339),
		Minutes:   s.Minutes(),
		Note:      s.Note,
	}
}
