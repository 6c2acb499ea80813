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

type WordLogsHandler struct {
	WordsService *service.WordsService
}

// HandleCreate godoc
//
//	@Summary		Log Words Endpoint
//	@Description	Record vocabulary reviewed on a calendar day. subjectId and the
//	@Description	startTime/endTime pair are optional.
//	@Tags			WordLogs
//	@Accept			json
//	@Produce		json
//	@Param			request	body		api.WordLogCreateRequest	true	"Word log"
//	@Success		201		{object}	api.WordLogResponse
//	@Failure		400		{object}	api.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	api.ErrorResponse	"error, error_description"
//	@Failure		404		{object}	api.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	api.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/api/word-logs [post].
func (h *WordLogsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromCtx(ctx)
	if userID == "" {
		writeUnauthorized(w)
		return
	}

	var req api.WordLogCreateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	in := service.WordLogInput{
		SubjectID: req.SubjectID,
		Date:      req.Date,
		Book:      req.Book,
		Count:     req.Count,
		Note:      req.Note,
	}
	if req.StartTime != nil {
		ts, err := time.Parse(time.RFC3339, *req.StartTime)
		if err != nil {
			writeBadTimestamp(w, "startTime")
			return
		}
		in.StartTime = &ts
	}
	if req.EndTime != nil {
		ts, err := time.Parse(time.RFC3339, *req.EndTime)
		if err != nil {
			writeBadTimestamp(w, "endTime")
			return
		}
		in.EndTime = &ts
	}

	wl, err := h.WordsService.Create(ctx, userID, in)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSubjectNotFound):
			writeSubjectNotFound(w)
		case errors.Is(err, service.ErrInvalidWordCount),
			errors.Is(err, service.ErrInvalidDate),
			errors.Is(err, service.ErrInvalidTimeRange):
			httpx.WriteJSON(w, http.StatusBadRequest, api.ErrorResponse{
				Error:            "invalid_request",
				ErrorDescription: err.Error(),
			})
		default:
			log.Error("failed to create word log", "err", err)
			writeServerError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, wordLogResponse(wl))
}

// HandleList godoc
//
//	@Summary		List Word Logs Endpoint
//	@Description	List word logs with date in [from, to], oldest first. Dates are 2006-01-02.
//	@Tags			WordLogs
//	@Produce		json
//	@Param			from	query		string	true	"First day (2006-01-02)"
//	@Param			to		query		string	true	"Last day (2006-01-02, inclusive)"
//	@Success		200		{array}		api.WordLogResponse
//	@Failure		400		{object}	api.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	api.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	api.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/api/word-logs [get].
func (h *WordLogsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromCtx(ctx)
	if userID == "" {
		writeUnauthorized(w)
		return
	}

	logs, err := h.WordsService.List(ctx, userID, r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			httpx.WriteJSON(w, http.StatusBadRequest, api.ErrorResponse{
				Error:            "invalid_request",
				ErrorDescription: "from and to must be formatted as 2006-01-02",
			})
			return
		}
		log.Error("failed to list word logs", "err", err)
		writeServerError(w)
		return
	}

	resp := make([]api.WordLogResponse, 0, len(logs))
	for _, wl := range logs {
		resp = append(resp, wordLogResponse(wl))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

func wordLogResponse(wl domain.WordLog) api.WordLogResponse {
	resp := api.WordLogResponse{
		ID:        wl.ID,
		SubjectID: wl.SubjectID,
		Date:      wl.Date,
		Book:      wl.Book,
		Count:     wl.Count,
		Note:      wl.Note,
	}
	if wl.StartTime != nil {
		s := wl.StartTime.Format(time.RFC3339)
		resp.StartTime = &s
	}
	if wl.EndTime != nil {
		e := wl.EndTime.Format(time.RFC3339)
		resp.EndTime = &e
	}
	return resp
}
