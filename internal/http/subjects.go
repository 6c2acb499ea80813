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

type SubjectsHandler struct {
	SubjectService *service.SubjectService
}

// HandleList godoc
//
//	@Summary		List Subjects Endpoint
//	@Description	List the caller's active (non-archived) subjects, newest first.
//	@Tags			Subjects
//	@Produce		json
//	@Success		200	{array}		api.SubjectResponse
//	@Failure		401	{object}	api.ErrorResponse	"error, error_description"
//	@Failure		500	{object}	api.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/api/subjects [get].
func (h *SubjectsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromCtx(ctx)
	if userID == "" {
		writeUnauthorized(w)
		return
	}

	subjects, err := h.SubjectService.List(ctx, userID)
	if err != nil {
		log.Error("failed to list subjects", "err", err)
		writeServerError(w)
		return
	}

	resp := make([]api.SubjectResponse, 0, len(subjects))
	for _, s := range subjects {
		resp = append(resp, subjectResponse(s))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleCreate godoc
//
//	@Summary		Create Subject Endpoint
//	@Description	Create a subject. studyType defaults to MINUTES.
//	@Tags			Subjects
//	@Accept			json
//	@Produce		json
//	@Param			request	body		api.SubjectCreateRequest	true	"Subject"
//	@Success		201		{object}	api.SubjectResponse
//	@Failure		400		{object}	api.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	api.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	api.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/api/subjects [post].
func (h *SubjectsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromCtx(ctx)
	if userID == "" {
		writeUnauthorized(w)
		return
	}

	var req api.SubjectCreateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	subject, err := h.SubjectService.Create(ctx, userID, req.Name, req.ColorHex, req.StudyType, req.DailyTarget)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidSubjectName), errors.Is(err, service.ErrInvalidStudyType):
			httpx.WriteJSON(w, http.StatusBadRequest, api.ErrorResponse{
				Error:            "invalid_request",
				ErrorDescription: err.Error(),
			})
		default:
			log.Error("failed to create subject", "err", err)
			writeServerError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, subjectResponse(subject))
}

// HandleUpdate godoc
//
//	@Summary		Update Subject Endpoint
//	@Description	Partially update a subject. Absent fields are left unchanged.
//	@Tags			Subjects
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Subject ID"
//	@Param			request	body		api.SubjectUpdateRequest	true	"Patch"
//	@Success		200		{object}	api.SubjectResponse
//	@Failure		400		{object}	api.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	api.ErrorResponse	"error, error_description"
//	@Failure		404		{object}	api.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	api.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/api/subjects/{id} [patch].
func (h *SubjectsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromCtx(ctx)
	if userID == "" {
		writeUnauthorized(w)
		return
	}

	var req api.SubjectUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	patch := service.SubjectPatch{
		Name:        req.Name,
		ColorHex:    req.ColorHex,
		Archived:    req.Archived,
		StudyType:   req.StudyType,
		DailyTarget: req.DailyTarget,
	}

	subject, err := h.SubjectService.Update(ctx, userID, r.PathValue("id"), patch)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSubjectNotFound):
			writeSubjectNotFound(w)
		case errors.Is(err, service.ErrInvalidSubjectName), errors.Is(err, service.ErrInvalidStudyType):
			httpx.WriteJSON(w, http.StatusBadRequest, api.ErrorResponse{
				Error:            "invalid_request",
				ErrorDescription: err.Error(),
			})
		default:
			log.Error("failed to update subject", "err", err)
			writeServerError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, subjectResponse(subject))
}

// HandleDelete godoc
//
//	@Summary		Delete Subject Endpoint
//	@Description	Delete a subject along with its study sessions and word logs.
//	@Tags			Subjects
//	@Param			id	path	string	true	"Subject ID"
//	@Success		204
//	@Failure		401	{object}	api.ErrorResponse	"error, error_description"
//	@Failure		404	{object}	api.ErrorResponse	"error, error_description"
//	@Failure		500	{object}	api.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/api/subjects/{id} [delete].
func (h *SubjectsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromCtx(ctx)
	if userID == "" {
		writeUnauthorized(w)
		return
	}

	if err := h.SubjectService.Delete(ctx, userID, r.PathValue("id")); err != nil {
		if errors.Is(err, service.ErrSubjectNotFound) {
			writeSubjectNotFound(w)
			return
		}
		log.Error("failed to delete subject", "err", err)
		writeServerError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeSubjectNotFound(w http.ResponseWriter) {
	httpx.WriteJSON(w, http.StatusNotFound, api.ErrorResponse{
		Error:            "not_found",
		ErrorDescription: "Subject not found",
	})
}

func subjectResponse(s domain.Subject) api.SubjectResponse {
	return api.SubjectResponse{
		ID:          s.ID,
		Name:        s.Name,
		ColorHex:    s.ColorHex,
		Archived:    s.Archived,
		StudyType:   s.StudyType,
		DailyTarget: s.DailyTarget,
		CreatedAt:   s.CreatedAt.Format(time.RFC3339),
	}
}
