package http

import (
	"errors"
	"net/http"

	"github.com/quietstudy/studytrack/internal/service"
	"github.com/quietstudy/studytrack/pkg/api"
	"github.com/quietstudy/studytrack/pkg/httpx"
	"github.com/quietstudy/studytrack/pkg/slogx"
)

type GoalsHandler struct {
	GoalService *service.GoalService
}

// HandleGet godoc
//
//	@Summary		Get Goals Endpoint
//	@Description	Return the caller's daily targets, creating them with defaults on first access.
//	@Tags			Goals
//	@Produce		json
//	@Success		200	{object}	api.GoalResponse
//	@Failure		401	{object}	api.ErrorResponse	"error, error_description"
//	@Failure		500	{object}	api.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/api/goals [get].
func (h *GoalsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromCtx(ctx)
	if userID == "" {
		writeUnauthorized(w)
		return
	}

	goal, err := h.GoalService.Get(ctx, userID)
	if err != nil {
		log.Error("failed to fetch goal", "err", err)
		writeServerError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, api.GoalResponse{
		DailyMinutesTarget: goal.DailyMinutesTarget,
		DailyWordsTarget:   goal.DailyWordsTarget,
	})
}

// HandleUpdate godoc
//
//	@Summary		Update Goals Endpoint
//	@Description	Replace both daily targets.
//	@Tags			Goals
//	@Accept			json
//	@Produce		json
//	@Param			request	body		api.GoalUpdateRequest	true	"Targets"
//	@Success		200		{object}	api.GoalResponse
//	@Failure		400		{object}	api.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	api.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	api.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/api/goals [put].
func (h *GoalsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromCtx(ctx)
	if userID == "" {
		writeUnauthorized(w)
		return
	}

	var req api.GoalUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	goal, err := h.GoalService.Update(ctx, userID, req.DailyMinutesTarget, req.DailyWordsTarget)
	if err != nil {
		if errors.Is(err, service.ErrInvalidGoalTarget) {
			httpx.WriteJSON(w, http.StatusBadRequest, api.ErrorResponse{
				Error:            "invalid_request",
				ErrorDescription: "Targets must be positive",
			})
			return
		}
		log.Error("failed to update goal", "err", err)
		writeServerError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, api.GoalResponse{
		DailyMinutesTarget: goal.DailyMinutesTarget,
		DailyWordsTarget:   goal.DailyWordsTarget,
	})
}
