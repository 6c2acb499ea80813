package http

import (
	"errors"
	"net/http"

	"github.com/quietstudy/studytrack/internal/service"
	"github.com/quietstudy/studytrack/pkg/api"
	"github.com/quietstudy/studytrack/pkg/httpx"
	"github.com/quietstudy/studytrack/pkg/slogx"
)

type AnalyticsHandler struct {
	AnalyticsService *service.AnalyticsService
}

// HandleDaily godoc
//
//	@Summary		Daily Analytics Endpoint
//	@Description	Per-day study minutes and word counts for the trailing window ending today.
//	@Description	Days without activity appear with zero totals.
//	@Tags			Analytics
//	@Produce		json
//	@Param			range	query		string	false	"Window: 7d or 30d (default 30d)"
//	@Success		200		{object}	api.DailyAnalyticsResponse
//	@Failure		400		{object}	api.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	api.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	api.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/api/analytics/daily [get].
func (h *AnalyticsHandler) HandleDaily(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromCtx(ctx)
	if userID == "" {
		writeUnauthorized(w)
		return
	}

	rangeParam := r.URL.Query().Get("range")
	var rangeDays int
	switch rangeParam {
	case "7d":
		rangeDays = service.RangeWeek
	case "", "30d":
		rangeParam = "30d"
		rangeDays = service.RangeMonth
	default:
		httpx.WriteJSON(w, http.StatusBadRequest, api.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "range must be 7d or 30d",
		})
		return
	}

	buckets, err := h.AnalyticsService.Daily(ctx, userID, rangeDays)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRange) {
			httpx.WriteJSON(w, http.StatusBadRequest, api.ErrorResponse{
				Error:            "invalid_request",
				ErrorDescription: "range must be 7d or 30d",
			})
			return
		}
		log.Error("failed to aggregate daily analytics", "err", err)
		writeServerError(w)
		return
	}

	resp := api.DailyAnalyticsResponse{
		Range: rangeParam,
		Days:  make([]api.DailyBucketResponse, 0, len(buckets)),
	}
	for _, b := range buckets {
		resp.Days = append(resp.Days, api.DailyBucketResponse{
			Date:    b.Date,
			Minutes: b.Minutes,
			Words:   b.Words,
		})
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}
