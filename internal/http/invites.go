package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/quietstudy/studytrack/internal/service"
	"github.com/quietstudy/studytrack/pkg/api"
	"github.com/quietstudy/studytrack/pkg/httpx"
	"github.com/quietstudy/studytrack/pkg/slogx"
)

type InviteHandler struct {
	InviteService *service.InviteService
}

// HandleMint godoc
//
//	@Summary		Invite Code Mint Endpoint
//	@Description	Create a single-use invite code for registering a new account.
//	@Description	expiresInDays is optional and defaults to 30.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		api.InviteMintRequest	true	"Invite request"
//	@Success		201		{object}	api.InviteCodeResponse	"code, expiresAt"
//	@Failure		400		{object}	api.ErrorResponse		"error, error_description"
//	@Failure		401		{object}	api.ErrorResponse		"error, error_description"
//	@Failure		500		{object}	api.ErrorResponse		"error, error_description"
//	@Security		BearerAuth
//	@Router			/api/auth/invite-codes [post].
func (h *InviteHandler) HandleMint(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromCtx(ctx)
	if userID == "" {
		writeUnauthorized(w)
		return
	}

	var req api.InviteMintRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	// Empty means the default window; anything else must be a positive
	// number of days.
	ttlDays := 0
	if req.ExpiresInDays != "" {
		n, err := strconv.Atoi(req.ExpiresInDays)
		if err != nil || n <= 0 {
			httpx.WriteJSON(w, http.StatusBadRequest, api.ErrorResponse{
				Error:            "invalid_request",
				ErrorDescription: "Invalid expiresInDays",
			})
			return
		}
		ttlDays = n
	}

	inv, err := h.InviteService.Mint(ctx, userID, ttlDays)
	if err != nil {
		log.Error("failed to mint invite code", "err", err)
		writeServerError(w)
		return
	}

	resp := api.InviteCodeResponse{Code: inv.Code}
	if inv.ExpiresAt != nil {
		resp.ExpiresAt = inv.ExpiresAt.Format(time.RFC3339)
	}
	httpx.WriteJSON(w, http.StatusCreated, resp)
}
