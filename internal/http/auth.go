package http

import (
	"errors"
	"net/http"

	"github.com/quietstudy/studytrack/internal/domain"
	"github.com/quietstudy/studytrack/internal/service"
	"github.com/quietstudy/studytrack/pkg/api"
	"github.com/quietstudy/studytrack/pkg/httpx"
	"github.com/quietstudy/studytrack/pkg/slogx"
)

type AuthHandler struct {
	AuthService *service.AuthService
}

// HandleRegister godoc
//
//	@Summary		Register Endpoint
//	@Description	Create an account with a valid invite code and receive a token pair.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		api.RegisterRequest	true	"Registration request"
//	@Success		201		{object}	api.TokenResponse	"accessToken, refreshToken, tokenType, user"
//	@Failure		400		{object}	api.ErrorResponse	"error, error_description"
//	@Failure		409		{object}	api.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	api.ErrorResponse	"error, error_description"
//	@Router			/api/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req api.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, pair, err := h.AuthService.Register(ctx, req.Email, req.Password, req.Nickname, req.InviteCode)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			httpx.WriteJSON(w, http.StatusConflict, api.ErrorResponse{
				Error:            "email_taken",
				ErrorDescription: "Email already registered",
			})
		case errors.Is(err, service.ErrInviteInvalid):
			httpx.WriteJSON(w, http.StatusBadRequest, api.ErrorResponse{
				Error:            "invalid_invite",
				ErrorDescription: "Invite code is invalid",
			})
		case errors.Is(err, service.ErrInviteUsed):
			httpx.WriteJSON(w, http.StatusBadRequest, api.ErrorResponse{
				Error:            "invalid_invite",
				ErrorDescription: "Invite code has already been used",
			})
		case errors.Is(err, service.ErrInviteExpired):
			httpx.WriteJSON(w, http.StatusBadRequest, api.ErrorResponse{
				Error:            "invalid_invite",
				ErrorDescription: "Invite code has expired",
			})
		default:
			log.Error("registration failed", "err", err)
			writeServerError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, tokenResponse(pair, &user))
}

// HandleLogin godoc
//
//	@Summary		Login Endpoint
//	@Description	Authenticate with email and password and receive a token pair.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		api.LoginRequest	true	"Login request"
//	@Success		200		{object}	api.TokenResponse	"accessToken, refreshToken, tokenType, user"
//	@Failure		400		{object}	api.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	api.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	api.ErrorResponse	"error, error_description"
//	@Router			/api/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req api.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, pair, err := h.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			httpx.WriteJSON(w, http.StatusUnauthorized, api.ErrorResponse{
				Error:            "invalid_credentials",
				ErrorDescription: "Invalid email or password",
			})
			return
		}
		log.Error("login failed", "err", err)
		writeServerError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tokenResponse(pair, &user))
}

// HandleRefresh godoc
//
//	@Summary		Token Refresh Endpoint
//	@Description	Exchange a valid refresh token for a new token pair. Access tokens are rejected.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		api.RefreshRequest	true	"Refresh request"
//	@Success		200		{object}	api.TokenResponse	"accessToken, refreshToken, tokenType"
//	@Failure		400		{object}	api.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	api.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	api.ErrorResponse	"error, error_description"
//	@Router			/api/auth/refresh [post].
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req api.RefreshRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	pair, err := h.AuthService.Refresh(ctx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefreshToken) {
			httpx.WriteJSON(w, http.StatusUnauthorized, api.ErrorResponse{
				Error:            "invalid_grant",
				ErrorDescription: "Refresh token is invalid or expired",
			})
			return
		}
		log.Error("refresh failed", "err", err)
		writeServerError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tokenResponse(pair, nil))
}

func tokenResponse(pair domain.TokenPair, user *domain.User) api.TokenResponse {
	resp := api.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "Bearer",
	}
	if user != nil {
		resp.User = &api.UserResponse{
			ID:       user.ID,
			Email:    user.Email,
			Nickname: user.Nickname,
		}
	}
	return resp
}
