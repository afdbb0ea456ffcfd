package http

import (
	"net/http"

	"github.com/JMURv/session-guard/internal/auth/captcha"
	"github.com/JMURv/session-guard/internal/dto"
	"github.com/JMURv/session-guard/internal/hdl"
	mid "github.com/JMURv/session-guard/internal/hdl/http/middleware"
	"github.com/JMURv/session-guard/internal/hdl/http/utils"
	"go.uber.org/zap"
)

func (h *Handler) RegisterAuthRoutes() {
	h.router.With(mid.Device, mid.RateLimit(h.limiter, h.conf.LoginRateLimit, "login")).Post("/auth/login", h.login)
	h.router.With(mid.Device).Post("/auth/refresh", h.refresh)
	h.router.With(mid.Device).Post("/auth/logout", h.logout)
	h.router.With(mid.Auth(h.ctrl)).Get("/auth/me", h.me)
}

// login godoc
//
//	@Summary		Authenticate using email & password
//	@Description	Verify reCAPTCHA, check credentials and the device limit, then issue a token pair for the device
//	@Tags			Authentication
//	@Accept			json
//	@Produce		json
//	@Param			X-Device-Fingerprint	header		string				false	"Client device fingerprint"
//	@Param			body					body		dto.LoginRequest	true	"Login credentials"
//	@Success		200						{object}	dto.LoginResponse
//	@Failure		400						{object}	utils.ErrorsResponse
//	@Failure		401						{object}	utils.ErrorsResponse	"invalid credentials"
//	@Failure		403						{object}	utils.DeviceLimitResponse	"device limit reached"
//	@Failure		423						{object}	utils.ErrorsResponse	"account locked"
//	@Failure		429						{object}	utils.ErrorsResponse
//	@Failure		503						{object}	utils.ErrorsResponse
//	@Router			/auth/login [post]
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	const op = "auth.login.hdl"

	req := &dto.LoginRequest{}
	if ok := utils.ParseAndValidate(w, r, req); !ok {
		return
	}

	valid, err := h.au.VerifyRecaptcha(r.Context(), req.Token, captcha.PassAuth)
	if err != nil {
		zap.L().Error("failed to verify captcha", zap.String("op", op), zap.Error(err))
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}
	if !valid {
		utils.ErrResponse(w, http.StatusUnauthorized, captcha.ErrValidationFailed)
		return
	}

	if d, ok := utils.ParseDeviceByRequest(r.Context()); ok {
		req.Device.IP = d.IP
		req.Device.UA = d.UA
		if req.Device.Fingerprint == "" {
			req.Device.Fingerprint = d.Fingerprint
		}
	}

	res, err := h.ctrl.Login(r.Context(), req)
	if err != nil {
		errResponse(w, op, err)
		return
	}

	utils.SetAuthCookies(w, res.Access, res.Refresh)
	utils.SuccessResponse(w, http.StatusOK, res)
}

// refresh godoc
//
//	@Summary		Refresh JWT tokens
//	@Description	Exchange the live refresh token of a device for a new pair. Falls back to the refresh cookie.
//	@Tags			Authentication
//	@Accept			json
//	@Produce		json
//	@Param			body	body		dto.RefreshRequest	false	"Refresh token"
//	@Success		200		{object}	dto.RefreshResponse
//	@Failure		400		{object}	utils.ErrorsResponse
//	@Failure		401		{object}	utils.ErrorsResponse
//	@Failure		423		{object}	utils.ErrorsResponse	"device locked"
//	@Failure		503		{object}	utils.ErrorsResponse
//	@Router			/auth/refresh [post]
func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	const op = "auth.refresh.hdl"

	req := &dto.RefreshRequest{}
	if ok := utils.ParseOptional(w, r, req); !ok {
		return
	}
	if req.Refresh == "" {
		req.Refresh = utils.RefreshToken(r)
	}
	if req.Refresh == "" {
		utils.ErrResponse(w, http.StatusBadRequest, hdl.ErrDecodeRequest)
		return
	}
	if req.Fingerprint == "" {
		if d, ok := utils.ParseDeviceByRequest(r.Context()); ok {
			req.Fingerprint = d.Fingerprint
		}
	}

	res, err := h.ctrl.Refresh(r.Context(), req)
	if err != nil {
		errResponse(w, op, err)
		return
	}

	utils.SetAuthCookies(w, res.Access, res.Refresh)
	utils.SuccessResponse(w, http.StatusOK, res)
}

// logout godoc
//
//	@Summary		Logout
//	@Description	Deactivate the current device session, or all sessions of the account. An expired access token is accepted.
//	@Tags			Authentication
//	@Accept			json
//	@Produce		json
//	@Param			Authorization	header	string				false	"Bearer access token"
//	@Param			body			body	dto.LogoutRequest	false	"Logout options"
//	@Success		200				"Session deactivated, cookies cleared"
//	@Failure		400				{object}	utils.ErrorsResponse
//	@Failure		503				{object}	utils.ErrorsResponse
//	@Router			/auth/logout [post]
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	const op = "auth.logout.hdl"

	req := &dto.LogoutRequest{}
	if ok := utils.ParseOptional(w, r, req); !ok {
		return
	}
	req.Access = utils.AccessToken(r)
	req.Refresh = utils.RefreshToken(r)

	if err := h.ctrl.Logout(r.Context(), req); err != nil {
		errResponse(w, op, err)
		return
	}

	utils.ClearAuthCookies(w)
	utils.StatusResponse(w, http.StatusOK)
}

// me godoc
//
//	@Summary		Current principal
//	@Description	Identity of the caller. Expired access tokens are rotated transparently.
//	@Tags			Authentication
//	@Produce		json
//	@Param			Authorization	header		string	true	"Bearer access token"
//	@Param			X-Refresh-Token	header		string	false	"Refresh token"
//	@Success		200				{object}	dto.Principal
//	@Failure		401				{object}	utils.ErrorsResponse
//	@Router			/auth/me [get]
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	p, ok := utils.Principal(r.Context())
	if !ok {
		zap.L().Error(hdl.ErrFailedToGetUUID.Error())
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	utils.SuccessResponse(w, http.StatusOK, p)
}
