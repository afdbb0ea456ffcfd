package http

import (
	"net/http"

	"github.com/JMURv/session-guard/internal/dto"
	"github.com/JMURv/session-guard/internal/hdl"
	mid "github.com/JMURv/session-guard/internal/hdl/http/middleware"
	"github.com/JMURv/session-guard/internal/hdl/http/utils"
	chi "github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (h *Handler) RegisterDeviceRoutes() {
	h.router.Route(
		"/devices", func(r chi.Router) {
			r.Use(mid.Auth(h.ctrl))
			r.Get("/", h.listDevices)
			r.Post("/activity", h.recordActivity)
			r.Post("/{id}/action", h.deviceAction)
			r.Delete("/{id}", h.deleteDevice)
		},
	)
}

// listDevices godoc
//
//	@Summary		List device sessions
//	@Description	All device sessions of the caller, the number of active ones and the device limit
//	@Tags			Devices
//	@Produce		json
//	@Param			Authorization	header		string	true	"Bearer access token"
//	@Success		200				{object}	dto.ListSessionsResponse
//	@Failure		401				{object}	utils.ErrorsResponse
//	@Failure		503				{object}	utils.ErrorsResponse
//	@Router			/devices [get]
func (h *Handler) listDevices(w http.ResponseWriter, r *http.Request) {
	const op = "devices.listDevices.hdl"

	p, ok := utils.Principal(r.Context())
	if !ok {
		utils.ErrResponse(w, http.StatusUnauthorized, hdl.ErrFailedToGetUUID)
		return
	}

	res, err := h.ctrl.ListSessions(r.Context(), p.UID, p.Fingerprint)
	if err != nil {
		errResponse(w, op, err)
		return
	}

	utils.SuccessResponse(w, http.StatusOK, res)
}

// deviceAction godoc
//
//	@Summary		Apply an action to a device
//	@Description	trust, untrust, lock, unlock or logout one of the caller's devices
//	@Tags			Devices
//	@Accept			json
//	@Produce		json
//	@Param			Authorization	header	string					true	"Bearer access token"
//	@Param			id				path	string					true	"Session UUID"
//	@Param			body			body	dto.DeviceActionRequest	true	"Action"
//	@Success		200				"Action applied"
//	@Failure		400				{object}	utils.ErrorsResponse
//	@Failure		401				{object}	utils.ErrorsResponse
//	@Failure		404				{object}	utils.ErrorsResponse
//	@Failure		503				{object}	utils.ErrorsResponse
//	@Router			/devices/{id}/action [post]
func (h *Handler) deviceAction(w http.ResponseWriter, r *http.Request) {
	const op = "devices.deviceAction.hdl"

	p, ok := utils.Principal(r.Context())
	if !ok {
		utils.ErrResponse(w, http.StatusUnauthorized, hdl.ErrFailedToGetUUID)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil || id == uuid.Nil {
		zap.L().Debug(hdl.ErrFailedToParseUUID.Error(), zap.String("path", r.URL.Path), zap.Error(err))
		utils.ErrResponse(w, http.StatusBadRequest, hdl.ErrFailedToParseUUID)
		return
	}

	req := &dto.DeviceActionRequest{}
	if ok = utils.ParseAndValidate(w, r, req); !ok {
		return
	}

	if err = h.ctrl.SetAction(r.Context(), p.UID, id, req.Action); err != nil {
		errResponse(w, op, err)
		return
	}

	utils.StatusResponse(w, http.StatusOK)
}

// deleteDevice godoc
//
//	@Summary		Delete a device session
//	@Description	Remove one of the caller's device sessions. The current one cannot be deleted.
//	@Tags			Devices
//	@Param			Authorization	header	string	true	"Bearer access token"
//	@Param			id				path	string	true	"Session UUID"
//	@Success		204				"Deleted"
//	@Failure		400				{object}	utils.ErrorsResponse
//	@Failure		404				{object}	utils.ErrorsResponse
//	@Failure		409				{object}	utils.ErrorsResponse	"current session"
//	@Failure		503				{object}	utils.ErrorsResponse
//	@Router			/devices/{id} [delete]
func (h *Handler) deleteDevice(w http.ResponseWriter, r *http.Request) {
	const op = "devices.deleteDevice.hdl"

	p, ok := utils.Principal(r.Context())
	if !ok {
		utils.ErrResponse(w, http.StatusUnauthorized, hdl.ErrFailedToGetUUID)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil || id == uuid.Nil {
		utils.ErrResponse(w, http.StatusBadRequest, hdl.ErrFailedToParseUUID)
		return
	}

	if err = h.ctrl.DeleteSession(r.Context(), p.UID, id, p.Fingerprint); err != nil {
		errResponse(w, op, err)
		return
	}

	utils.StatusResponse(w, http.StatusNoContent)
}

// recordActivity godoc
//
//	@Summary		Record device activity
//	@Description	Append an entry to the current device's action log
//	@Tags			Devices
//	@Accept			json
//	@Param			Authorization	header	string				true	"Bearer access token"
//	@Param			body			body	dto.ActivityRequest	true	"Activity"
//	@Success		200				"Recorded"
//	@Failure		400				{object}	utils.ErrorsResponse
//	@Failure		401				{object}	utils.ErrorsResponse
//	@Failure		423				{object}	utils.ErrorsResponse	"device locked"
//	@Failure		503				{object}	utils.ErrorsResponse
//	@Router			/devices/activity [post]
func (h *Handler) recordActivity(w http.ResponseWriter, r *http.Request) {
	const op = "devices.recordActivity.hdl"

	p, ok := utils.Principal(r.Context())
	if !ok {
		utils.ErrResponse(w, http.StatusUnauthorized, hdl.ErrFailedToGetUUID)
		return
	}

	req := &dto.ActivityRequest{}
	if ok = utils.ParseAndValidate(w, r, req); !ok {
		return
	}

	if err := h.ctrl.RecordActivity(r.Context(), p.UID, p.Fingerprint, req); err != nil {
		errResponse(w, op, err)
		return
	}

	utils.StatusResponse(w, http.StatusOK)
}
