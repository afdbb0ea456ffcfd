package http

import (
	"errors"
	"net/http"

	"github.com/JMURv/session-guard/internal/ctrl"
	"github.com/JMURv/session-guard/internal/hdl"
	"github.com/JMURv/session-guard/internal/hdl/http/utils"
	"go.uber.org/zap"
)

func statusOf(err error) int {
	switch {
	case errors.Is(err, ctrl.ErrInvalidCredentials),
		errors.Is(err, ctrl.ErrRefreshInvalid),
		errors.Is(err, ctrl.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ctrl.ErrAccountLocked), errors.Is(err, ctrl.ErrDeviceLocked):
		return http.StatusLocked
	case errors.Is(err, ctrl.ErrDeviceLimitExceeded):
		return http.StatusForbidden
	case errors.Is(err, ctrl.ErrInvalidAction):
		return http.StatusBadRequest
	case errors.Is(err, ctrl.ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, ctrl.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ctrl.ErrCurrentSession):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// errResponse writes the response for an error returned by the controller.
func errResponse(w http.ResponseWriter, op string, err error) {
	var limitErr *ctrl.DeviceLimitError
	if errors.As(err, &limitErr) {
		utils.LimitResponse(w, ctrl.ErrDeviceLimitExceeded, limitErr.Active, limitErr.Limit)
		return
	}

	code := statusOf(err)
	if code == http.StatusInternalServerError {
		zap.L().Error("unexpected error", zap.String("op", op), zap.Error(err))
		utils.ErrResponse(w, code, hdl.ErrInternal)
		return
	}
	utils.ErrResponse(w, code, err)
}
