package utils

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/JMURv/session-guard/internal/config"
	"github.com/JMURv/session-guard/internal/dto"
	"github.com/JMURv/session-guard/internal/hdl"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var validate = validator.New()

type Response struct {
	Data any `json:"data"`
}

type ErrorsResponse struct {
	Errors []string `json:"errors"`
}

type DeviceLimitResponse struct {
	Errors []string `json:"errors"`
	Active int      `json:"active"`
	Limit  int      `json:"limit"`
}

func SuccessResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(&Response{Data: data}); err != nil {
		zap.L().Debug("failed to write response", zap.Error(err))
	}
}

func StatusResponse(w http.ResponseWriter, statusCode int) {
	w.WriteHeader(statusCode)
}

func ErrResponse(w http.ResponseWriter, statusCode int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err = json.NewEncoder(w).Encode(&ErrorsResponse{Errors: []string{err.Error()}}); err != nil {
		zap.L().Debug("failed to write response", zap.Error(err))
	}
}

func LimitResponse(w http.ResponseWriter, err error, active, limit int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	if err = json.NewEncoder(w).Encode(
		&DeviceLimitResponse{
			Errors: []string{err.Error()},
			Active: active,
			Limit:  limit,
		},
	); err != nil {
		zap.L().Debug("failed to write response", zap.Error(err))
	}
}

// ParseAndValidate decodes the JSON body into dst and runs its validate
// tags. It writes a 400 and returns false on failure.
func ParseAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		zap.L().Debug("failed to decode request", zap.Error(err))
		ErrResponse(w, http.StatusBadRequest, hdl.ErrDecodeRequest)
		return false
	}

	if err := validate.Struct(dst); err != nil {
		ErrResponse(w, http.StatusBadRequest, err)
		return false
	}
	return true
}

// ParseOptional decodes a body that may be absent.
func ParseOptional(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Body == nil || r.ContentLength == 0 {
		return true
	}

	err := json.NewDecoder(r.Body).Decode(dst)
	if err != nil && !errors.Is(err, io.EOF) {
		ErrResponse(w, http.StatusBadRequest, hdl.ErrDecodeRequest)
		return false
	}
	return true
}

func SetAuthCookies(w http.ResponseWriter, access, refresh string) {
	http.SetCookie(w, authCookie(config.AccessCookieName, access, int(config.AccessTokenDuration.Seconds())))
	http.SetCookie(w, authCookie(config.RefreshCookieName, refresh, int(config.RememberMeDuration.Seconds())))
}

func ClearAuthCookies(w http.ResponseWriter) {
	http.SetCookie(w, authCookie(config.AccessCookieName, "", -1))
	http.SetCookie(w, authCookie(config.RefreshCookieName, "", -1))
}

func authCookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
		Path:     "/",
		SameSite: http.SameSiteStrictMode,
	}
}

// AccessToken reads the bearer token, falling back to the access cookie.
func AccessToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if c, err := r.Cookie(config.AccessCookieName); err == nil {
		return c.Value
	}
	return ""
}

func RefreshToken(r *http.Request) string {
	if h := r.Header.Get(config.RefreshHeader); h != "" {
		return h
	}
	if c, err := r.Cookie(config.RefreshCookieName); err == nil {
		return c.Value
	}
	return ""
}

// ParseDeviceByRequest collects the device signals the Device middleware put
// on the context.
func ParseDeviceByRequest(ctx context.Context) (dto.DeviceMeta, bool) {
	ip, ok := ctx.Value(config.IpKey).(string)
	if !ok {
		return dto.DeviceMeta{}, false
	}

	ua, _ := ctx.Value(config.UaKey).(string)
	fp, _ := ctx.Value(config.FingerprintKey).(string)
	return dto.DeviceMeta{IP: ip, UA: ua, Fingerprint: fp}, true
}

// Principal returns the identity the Auth middleware attached.
func Principal(ctx context.Context) (*dto.Principal, bool) {
	p, ok := ctx.Value(config.ClaimsKey).(*dto.Principal)
	if !ok || p == nil || p.UID == uuid.Nil {
		return nil, false
	}
	return p, true
}
