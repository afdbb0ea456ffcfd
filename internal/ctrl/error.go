package ctrl

import (
	"errors"
	"fmt"
)

// ErrInvalidCredentials covers both an unknown email and a wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

var ErrAccountLocked = errors.New("account is temporarily locked")

var ErrDeviceLocked = errors.New("device is temporarily locked")

var ErrDeviceLimitExceeded = errors.New("device limit exceeded")

// ErrRefreshInvalid is returned for an expired, malformed, forged or
// superseded refresh token.
var ErrRefreshInvalid = errors.New("refresh token is invalid")

var ErrInvalidAction = errors.New("invalid device action")

// ErrServiceUnavailable hides unexpected store failures from callers.
var ErrServiceUnavailable = errors.New("service unavailable")

var ErrUnauthorized = errors.New("unauthorized")

// ErrNotFound is returned when a resource is not found.
var ErrNotFound = errors.New("not found")

var ErrCurrentSession = errors.New("cannot delete the current session, log out instead")

// DeviceLimitError carries the numbers behind ErrDeviceLimitExceeded.
type DeviceLimitError struct {
	Active int
	Limit  int
}

func (e *DeviceLimitError) Error() string {
	return fmt.Sprintf("%s: %d of %d devices active", ErrDeviceLimitExceeded, e.Active, e.Limit)
}

func (e *DeviceLimitError) Unwrap() error {
	return ErrDeviceLimitExceeded
}
