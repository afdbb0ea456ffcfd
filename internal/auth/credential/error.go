package credential

import "errors"

var (
	ErrMismatch         = errors.New("credential mismatch")
	ErrUnknownAlgorithm = errors.New("unknown hash algorithm")
	ErrMalformedHash    = errors.New("malformed hash")
	ErrEmptySecret      = errors.New("empty secret")
)
