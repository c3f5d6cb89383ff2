package calcapi

import (
	"errors"
	"fmt"
)

var (
	ErrNoEndpoint        = errors.New("calcapi: calculation endpoint is not configured")
	ErrTransport         = errors.New("calcapi: transport failure")
	ErrMalformedResponse = errors.New("calcapi: malformed response")
)

// StatusError ответ с кодом вне 2xx без разбираемого тела.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("calcapi: unexpected HTTP status %d", e.StatusCode)
}

// Unwrap позволяет проверять ошибку через errors.Is(err, ErrTransport).
func (e *StatusError) Unwrap() error {
	return ErrTransport
}
