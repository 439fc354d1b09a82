package httpx

import (
	"errors"
)

// HTTPStatusCoder is implemented by errors that carry an upstream HTTP
// status code (for example the AI gateway client's error type).
type HTTPStatusCoder interface {
	HTTPStatusCode() int
}

// StatusFromError returns the upstream HTTP status carried by err, or 0
// when err carries none.
func StatusFromError(err error) int {
	if err == nil {
		return 0
	}
	var sc HTTPStatusCoder
	if errors.As(err, &sc) {
		return sc.HTTPStatusCode()
	}
	return 0
}
