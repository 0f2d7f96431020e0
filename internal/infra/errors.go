package infra

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// RemoteError is returned when a remote service answers with a non-success status.
type RemoteError struct {
	Service    string
	URL        string // with credentials redacted
	StatusCode int
	Body       string // first bytes of the response body, if any
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d from %s", e.Service, e.StatusCode, e.URL)
}

// DecodeError is returned when a response body does not match the expected shape.
type DecodeError struct {
	Service string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: decode response: %v", e.Service, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// NewDecodeError builds a DecodeError from a formatted message.
func NewDecodeError(service, format string, args ...any) *DecodeError {
	return &DecodeError{Service: service, Err: fmt.Errorf(format, args...)}
}

// StatusCode extracts the HTTP status from err, or 0 when err is not a *RemoteError.
func StatusCode(err error) int {
	var re *RemoteError
	if errors.As(err, &re) {
		return re.StatusCode
	}
	return 0
}

// sensitiveParams are query parameters never written to logs or errors.
var sensitiveParams = []string{"apikey", "api_key", "token"}

// RedactURL masks credential query parameters in raw.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	changed := false
	for _, p := range sensitiveParams {
		if q.Has(p) {
			q.Set(p, "REDACTED")
			changed = true
		}
	}
	if !changed {
		return raw
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// RedactError rewrites *url.Error messages so they do not leak credentials.
func RedactError(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) && strings.Contains(ue.URL, "?") {
		return &url.Error{Op: ue.Op, URL: RedactURL(ue.URL), Err: ue.Err}
	}
	return err
}
