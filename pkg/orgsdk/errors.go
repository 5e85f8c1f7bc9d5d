package orgsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error codes returned in ErrorResponse.Error.
const (
	ErrorCodeNotFound       = "not_found"
	ErrorCodeConflict       = "conflict"
	ErrorCodeInvalidRequest = "invalid_request"
	ErrorCodeServerError    = "server_error"
	ErrorCodeUnauthorized   = "unauthorized"
	ErrorCodeForbidden      = "insufficient_scope"
)

// APIError is a non-2xx response from the service.
type APIError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *APIError) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("orgs: %d %s", e.StatusCode, e.Code)
	}
	return fmt.Sprintf("orgs: %s: %s", e.Code, e.Description)
}

func IsNotFound(err error) bool { return hasCode(err, ErrorCodeNotFound) }
func IsConflict(err error) bool { return hasCode(err, ErrorCodeConflict) }

func hasCode(err error, code string) bool {
	var e *APIError
	return errors.As(err, &e) && e.Code == code
}

// parseErrorResponse turns a failed response into an *APIError. Bodies that
// are not ErrorResponse JSON (401/403 from the middleware) get a code derived
// from the status.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	code := ErrorCodeServerError
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		code = ErrorCodeUnauthorized
	case http.StatusForbidden:
		code = ErrorCodeForbidden
	case http.StatusNotFound:
		code = ErrorCodeNotFound
	case http.StatusTooManyRequests:
		code = "rate_limited"
	}
	return &APIError{StatusCode: resp.StatusCode, Code: code}
}
