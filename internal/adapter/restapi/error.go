package restapi

import (
	"net/http"
	"strings"
)

// CodeNoRows is returned when a single-row select matches nothing.
const CodeNoRows = "PGRST116"

// Error is a non-2xx answer from the backend. Its message is passed
// through unchanged.
type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (e *Error) Error() string {
	return e.Message
}

func newError(status int, body []byte) *Error {
	e := &Error{Status: status}
	if err := json.Unmarshal(body, e); err != nil || e.Message == "" {
		e.Message = strings.TrimSpace(string(body))
	}
	if e.Message == "" {
		e.Message = http.StatusText(status)
	}
	return e
}
