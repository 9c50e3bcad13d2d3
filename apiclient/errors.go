package apiclient

import (
	"encoding/json"
	"fmt"

	"github.com/jrsteele09/go-admin-client/adminmodel"
	"github.com/jrsteele09/go-admin-client/internal/utils"
)

// StatusError is a response outside the 2xx range. It satisfies the
// StatusCode() int contract the refresh coordinator dispatches on.
type StatusError struct {
	Status    int
	Method    string
	Path      string
	RequestID string
	Body      []byte
}

func newStatusError(req *Request, resp *Response) *StatusError {
	return &StatusError{
		Status:    resp.StatusCode,
		Method:    req.Method,
		Path:      req.Path,
		RequestID: req.ID,
		Body:      resp.Body,
	}
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed with status code %d", e.Status)
}

func (e *StatusError) StatusCode() int {
	return e.Status
}

// Messages returns the human readable messages in the error body, if any
func (e *StatusError) Messages() []string {
	var body adminmodel.ErrorBody
	if err := json.Unmarshal(e.Body, &body); err != nil {
		return nil
	}
	messages := utils.ToStringSlice(body.Errors)
	if len(messages) == 0 && body.Message != "" {
		messages = append(messages, body.Message)
	}
	return messages
}

// FirstMessage is what gets shown to the operator for validation failures
func (e *StatusError) FirstMessage() string {
	var body adminmodel.ErrorBody
	if err := json.Unmarshal(e.Body, &body); err != nil {
		return e.Error()
	}
	fallback := body.Message
	if fallback == "" {
		fallback = e.Error()
	}
	return utils.FirstString(body.Errors, fallback)
}
