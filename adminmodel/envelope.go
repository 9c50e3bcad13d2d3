package adminmodel

// Envelope is the response wrapper every platform backend uses.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data"`
}

// ErrorBody is returned with 4xx responses. Validation failures (400) carry
// human readable messages in Errors; other failures use Message.
type ErrorBody struct {
	Message string `json:"message,omitempty"`
	Errors  []any  `json:"errors,omitempty"`
}
