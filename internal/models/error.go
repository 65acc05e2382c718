package models

type APIError struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id"`
}

// ErrorResponse keeps the top-level detail string the web client reads
// alongside the structured error.
type ErrorResponse struct {
	Detail string   `json:"detail"`
	Error  APIError `json:"error"`
}
