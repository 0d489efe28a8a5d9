package models

type APIError struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

type ErrorResponse struct {
	Error APIError `json:"error"`
}

type RespondRequest struct {
	IsCorrect           bool     `json:"is_correct"`
	ResponseTimeSeconds *float64 `json:"response_time_seconds,omitempty"`
}
