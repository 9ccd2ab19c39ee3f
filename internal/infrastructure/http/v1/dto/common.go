// Package dto provides Data Transfer Objects for API requests/responses.
package dto

// ListResponse wraps one page of results.
type ListResponse[T any] struct {
	Items  []T    `json:"items"`
	Scope  string `json:"scope"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}

// ErrorResponse is the body written by the error middleware.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// HealthResponse is returned by the health probes.
type HealthResponse struct {
	Status   string            `json:"status"`
	Checks   map[string]string `json:"checks,omitempty"`
	Database any               `json:"database,omitempty"`
}
