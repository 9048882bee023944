// Package envelope defines the two response shapes used across the
// platform: the internal ServiceResponse exchanged between the gateway
// and the backend services, and the public APIResponse the gateway
// returns to callers. The gateway's translation layer converts one into
// the other; the shapes are deliberately different.
package envelope

import (
	"net/http"
	"time"
)

// ErrorBody carries a machine-readable code plus a human message.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Meta is attached to every internal response.
type Meta struct {
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
	RequestID string `json:"requestId,omitempty"`
}

// ServiceResponse is the internal envelope produced by the auth and
// user services for every command.
type ServiceResponse struct {
	Success    bool       `json:"success"`
	Data       any        `json:"data,omitempty"`
	Message    string     `json:"message,omitempty"`
	Error      *ErrorBody `json:"error,omitempty"`
	StatusCode int        `json:"statusCode"`
	Meta       Meta       `json:"meta"`
}

// Factory builds ServiceResponse envelopes stamped with the owning
// service's name.
type Factory struct {
	service string
}

func NewFactory(service string) *Factory {
	return &Factory{service: service}
}

func (f *Factory) meta(requestID string) Meta {
	return Meta{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Service:   f.service,
		RequestID: requestID,
	}
}

func (f *Factory) Success(data any, message string, requestID string) ServiceResponse {
	return ServiceResponse{
		Success:    true,
		Data:       data,
		Message:    message,
		StatusCode: http.StatusOK,
		Meta:       f.meta(requestID),
	}
}

func (f *Factory) Error(code, message string, statusCode int, details any, requestID string) ServiceResponse {
	return ServiceResponse{
		Success:    false,
		Error:      &ErrorBody{Code: code, Message: message, Details: details},
		StatusCode: statusCode,
		Meta:       f.meta(requestID),
	}
}

func (f *Factory) ServerError(message string, details any, requestID string) ServiceResponse {
	return f.Error("INTERNAL_ERROR", message, http.StatusInternalServerError, details, requestID)
}

// APIMeta is the public meta block; it surfaces which backend service
// answered and the correlation id, plus the error code on failures.
type APIMeta struct {
	RequestID string `json:"requestId,omitempty"`
	Service   string `json:"service,omitempty"`
	ErrorCode string `json:"errorCode,omitempty"`
}

// APIResponse is the public envelope returned by the gateway.
type APIResponse struct {
	Success    bool     `json:"success"`
	Data       any      `json:"data,omitempty"`
	Message    string   `json:"message,omitempty"`
	StatusCode int      `json:"statusCode"`
	Timestamp  string   `json:"timestamp"`
	Path       string   `json:"path,omitempty"`
	Meta       *APIMeta `json:"meta,omitempty"`
}

func APISuccess(data any, message string, statusCode int, meta *APIMeta) APIResponse {
	if message == "" {
		message = "Operation successful"
	}
	return APIResponse{
		Success:    true,
		Data:       data,
		Message:    message,
		StatusCode: statusCode,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Meta:       meta,
	}
}

func APIError(message string, statusCode int, path string) APIResponse {
	return APIResponse{
		Success:    false,
		Message:    message,
		StatusCode: statusCode,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Path:       path,
	}
}

// FromService re-shapes an internal envelope into the public one,
// substituting a default message when the origin omitted it.
func FromService(sr *ServiceResponse, successMessage, path string) APIResponse {
	if sr != nil && sr.Success {
		return APISuccess(sr.Data, successMessage, http.StatusOK, &APIMeta{
			RequestID: sr.Meta.RequestID,
			Service:   sr.Meta.Service,
		})
	}

	resp := APIResponse{
		Success:    false,
		Message:    "Service unavailable",
		StatusCode: http.StatusServiceUnavailable,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Path:       path,
	}
	if sr != nil {
		if sr.Error != nil && sr.Error.Message != "" {
			resp.Message = sr.Error.Message
		} else if sr.Message != "" {
			resp.Message = sr.Message
		}
		if sr.StatusCode != 0 {
			resp.StatusCode = sr.StatusCode
		}
		meta := &APIMeta{
			RequestID: sr.Meta.RequestID,
			Service:   sr.Meta.Service,
		}
		if sr.Error != nil {
			meta.ErrorCode = sr.Error.Code
		}
		resp.Meta = meta
	}
	return resp
}
