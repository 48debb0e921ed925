package errors

import "net/http"

// ErrorInfo is the error half of an API envelope.
type ErrorInfo struct {
	Code    string `json:"code"`              // Business error code, e.g. "FARMER_NOT_FOUND"
	Message string `json:"message"`           // User-friendly error message
	Details any    `json:"details,omitempty"` // Left out for 5xx, 401 and 403
}

// MetaInfo represents response metadata
type MetaInfo struct {
	RequestID string `json:"request_id"`
}

// SuccessResponse is the {data, meta} envelope.
type SuccessResponse struct {
	Data any       `json:"data"`
	Meta *MetaInfo `json:"meta"`
}

// ErrorResponse is the {error, meta} envelope.
type ErrorResponse struct {
	Error *ErrorInfo `json:"error"`
	Meta  *MetaInfo  `json:"meta"`
}

// NewSuccessResponse wraps data for the given request.
func NewSuccessResponse(data any, requestID string) SuccessResponse {
	return SuccessResponse{Data: data, Meta: &MetaInfo{RequestID: requestID}}
}

// NewErrorResponse builds an error envelope. Details never leave the service for server
// failures or for authentication and authorization rejections.
func NewErrorResponse(status int, code, message string, details any, requestID string) ErrorResponse {
	if status >= http.StatusInternalServerError || status == http.StatusUnauthorized || status == http.StatusForbidden {
		details = nil
	}

	return ErrorResponse{
		Error: &ErrorInfo{Code: code, Message: message, Details: details},
		Meta:  &MetaInfo{RequestID: requestID},
	}
}

// NewAppErrorResponse renders err with its own status, code, message and details.
func NewAppErrorResponse(err AppError, requestID string) ErrorResponse {
	var details any
	if d := err.Details(); d != "" {
		details = d
	}

	return NewErrorResponse(err.HTTPCode(), err.ErrorCode(), err.Message(), details, requestID)
}
