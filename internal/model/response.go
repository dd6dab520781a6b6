package model

// SuccessResponse is the envelope for single-result operations.
type SuccessResponse struct {
	Message     string `json:"message"`
	Description string `json:"description,omitempty"`
	Data        any    `json:"data,omitempty"`
}

// NewSuccessResponse builds a success envelope.
func NewSuccessResponse(message string, data any) SuccessResponse {
	return SuccessResponse{Message: message, Data: data}
}

// ErrorResponse is the envelope for failed operations.
type ErrorResponse struct {
	Message     string `json:"message"`
	Code        string `json:"code,omitempty"`
	Description string `json:"description,omitempty"`
	Details     any    `json:"details,omitempty"`
}

// NewErrorResponse builds an error envelope.
func NewErrorResponse(message, description string) ErrorResponse {
	return ErrorResponse{Message: message, Description: description}
}

// PaginatedResponse is the envelope for list operations.
type PaginatedResponse struct {
	Data       any   `json:"data"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
	TotalItems int64 `json:"totalItems"`
}

// NewPaginatedResponse builds a list envelope.
func NewPaginatedResponse(data any, page, pageSize, totalPages int, totalItems int64) PaginatedResponse {
	return PaginatedResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalItems: totalItems,
	}
}
