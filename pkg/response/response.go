package response

import "accounting/pkg/pagination"

// Response represents a standard API response format
type Response struct {
	Status     string      `json:"status"`      // "success" or "error"
	StatusCode int         `json:"status_code"` // HTTP status code
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// Success returns a standard success response wrapping the data
func Success(statusCode int, data interface{}) Response {
	return Response{
		Status:     "success",
		StatusCode: statusCode,
		Data:       data,
	}
}

// Error returns a standard error response wrapping the error message
func Error(statusCode int, err string) Response {
	return Response{
		Status:     "error",
		StatusCode: statusCode,
		Error:      err,
	}
}

// PaginatedData wraps a page of items with its position in the full result
type PaginatedData struct {
	Items      interface{}     `json:"items"`
	Pagination pagination.Meta `json:"pagination"`
}

// SuccessWithPagination returns a success response carrying one page of a list
func SuccessWithPagination(statusCode int, items interface{}, p pagination.Params, total int64) Response {
	return Success(statusCode, PaginatedData{
		Items:      items,
		Pagination: p.Meta(total),
	})
}
