package response

import "github.com/projectblurimedia/Veggie-Tracker/pkg/pagination"

// Response represents a standard API response format
type Response struct {
	Status     string      `json:"status"`      // "success" or "error"
	StatusCode int         `json:"status_code"` // HTTP status code
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Stats      interface{} `json:"stats,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// Pagination describes the page of a list response
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// Success returns a standard success response wrapping the data
func Success(statusCode int, data interface{}) Response {
	return Response{
		Status:     "success",
		StatusCode: statusCode,
		Data:       data,
	}
}

// SuccessWithMessage is Success plus a human-readable message
func SuccessWithMessage(statusCode int, message string, data interface{}) Response {
	res := Success(statusCode, data)
	res.Message = message
	return res
}

// SuccessWithStats returns a list together with aggregate figures over it
func SuccessWithStats(statusCode int, data, stats interface{}) Response {
	res := Success(statusCode, data)
	res.Stats = stats
	return res
}

// SuccessWithPagination returns one page of a list
func SuccessWithPagination(statusCode int, data interface{}, p pagination.Params, total int64) Response {
	res := Success(statusCode, data)
	res.Pagination = &Pagination{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: p.TotalPages(total),
	}
	return res
}

// Error returns a standard error response wrapping the error message
func Error(statusCode int, err string) Response {
	return Response{
		Status:     "error",
		StatusCode: statusCode,
		Error:      err,
	}
}
