package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APIResponse struct {
	Success    bool        `json:"success"`
	Status     string      `json:"status"`
	Code       int         `json:"code"`
	Message    string      `json:"message,omitempty"`
	TraceID    string      `json:"trace_id,omitempty"`
	Count      *int        `json:"count,omitempty"`
	Total      *int64      `json:"total,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Data       interface{} `json:"data,omitempty"`
}

type PageRef struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type Pagination struct {
	Next *PageRef `json:"next,omitempty"`
	Prev *PageRef `json:"prev,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	respond(c, http.StatusOK, data, message)
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	respond(c, http.StatusCreated, data, message)
}

// RespondList writes a list payload with its item count and, when given,
// the paging links.
func RespondList(c *gin.Context, data interface{}, count int, total *int64, pagination *Pagination, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Success:    true,
		Status:     "success",
		Code:       http.StatusOK,
		Message:    message,
		TraceID:    c.GetString("trace_id"),
		Count:      &count,
		Total:      total,
		Pagination: pagination,
		Data:       data,
	})
}

func respond(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, APIResponse{
		Success: true,
		Status:  "success",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Success: false,
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrQuizAnswersRequired):
		RespondError(c, http.StatusBadRequest, "Please provide valid quiz answers")
	case errors.Is(err, ErrMessageRequired):
		RespondError(c, http.StatusBadRequest, "Message is required")
	case errors.Is(err, ErrInvalidUpload):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidPage):
		RespondError(c, http.StatusBadRequest, "Page must be greater than 0")
	case errors.Is(err, ErrInvalidPageSize):
		RespondError(c, http.StatusBadRequest, "Page size must be between 1 and 100")
	case errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, ErrUnauthorized):
		RespondError(c, http.StatusUnauthorized, "Not authorized")
	case errors.Is(err, ErrForbidden):
		RespondError(c, http.StatusForbidden, "You are not allowed to modify this resource")
	case errors.Is(err, ErrAccountNotFound):
		RespondError(c, http.StatusNotFound, "Account not found")
	case errors.Is(err, ErrQuizResultNotFound):
		RespondError(c, http.StatusNotFound, "Quiz result not found")
	case errors.Is(err, ErrCollegeNotFound):
		RespondError(c, http.StatusNotFound, "College not found")
	case errors.Is(err, ErrCourseNotFound):
		RespondError(c, http.StatusNotFound, "Course not found")
	case errors.Is(err, ErrEmailAlreadyExists):
		RespondError(c, http.StatusConflict, "Email already registered")
	case errors.Is(err, ErrSemanticSearchDisabled):
		RespondError(c, http.StatusServiceUnavailable, "Semantic search is not available")
	case errors.Is(err, ErrDatabaseError):
		zap.L().Error("database error", zap.Error(err), zap.String("trace_id", c.GetString("trace_id")))
		RespondError(c, http.StatusInternalServerError, "Something went wrong, please try again")
	default:
		zap.L().Error("unhandled service error", zap.Error(err), zap.String("trace_id", c.GetString("trace_id")))
		RespondError(c, http.StatusInternalServerError, "Something went wrong, please try again")
	}
}
