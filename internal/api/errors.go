package api

import (
	"errors"
	"net/http"
	"payroll/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// 错误码定义
const (
	// 通用错误码
	ErrCodeInvalidRequest = "ERR_INVALID_REQUEST"
	ErrCodeUnauthorized   = "ERR_UNAUTHORIZED"
	ErrCodeForbidden      = "ERR_FORBIDDEN"
	ErrCodeInternalError  = "ERR_INTERNAL_ERROR"
	ErrCodeRateLimited    = "ERR_RATE_LIMITED"

	// 认证错误码
	ErrCodeInvalidCredentials = "ERR_INVALID_CREDENTIALS"
	ErrCodeNotApproved        = "ERR_NOT_APPROVED"
	ErrCodeLoginExists        = "ERR_LOGIN_EXISTS"
	ErrCodeSessionExpired     = "ERR_SESSION_EXPIRED"

	// 资源错误码
	ErrCodeUserNotFound = "ERR_USER_NOT_FOUND"

	// 业务逻辑错误码
	ErrCodeMissingField = "ERR_MISSING_FIELD"
	ErrCodeInvalidField = "ERR_INVALID_FIELD"
)

// APIError 统一的 API 错误响应结构
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorResponse 返回统一格式的错误响应
func ErrorResponse(c *gin.Context, status int, code string, message string) {
	c.JSON(status, APIError{
		Code:    code,
		Message: message,
	})
}

// ErrorResponseWithDetails 返回带详情的错误响应
func ErrorResponseWithDetails(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, APIError{
		Code:    code,
		Message: message,
		Details: details,
	})
}

// BadRequest 400 错误请求
func BadRequest(c *gin.Context, code string, message string) {
	ErrorResponse(c, http.StatusBadRequest, code, message)
}

// Unauthorized 401 未授权
func Unauthorized(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusUnauthorized, ErrCodeUnauthorized, message)
}

// Forbidden 403 禁止访问
func Forbidden(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusForbidden, ErrCodeForbidden, message)
}

// NotFound 404 资源不存在
func NotFound(c *gin.Context, code string, message string) {
	ErrorResponse(c, http.StatusNotFound, code, message)
}

// InternalError 500 服务器内部错误
func InternalError(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusInternalServerError, ErrCodeInternalError, message)
}

// MissingField 缺少必填字段
func MissingField(c *gin.Context, field string) {
	ErrorResponseWithDetails(c, http.StatusBadRequest, ErrCodeMissingField, field+" is required", gin.H{"field": field})
}

// InvalidPayload 无效的请求体
func InvalidPayload(c *gin.Context) {
	ErrorResponse(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request payload")
}

// ServiceError 将服务层错误翻译为 HTTP 响应
func ServiceError(c *gin.Context, err error, action string) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		code := ErrCodeInvalidField
		if ve.Missing() {
			code = ErrCodeMissingField
		}
		ErrorResponseWithDetails(c, http.StatusBadRequest, code, ve.Error(), gin.H{"field": ve.Field})
	case errors.Is(err, service.ErrLoginTaken):
		ErrorResponse(c, http.StatusConflict, ErrCodeLoginExists, "login name already registered")
	case errors.Is(err, service.ErrNotFound):
		NotFound(c, ErrCodeUserNotFound, "user not found")
	case errors.Is(err, service.ErrInvalidCredentials):
		ErrorResponse(c, http.StatusUnauthorized, ErrCodeInvalidCredentials, "invalid login name or password")
	case errors.Is(err, service.ErrNotApproved):
		ErrorResponse(c, http.StatusForbidden, ErrCodeNotApproved, "account is awaiting administrator approval")
	default:
		logrus.WithError(err).WithField("request_id", GetRequestID(c)).Error("failed to " + action)
		InternalError(c, "failed to "+action)
	}
}
