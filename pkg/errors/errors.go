// Package errors 提供统一的错误定义
package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode 错误码类型
type ErrorCode string

// 预定义错误码
const (
	// 通用错误 (1xxx)
	CodeSuccess       ErrorCode = "0"
	CodeUnknown       ErrorCode = "1000"
	CodeInvalidParam  ErrorCode = "1001"
	CodeUnauthorized  ErrorCode = "1002"
	CodeForbidden     ErrorCode = "1003"
	CodeNotFound      ErrorCode = "1004"
	CodeConflict      ErrorCode = "1005"
	CodeInternalError ErrorCode = "1006"

	// 认证授权错误 (2xxx)
	CodeSessionMissing  ErrorCode = "2001"
	CodeSessionInvalid  ErrorCode = "2002"
	CodeLoginFailed     ErrorCode = "2003"
	CodeUsernameTaken   ErrorCode = "2004"
	CodePasswordTooWeak ErrorCode = "2005"

	// 资源错误 (3xxx)
	CodeProjectNotFound   ErrorCode = "3001"
	CodeChapterNotFound   ErrorCode = "3002"
	CodeCharacterNotFound ErrorCode = "3003"
	CodeNoChapters        ErrorCode = "3004"

	// 业务错误 (4xxx)
	CodeExtractionFailed  ErrorCode = "4001"
	CodeGenerationFailed  ErrorCode = "4002"
	CodeConsistencyFailed ErrorCode = "4003"

	// 外部服务错误 (5xxx)
	CodeDatabaseError    ErrorCode = "5001"
	CodeLLMProviderError ErrorCode = "5002"
	CodeLLMNotConfigured ErrorCode = "5003"
)

// AppError 应用错误
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	Err        error     `json:"-"`
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap 返回底层错误
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail 添加详细信息
func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail
	return e
}

// WithError 添加底层错误
func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

// New 创建新的应用错误
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

// Wrap 包装错误
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Err:        err,
	}
}

// codeToHTTPStatus 错误码转 HTTP 状态码
func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case CodeSuccess:
		return http.StatusOK
	case CodeInvalidParam, CodePasswordTooWeak:
		return http.StatusBadRequest
	case CodeUnauthorized, CodeSessionMissing, CodeSessionInvalid, CodeLoginFailed:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound, CodeProjectNotFound, CodeChapterNotFound, CodeCharacterNotFound, CodeNoChapters:
		return http.StatusNotFound
	case CodeConflict, CodeUsernameTaken:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// 预定义错误
var (
	ErrInvalidParam  = New(CodeInvalidParam, "invalid parameter")
	ErrUnauthorized  = New(CodeUnauthorized, "unauthorized")
	ErrForbidden     = New(CodeForbidden, "forbidden")
	ErrNotFound      = New(CodeNotFound, "resource not found")
	ErrConflict      = New(CodeConflict, "resource conflict")
	ErrInternalError = New(CodeInternalError, "internal server error")

	ErrProjectNotFound   = New(CodeProjectNotFound, "project not found")
	ErrChapterNotFound   = New(CodeChapterNotFound, "chapter not found")
	ErrCharacterNotFound = New(CodeCharacterNotFound, "character not found")
	ErrNoChapters        = New(CodeNoChapters, "no chapters found")

	ErrLoginFailed      = New(CodeLoginFailed, "invalid username or password")
	ErrUsernameTaken    = New(CodeUsernameTaken, "username already taken")
	ErrPasswordTooWeak  = New(CodePasswordTooWeak, "password must be at least 4 characters")
	ErrLLMNotConfigured = New(CodeLLMNotConfigured, "anthropic api key is not configured")
)

// IsAppError 检查是否为 AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// AsAppError 将错误转换为 AppError
func AsAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return Wrap(err, CodeUnknown, "unknown error")
}
