package analyzer

import (
	"errors"
	"fmt"
)

// 错误类型枚举
const (
	// ErrTypeEmptyInput 输入为空或只有空白
	ErrTypeEmptyInput = iota + 1
	// ErrTypeInputTooLarge 输入超过上限
	ErrTypeInputTooLarge
	// ErrTypeInvalidLength 非法的长度参数
	ErrTypeInvalidLength
	// ErrTypeInvalidRequest 请求格式错误
	ErrTypeInvalidRequest
)

// 预定义的错误
var (
	// ErrEmptyInput is returned for input without any non-whitespace byte
	ErrEmptyInput = NewError(ErrTypeEmptyInput, "input is empty")
)

// Error is the typed error returned by the analyzer
type Error struct {
	Type    int    // 错误类型
	Message string // 错误信息
	Cause   error  // 原始错误（可选）
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap supports errors.Is / errors.As through the cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates an error of the given type
func NewError(errType int, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// WrapError creates an error of the given type around cause
func WrapError(errType int, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

func isType(err error, errType int) bool {
	var aErr *Error
	return errors.As(err, &aErr) && aErr.Type == errType
}

// IsEmptyInputError 判断是否为空输入错误
func IsEmptyInputError(err error) bool {
	return isType(err, ErrTypeEmptyInput)
}

// IsInputTooLargeError 判断是否为输入过大错误
func IsInputTooLargeError(err error) bool {
	return isType(err, ErrTypeInputTooLarge)
}

// IsInvalidLengthError 判断是否为长度参数错误
func IsInvalidLengthError(err error) bool {
	return isType(err, ErrTypeInvalidLength)
}

// IsInvalidRequestError 判断是否为请求格式错误
func IsInvalidRequestError(err error) bool {
	return isType(err, ErrTypeInvalidRequest)
}
