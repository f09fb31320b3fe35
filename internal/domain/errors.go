package domain

import (
	"errors"
	"fmt"
	"slices"

	"git.appkode.ru/pub/go/failure"

	"treehealth/pkg/errcodes"
)

// AppError представляет доменную ошибку приложения.
type AppError struct {
	Code    failure.ErrorCode
	Message string
	cause   error
}

// Error реализует интерфейс error.
func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap возвращает обёрнутую ошибку для errors.Is/As.
func (e *AppError) Unwrap() error {
	return e.cause
}

// ErrorCode используется reply.Error для выбора HTTP-статуса.
func (e *AppError) ErrorCode() failure.ErrorCode {
	return e.Code
}

// Description — сообщение без причины, безопасное для показа в UI.
func (e *AppError) Description() string {
	return e.Message
}

// NewError создаёт новую доменную ошибку.
func NewError(code failure.ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// WrapError оборачивает существующую ошибку с доменным контекстом.
func WrapError(err error, code failure.ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		cause:   err,
	}
}

// IsAppError проверяет, является ли ошибка доменной.
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetCode извлекает код ошибки, если это AppError.
func GetCode(err error) (failure.ErrorCode, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code, true
	}
	return "", false
}

// HasCode сообщает, несёт ли цепочка ошибок один из кодов.
func HasCode(err error, codes ...failure.ErrorCode) bool {
	code, ok := GetCode(err)
	return ok && slices.Contains(codes, code)
}

// IsFetchError — сбой источника данных: сеть, таймаут или битая таблица.
func IsFetchError(err error) bool {
	return HasCode(err, errcodes.FetchFailed, errcodes.MalformedData)
}

// IsEmptyResult — после фильтрации не осталось строк для графика.
func IsEmptyResult(err error) bool {
	return HasCode(err, errcodes.EmptyResult)
}
