package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode код ошибки для сопоставления со статусом HTTP
type ErrorCode string

const (
	ErrorDecodeFailed        ErrorCode = "DECODE_FAILED"
	ErrorRecognitionFailed   ErrorCode = "RECOGNITION_FAILED"
	ErrorSerializationFailed ErrorCode = "SERIALIZATION_FAILED"
	ErrorBodyReadFailed      ErrorCode = "BODY_READ_FAILED"
	ErrorBodyTooLarge        ErrorCode = "BODY_TOO_LARGE"
)

// Reason уточняет причину ошибки распознавания
type Reason string

const (
	ReasonEngineError    Reason = "engine_error"    // движок сообщил об ошибке
	ReasonMissingResults Reason = "missing_results" // движок вернул результат не того вида
	ReasonEnginePanic    Reason = "engine_panic"    // движок упал с паникой
)

// ErrMissingResults причина для случая, когда движок не вернул список наблюдений текста.
var ErrMissingResults = stderrors.New("missing results")

// OCRError ошибка обработки запроса распознавания
type OCRError struct {
	Code    ErrorCode
	Message string
	Reason  Reason
	Cause   error
}

func (e *OCRError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *OCRError) Unwrap() error {
	return e.Cause
}

// HTTPStatus возвращает статус ответа для кода ошибки.
func (e *OCRError) HTTPStatus() int {
	switch e.Code {
	case ErrorDecodeFailed, ErrorBodyReadFailed:
		return http.StatusBadRequest
	case ErrorBodyTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

func NewDecodeError(cause error) *OCRError {
	return &OCRError{
		Code:    ErrorDecodeFailed,
		Message: "Could not decode image",
		Cause:   cause,
	}
}

func NewRecognitionError(reason Reason, cause error) *OCRError {
	return &OCRError{
		Code:    ErrorRecognitionFailed,
		Message: "Could not recognize text",
		Reason:  reason,
		Cause:   cause,
	}
}

func NewSerializationError(cause error) *OCRError {
	return &OCRError{
		Code:    ErrorSerializationFailed,
		Message: "Could not encode response",
		Cause:   cause,
	}
}

func NewBodyReadError(cause error) *OCRError {
	return &OCRError{
		Code:    ErrorBodyReadFailed,
		Message: "Could not read request body",
		Cause:   cause,
	}
}

func NewBodyTooLargeError(limit int64) *OCRError {
	return &OCRError{
		Code:    ErrorBodyTooLarge,
		Message: fmt.Sprintf("Request body exceeds %d bytes", limit),
	}
}

// StatusOf возвращает статус HTTP для произвольной ошибки.
// Ошибки вне таксономии считаются внутренними.
func StatusOf(err error) int {
	if e, ok := As(err); ok {
		return e.HTTPStatus()
	}
	return http.StatusInternalServerError
}
