package analysis

import (
	"errors"
	"fmt"
)

// ErrorKind классифицирует отказ запроса к сервису анализа.
type ErrorKind string

const (
	// ErrorKindInvalidEndpoint означает, что адрес сервиса не задан или не разбирается.
	// Такую ошибку конфигурации повторное сканирование не исправит.
	ErrorKindInvalidEndpoint ErrorKind = "invalid_endpoint"
	// ErrorKindDecodeFailure означает, что ответ сервиса не соответствует контракту.
	ErrorKindDecodeFailure ErrorKind = "decode_failure"
	// ErrorKindServer означает статус ответа вне диапазона [200, 300).
	ErrorKindServer ErrorKind = "server_error"
	// ErrorKindTransport означает сетевой сбой: DNS, отказ соединения, таймаут.
	ErrorKindTransport ErrorKind = "transport_error"
)

// RequestError описывает неуспешный исход одного запроса к сервису анализа.
// Частичный результат анализа в нём не передаётся никогда.
type RequestError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// Error реализует интерфейс error.
func (e *RequestError) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap возвращает исходную ошибку для errors.Is и errors.As.
func (e *RequestError) Unwrap() error {
	return e.Err
}

// AsRequestError приводит произвольную ошибку к *RequestError.
// Ошибки других типов оборачиваются как транспортные, чтобы у каждого отказа
// была категория и непустое сообщение.
func AsRequestError(err error) *RequestError {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr
	}
	return &RequestError{
		Kind:    ErrorKindTransport,
		Message: err.Error(),
		Err:     err,
	}
}
