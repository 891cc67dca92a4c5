package model

import (
	"errors"
	"fmt"
	"net/http"
)

var ErrConfiguration = errors.New("configuration error")

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// FileNotFoundError Path всегда абсолютный.
type FileNotFoundError struct {
	Path string
	Err  error
}

func (e *FileNotFoundError) Error() string {
	return "file not found: " + e.Path
}

func (e *FileNotFoundError) Unwrap() error { return e.Err }

// TransportError запрос не дошёл до сервиса или ответ не получен.
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: request %s failed: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// RemoteServiceError сервис ответил статусом, отличным от 2xx.
//
// Header это заголовки ответа. Заголовки запроса (и Authorization в том числе)
// сюда никогда не попадают.
type RemoteServiceError struct {
	Op          string
	URL         string
	StatusCode  int
	Status      string
	RequestBody string
	Header      http.Header
	Body        string
}

func (e *RemoteServiceError) Error() string {
	msg := fmt.Sprintf("%s: HTTP %s from %s", e.Op, e.Status, e.URL)
	switch e.StatusCode {
	case http.StatusUnauthorized:
		msg += " (check the API bearer token)"
	case http.StatusForbidden:
		msg += " (no access to this request)"
	}
	return msg
}

// ResolutionError ответ получен, но в нём нет ожидаемых данных.
// Key имя отсутствующего ключа, пустой если тело не разобрано.
type ResolutionError struct {
	Name string
	Key  string
	Err  error
}

func (e *ResolutionError) Error() string {
	switch {
	case e.Key == "":
		return fmt.Sprintf("resolve request %q: %v", e.Name, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("resolve request %q: key %q: %v", e.Name, e.Key, e.Err)
	}
	return fmt.Sprintf("resolve request %q: missing key %q in response", e.Name, e.Key)
}

func (e *ResolutionError) Unwrap() error { return e.Err }
