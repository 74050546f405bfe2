package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Stable error codes surfaced in API responses and logs.
const (
	CodeConfiguration = "configuration_error"
	CodeUpstreamModel = "upstream_model_error"
	CodeParse         = "parse_error"
	CodeNotFound      = "not_found"
	CodeValidation    = "validation_error"
	CodePersistence   = "persistence_error"
	CodeAuthorization = "authorization_error"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func Configuration(err error) *Error {
	return New(http.StatusInternalServerError, CodeConfiguration, err)
}

func UpstreamModel(err error) *Error {
	return New(http.StatusBadGateway, CodeUpstreamModel, err)
}

func NotFound(err error) *Error {
	return New(http.StatusNotFound, CodeNotFound, err)
}

func Validation(err error) *Error {
	return New(http.StatusBadRequest, CodeValidation, err)
}

func Persistence(err error) *Error {
	return New(http.StatusInternalServerError, CodePersistence, err)
}

func Authorization(err error) *Error {
	return New(http.StatusUnauthorized, CodeAuthorization, err)
}

// Code extracts the taxonomy code from any error in the chain, defaulting
// to an empty string for plain errors.
func Code(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}

// Status extracts the HTTP status from the chain, defaulting to 500.
func Status(err error) int {
	var ae *Error
	if errors.As(err, &ae) && ae.Status != 0 {
		return ae.Status
	}
	return http.StatusInternalServerError
}

func Is(err error, code string) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Code == code
}
