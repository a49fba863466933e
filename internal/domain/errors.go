package domain

import (
	"errors"
	"fmt"
)

// Kind classifies domain errors.
type Kind string

const (
	// KindDocument covers files that are missing, unreadable, or not
	// parseable as a PDF.
	KindDocument Kind = "document"
	// KindPage covers documents without the requested page.
	KindPage   Kind = "page"
	KindConfig Kind = "config"
	KindIO     Kind = "io"
	KindAPI    Kind = "api"
)

// Error is a domain error carrying a kind and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// DocumentError reports a file that could not be opened or parsed.
func DocumentError(message string, err error) *Error {
	return newError(KindDocument, message, err)
}

// PageError reports a document that lacks the requested page.
func PageError(message string, err error) *Error {
	return newError(KindPage, message, err)
}

func ConfigError(message string, err error) *Error {
	return newError(KindConfig, message, err)
}

func IOError(message string, err error) *Error {
	return newError(KindIO, message, err)
}

func APIError(message string, err error) *Error {
	return newError(KindAPI, message, err)
}

// IsKind reports whether err is (or wraps) a domain error of the given kind.
func IsKind(err error, kind Kind) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind == kind
	}
	return false
}
