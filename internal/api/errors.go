package api

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// backend unreachable, transport failure or cancelled request
	KindNetwork
	// backend answered with a failure status or an unreadable body
	KindServer
	// backend rejected the submitted player
	KindValidation
	// rejected locally before any request was sent
	KindClientValidation
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindServer:
		return "server"
	case KindValidation:
		return "validation"
	case KindClientValidation:
		return "client validation"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind       ErrorKind
	Op         string
	StatusCode int
	Detail     string
	Err        error
}

// Sentinels for errors.Is; they match any *Error of the same kind.
var (
	ErrNetwork          = &Error{Kind: KindNetwork}
	ErrServer           = &Error{Kind: KindServer}
	ErrValidation       = &Error{Kind: KindValidation}
	ErrClientValidation = &Error{Kind: KindClientValidation}
)

func (e *Error) Error() string {
	msg := e.Kind.String() + " error"
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Op == "" && t.StatusCode == 0 && t.Err == nil && t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) ErrorKind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}
