package backing

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a backing store failure.
type Kind string

const (
	KindDuplicate  Kind = "duplicate"
	KindPolicy     Kind = "policy"
	KindNotFound   Kind = "not_found"
	KindValidation Kind = "validation"
	KindTimeout    Kind = "timeout"
	KindTransient  Kind = "transient"
)

// Sentinels for errors.Is classification. Each decoded *Error wraps exactly
// one of these.
var (
	ErrDuplicate  = errors.New("duplicate record")
	ErrPolicy     = errors.New("policy rejection")
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation rejected")
	ErrTimeout    = errors.New("timeout")
	ErrTransient  = errors.New("transient failure")
)

// Error is a decoded backing store failure.
type Error struct {
	ErrKind    Kind
	StatusCode int
	Code       string
	Message    string
}

func (e *Error) Error() string {
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		msg = "backing store request failed"
	}
	if e.Code != "" {
		return fmt.Sprintf("%s (%s, status %d)", msg, e.Code, e.StatusCode)
	}
	return fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
}

// Kind returns the error classification, satisfying the classifier interface
// used by workflow status mapping.
func (e *Error) Kind() string {
	return string(e.ErrKind)
}

func (e *Error) Unwrap() error {
	switch e.ErrKind {
	case KindDuplicate:
		return ErrDuplicate
	case KindPolicy:
		return ErrPolicy
	case KindNotFound:
		return ErrNotFound
	case KindValidation:
		return ErrValidation
	case KindTimeout:
		return ErrTimeout
	default:
		return ErrTransient
	}
}

// errorBody models the backing store's structured error payload.
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// codeKinds maps backing store error codes to kinds. Unknown codes fall back
// to a status-derived kind.
var codeKinds = map[string]Kind{
	"duplicate_rating":  KindDuplicate,
	"duplicate_venue":   KindDuplicate,
	"conflict":          KindDuplicate,
	"policy_rejected":   KindPolicy,
	"forbidden":         KindPolicy,
	"not_found":         KindNotFound,
	"invalid_request":   KindValidation,
	"validation_failed": KindValidation,
}

func classify(statusCode int, code string) Kind {
	if kind, ok := codeKinds[strings.ToLower(strings.TrimSpace(code))]; ok {
		return kind
	}
	switch statusCode {
	case 404:
		return KindNotFound
	case 409:
		return KindDuplicate
	case 401, 403:
		return KindPolicy
	case 400, 422:
		return KindValidation
	case 408, 504:
		return KindTimeout
	default:
		return KindTransient
	}
}
