package model

import (
	"context"
	"errors"
)

var (
	// ErrInvalidInput indicates a malformed scheme code, date or flag value.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNetwork indicates the upstream could not be reached.
	ErrNetwork = errors.New("network error")
	// ErrUpstream indicates the upstream answered with an unexpected status.
	ErrUpstream = errors.New("upstream error")
	// ErrNotFound indicates the upstream has no data for the requested scheme.
	ErrNotFound = errors.New("scheme not found")
	// ErrParse indicates the upstream payload could not be decoded.
	ErrParse = errors.New("parse error")
	// ErrUndefined indicates a CAGR window had insufficient data.
	ErrUndefined = errors.New("insufficient data")
)

// Kind is the presentation-level class of an error.
type Kind int

const (
	KindNone Kind = iota
	KindInvalidInput
	KindNetwork
	KindUpstream
	KindParse
	KindNotFound
	KindUndefined
	KindOther
)

// Classify maps err onto the first matching Kind.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrParse):
		return KindParse
	case errors.Is(err, ErrUpstream):
		return KindUpstream
	case errors.Is(err, ErrNetwork), errors.Is(err, context.DeadlineExceeded):
		return KindNetwork
	case errors.Is(err, ErrUndefined):
		return KindUndefined
	}
	return KindOther
}

// ExitCode returns the process exit status for an error of this kind.
func (k Kind) ExitCode() int {
	switch k {
	case KindNone:
		return 0
	case KindInvalidInput:
		return 2
	case KindNetwork:
		return 3
	case KindUpstream:
		return 4
	case KindParse:
		return 5
	case KindNotFound:
		return 6
	case KindUndefined:
		return 7
	}
	return 1
}
