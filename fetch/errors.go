package fetch

import (
	"errors"
	"fmt"
)

// ResourceKind names which of the three published documents a request was for.
type ResourceKind int

const (
	LibraryIndex ResourceKind = iota
	NovelMetadata
	Chapter
)

func (k ResourceKind) String() string {
	switch k {
	case LibraryIndex:
		return "library index"
	case NovelMetadata:
		return "novel metadata"
	case Chapter:
		return "chapter"
	default:
		return fmt.Sprintf("resource(%d)", int(k))
	}
}

// ErrUnavailable matches both FetchError and ParseError. Callers that only
// need to know a document could not be loaded should test against it.
var ErrUnavailable = errors.New("document unavailable")

// FetchError reports a transport failure or a non-success HTTP status.
// StatusCode is zero when no response was received.
type FetchError struct {
	Kind       ResourceKind
	StatusCode int
	Status     string
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to fetch %v: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("failed to fetch %v: %v", e.Kind, e.Status)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func (e *FetchError) Is(target error) bool {
	return target == ErrUnavailable
}

// ParseError reports a response body that is not valid JSON for the
// expected document.
type ParseError struct {
	Kind ResourceKind
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %v: %v", e.Kind, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	return target == ErrUnavailable
}
