package espack

import (
	"fmt"

	"github.com/go-errors/errors"
)

type ErrorKind int

const (
	// ErrorKindParse marks a module source the parser rejected.
	ErrorKindParse ErrorKind = iota
	// ErrorKindLoad marks a module whose source could not be read.
	ErrorKindLoad
	// ErrorKindResolve marks a specifier the resolver could not
	// canonicalize.
	ErrorKindResolve
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindParse:
		return "parse"
	case ErrorKindLoad:
		return "load"
	case ErrorKindResolve:
		return "resolve"
	}
	return "unknown"
}

// BundleError is the single failure type surfaced by the bundling API. The
// first error encountered during loading aborts the whole bundle call; no
// partial result is ever returned alongside one.
type BundleError struct {
	Kind ErrorKind

	// Location is the canonical location of the offending module for
	// parse and load failures.
	Location string

	// Specifier and Referrer identify the offending import for resolve
	// failures.
	Specifier string
	Referrer  string

	Cause error
}

func (e *BundleError) Error() string {
	switch e.Kind {
	case ErrorKindResolve:
		return fmt.Sprintf("failed to resolve %q from %q: %v", e.Specifier, e.Referrer, e.Cause)
	case ErrorKindLoad:
		return fmt.Sprintf("failed to load module %s: %v", e.Location, e.Cause)
	default:
		return fmt.Sprintf("failed to parse module %s: %v", e.Location, e.Cause)
	}
}

func (e *BundleError) Unwrap() error {
	return e.Cause
}

func newParseError(location string, cause error) *BundleError {
	return &BundleError{Kind: ErrorKindParse, Location: location, Cause: errors.New(cause)}
}

func newLoadError(location string, cause error) *BundleError {
	return &BundleError{Kind: ErrorKindLoad, Location: location, Cause: errors.New(cause)}
}

func newResolveError(specifier, referrer string, cause error) *BundleError {
	return &BundleError{Kind: ErrorKindResolve, Specifier: specifier, Referrer: referrer, Cause: errors.New(cause)}
}
