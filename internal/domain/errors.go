package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation signals a missing or malformed request field.
	ErrValidation = errors.New("validation failed")
	// ErrNoMatch signals that a scanned id matched no page.
	ErrNoMatch = errors.New("no matching page")
	// ErrAmbiguous signals that a scanned id matched more than one page.
	ErrAmbiguous = errors.New("ambiguous match")
	// ErrUnknownProperty signals a property name absent from the page.
	ErrUnknownProperty = errors.New("unknown property")
	// ErrUpstream signals a non-2xx response from the Notion API.
	ErrUpstream = errors.New("upstream error")
)

// NoMatchError wraps ErrNoMatch with the raw search result count, so callers
// can tell an id typo (zero results) from a title convention violation
// (results exist, none equal).
type NoMatchError struct {
	ScannedID string
	Seen      int
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("%s: id %q not found among %d search result(s)", ErrNoMatch.Error(), e.ScannedID, e.Seen)
}

func (e *NoMatchError) Unwrap() error { return ErrNoMatch }

// AmbiguousMatchError wraps ErrAmbiguous with every page sharing the scanned
// title. The flow never guesses which duplicate is intended.
type AmbiguousMatchError struct {
	ScannedID string
	Matches   []PageSummary
}

func (e *AmbiguousMatchError) Error() string {
	titles := make([]string, len(e.Matches))
	for i, m := range e.Matches {
		titles[i] = m.ID
	}
	return fmt.Sprintf("%s: id %q matches %d pages: %s",
		ErrAmbiguous.Error(), e.ScannedID, len(e.Matches), strings.Join(titles, ", "))
}

func (e *AmbiguousMatchError) Unwrap() error { return ErrAmbiguous }

// UpstreamError wraps ErrUpstream with the Notion HTTP status and the error
// body's code/message when the body parsed.
type UpstreamError struct {
	Status  int
	Code    string
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: status=%d code=%s message=%s", ErrUpstream.Error(), e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: status=%d message=%s", ErrUpstream.Error(), e.Status, e.Message)
}

func (e *UpstreamError) Unwrap() error { return ErrUpstream }
