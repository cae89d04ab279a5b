package interpreter

import (
	"fmt"

	"github.com/hyperjump/tansu/internal/models"
)

// ErrorKind classifies a command failure. Every kind is recovered into a
// formatted response string; none escapes the interpreter boundary raw.
type ErrorKind int

const (
	// KindMissingField means a required entity could not be extracted.
	KindMissingField ErrorKind = iota
	// KindNotFound means the reference matched no record.
	KindNotFound
	// KindAmbiguousReference means the reference matched more than one
	// record equally; the interpreter lists candidates instead of guessing.
	KindAmbiguousReference
	// KindInvalidStatus means the status text is not in the fixed vocabulary.
	KindInvalidStatus
	// KindCollaboratorFailure means the inventory operation itself failed.
	KindCollaboratorFailure
)

// CommandError is a structured dispatch failure, rendered to text by the
// response formatter.
type CommandError struct {
	Kind       ErrorKind
	Field      string          // KindMissingField: which entity is missing
	Reference  string          // KindNotFound / KindAmbiguousReference
	Status     string          // KindInvalidStatus: the rejected text
	Candidates []*models.Shirt // KindAmbiguousReference
	Err        error           // KindCollaboratorFailure cause
}

func (e *CommandError) Error() string {
	switch e.Kind {
	case KindMissingField:
		return fmt.Sprintf("missing field: %s", e.Field)
	case KindNotFound:
		return fmt.Sprintf("no record matching %q", e.Reference)
	case KindAmbiguousReference:
		return fmt.Sprintf("%d records match %q", len(e.Candidates), e.Reference)
	case KindInvalidStatus:
		return fmt.Sprintf("invalid status %q", e.Status)
	case KindCollaboratorFailure:
		return fmt.Sprintf("inventory operation failed: %v", e.Err)
	}
	return "command error"
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

func missingField(field string) *CommandError {
	return &CommandError{Kind: KindMissingField, Field: field}
}

func notFound(ref string) *CommandError {
	return &CommandError{Kind: KindNotFound, Reference: ref}
}

func ambiguous(ref string, candidates []*models.Shirt) *CommandError {
	return &CommandError{Kind: KindAmbiguousReference, Reference: ref, Candidates: candidates}
}

func invalidStatus(status string) *CommandError {
	return &CommandError{Kind: KindInvalidStatus, Status: status}
}

func collaboratorFailure(err error) *CommandError {
	return &CommandError{Kind: KindCollaboratorFailure, Err: err}
}
