// Package errors defines the stable error codes shared by all arcv
// components, plus the error type that carries them.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// ConfigInvalid indicates the configuration failed validation; fatal before any scan
	ConfigInvalid ErrorCode = "CONFIG_INVALID"
	// ClassificationFailed indicates a project could not be classified; the project is skipped
	ClassificationFailed ErrorCode = "CLASSIFICATION_FAILED"
	// ArchiveFailed indicates an archive/restore/delete operation failed for one project
	ArchiveFailed ErrorCode = "ARCHIVE_FAILED"
	// LedgerCorrupt indicates a state file could not be parsed; fatal for the whole run
	LedgerCorrupt ErrorCode = "LEDGER_CORRUPT"
	// LedgerLocked indicates another arcv process holds the state file lock
	LedgerLocked ErrorCode = "LEDGER_LOCKED"
	// DuplicateArchivePath indicates two entries would share the same archived path
	DuplicateArchivePath ErrorCode = "DUPLICATE_ARCHIVE_PATH"
	// AlreadyArchived indicates the project already has a live ledger entry
	AlreadyArchived ErrorCode = "ALREADY_ARCHIVED"
	// NotArchived indicates no ledger entry matches the given name
	NotArchived ErrorCode = "NOT_ARCHIVED"
	// AmbiguousReference indicates a name matches several entries that cannot be ranked
	AmbiguousReference ErrorCode = "AMBIGUOUS_REFERENCE"
	// DestinationOccupied indicates the restore target path already exists
	DestinationOccupied ErrorCode = "DESTINATION_OCCUPIED"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixActionType represents the type of fix action
type FixActionType string

const (
	// RunCommand suggests running a command
	RunCommand FixActionType = "run-command"
	// EditConfig suggests editing the configuration file
	EditConfig FixActionType = "edit-config"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Type        FixActionType `json:"type"`
	Command     string        `json:"command,omitempty"`
	Safe        bool          `json:"safe,omitempty"`
	Description string        `json:"description,omitempty"`
}

// ArcvError represents an arcv error with code, message, and suggestions
type ArcvError struct {
	Code           ErrorCode   `json:"code"`
	Message        string      `json:"message"`
	Details        interface{} `json:"details,omitempty"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty"`
	cause          error       // Underlying error (not exported to JSON)
}

// New creates a new ArcvError with the suggested fixes registered for its code.
func New(code ErrorCode, message string, cause error) *ArcvError {
	return &ArcvError{
		Code:           code,
		Message:        message,
		cause:          cause,
		SuggestedFixes: GetSuggestedFixes(code),
	}
}

// Newf creates a new ArcvError with a formatted message and no cause.
func Newf(code ErrorCode, format string, args ...interface{}) *ArcvError {
	return New(code, fmt.Sprintf(format, args...), nil)
}

// Error implements the error interface
func (e *ArcvError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *ArcvError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *ArcvError) WithDetails(details interface{}) *ArcvError {
	e.Details = details
	return e
}

// CodeOf extracts the error code from err, unwrapping as needed.
// Returns InternalError for non-arcv errors and "" for nil.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var ae *ArcvError
	if stderrors.As(err, &ae) {
		return ae.Code
	}
	return InternalError
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// ErrorActions maps error codes to suggested fix actions
var ErrorActions = map[ErrorCode][]FixAction{
	ConfigInvalid: {
		{
			Type:        RunCommand,
			Command:     "arcv init",
			Safe:        true,
			Description: "Recreate the configuration interactively",
		},
	},
	LedgerLocked: {
		{
			Type:        RunCommand,
			Command:     "arcv paths",
			Safe:        true,
			Description: "Another arcv process holds the lock; wait for it to finish, then check the lock file location",
		},
	},
	NotArchived: {
		{
			Type:        RunCommand,
			Command:     "arcv list",
			Safe:        true,
			Description: "List archived projects and their names",
		},
	},
	AmbiguousReference: {
		{
			Type:        RunCommand,
			Command:     "arcv list",
			Safe:        true,
			Description: "List archived projects; several share this name",
		},
	},
	DestinationOccupied: {
		{
			Type:        RunCommand,
			Command:     "arcv restore <name> --force",
			Safe:        false,
			Description: "Move the occupying directory aside and restore anyway",
		},
	},
}

// GetSuggestedFixes returns suggested fixes for an error code
func GetSuggestedFixes(code ErrorCode) []FixAction {
	if fixes, ok := ErrorActions[code]; ok {
		return fixes
	}
	return nil
}
