package savegame

import (
	"errors"
	"fmt"
)

// Stable machine-readable error codes. Presentation layers key localized
// messages off these instead of matching error text.
const (
	CodeCannotSavePhase    = "savegame.cannot_save.phase"
	CodeCannotSaveScenario = "savegame.cannot_save.scenario"
	CodeUnsupportedVersion = "savegame.load.unsupported_version"
	CodeParse              = "savegame.load.parse"
	CodeInconsistent       = "savegame.load.inconsistent"
	CodeNameInUse          = "savegame.load.name_in_use"
)

// CodedError is implemented by every error this package returns, so
// callers can report failures programmatically.
type CodedError interface {
	error
	ErrorCode() string
	ErrorParams() map[string]string
}

// DeniedError means the live state is not eligible for snapshotting.
// It is returned by CheckCanSave before any bytes are written.
type DeniedError struct {
	Code   string
	Params map[string]string
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("save denied: %s %v", e.Code, e.Params)
}

func (e *DeniedError) ErrorCode() string {
	return e.Code
}

func (e *DeniedError) ErrorParams() map[string]string {
	return e.Params
}

// UnsupportedVersionError means a snapshot's modelVersion is not one this
// build knows how to read.
type UnsupportedVersionError struct {
	Version int
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported savegame model version: %d", e.Version)
}

func (e *UnsupportedVersionError) ErrorCode() string {
	return CodeUnsupportedVersion
}

func (e *UnsupportedVersionError) ErrorParams() map[string]string {
	return map[string]string{"version": fmt.Sprintf("%d", e.Version)}
}

// ParseError means a snapshot file could not be read or decoded.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse savegame %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) ErrorCode() string {
	return CodeParse
}

func (e *ParseError) ErrorParams() map[string]string {
	return map[string]string{"path": e.Path}
}

// InconsistentError means a parsed snapshot fails a structural invariant,
// e.g. its seat list does not match its declared seat count.
type InconsistentError struct {
	Field string
	Want  string
	Got   string
}

func (e *InconsistentError) Error() string {
	return fmt.Sprintf("inconsistent savegame field %s: want %s, got %s", e.Field, e.Want, e.Got)
}

func (e *InconsistentError) ErrorCode() string {
	return CodeInconsistent
}

func (e *InconsistentError) ErrorParams() map[string]string {
	return map[string]string{"field": e.Field, "want": e.Want, "got": e.Got}
}

// NameInUseError means a snapshot cannot be materialized because a running
// game already has its name.
type NameInUseError struct {
	Name string
}

func (e *NameInUseError) Error() string {
	return fmt.Sprintf("game name already in use: %s", e.Name)
}

func (e *NameInUseError) ErrorCode() string {
	return CodeNameInUse
}

func (e *NameInUseError) ErrorParams() map[string]string {
	return map[string]string{"name": e.Name}
}

func IsDenied(err error) bool {
	var denied *DeniedError
	return errors.As(err, &denied)
}

func IsUnsupportedVersion(err error) bool {
	var unsupported *UnsupportedVersionError
	return errors.As(err, &unsupported)
}

func IsParse(err error) bool {
	var parse *ParseError
	return errors.As(err, &parse)
}

func IsInconsistent(err error) bool {
	var inconsistent *InconsistentError
	return errors.As(err, &inconsistent)
}

func IsNameInUse(err error) bool {
	var inUse *NameInUseError
	return errors.As(err, &inUse)
}
