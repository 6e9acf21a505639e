package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the request conflicts with the current state of a resource.
var ErrConflict = errors.New("resource state conflict")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrConfigurationMissing indicates that no GL determination entry exists for a
// required process key/profile pair. Posting must stop rather than fall back to
// an arbitrary account.
var ErrConfigurationMissing = errors.New("gl determination not configured")

// ErrUnbalanced indicates that a candidate set of journal lines does not net to
// zero. This points at a logic defect upstream and must block the commit.
var ErrUnbalanced = errors.New("journal entry does not balance")

// ErrUnsupported indicates a source document type whose posting rule is not
// implemented yet.
var ErrUnsupported = errors.New("unsupported document type")

// ErrSequenceConflict indicates that two concurrent requests raced for the same
// document number. The sequence generator retries this internally; it never
// reaches the API caller.
var ErrSequenceConflict = errors.New("document number sequence conflict")
