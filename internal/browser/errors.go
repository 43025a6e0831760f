package browser

import (
	"errors"
	"fmt"
)

// ScanError reports a failed backend scan: the target was missing, not
// a directory, or unreadable. The caller keeps its previous state.
type ScanError struct {
	Path string
	Err  error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("scanning %s: %v", e.Path, e.Err)
}

func (e *ScanError) Unwrap() error { return e.Err }

// IsScanError reports whether err (or any error in its chain) is a
// ScanError.
func IsScanError(err error) bool {
	var se *ScanError
	return errors.As(err, &se)
}

// BackendError wraps a remote protocol failure; the backend-provided
// message is surfaced verbatim.
type BackendError struct {
	Account string
	Message string
}

func (e *BackendError) Error() string {
	if e.Account == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Account, e.Message)
}

// IsBackendError reports whether err (or any error in its chain) is a
// BackendError.
func IsBackendError(err error) bool {
	var be *BackendError
	return errors.As(err, &be)
}

// errNotDirectory marks a scan target that exists but is not a
// directory.
var errNotDirectory = errors.New("not a directory")
