package drive

import (
	"errors"
	"fmt"
)

// RemoteError wraps a failure reported by the remote store. Auth, not-found
// and rate-limit failures all surface here; nothing is retried.
type RemoteError struct {
	Op  string
	Id  string
	Err error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("failed to %s %s: %s", e.Op, e.Id, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// UnsupportedContentError marks a node with neither a direct download nor an
// export path. Callers skip the node instead of aborting the walk.
type UnsupportedContentError struct {
	Id   string
	Mime string
}

func (e *UnsupportedContentError) Error() string {
	return fmt.Sprintf("file %s with type '%s' has no download or export path", e.Id, e.Mime)
}

// LocalError wraps a local filesystem failure. Always fatal, partial local
// state is left as-is.
type LocalError struct {
	Path string
	Err  error
}

func (e *LocalError) Error() string {
	return fmt.Sprintf("local io error at '%s': %s", e.Path, e.Err)
}

func (e *LocalError) Unwrap() error {
	return e.Err
}

func IsUnsupportedContent(err error) bool {
	var uc *UnsupportedContentError
	return errors.As(err, &uc)
}
