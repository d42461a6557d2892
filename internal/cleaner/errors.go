package cleaner

import "errors"

// Deletion refusals and failures. Each DeleteResult carries the text of one
// of these, possibly wrapped with the underlying cause.
var (
	ErrNotAbsolute    = errors.New("path is not absolute")
	ErrNotFound       = errors.New("path does not exist")
	ErrNotDirectory   = errors.New("path is not a directory")
	ErrNotNodeModules = errors.New("path does not end with node_modules")
	ErrSuspicious     = errors.New("directory does not look like an installed node_modules")
	ErrDuplicate      = errors.New("path listed more than once")
	ErrTrashFailed    = errors.New("move to trash failed")
)
