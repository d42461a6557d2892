// Package cleaner moves node_modules directories to the system trash after
// checking that each requested path really is one.
package cleaner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lumipallolabs/nodesweep/internal/logging"
	"github.com/lumipallolabs/nodesweep/internal/model"
)

// Options configures an Executor
type Options struct {
	// Strict refuses directories that do not look like an installed
	// dependency tree
	Strict bool

	// Trasher performs the move; nil uses SystemTrash
	Trasher Trasher
}

// Executor deletes node_modules directories one path at a time
type Executor struct {
	strict  bool
	trasher Trasher
}

// NewExecutor creates an executor
func NewExecutor(opts Options) *Executor {
	trasher := opts.Trasher
	if trasher == nil {
		trasher = SystemTrash{}
	}
	return &Executor{strict: opts.Strict, trasher: trasher}
}

// Delete processes every path independently and returns one result per
// path, in input order. Once ctx is cancelled the remaining paths fail with
// the context error.
func (e *Executor) Delete(ctx context.Context, paths []string) []model.DeleteResult {
	results := make([]model.DeleteResult, 0, len(paths))
	seen := make(map[string]struct{}, len(paths))

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			results = append(results, model.Failed(path, err))
			continue
		}

		key := batchKey(path)
		if _, dup := seen[key]; dup {
			results = append(results, model.Failed(path, ErrDuplicate))
			continue
		}
		seen[key] = struct{}{}

		if err := e.deleteOne(path); err != nil {
			logging.Debug.Printf("delete %s: %v", path, err)
			results = append(results, model.Failed(path, err))
			continue
		}
		logging.Debug.Printf("trashed %s", path)
		results = append(results, model.Succeeded(path))
	}
	return results
}

// Check runs every safety check on path without touching it
func (e *Executor) Check(path string) error {
	if !filepath.IsAbs(path) {
		return ErrNotAbsolute
	}

	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	if !info.IsDir() || info.Mode()&os.ModeSymlink != 0 {
		return ErrNotDirectory
	}
	// exact bytes, even where the filesystem folds case
	if filepath.Base(path) != model.NodeModulesDir {
		return ErrNotNodeModules
	}

	if e.strict {
		ok, err := looksInstalled(path)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrSuspicious, err)
		}
		if !ok {
			return ErrSuspicious
		}
	}
	return nil
}

func (e *Executor) deleteOne(path string) error {
	if err := e.Check(path); err != nil {
		return err
	}
	if err := e.trasher.Trash(filepath.Clean(path)); err != nil {
		return fmt.Errorf("%w: %w", ErrTrashFailed, err)
	}
	return nil
}

func batchKey(path string) string {
	key := filepath.Clean(path)
	if model.CaseInsensitiveNames {
		key = strings.ToLower(key)
	}
	return key
}
