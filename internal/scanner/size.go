package scanner

import (
	"context"
	"io/fs"
	"os"
	"sync"
	"sync/atomic"

	"github.com/charlievieth/fastwalk"
	"github.com/lumipallolabs/nodesweep/internal/logging"
)

// SizeCalculator totals the bytes of regular files below a directory
type SizeCalculator struct {
	workers int
	policy  *SkipPolicy
}

// NewSizeCalculator creates a calculator walking each subtree with the given
// number of fastwalk workers. policy supplies the virtual filesystem check;
// nil uses the platform defaults.
func NewSizeCalculator(workers int, policy *SkipPolicy) *SizeCalculator {
	if workers < 1 {
		workers = 4
	}
	if policy == nil {
		policy = NewSkipPolicy(0, nil, nil)
	}
	return &SizeCalculator{workers: workers, policy: policy}
}

// Size walks root without following symlinks. Unreadable entries count as
// zero; the only error returned is the context's.
func (c *SizeCalculator) Size(ctx context.Context, root string) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	rootInfo, err := os.Stat(root)
	if err != nil || !rootInfo.IsDir() {
		return 0, nil
	}
	rootDev := deviceOf(rootInfo)

	var (
		total     atomic.Uint64
		seenDirs  sync.Map
		seenLinks sync.Map
	)

	conf := &fastwalk.Config{
		Follow:     false,
		NumWorkers: c.workers,
	}

	walkErr := fastwalk.Walk(conf, root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil || d == nil {
			return nil
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return fs.SkipDir
			}
			if c.policy.isVirtualMount(path, info, rootDev) {
				return fs.SkipDir
			}
			if id, ok := dirIdentity(path, info); ok {
				if _, dup := seenDirs.LoadOrStore(id, struct{}{}); dup {
					return fs.SkipDir
				}
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if id, ok := hardLinkID(info); ok {
			if _, dup := seenLinks.LoadOrStore(id, struct{}{}); dup {
				return nil
			}
		}
		if size := info.Size(); size > 0 {
			total.Add(uint64(size))
		}
		return nil
	})

	if ctxErr := ctx.Err(); ctxErr != nil {
		return 0, ctxErr
	}
	if walkErr != nil {
		logging.Scanner.Printf("size walk %s: %v", root, walkErr)
	}
	return total.Load(), nil
}
