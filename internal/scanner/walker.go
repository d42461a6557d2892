package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/lumipallolabs/nodesweep/internal/logging"
	"github.com/lumipallolabs/nodesweep/internal/model"
	"golang.org/x/sync/errgroup"
)

// sizeWalkWorkers is the fastwalk concurrency inside one size calculation
const sizeWalkWorkers = 4

var errNotDirectory = errors.New("not a directory")

// Walker implements parallel node_modules discovery
type Walker struct {
	opts     Options
	policy   *SkipPolicy
	sizer    *SizeCalculator
	stats    counters
	reporter *reporter
	used     atomic.Bool

	roots map[string]struct{} // folded session roots

	mu       sync.Mutex
	matches  map[string]model.Match
	rootErrs []model.RootError

	sizeJobs *sizeQueue
}

// NewWalker creates a walker for a single scan session
func NewWalker(opts Options) *Walker {
	opts = opts.withDefaults()
	policy := NewSkipPolicy(opts.MaxDepth, opts.SkipNames, opts.SkipPaths)

	return &Walker{
		opts:     opts,
		policy:   policy,
		sizer:    NewSizeCalculator(sizeWalkWorkers, policy),
		reporter: newReporter(opts.ProgressInterval),
		roots:    make(map[string]struct{}),
		matches:  make(map[string]model.Match),
		sizeJobs: newSizeQueue(),
	}
}

// Progress returns the progress channel
func (w *Walker) Progress() <-chan model.ScanProgress {
	return w.reporter.ch
}

// Scan walks every root until the queues drain or ctx is cancelled. A
// cancelled scan still returns the matches found so far with Aborted set.
func (w *Walker) Scan(ctx context.Context, roots []string) (*Result, error) {
	if !w.used.CompareAndSwap(false, true) {
		return nil, ErrWalkerReused
	}

	roots, err := normalizeRoots(roots)
	if err != nil {
		close(w.reporter.ch)
		return nil, err
	}
	for _, root := range roots {
		w.roots[foldName(root)] = struct{}{}
	}

	logging.Scanner.Printf("scan start: %d roots, %d workers, sizes=%v",
		len(roots), w.opts.Workers, w.opts.IncludeSizes)

	var sizers errgroup.Group
	if w.opts.IncludeSizes {
		for i := 0; i < w.opts.SizeWorkers; i++ {
			sizers.Go(func() error {
				w.runSizer(ctx)
				return nil
			})
		}
	}

	sched := newScheduler()
	for _, root := range roots {
		w.seedRoot(sched, root)
	}

	go w.reporter.run(func() model.ScanProgress {
		return w.stats.snapshot(sched.len(), false)
	})

	stopOnCancel := context.AfterFunc(ctx, sched.stop)

	var workers errgroup.Group
	for i := 0; i < w.opts.Workers; i++ {
		workers.Go(func() error {
			for {
				v, ok := sched.next()
				if !ok {
					return nil
				}
				w.visit(ctx, sched, v)
				sched.done()
			}
		})
	}
	_ = workers.Wait()
	stopOnCancel()
	sched.stop()

	w.sizeJobs.close()
	_ = sizers.Wait()

	aborted := ctx.Err() != nil
	final := w.stats.snapshot(0, true)
	w.reporter.finish(final)

	result := &Result{
		Matches:    w.sortedMatches(),
		RootErrors: w.sortedRootErrors(),
		Progress:   final,
		Aborted:    aborted,
	}
	logging.Scanner.Printf("scan end: %d matches, %d folders, %d skipped, aborted=%v",
		len(result.Matches), final.FoldersScanned, final.DirectoriesSkipped, aborted)
	return result, nil
}

// seedRoot validates a root and queues it. A root named node_modules is
// itself the match.
func (w *Walker) seedRoot(sched *scheduler, root string) {
	info, err := os.Stat(root)
	if err != nil {
		w.rootError(root, err)
		return
	}
	if !info.IsDir() {
		w.rootError(root, errNotDirectory)
		return
	}
	if model.IsNodeModulesName(filepath.Base(root)) {
		w.recordMatch(root)
		return
	}

	q := sched.addRoot(root)
	if id, ok := dirIdentity(root, info); ok {
		q.visited.add(id)
	}
	w.stats.roots.Add(1)
	w.stats.discovered.Add(1)
	sched.push(visit{path: root, dev: deviceOf(info), root: q})
}

// visit lists one directory and classifies its children
func (w *Walker) visit(ctx context.Context, sched *scheduler, v visit) {
	entries, err := readDir(v.path)
	if err != nil && len(entries) == 0 {
		if v.depth == 0 {
			w.rootError(v.path, err)
			return
		}
		w.stats.skipped.Add(1)
		logging.Scanner.Printf("skip unreadable %s: %v", v.path, err)
		return
	}

	w.stats.setCurrent(v.path)
	w.stats.scanned.Add(1)

	depth := v.depth + 1
	for _, entry := range entries {
		if ctx.Err() != nil {
			return
		}

		typ := entry.Type()
		linked := typ&(fs.ModeSymlink|fs.ModeIrregular) != 0
		if !entry.IsDir() && !linked {
			continue
		}

		name := entry.Name()
		path := filepath.Join(v.path, name)
		if w.isSessionRoot(path) {
			continue
		}

		if model.IsNodeModulesName(name) {
			switch {
			case linked:
			case w.policy.IsSystemPath(path, name, depth):
				w.stats.skipped.Add(1)
			default:
				w.recordMatch(path)
			}
			continue
		}

		info, ok := dirInfo(path, entry, linked)
		if !ok {
			continue
		}

		decision := w.policy.Decide(path, name, depth, info, v.dev, v.root.visited)
		if decision != Enter {
			w.stats.skipped.Add(1)
			continue
		}
		w.stats.discovered.Add(1)
		sched.push(visit{path: path, depth: depth, dev: deviceOf(info), root: v.root})
	}
}

// dirInfo resolves a child to directory metadata, following symlinks and
// junctions. Non-directories and broken links report false.
func dirInfo(path string, entry fs.DirEntry, linked bool) (fs.FileInfo, bool) {
	var (
		info fs.FileInfo
		err  error
	)
	if linked {
		info, err = os.Stat(path)
	} else {
		info, err = entry.Info()
	}
	if err != nil || !info.IsDir() {
		return nil, false
	}
	return info, true
}

func (w *Walker) isSessionRoot(path string) bool {
	_, ok := w.roots[foldName(path)]
	return ok
}

// recordMatch adds a match once and queues its size calculation
func (w *Walker) recordMatch(path string) {
	w.mu.Lock()
	if _, exists := w.matches[path]; exists {
		w.mu.Unlock()
		return
	}
	w.matches[path] = model.NewMatch(path)
	w.mu.Unlock()

	w.stats.found.Add(1)
	if w.opts.IncludeSizes {
		w.sizeJobs.push(path)
	}
}

// runSizer measures queued matches until the queue closes. After
// cancellation the rest of the queue is discarded unmeasured.
func (w *Walker) runSizer(ctx context.Context) {
	for {
		path, ok := w.sizeJobs.pop()
		if !ok {
			return
		}
		if ctx.Err() != nil {
			continue
		}
		w.measure(ctx, path)
	}
}

func (w *Walker) measure(ctx context.Context, path string) {
	size, err := w.sizer.Size(ctx, path)
	if err != nil {
		logging.Scanner.Printf("size %s: %v", path, err)
		return
	}
	w.mu.Lock()
	w.matches[path] = w.matches[path].WithSize(size)
	w.mu.Unlock()
}

func (w *Walker) rootError(root string, err error) {
	rootErr := model.RootError{
		Root: root,
		Err:  fmt.Errorf("%w: %w", ErrRootUnavailable, err),
	}
	logging.Scanner.Printf("root error: %v", rootErr)

	w.mu.Lock()
	w.rootErrs = append(w.rootErrs, rootErr)
	w.mu.Unlock()

	if w.opts.OnRootError != nil {
		w.opts.OnRootError(rootErr)
	}
}

func (w *Walker) sortedMatches() []model.Match {
	w.mu.Lock()
	matches := make([]model.Match, 0, len(w.matches))
	for _, m := range w.matches {
		matches = append(matches, m)
	}
	w.mu.Unlock()
	model.SortByPath(matches)
	return matches
}

func (w *Walker) sortedRootErrors() []model.RootError {
	w.mu.Lock()
	errs := append([]model.RootError(nil), w.rootErrs...)
	w.mu.Unlock()
	sort.Slice(errs, func(i, j int) bool { return errs[i].Root < errs[j].Root })
	return errs
}

// readDir lists a directory unsorted. Entries read before an error are
// returned alongside it.
func readDir(path string) ([]os.DirEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.ReadDir(-1)
}

// normalizeRoots makes roots absolute and drops duplicates
func normalizeRoots(roots []string) ([]string, error) {
	seen := make(map[string]struct{}, len(roots))
	out := make([]string, 0, len(roots))
	for _, root := range roots {
		if strings.TrimSpace(root) == "" {
			continue
		}
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("resolve root %q: %w", root, err)
		}
		key := foldName(abs)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, abs)
	}
	if len(out) == 0 {
		return nil, ErrNoRoots
	}
	return out, nil
}

// Ensure Walker implements Scanner
var _ Scanner = (*Walker)(nil)
