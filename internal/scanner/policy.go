package scanner

import (
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/lumipallolabs/nodesweep/internal/model"
)

// Decision is the outcome of evaluating a directory against the SkipPolicy
type Decision int

const (
	// Enter means the directory is listed and its children classified
	Enter Decision = iota
	// SkipSystem covers system paths, virtual filesystems, OS folders and
	// names known never to hold projects
	SkipSystem
	// SkipDepth means the directory lies below the configured maximum depth
	SkipDepth
	// SkipCycle means the directory identity was already visited
	SkipCycle
)

// String returns a human-readable decision name
func (d Decision) String() string {
	switch d {
	case Enter:
		return "enter"
	case SkipSystem:
		return "system"
	case SkipDepth:
		return "depth"
	case SkipCycle:
		return "cycle"
	default:
		return "unknown"
	}
}

// defaultSkipNames are never entered anywhere in a tree
var defaultSkipNames = []string{
	// version control metadata
	".git", ".hg", ".svn", ".bzr",
	// trash and OS metadata
	".Trash", ".Trashes", "$RECYCLE.BIN", ".Spotlight-V100", ".fseventsd",
	".DocumentRevisions-V100", ".TemporaryItems", "lost+found",
	// package manager stores and caches
	".npm", ".pnpm-store", ".yarn-cache",
}

// trashPrefix marks per-volume freedesktop trash folders (.Trash-1000)
const trashPrefix = ".Trash-"

// SkipPolicy decides whether a directory should be entered
type SkipPolicy struct {
	names     map[string]struct{}
	rootNames map[string]struct{}
	paths     map[string]struct{}
	maxDepth  int
}

// NewSkipPolicy builds a policy from the platform defaults plus extras
func NewSkipPolicy(maxDepth int, extraNames, extraPaths []string) *SkipPolicy {
	p := &SkipPolicy{
		names:     make(map[string]struct{}),
		rootNames: make(map[string]struct{}),
		paths:     make(map[string]struct{}),
		maxDepth:  maxDepth,
	}
	for _, name := range defaultSkipNames {
		p.names[foldName(name)] = struct{}{}
	}
	for _, name := range extraNames {
		if name != "" {
			p.names[foldName(name)] = struct{}{}
		}
	}
	for _, name := range platformRootSkipNames {
		p.rootNames[foldName(name)] = struct{}{}
	}
	for _, path := range append(platformSkipPaths(), extraPaths...) {
		if path != "" {
			p.paths[foldName(filepath.Clean(path))] = struct{}{}
		}
	}
	return p
}

// Decide evaluates a directory at the given depth below its root. info is
// the directory's stat (symlinks already resolved), parentDev the device of
// the directory being listed. visited may be nil when cycle detection is not
// wanted.
func (p *SkipPolicy) Decide(path, name string, depth int, info fs.FileInfo, parentDev uint64, visited *visitedSet) Decision {
	if p.IsSystemPath(path, name, depth) {
		return SkipSystem
	}
	if p.maxDepth > 0 && depth > p.maxDepth {
		return SkipDepth
	}
	if isHiddenSystem(info) {
		return SkipSystem
	}
	if p.isVirtualMount(path, info, parentDev) {
		return SkipSystem
	}
	if visited != nil {
		if id, ok := dirIdentity(path, info); ok && !visited.add(id) {
			return SkipCycle
		}
	}
	return Enter
}

// IsSystemPath applies the name and path rules, which need no metadata
func (p *SkipPolicy) IsSystemPath(path, name string, depth int) bool {
	folded := foldName(name)
	if _, ok := p.names[folded]; ok {
		return true
	}
	if strings.HasPrefix(name, trashPrefix) {
		return true
	}
	if depth == 1 {
		if _, ok := p.rootNames[folded]; ok {
			return true
		}
	}
	_, ok := p.paths[foldName(path)]
	return ok
}

// isVirtualMount checks the filesystem type only when crossing into another
// device, keeping statfs calls to mount boundaries
func (p *SkipPolicy) isVirtualMount(path string, info fs.FileInfo, parentDev uint64) bool {
	if deviceOf(info) == parentDev {
		return false
	}
	return isVirtualFS(path)
}

func foldName(name string) string {
	if model.CaseInsensitiveNames {
		return strings.ToLower(name)
	}
	return name
}

// visitedSet records directory identities seen during one root's traversal
type visitedSet struct {
	mu   sync.Mutex
	seen map[fileID]struct{}
}

func newVisitedSet() *visitedSet {
	return &visitedSet{seen: make(map[fileID]struct{})}
}

// add records id and reports whether it was new
func (v *visitedSet) add(id fileID) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.seen[id]; ok {
		return false
	}
	v.seen[id] = struct{}{}
	return true
}

func (v *visitedSet) len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.seen)
}
