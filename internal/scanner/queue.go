package scanner

import "sync"

// visit is one directory waiting to be listed
type visit struct {
	path  string
	depth int
	dev   uint64
	root  *rootQueue
}

// rootQueue holds the pending directories of one scan root. Popping from the
// end keeps the walk depth-first.
type rootQueue struct {
	path    string
	stack   []visit
	visited *visitedSet
}

// scheduler hands out visits across roots in round-robin order and detects
// quiescence: no pending visits and no worker mid-visit.
type scheduler struct {
	mu      sync.Mutex
	cond    *sync.Cond
	queues  []*rootQueue
	cursor  int
	pending int
	active  int
	stopped bool
}

func newScheduler() *scheduler {
	s := &scheduler{}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// addRoot registers a root queue; must be called before workers start
func (s *scheduler) addRoot(path string) *rootQueue {
	q := &rootQueue{path: path, visited: newVisitedSet()}
	s.mu.Lock()
	s.queues = append(s.queues, q)
	s.mu.Unlock()
	return q
}

// push enqueues v on its root's stack
func (s *scheduler) push(v visit) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	v.root.stack = append(v.root.stack, v)
	s.pending++
	s.mu.Unlock()
	s.cond.Signal()
}

// next blocks until a visit is available. It returns false once the
// scheduler is stopped or all work has drained. A true return must be paired
// with a call to done.
func (s *scheduler) next() (visit, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		if s.stopped {
			return visit{}, false
		}
		if s.pending > 0 {
			v := s.pop()
			s.pending--
			s.active++
			return v, true
		}
		if s.active == 0 {
			s.cond.Broadcast()
			return visit{}, false
		}
		s.cond.Wait()
	}
}

// pop takes the top of the next non-empty root stack after the cursor
func (s *scheduler) pop() visit {
	n := len(s.queues)
	for i := 0; i < n; i++ {
		idx := (s.cursor + i) % n
		q := s.queues[idx]
		if last := len(q.stack) - 1; last >= 0 {
			v := q.stack[last]
			q.stack[last] = visit{}
			q.stack = q.stack[:last]
			s.cursor = (idx + 1) % n
			return v
		}
	}
	panic("scanner: pending count out of sync with queues")
}

// done marks the end of a visit returned by next
func (s *scheduler) done() {
	s.mu.Lock()
	s.active--
	drained := s.active == 0 && s.pending == 0
	s.mu.Unlock()
	if drained {
		s.cond.Broadcast()
	}
}

// stop wakes every waiting worker and refuses further work
func (s *scheduler) stop() {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()
	s.cond.Broadcast()
}

// len returns the number of pending visits
func (s *scheduler) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// sizeQueue is a FIFO of match paths waiting for a size worker. Pushing
// never blocks, so traversal workers do not wait on size calculations.
type sizeQueue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	paths  []string
	closed bool
}

func newSizeQueue() *sizeQueue {
	q := &sizeQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// push appends path; it is dropped once the queue is closed
func (q *sizeQueue) push(path string) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.paths = append(q.paths, path)
	q.mu.Unlock()
	q.cond.Signal()
}

// pop blocks until a path is available. It returns false once the queue is
// closed and empty.
func (q *sizeQueue) pop() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.paths) == 0 {
		if q.closed {
			return "", false
		}
		q.cond.Wait()
	}
	path := q.paths[0]
	q.paths[0] = ""
	q.paths = q.paths[1:]
	return path, true
}

// close lets workers drain what is queued and then return
func (q *sizeQueue) close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.cond.Broadcast()
}
