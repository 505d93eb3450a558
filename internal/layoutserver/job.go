package layoutserver

import (
	"sync"

	"github.com/lattice-viz/layoutengine/internal/layoutengine"
)

// transitionJob is the work a POST /transition call hands off to a
// future GET /layout/stream connection: the endpoints of the
// animation and the duration to animate them over. The target
// positions are already computed by the time the job is stored, so
// streaming never re-runs ComputeLayout.
type transitionJob struct {
	from       layoutengine.Positions
	to         layoutengine.Positions
	durationMs float64
}

// jobStore holds pending transition jobs by token, in memory only:
// these tokens are short-lived and never persisted.
type jobStore struct {
	mu   sync.Mutex
	jobs map[string]*transitionJob
}

func newJobStore() *jobStore {
	return &jobStore{jobs: make(map[string]*transitionJob)}
}

func (s *jobStore) put(token string, job *transitionJob) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[token] = job
}

// take pops the job for token so a stream can only be consumed once.
func (s *jobStore) take(token string) (*transitionJob, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[token]
	if ok {
		delete(s.jobs, token)
	}
	return job, ok
}
