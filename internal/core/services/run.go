package services

import (
	"sync"

	"github.com/vibecheck-labs/vibecheck/internal/core/domain"
)

// Run is one end-to-end pass from quiz start to an optional export, scoped
// to a single session identity. All mutable state for the pass lives here,
// behind one lock; there are no ambient globals.
type Run struct {
	ID      string
	Session domain.Session

	mu             sync.Mutex
	quiz           *domain.Quiz
	cached         *domain.VibeResult
	historyChecked bool
	exporting      bool
}

// Select drives the quiz one step and returns the resulting snapshot.
// The quiz is only ever touched under the run lock, so two racing
// selections serialize: one advances the machine, the other hits the
// already-advanced question and is rejected there.
func (r *Run) Select(value string) (Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	err := r.quiz.Select(value)
	return r.snapshotLocked(), err
}

// Snapshot returns the externally visible view of the run's quiz progress.
func (r *Run) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

// answerMap returns the finalized answers, or an empty map while the quiz
// is still in progress.
func (r *Run) answerMap() map[string]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if set, err := r.quiz.Answers(); err == nil {
		return set.Map()
	}
	return map[string]string{}
}

// Cached returns the memoized vibe result for this run, if any.
func (r *Run) Cached() (domain.VibeResult, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cached == nil {
		return domain.VibeResult{}, false
	}
	return *r.cached, true
}

// setCached replaces the cache entry wholesale. Only validated results are
// ever written here.
func (r *Run) setCached(result domain.VibeResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cached = &result
}

// claimHistoryCheck latches the history lookup so it runs at most once per
// run. Returns true for the caller that won the latch.
func (r *Run) claimHistoryCheck() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.historyChecked {
		return false
	}
	r.historyChecked = true
	return true
}

// skipHistory latches the history check without performing it. Used by
// regeneration, which never replays history.
func (r *Run) skipHistory() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.historyChecked = true
}

// beginExport sets the in-flight flag. A second concurrent export for the
// same run loses and must be rejected.
func (r *Run) beginExport() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.exporting {
		return false
	}
	r.exporting = true
	return true
}

func (r *Run) endExport() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exporting = false
}

// Snapshot is the externally visible view of a run's quiz progress.
type Snapshot struct {
	RunID    string           `json:"run_id"`
	State    domain.QuizState `json:"state"`
	Step     int              `json:"step"`
	Total    int              `json:"total"`
	Question *domain.Question `json:"question,omitempty"`
	Language string           `json:"language"`
}

func (r *Run) snapshotLocked() Snapshot {
	s := Snapshot{
		RunID:    r.ID,
		State:    r.quiz.State(),
		Step:     r.quiz.Step(),
		Total:    r.quiz.Total(),
		Language: r.Session.Language,
	}
	if q, ok := r.quiz.Current(); ok {
		s.Question = &q
	}
	return s
}
