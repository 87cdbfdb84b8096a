package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vibecheck-labs/vibecheck/internal/core/domain"
	"github.com/vibecheck-labs/vibecheck/internal/core/ports"
)

// DefaultPlaylistName is used when an export request leaves the name unset.
const DefaultPlaylistName = "My VibeCheck Mix"

const defaultResolveWorkers = 5

// HistorySink accepts fire-and-forget history persistence work so a slow
// store never blocks the response path.
type HistorySink interface {
	SubmitSave(email string, result domain.VibeResult)
}

// Recorder receives orchestration metrics. A nil Recorder is valid.
type Recorder interface {
	RecordGeneration(outcome string, duration time.Duration)
	RecordHistoryHit()
	RecordExport(outcome string)
}

// Deps bundles the collaborators the orchestrator is wired with.
type Deps struct {
	Questions ports.QuestionSource
	Generator ports.VibeGenerator
	Resolver  ports.TrackResolver
	Exporter  ports.PlaylistExporter
	History   ports.HistoryStore

	// Optional.
	Jobs           HistorySink
	Metrics        Recorder
	Logger         *log.Logger
	ResolveWorkers int
}

// Orchestrator coordinates the quiz, the generation/history protocol, the
// vibe cache, and the export flow across runs. Each run owns its own keys;
// no state is shared between runs.
type Orchestrator struct {
	questions ports.QuestionSource
	generator ports.VibeGenerator
	resolver  ports.TrackResolver
	exporter  ports.PlaylistExporter
	history   ports.HistoryStore

	jobs           HistorySink
	metrics        Recorder
	logger         *log.Logger
	resolveWorkers int

	mu   sync.Mutex
	runs map[string]*Run
}

// NewOrchestrator constructs an Orchestrator from its dependencies.
func NewOrchestrator(deps Deps) *Orchestrator {
	logger := deps.Logger
	if logger == nil {
		logger = log.Default()
	}
	workers := deps.ResolveWorkers
	if workers < 1 {
		workers = defaultResolveWorkers
	}
	return &Orchestrator{
		questions:      deps.Questions,
		generator:      deps.Generator,
		resolver:       deps.Resolver,
		exporter:       deps.Exporter,
		history:        deps.History,
		jobs:           deps.Jobs,
		metrics:        deps.Metrics,
		logger:         logger,
		resolveWorkers: workers,
		runs:           make(map[string]*Run),
	}
}

// Questions exposes the question list for a quiz-start fetch.
func (o *Orchestrator) Questions(ctx context.Context) ([]domain.Question, error) {
	questions, err := o.questions.Questions(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: fetch questions: %w", err)
	}
	return questions, nil
}

// StartRun fetches the question list and opens a new run for the session.
// The token is not required yet; generation and export check it.
func (o *Orchestrator) StartRun(ctx context.Context, session domain.Session) (Snapshot, error) {
	questions, err := o.questions.Questions(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("service: fetch questions: %w", err)
	}
	quiz, err := domain.NewQuiz(questions)
	if err != nil {
		return Snapshot{}, fmt.Errorf("service: build quiz: %w", err)
	}

	run := &Run{
		ID:      uuid.New().String(),
		Session: session,
		quiz:    quiz,
	}

	o.mu.Lock()
	o.runs[run.ID] = run
	o.mu.Unlock()

	o.logger.Info("run started", "run", run.ID, "questions", quiz.Total(), "lang", session.Language)
	return run.Snapshot(), nil
}

// Run returns the current snapshot for a run.
func (o *Orchestrator) Run(runID string) (Snapshot, error) {
	run, err := o.lookup(runID)
	if err != nil {
		return Snapshot{}, err
	}
	return run.Snapshot(), nil
}

// EndRun tears the run down. An in-flight generation or export simply has
// its eventual response discarded.
func (o *Orchestrator) EndRun(runID string) {
	o.mu.Lock()
	delete(o.runs, runID)
	o.mu.Unlock()
}

// Answer drives the quiz machine one step. An invalid selection causes no
// transition; the unchanged snapshot is returned along with
// domain.ErrInvalidAnswer so the boundary can decide not to surface it.
func (o *Orchestrator) Answer(runID, value string) (Snapshot, error) {
	run, err := o.lookup(runID)
	if err != nil {
		return Snapshot{}, err
	}
	return run.Select(value)
}

// Generate produces the vibe result for a run. Within one run the order
// is: cache, then (at most once) history, then the generation service.
func (o *Orchestrator) Generate(ctx context.Context, runID string) (domain.VibeResult, error) {
	run, err := o.lookup(runID)
	if err != nil {
		return domain.VibeResult{}, err
	}
	if err := run.Session.RequireToken(); err != nil {
		return domain.VibeResult{}, err
	}

	if cached, ok := run.Cached(); ok {
		return cached, nil
	}

	if run.Session.HasIdentity() && run.claimHistoryCheck() {
		if recovered, ok := o.lookupHistory(ctx, run); ok {
			run.setCached(recovered)
			return recovered, nil
		}
	}

	return o.generate(ctx, run)
}

// Regenerate discards any cached or historical result and always requests
// a fresh generation. On failure the previously cached result is left
// intact; the cache entry is replaced only on success.
func (o *Orchestrator) Regenerate(ctx context.Context, runID string) (domain.VibeResult, error) {
	run, err := o.lookup(runID)
	if err != nil {
		return domain.VibeResult{}, err
	}
	if err := run.Session.RequireToken(); err != nil {
		return domain.VibeResult{}, err
	}

	run.skipHistory()
	return o.generate(ctx, run)
}

// Export materializes the run's cached result as a playlist. Overlapping
// exports for the same run are rejected, never duplicated.
func (o *Orchestrator) Export(ctx context.Context, runID, name string) (domain.PlaylistRef, error) {
	run, err := o.lookup(runID)
	if err != nil {
		return domain.PlaylistRef{}, err
	}
	if err := run.Session.RequireToken(); err != nil {
		return domain.PlaylistRef{}, err
	}

	result, ok := run.Cached()
	if !ok {
		return domain.PlaylistRef{}, domain.ErrNoTracks
	}
	uris := result.URIs()
	if len(uris) == 0 {
		return domain.PlaylistRef{}, domain.ErrNoTracks
	}
	if name == "" {
		name = DefaultPlaylistName
	}

	if !run.beginExport() {
		return domain.PlaylistRef{}, domain.ErrExportInFlight
	}
	defer run.endExport()

	ref, err := o.exporter.ExportPlaylist(ctx, run.Session.Token, name, uris)
	if err != nil {
		o.recordExport("failure")
		o.logger.Error("export failed", "run", run.ID, "err", err)
		return domain.PlaylistRef{}, fmt.Errorf("service: %w: %v", domain.ErrExportFailed, err)
	}

	o.recordExport("success")
	o.logger.Info("playlist exported", "run", run.ID, "playlist", ref.ID)
	return ref, nil
}

// SyncUser upserts the user row at login time.
func (o *Orchestrator) SyncUser(ctx context.Context, email, spotifyID string) error {
	if email == "" {
		return nil
	}
	if err := o.history.SyncUser(ctx, email, spotifyID); err != nil {
		return fmt.Errorf("service: sync user: %w", err)
	}
	return nil
}

// LastVibe looks up the stored result and generation count for a known
// identity directly, outside any run. Returns domain.ErrNotFound when the
// user has no stored vibe.
func (o *Orchestrator) LastVibe(ctx context.Context, email string) (domain.VibeResult, int, error) {
	if email == "" {
		return domain.VibeResult{}, 0, domain.ErrNotFound
	}
	result, err := o.history.LastVibe(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.VibeResult{}, 0, domain.ErrNotFound
		}
		return domain.VibeResult{}, 0, fmt.Errorf("service: history lookup: %w", err)
	}

	count, err := o.history.SearchCount(ctx, email)
	if err != nil {
		// The counter is cosmetic; a failed read never hides the vibe.
		o.logger.Warn("search count lookup failed", "email", email, "err", err)
		count = 0
	}
	return result, count, nil
}

func (o *Orchestrator) lookup(runID string) (*Run, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	run, ok := o.runs[runID]
	if !ok {
		return nil, domain.ErrRunNotFound
	}
	return run, nil
}

// lookupHistory is best-effort: a store failure is logged and treated
// exactly like an absent entry so it never blocks generation.
func (o *Orchestrator) lookupHistory(ctx context.Context, run *Run) (domain.VibeResult, bool) {
	recovered, err := o.history.LastVibe(ctx, run.Session.Email)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			o.logger.Warn("history lookup failed, falling back to generation", "run", run.ID, "err", err)
		}
		return domain.VibeResult{}, false
	}
	if err := recovered.Validate(); err != nil {
		o.logger.Warn("discarding invalid history entry", "run", run.ID, "err", err)
		return domain.VibeResult{}, false
	}
	o.recordHistoryHit()
	o.logger.Info("history hit, skipping generation", "run", run.ID)
	return recovered, true
}

func (o *Orchestrator) generate(ctx context.Context, run *Run) (domain.VibeResult, error) {
	answers := run.answerMap()

	started := time.Now()
	draft, err := o.generator.GenerateVibe(ctx, answers, run.Session.Language)
	if err != nil {
		o.recordGeneration("failure", time.Since(started))
		return domain.VibeResult{}, fmt.Errorf("service: %w: %v", domain.ErrGenerationFailed, err)
	}

	tracks := o.resolveSuggestions(ctx, run.Session.Token, draft.Suggestions)

	result := domain.VibeResult{
		Tracks:  tracks,
		Summary: draft.Summary,
		Stats:   draft.Stats,
	}
	result.NormalizeStats()
	if err := result.Validate(); err != nil {
		o.recordGeneration("failure", time.Since(started))
		return domain.VibeResult{}, fmt.Errorf("service: %w: %v", domain.ErrGenerationFailed, err)
	}

	run.setCached(result)
	o.recordGeneration("success", time.Since(started))
	o.logger.Info("vibe generated", "run", run.ID, "tracks", len(result.Tracks))

	if run.Session.HasIdentity() && o.jobs != nil {
		o.jobs.SubmitSave(run.Session.Email, result)
	}

	return result, nil
}

// resolveSuggestions fans the draft suggestions out over a bounded set of
// workers and keeps the survivors in suggestion order. A suggestion that
// fails to resolve is dropped, not guessed.
func (o *Orchestrator) resolveSuggestions(ctx context.Context, token string, suggestions []domain.Suggestion) []domain.Track {
	resolved := make([]*domain.Track, len(suggestions))

	var wg sync.WaitGroup
	sem := make(chan struct{}, o.resolveWorkers)
	for i, s := range suggestions {
		wg.Add(1)
		go func(i int, s domain.Suggestion) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			track, err := o.resolver.ResolveTrack(ctx, token, s.Title, s.Artist)
			if err != nil {
				if errors.Is(err, ports.ErrNoConfidentMatch) {
					o.logger.Debug("dropping unresolved suggestion", "title", s.Title, "artist", s.Artist)
				} else {
					o.logger.Warn("track resolution failed", "title", s.Title, "err", err)
				}
				return
			}
			resolved[i] = &track
		}(i, s)
	}
	wg.Wait()

	tracks := make([]domain.Track, 0, len(suggestions))
	seen := make(map[string]struct{}, len(suggestions))
	for _, t := range resolved {
		if t == nil {
			continue
		}
		if _, dup := seen[t.ID]; dup {
			continue
		}
		seen[t.ID] = struct{}{}
		tracks = append(tracks, *t)
	}
	return tracks
}

func (o *Orchestrator) recordGeneration(outcome string, d time.Duration) {
	if o.metrics != nil {
		o.metrics.RecordGeneration(outcome, d)
	}
}

func (o *Orchestrator) recordHistoryHit() {
	if o.metrics != nil {
		o.metrics.RecordHistoryHit()
	}
}

func (o *Orchestrator) recordExport(outcome string) {
	if o.metrics != nil {
		o.metrics.RecordExport(outcome)
	}
}
