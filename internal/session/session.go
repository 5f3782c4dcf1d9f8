package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/IgorHWebDev/healthcare-sim/internal/medcase"
	"github.com/IgorHWebDev/healthcare-sim/internal/store"
)

// Phase is the lifecycle state of a session's case flow.
type Phase int

const (
	PhaseIdle       Phase = iota // no active case
	PhaseCaseActive              // case presented, awaiting a diagnostic response
	PhaseEvaluating              // response submitted, evaluation in flight
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseCaseActive:
		return "case-active"
	case PhaseEvaluating:
		return "evaluating"
	}
	return "unknown"
}

// State-machine rejections. These are user-correctable conditions reported
// directly to the caller; they never reach the scheduler.
var (
	ErrNoActiveCase       = errors.New("no active case")
	ErrCaseInProgress     = errors.New("a case is already active")
	ErrEvaluationInFlight = errors.New("an evaluation is in progress")
)

// Session is one user's case lifecycle. All transitions are serialized by
// the session's own mutex; a case is owned by exactly one session and is
// never shared.
type Session struct {
	userID   string
	pipeline *medcase.Pipeline
	stats    store.StatsRepo // may be nil; persistence is best-effort

	mu            sync.Mutex
	level         medcase.UserLevel
	phase         Phase
	activeCase    *medcase.Case // non-nil iff phase != PhaseIdle
	caseStartedAt time.Time
	totals        Stats
}

func newSession(userID string, pipeline *medcase.Pipeline, stats store.StatsRepo) *Session {
	return &Session{
		userID:   userID,
		pipeline: pipeline,
		stats:    stats,
		level:    medcase.LevelStudent,
	}
}

// RequestCase generates and activates a new case. An empty difficulty
// selects the tier matching the user's training level. The transition is
// total once admitted: generation failures resolve to a fallback case, so
// the session always lands in PhaseCaseActive. Requesting while a case is
// active or under evaluation is rejected without altering session state.
func (s *Session) RequestCase(ctx context.Context, difficulty medcase.Difficulty) (*medcase.Case, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.phase {
	case PhaseCaseActive:
		return nil, ErrCaseInProgress
	case PhaseEvaluating:
		return nil, ErrEvaluationInFlight
	}

	if difficulty == "" {
		difficulty = medcase.DefaultDifficulty(s.level)
	}

	c := s.pipeline.GenerateCase(ctx, difficulty)
	s.phase = PhaseCaseActive
	s.activeCase = c
	s.caseStartedAt = time.Now()
	return c, nil
}

// Submit evaluates a diagnostic response against the active case, updates
// statistics, and returns the session to PhaseIdle. Evaluation failures
// produce a template-based evaluation rather than an error; the caller
// only sees an error when no case is active or an evaluation is already
// running.
func (s *Session) Submit(ctx context.Context, response string) (medcase.Evaluation, error) {
	s.mu.Lock()
	switch s.phase {
	case PhaseEvaluating:
		s.mu.Unlock()
		return medcase.Evaluation{}, ErrEvaluationInFlight
	case PhaseIdle:
		s.mu.Unlock()
		return medcase.Evaluation{}, ErrNoActiveCase
	}
	c := s.activeCase
	level := s.level
	s.phase = PhaseEvaluating
	s.mu.Unlock()

	ev := s.pipeline.Evaluate(ctx, c, response, level)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.totals.TotalCases++
	if ev.CorrectDiagnosis {
		s.totals.CorrectDiagnoses++
	}
	if ev.AppropriateTriage {
		s.totals.CorrectTriages++
	}
	s.activeCase = nil
	s.caseStartedAt = time.Time{}
	s.phase = PhaseIdle
	s.persistLocked(ctx)
	return ev, nil
}

// Cancel discards the active case without affecting statistics. An
// in-flight generation or evaluation request is not interrupted; its
// eventual resolution applies to no session and is discarded.
func (s *Session) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.phase {
	case PhaseCaseActive:
		s.activeCase = nil
		s.caseStartedAt = time.Time{}
		s.phase = PhaseIdle
		return nil
	case PhaseEvaluating:
		return ErrEvaluationInFlight
	}
	return ErrNoActiveCase
}

// Hint produces diagnostic hints for the active case.
func (s *Session) Hint(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	if s.phase != PhaseCaseActive {
		s.mu.Unlock()
		return nil, ErrNoActiveCase
	}
	c := s.activeCase
	s.mu.Unlock()

	return s.pipeline.Hints(ctx, c)
}

// SetLevel updates the user's training level. The new level applies to the
// next case request; an active case keeps its difficulty.
func (s *Session) SetLevel(ctx context.Context, level medcase.UserLevel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.level = level
	s.persistLocked(ctx)
}

// Level returns the user's training level.
func (s *Session) Level() medcase.UserLevel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// ActiveCase returns the active case and when it was presented, or
// (nil, zero) when no case is active.
func (s *Session) ActiveCase() (*medcase.Case, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseIdle {
		return nil, time.Time{}
	}
	return s.activeCase, s.caseStartedAt
}

// Stats returns a snapshot of the session's cumulative statistics.
func (s *Session) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totals
}

// persistLocked writes level and counters through the stats repo.
// Best-effort: the session is fully functional in memory when the repo is
// nil or unavailable. Caller must hold s.mu.
func (s *Session) persistLocked(ctx context.Context) {
	if s.stats == nil {
		return
	}
	_ = s.stats.SaveUserStats(ctx, store.UserStats{
		UserID:           s.userID,
		Level:            string(s.level),
		TotalCases:       s.totals.TotalCases,
		CorrectDiagnoses: s.totals.CorrectDiagnoses,
		CorrectTriages:   s.totals.CorrectTriages,
	})
}
