package session

import (
	"context"
	"sync"

	"github.com/IgorHWebDev/healthcare-sim/internal/medcase"
	"github.com/IgorHWebDev/healthcare-sim/internal/store"
)

// Manager owns the per-user sessions. Sessions are created lazily on
// first interaction and live for the process lifetime.
type Manager struct {
	pipeline *medcase.Pipeline
	stats    store.StatsRepo // may be nil

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates a Manager. stats may be nil, in which case sessions
// run purely in memory.
func NewManager(pipeline *medcase.Pipeline, stats store.StatsRepo) *Manager {
	return &Manager{
		pipeline: pipeline,
		stats:    stats,
		sessions: make(map[string]*Session),
	}
}

// Get returns the session for userID, creating it on first use. A new
// session restores its level and counters from the stats repo when a
// record exists; load failures leave a fresh in-memory session.
func (m *Manager) Get(ctx context.Context, userID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[userID]; ok {
		return s
	}

	s := newSession(userID, m.pipeline, m.stats)
	if m.stats != nil {
		if rec, err := m.stats.GetUserStats(ctx, userID); err == nil && rec != nil {
			if lvl, ok := medcase.ParseLevel(rec.Level); ok {
				s.level = lvl
			}
			s.totals = Stats{
				TotalCases:       rec.TotalCases,
				CorrectDiagnoses: rec.CorrectDiagnoses,
				CorrectTriages:   rec.CorrectTriages,
			}
		}
	}
	m.sessions[userID] = s
	return s
}

// Reset discards the in-memory session and persisted record for userID.
func (m *Manager) Reset(ctx context.Context, userID string) error {
	m.mu.Lock()
	delete(m.sessions, userID)
	m.mu.Unlock()

	if m.stats == nil {
		return nil
	}
	return m.stats.ResetUserStats(ctx, userID)
}
