package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	Purpose string    // filter by purpose ("" = all)
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a recorded LLM request event.
type LLMEvent struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates token usage for one purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates token usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events matching opts, newest first.
	// Request and response bodies are not populated; use GetLLMEvent.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns one event with full bodies, or nil if not found.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	// LLMUsageByPurpose aggregates usage grouped by purpose label.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)

	// LLMUsageByModel aggregates usage grouped by model.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}

// UserStats is the persisted per-user record: training level plus the
// cumulative counters the session layer derives scores from.
type UserStats struct {
	UserID           string
	Level            string
	TotalCases       int
	CorrectDiagnoses int
	CorrectTriages   int
	UpdatedAt        time.Time
}

// StatsRepo persists per-user statistics. The session layer treats it as
// best-effort: sessions function fully in memory when it is unavailable.
type StatsRepo interface {
	// SaveUserStats upserts the record for stats.UserID.
	SaveUserStats(ctx context.Context, stats UserStats) error

	// GetUserStats returns the record for userID, or nil if absent.
	GetUserStats(ctx context.Context, userID string) (*UserStats, error)

	// ResetUserStats deletes the record for userID.
	ResetUserStats(ctx context.Context, userID string) error
}
