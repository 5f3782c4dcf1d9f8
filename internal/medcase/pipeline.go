package medcase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IgorHWebDev/healthcare-sim/internal/inference"
	"github.com/IgorHWebDev/healthcare-sim/internal/llm"
	"github.com/google/uuid"
)

// Pipeline produces cases, evaluations, hints, and educational content
// through the inference scheduler. Case generation and evaluation never
// surface provider errors to the caller: every failure path ends in a
// fallback case or a templated evaluation.
type Pipeline struct {
	sched *inference.Scheduler
	bank  *Bank
	cfg   Config
}

// NewPipeline creates a Pipeline over the given scheduler.
func NewPipeline(sched *inference.Scheduler, cfg Config) *Pipeline {
	return &Pipeline{sched: sched, bank: NewBank(), cfg: cfg}
}

// GenerateCase produces a validated case at the given difficulty. It is
// total: provider failures, timeouts, and validation rejects all resolve
// to a case from the built-in bank, distinguishable only by its Fallback
// flag.
func (p *Pipeline) GenerateCase(ctx context.Context, difficulty Difficulty) *Case {
	ctx, cancel := context.WithTimeout(llm.WithPurpose(ctx, "case-gen"), p.cfg.GenTimeout)
	defer cancel()

	req := llm.Request{
		System: generationSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildGenerationMessage(difficulty)},
		},
		Schema:      CaseSchema,
		MaxTokens:   p.cfg.MaxTokens,
		Temperature: p.cfg.Temperature,
	}

	resp, err := p.sched.Enqueue(ctx, req).Wait(ctx)
	if err != nil {
		c := p.bank.Get(difficulty)
		return &c
	}

	var c Case
	if err := json.Unmarshal(resp.Content, &c); err != nil {
		fb := p.bank.Get(difficulty)
		return &fb
	}
	c.Difficulty = difficulty
	if c.ID == "" {
		c.ID = uuid.New().String()
	}

	if verr := Validate(&c, p.cfg.Validators); verr != nil {
		fb := p.bank.Get(difficulty)
		return &fb
	}

	return &c
}

// Evaluate assesses a learner's free-text response against the case. It
// is total: if the provider cannot produce feedback, the evaluation falls
// back to a deterministic template that reveals the expected answer
// without awarding credit.
func (p *Pipeline) Evaluate(ctx context.Context, c *Case, response string, level UserLevel) Evaluation {
	ctx = llm.WithPurpose(ctx, "case-eval")

	req := llm.Request{
		System: evaluationSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildEvaluationMessage(c, response, level)},
		},
		MaxTokens:   p.cfg.MaxTokens,
		Temperature: p.cfg.Temperature,
	}

	resp, err := p.sched.Enqueue(ctx, req).Wait(ctx)
	if err != nil {
		return templateEvaluation(c)
	}

	ev := ParseEvaluation(string(resp.Content))
	if ev.Feedback == "" {
		return templateEvaluation(c)
	}
	return ev
}

// Hints asks for 2-4 diagnostic hints for the active case. Unlike case
// generation, hints are a best-effort feature and may fail.
func (p *Pipeline) Hints(ctx context.Context, c *Case) ([]string, error) {
	ctx = llm.WithPurpose(ctx, "case-hints")

	req := llm.Request{
		System: hintsSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildHintsMessage(c)},
		},
		Schema:      HintsSchema,
		MaxTokens:   p.cfg.MaxTokens,
		Temperature: p.cfg.Temperature,
	}

	resp, err := p.sched.Enqueue(ctx, req).Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("hint generation failed: %w", err)
	}

	var out struct {
		Hints []string `json:"hints"`
	}
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("failed to parse hints response: %w", err)
	}
	if len(out.Hints) == 0 {
		return nil, fmt.Errorf("hint generation returned no hints")
	}
	return out.Hints, nil
}

// EducationalContent produces a short teaching summary on a clinical
// topic, pitched at the given training level.
func (p *Pipeline) EducationalContent(ctx context.Context, topic string, level UserLevel) (string, error) {
	ctx = llm.WithPurpose(ctx, "edu-content")

	req := llm.Request{
		System: educationalSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildEducationalMessage(topic, level)},
		},
		MaxTokens:   p.cfg.MaxTokens,
		Temperature: p.cfg.Temperature,
	}

	resp, err := p.sched.Enqueue(ctx, req).Wait(ctx)
	if err != nil {
		return "", fmt.Errorf("educational content failed: %w", err)
	}
	return string(resp.Content), nil
}

// templateEvaluation is the deterministic evaluation used when feedback
// generation fails. It reveals the expected answer so the learner still
// closes the loop, but its wording never matches the credit markers, so
// no diagnosis or triage credit is awarded.
func templateEvaluation(c *Case) Evaluation {
	feedback := fmt.Sprintf(
		"Thanks for working through this case. The expected primary finding was %s with a recommended triage of ESI level %d. "+
			"Key teaching points:\n%s",
		c.ExpectedDiagnoses.Primary, c.TriageLevel, bulletList(c.EducationalPoints))
	return Evaluation{Feedback: feedback, Fallback: true}
}

func bulletList(items []string) string {
	out := ""
	for _, it := range items {
		out += "• " + it + "\n"
	}
	return out
}
