package bot

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/IgorHWebDev/healthcare-sim/internal/inference"
	"github.com/IgorHWebDev/healthcare-sim/internal/llm"
	"github.com/IgorHWebDev/healthcare-sim/internal/medcase"
	"github.com/IgorHWebDev/healthcare-sim/internal/session"
)

// recorder captures outbound messages per user.
type recorder struct {
	sent []string
}

func (r *recorder) Send(userID, text string) error {
	r.sent = append(r.sent, text)
	return nil
}

func (r *recorder) last(t *testing.T) string {
	t.Helper()
	if len(r.sent) == 0 {
		t.Fatal("no messages sent")
	}
	return r.sent[len(r.sent)-1]
}

func newTestHandler(t *testing.T, provider llm.Provider) (*Handler, *recorder) {
	t.Helper()
	cfg := inference.Config{
		BatchSize:    50,
		BatchWait:    time.Millisecond,
		MaxRetries:   3,
		InitialDelay: time.Millisecond,
		CacheTTL:     time.Minute,
	}
	sched := inference.NewScheduler(provider, inference.NewCache(cfg.CacheTTL), cfg)
	t.Cleanup(sched.Close)

	pipeline := medcase.NewPipeline(sched, medcase.DefaultConfig())
	out := &recorder{}
	return NewHandler(session.NewManager(pipeline, nil), pipeline, out), out
}

func testCaseJSON(t *testing.T) json.RawMessage {
	t.Helper()
	c := medcase.Case{
		ID:                 "bot-test-case",
		Demographics:       medcase.Demographics{Age: 34, Gender: "female"},
		Vitals:             medcase.Vitals{BloodPressure: "118/76", HeartRate: 92, RespiratoryRate: 18, Temperature: 37.2, OxygenSaturation: 97},
		ChiefComplaint:     "Right lower quadrant abdominal pain since this morning",
		PresentingSymptoms: []string{"RLQ pain", "anorexia", "nausea"},
		History: medcase.History{
			PresentIllness: "Periumbilical pain migrating to the right lower quadrant over 12 hours.",
			PastMedical:    []string{"none"},
			Medications:    []string{"none"},
			Allergies:      []string{"no known drug allergies"},
			SocialHistory:  "Non-smoker",
		},
		PhysicalExam:      []string{"tenderness at McBurney's point", "positive Rovsing sign"},
		ExpectedDiagnoses: medcase.Diagnoses{Primary: "Acute appendicitis", Differential: []string{"ovarian torsion", "ectopic pregnancy"}},
		TriageLevel:       3,
		EducationalPoints: []string{"Migration of pain to the RLQ is highly specific for appendicitis"},
		Difficulty:        medcase.DifficultyBasic,
	}
	b, err := json.Marshal(&c)
	if err != nil {
		t.Fatalf("marshal case: %v", err)
	}
	return b
}

func TestHandle_StartAndHelp(t *testing.T) {
	h, out := newTestHandler(t, llm.NewMockProvider())
	ctx := context.Background()

	if err := h.Handle(ctx, "u1", "/start"); err != nil {
		t.Fatalf("Handle(/start) error = %v", err)
	}
	if !strings.Contains(out.last(t), "/practice") {
		t.Errorf("welcome does not mention /practice: %q", out.last(t))
	}

	if err := h.Handle(ctx, "u1", "/help"); err != nil {
		t.Fatalf("Handle(/help) error = %v", err)
	}
	if !strings.Contains(out.last(t), "Difficulty levels") {
		t.Errorf("help missing difficulty section: %q", out.last(t))
	}
}

func TestHandle_PracticePresentsCaseWithoutAnswers(t *testing.T) {
	h, out := newTestHandler(t, llm.NewMockProvider(llm.MockResponse{Content: testCaseJSON(t)}))

	if err := h.Handle(context.Background(), "u1", "/practice basic"); err != nil {
		t.Fatalf("Handle(/practice) error = %v", err)
	}

	msg := out.last(t)
	if !strings.Contains(msg, "Right lower quadrant") {
		t.Errorf("case message missing chief complaint: %q", msg)
	}
	if !strings.Contains(msg, "118/76") {
		t.Errorf("case message missing vitals: %q", msg)
	}
	// The answer key must never appear in the presentation.
	if strings.Contains(msg, "appendicitis") || strings.Contains(msg, "Appendicitis") {
		t.Errorf("case message leaks the expected diagnosis: %q", msg)
	}
}

func TestHandle_PracticeUnknownDifficulty(t *testing.T) {
	h, out := newTestHandler(t, llm.NewMockProvider())

	if err := h.Handle(context.Background(), "u1", "/practice expert"); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if !strings.Contains(out.last(t), "Unknown difficulty") {
		t.Errorf("message = %q", out.last(t))
	}
}

func TestHandle_PracticeWhileCaseActive(t *testing.T) {
	h, out := newTestHandler(t, llm.NewMockProvider(llm.MockResponse{Content: testCaseJSON(t)}))
	ctx := context.Background()

	if err := h.Handle(ctx, "u1", "/practice basic"); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if err := h.Handle(ctx, "u1", "/practice advanced"); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if !strings.Contains(out.last(t), "already have an active case") {
		t.Errorf("message = %q", out.last(t))
	}
}

func TestHandle_SubmitWithoutCase(t *testing.T) {
	h, out := newTestHandler(t, llm.NewMockProvider())

	if err := h.Handle(context.Background(), "u1", "appendicitis, triage 3"); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if !strings.Contains(out.last(t), "No active case") {
		t.Errorf("message = %q", out.last(t))
	}
}

func TestHandle_FullCaseFlow(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: testCaseJSON(t)},
		llm.MockResponse{Content: json.RawMessage(
			"That is the correct diagnosis and an appropriate triage level. Classic presentation.")},
	)
	h, out := newTestHandler(t, mock)
	ctx := context.Background()

	if err := h.Handle(ctx, "u1", "/practice basic"); err != nil {
		t.Fatalf("Handle(/practice) error = %v", err)
	}
	if err := h.Handle(ctx, "u1", "Acute appendicitis, triage 3, surgical consult"); err != nil {
		t.Fatalf("Handle(submit) error = %v", err)
	}

	msg := out.last(t)
	if !strings.Contains(msg, "Excellent work") {
		t.Errorf("feedback header missing: %q", msg)
	}
	if !strings.Contains(msg, "100%") {
		t.Errorf("feedback missing running average: %q", msg)
	}

	if err := h.Handle(ctx, "u1", "/stats"); err != nil {
		t.Fatalf("Handle(/stats) error = %v", err)
	}
	stats := out.last(t)
	if !strings.Contains(stats, "Total cases: 1") || !strings.Contains(stats, "Correct diagnoses: 1") {
		t.Errorf("stats message = %q", stats)
	}
}

func TestHandle_Level(t *testing.T) {
	h, out := newTestHandler(t, llm.NewMockProvider())
	ctx := context.Background()

	if err := h.Handle(ctx, "u1", "/level"); err != nil {
		t.Fatalf("Handle(/level) error = %v", err)
	}
	if !strings.Contains(out.last(t), "student") {
		t.Errorf("default level message = %q", out.last(t))
	}

	if err := h.Handle(ctx, "u1", "/level resident"); err != nil {
		t.Fatalf("Handle(/level resident) error = %v", err)
	}
	if !strings.Contains(out.last(t), "intermediate") {
		t.Errorf("level confirmation = %q", out.last(t))
	}

	if err := h.Handle(ctx, "u1", "/level intern"); err != nil {
		t.Fatalf("Handle(/level intern) error = %v", err)
	}
	if !strings.Contains(out.last(t), "Unknown level") {
		t.Errorf("message = %q", out.last(t))
	}
}

func TestHandle_HintAndCancel(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: testCaseJSON(t)},
		llm.MockResponse{Content: json.RawMessage(`{"hints":["where is the pain migrating?"]}`)},
	)
	h, out := newTestHandler(t, mock)
	ctx := context.Background()

	if err := h.Handle(ctx, "u1", "/hint"); err != nil {
		t.Fatalf("Handle(/hint) error = %v", err)
	}
	if !strings.Contains(out.last(t), "No active case") {
		t.Errorf("message = %q", out.last(t))
	}

	if err := h.Handle(ctx, "u1", "/practice basic"); err != nil {
		t.Fatalf("Handle(/practice) error = %v", err)
	}
	if err := h.Handle(ctx, "u1", "/hint"); err != nil {
		t.Fatalf("Handle(/hint) error = %v", err)
	}
	if !strings.Contains(out.last(t), "migrating") {
		t.Errorf("hints message = %q", out.last(t))
	}

	if err := h.Handle(ctx, "u1", "/cancel"); err != nil {
		t.Fatalf("Handle(/cancel) error = %v", err)
	}
	if !strings.Contains(out.last(t), "discarded") {
		t.Errorf("cancel message = %q", out.last(t))
	}

	if err := h.Handle(ctx, "u1", "/cancel"); err != nil {
		t.Fatalf("Handle(/cancel) error = %v", err)
	}
	if !strings.Contains(out.last(t), "No active case") {
		t.Errorf("message = %q", out.last(t))
	}
}

func TestHandle_Unknown(t *testing.T) {
	h, out := newTestHandler(t, llm.NewMockProvider())

	if err := h.Handle(context.Background(), "u1", "/quiz"); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if !strings.Contains(out.last(t), "Unknown command") {
		t.Errorf("message = %q", out.last(t))
	}
}

func TestHandle_Learn(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage("Sepsis is organ dysfunction caused by a dysregulated host response to infection."),
	})
	h, out := newTestHandler(t, mock)
	ctx := context.Background()

	if err := h.Handle(ctx, "u1", "/learn"); err != nil {
		t.Fatalf("Handle(/learn) error = %v", err)
	}
	if !strings.Contains(out.last(t), "topic") {
		t.Errorf("message = %q", out.last(t))
	}

	if err := h.Handle(ctx, "u1", "/learn sepsis"); err != nil {
		t.Fatalf("Handle(/learn sepsis) error = %v", err)
	}
	if !strings.Contains(out.last(t), "organ dysfunction") {
		t.Errorf("message = %q", out.last(t))
	}
}
