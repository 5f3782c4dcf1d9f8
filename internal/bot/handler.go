package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/IgorHWebDev/healthcare-sim/internal/medcase"
	"github.com/IgorHWebDev/healthcare-sim/internal/session"
)

// Transport delivers messages back to a user. The handler never parses
// transport-specific payloads; any chat frontend that can deliver text in
// and accept text out can drive it.
type Transport interface {
	Send(userID, text string) error
}

// Handler routes user input to the session layer. Slash-prefixed input is
// a command; anything else is a diagnostic response for the active case.
type Handler struct {
	sessions *session.Manager
	pipeline *medcase.Pipeline
	out      Transport
}

// NewHandler creates a Handler. pipeline is used for requests that are
// not tied to a case lifecycle, such as educational content.
func NewHandler(sessions *session.Manager, pipeline *medcase.Pipeline, out Transport) *Handler {
	return &Handler{sessions: sessions, pipeline: pipeline, out: out}
}

// Handle processes one message from a user.
func (h *Handler) Handle(ctx context.Context, userID, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	s := h.sessions.Get(ctx, userID)

	if !strings.HasPrefix(text, "/") {
		return h.submit(ctx, s, userID, text)
	}

	cmd, args, _ := strings.Cut(text, " ")
	args = strings.TrimSpace(args)

	switch strings.ToLower(cmd) {
	case "/start":
		return h.out.Send(userID, welcomeMessage)
	case "/help":
		return h.out.Send(userID, helpMessage)
	case "/practice":
		return h.practice(ctx, s, userID, args)
	case "/stats", "/progress":
		return h.out.Send(userID, statsMessage(s.Stats(), s.Level()))
	case "/level":
		return h.level(ctx, s, userID, args)
	case "/hint":
		return h.hint(ctx, s, userID)
	case "/cancel":
		return h.cancel(s, userID)
	case "/learn":
		return h.learn(ctx, s, userID, args)
	}
	return h.out.Send(userID, "Unknown command. Use /help to see what I can do.")
}

func (h *Handler) practice(ctx context.Context, s *session.Session, userID, args string) error {
	var difficulty medcase.Difficulty
	if args != "" {
		d, ok := medcase.ParseDifficulty(args)
		if !ok {
			return h.out.Send(userID,
				fmt.Sprintf("Unknown difficulty %q. Choose basic, intermediate, or advanced.", args))
		}
		difficulty = d
	}

	c, err := s.RequestCase(ctx, difficulty)
	switch {
	case errors.Is(err, session.ErrCaseInProgress):
		return h.out.Send(userID,
			"You already have an active case. Submit your diagnosis, or /cancel to discard it.")
	case errors.Is(err, session.ErrEvaluationInFlight):
		return h.out.Send(userID, "Your last response is still being evaluated. One moment.")
	case err != nil:
		return err
	}
	return h.out.Send(userID, caseMessage(c))
}

func (h *Handler) submit(ctx context.Context, s *session.Session, userID, text string) error {
	ev, err := s.Submit(ctx, text)
	switch {
	case errors.Is(err, session.ErrNoActiveCase):
		return h.out.Send(userID, "No active case. Use /practice to start one.")
	case err != nil:
		return err
	}
	return h.out.Send(userID, feedbackMessage(ev, s.Stats()))
}

func (h *Handler) level(ctx context.Context, s *session.Session, userID, args string) error {
	if args == "" {
		return h.out.Send(userID, levelMessage(s.Level()))
	}
	lvl, ok := medcase.ParseLevel(args)
	if !ok {
		return h.out.Send(userID,
			fmt.Sprintf("Unknown level %q. Choose student, resident, or attending.", args))
	}
	s.SetLevel(ctx, lvl)
	return h.out.Send(userID,
		fmt.Sprintf("Training level set to %s. New cases default to %s difficulty.",
			lvl, medcase.DefaultDifficulty(lvl)))
}

func (h *Handler) hint(ctx context.Context, s *session.Session, userID string) error {
	hints, err := s.Hint(ctx)
	switch {
	case errors.Is(err, session.ErrNoActiveCase):
		return h.out.Send(userID, "No active case. Use /practice to start one.")
	case err != nil:
		return h.out.Send(userID, "Sorry, I could not generate hints right now. Try again shortly.")
	}
	return h.out.Send(userID, hintsMessage(hints))
}

func (h *Handler) cancel(s *session.Session, userID string) error {
	err := s.Cancel()
	switch {
	case errors.Is(err, session.ErrNoActiveCase):
		return h.out.Send(userID, "No active case to cancel.")
	case errors.Is(err, session.ErrEvaluationInFlight):
		return h.out.Send(userID, "Your last response is still being evaluated. One moment.")
	case err != nil:
		return err
	}
	return h.out.Send(userID, "Case discarded. Use /practice when you're ready for the next one.")
}

func (h *Handler) learn(ctx context.Context, s *session.Session, userID, topic string) error {
	if topic == "" {
		return h.out.Send(userID, "Tell me a topic, e.g. /learn sepsis recognition")
	}
	content, err := h.pipeline.EducationalContent(ctx, topic, s.Level())
	if err != nil {
		return h.out.Send(userID, "Sorry, I could not prepare that content right now. Try again shortly.")
	}
	return h.out.Send(userID, content)
}
