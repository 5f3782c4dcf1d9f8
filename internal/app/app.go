package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/IgorHWebDev/healthcare-sim/internal/bot"
	"github.com/IgorHWebDev/healthcare-sim/internal/medcase"
	"github.com/IgorHWebDev/healthcare-sim/internal/session"
	"github.com/IgorHWebDev/healthcare-sim/internal/ui/components"
	"github.com/IgorHWebDev/healthcare-sim/internal/ui/layout"
	"github.com/IgorHWebDev/healthcare-sim/internal/ui/theme"
)

// localUserID identifies the single local user of the TUI transport.
const localUserID = "local"

// replyMsg carries one outbound bot message into the update loop.
type replyMsg string

// handledMsg signals that the handler finished processing an input.
type handledMsg struct{ err error }

// chanTransport adapts the TUI to the bot's Transport interface: replies
// land on a channel the program listens on.
type chanTransport chan string

func (t chanTransport) Send(_, text string) error {
	t <- text
	return nil
}

// line is one transcript entry.
type line struct {
	fromUser bool
	text     string
}

// AppModel is the root Bubble Tea model: a chat transcript over the bot
// handler.
type AppModel struct {
	handler  *bot.Handler
	sessions *session.Manager
	replies  chanTransport

	input      components.TextInput
	transcript []line
	pending    bool
	width      int
	height     int
}

func newAppModel(sessions *session.Manager, pipeline *medcase.Pipeline) AppModel {
	replies := make(chanTransport, 16)
	return AppModel{
		handler:  bot.NewHandler(sessions, pipeline, replies),
		sessions: sessions,
		replies:  replies,
		input:    components.NewTextInput("Type a command (/help) or your diagnosis…", 500),
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(
		m.input.Init(),
		m.dispatch("/start"),
		m.waitForReply(),
	)
}

// waitForReply blocks on the transport channel and re-arms after every
// message.
func (m AppModel) waitForReply() tea.Cmd {
	return func() tea.Msg {
		return replyMsg(<-m.replies)
	}
}

// dispatch runs the handler off the update loop; replies arrive through
// the transport channel.
func (m AppModel) dispatch(text string) tea.Cmd {
	return func() tea.Msg {
		return handledMsg{err: m.handler.Handle(context.Background(), localUserID, text)}
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case replyMsg:
		m.transcript = append(m.transcript, line{text: string(msg)})
		return m, m.waitForReply()

	case handledMsg:
		m.pending = false
		m.input.SetDisabled(false)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "enter":
			text := strings.TrimSpace(m.input.Value())
			if text == "" || m.pending {
				return m, nil
			}
			m.transcript = append(m.transcript, line{fromUser: true, text: text})
			m.input.Reset()
			m.input.SetDisabled(true)
			m.pending = true
			return m, m.dispatch(text)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	s := m.sessions.Get(context.Background(), localUserID)
	header := layout.RenderHeader("Case Practice", string(s.Level()), s.Stats().AverageScore(), m.width)

	footer := layout.RenderFooter([]layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Ctrl+C", Description: "Quit"},
	}, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	inputView := lipgloss.NewStyle().Width(m.width).Padding(0, 1).Render("> " + m.input.View())
	inputHeight := lipgloss.Height(inputView)

	transcriptHeight := m.height - headerHeight - footerHeight - inputHeight
	if transcriptHeight < 0 {
		transcriptHeight = 0
	}

	content := m.renderTranscript(transcriptHeight)
	v.SetContent(header + "\n" + content + "\n" + inputView + "\n" + footer)
	return v
}

// renderTranscript renders the newest messages that fit in the window.
func (m AppModel) renderTranscript(maxHeight int) string {
	wrap := lipgloss.NewStyle().Width(m.width - 4)

	var rows []string
	for _, l := range m.transcript {
		var styled string
		if l.fromUser {
			styled = theme.UserLine.Render("you: ") + l.text
		} else {
			styled = theme.BotLine.Render(l.text)
		}
		rows = append(rows, strings.Split(wrap.Render(styled), "\n")...)
		rows = append(rows, "")
	}
	if m.pending {
		rows = append(rows, theme.Pending.Render("…"))
	}

	if len(rows) > maxHeight {
		rows = rows[len(rows)-maxHeight:]
	}

	body := strings.Join(rows, "\n")
	return lipgloss.NewStyle().
		Width(m.width).
		Height(maxHeight).
		Padding(0, 1).
		Render(body)
}

// Run starts the Bubble Tea program over the given session manager and
// pipeline.
func Run(sessions *session.Manager, pipeline *medcase.Pipeline) error {
	p := tea.NewProgram(newAppModel(sessions, pipeline))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
