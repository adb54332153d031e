package tutor

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kdnguyen/gogaku/internal/llm"
	"github.com/kdnguyen/gogaku/internal/router"
	"github.com/kdnguyen/gogaku/internal/screen"
	"github.com/kdnguyen/gogaku/internal/tutor"
	"github.com/kdnguyen/gogaku/internal/ui/components"
	"github.com/kdnguyen/gogaku/internal/ui/layout"
	"github.com/kdnguyen/gogaku/internal/ui/theme"
)

type replyMsg struct {
	Text string
	Err  error
}

// TutorScreen is a chat with the AI tutor.
type TutorScreen struct {
	conv    *tutor.Conversation
	input   components.TextInput
	waiting bool
	// ephemeral holds a fallback reply that is shown but not part of
	// the transcript.
	ephemeral string
}

var _ screen.Screen = (*TutorScreen)(nil)
var _ screen.KeyHintProvider = (*TutorScreen)(nil)

// New starts a conversation steered toward grammarFocus.
func New(provider llm.Provider, grammarFocus []string) *TutorScreen {
	return &TutorScreen{
		conv:  tutor.New(provider, grammarFocus),
		input: components.NewTextInput("Ask in Japanese or English...", 200),
	}
}

func (s *TutorScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *TutorScreen) Title() string { return "AI Tutor" }

func (s *TutorScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *TutorScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case replyMsg:
		s.waiting = false
		if msg.Err != nil {
			s.ephemeral = msg.Text
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "enter":
			if s.waiting {
				return s, nil
			}
			text := strings.TrimSpace(s.input.Value())
			if text == "" {
				return s, nil
			}
			s.input = components.NewTextInput("Ask in Japanese or English...", 200)
			s.ephemeral = ""
			s.waiting = true
			conv := s.conv
			return s, tea.Batch(
				s.input.Init(),
				func() tea.Msg {
					reply, err := conv.Send(context.Background(), text)
					return replyMsg{Text: reply, Err: err}
				},
			)
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *TutorScreen) View(width, height int) string {
	youStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	tutorStyle := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	body := lipgloss.NewStyle().Foreground(theme.Text).Width(width - 12)

	var lines []string
	turns := s.conv.Turns()

	// Keep the tail of the transcript that fits above the input line.
	budget := height - 4
	start := 0
	if len(turns)*3 > budget {
		start = len(turns) - budget/3
		if start < 0 {
			start = 0
		}
	}

	for _, t := range turns[start:] {
		var who string
		if t.Role == llm.RoleUser {
			who = youStyle.Render("  You: ")
		} else {
			who = tutorStyle.Render("  先生: ")
		}
		lines = append(lines, who+body.Render(t.Content))
		lines = append(lines, "")
	}

	if s.ephemeral != "" {
		lines = append(lines, tutorStyle.Render("  先生: ")+
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(s.ephemeral))
		lines = append(lines, "")
	}

	if s.waiting {
		lines = append(lines, theme.Hint.Render("  考え中... (thinking)"))
		lines = append(lines, "")
	}

	lines = append(lines, "  "+s.input.View())

	return strings.Join(lines, "\n")
}
