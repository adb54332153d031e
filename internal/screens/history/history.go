package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	hist "github.com/kdnguyen/gogaku/internal/history"
	"github.com/kdnguyen/gogaku/internal/router"
	"github.com/kdnguyen/gogaku/internal/screen"
	"github.com/kdnguyen/gogaku/internal/ui/layout"
	"github.com/kdnguyen/gogaku/internal/ui/theme"
)

type pageLoadedMsg struct {
	Page hist.Page
	Err  error
}

// HistoryScreen lists past game results, newest first, one page at a
// time.
type HistoryScreen struct {
	service *hist.Service
	userID  int64

	page     hist.Page
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a HistoryScreen for userID.
func New(service *hist.Service, userID int64) *HistoryScreen {
	return &HistoryScreen{service: service, userID: userID}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return s.loadPage(1)
}

func (s *HistoryScreen) loadPage(n int) tea.Cmd {
	return func() tea.Msg {
		p, err := s.service.Page(context.Background(), s.userID, n)
		return pageLoadedMsg{Page: p, Err: err}
	}
}

func (s *HistoryScreen) Title() string { return "History" }

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "←→", Description: "Page"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case pageLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.page = msg.Page
			s.selected = 0
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.page.Records)-1 {
				s.selected++
			}
		case "left", "h":
			if s.page.Page > 1 {
				return s, s.loadPage(s.page.Page - 1)
			}
		case "right", "l":
			if s.page.Page < s.page.TotalPages {
				return s, s.loadPage(s.page.Page + 1)
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.page.Records) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No games yet. Start practicing!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, rec := range s.page.Records {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %s  %d/%d", prefix, rec.Time, rec.Title, rec.Score, rec.Total)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		if rec.Score == rec.Total {
			style = style.Foreground(theme.Success)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	pager := fmt.Sprintf("page %d of %d  ·  %d games", s.page.Page, s.page.TotalPages, s.page.Total)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(pager)))

	return b.String()
}
