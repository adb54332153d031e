package stats

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kdnguyen/gogaku/internal/history"
	"github.com/kdnguyen/gogaku/internal/router"
	"github.com/kdnguyen/gogaku/internal/screen"
	"github.com/kdnguyen/gogaku/internal/ui/components"
	"github.com/kdnguyen/gogaku/internal/ui/layout"
	"github.com/kdnguyen/gogaku/internal/ui/theme"
)

type statsLoadedMsg struct {
	Stats    history.Stats
	Progress history.LevelProgress
	Err      error
}

// StatsScreen shows aggregate play statistics and JLPT level progress.
type StatsScreen struct {
	service *history.Service
	userID  int64

	stats    history.Stats
	progress history.LevelProgress
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

// New creates a StatsScreen for userID.
func New(service *history.Service, userID int64) *StatsScreen {
	return &StatsScreen{service: service, userID: userID}
}

func (s *StatsScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		st, err := s.service.Stats(ctx, s.userID)
		if err != nil {
			return statsLoadedMsg{Err: err}
		}
		lp, err := s.service.LevelProgress(ctx, s.userID)
		if err != nil {
			return statsLoadedMsg{Err: err}
		}
		return statsLoadedMsg{Stats: st, Progress: lp}
	}
}

func (s *StatsScreen) Title() string { return "My Stats" }

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.stats = msg.Stats
			s.progress = msg.Progress
		}
		s.loaded = true
		return s, nil
	case tea.KeyMsg:
		if msg.String() == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	if s.errMsg != "" {
		return centered(width, height, theme.Incorrect.Render("Error: "+s.errMsg))
	}
	if !s.loaded {
		return centered(width, height, theme.Hint.Render("Loading stats..."))
	}

	var sections []string
	sections = append(sections, theme.Title.Render("Study Statistics"))
	sections = append(sections, "")

	rows := [][2]string{
		{"Games played", fmt.Sprintf("%d", s.stats.GamesPlayed)},
		{"Grammar points", fmt.Sprintf("%d", s.stats.GrammarPoints)},
		{"Study hours", fmt.Sprintf("%.1f", s.stats.StudyHours)},
		{"Achievements", fmt.Sprintf("%d / 5", s.stats.Achievements)},
	}
	label := lipgloss.NewStyle().Foreground(theme.TextDim).Width(16)
	value := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	for _, r := range rows {
		sections = append(sections, label.Render(r[0])+value.Render(r[1]))
	}

	sections = append(sections, "")
	sections = append(sections, theme.Subtitle.Render("JLPT level distribution"))

	levels := []struct {
		name string
		pct  int
	}{
		{"N5", s.progress.N5},
		{"N4", s.progress.N4},
		{"N3", s.progress.N3},
		{"N2", s.progress.N2},
		{"N1", s.progress.N1},
	}
	for _, lv := range levels {
		bar := components.NewProgressBar(lv.name, float64(lv.pct)/100, true, 40)
		sections = append(sections, bar.View())
	}

	return centered(width, height, strings.Join(sections, "\n"))
}

func centered(width, height int, content string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
