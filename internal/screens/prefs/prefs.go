package prefs

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kdnguyen/gogaku/internal/router"
	"github.com/kdnguyen/gogaku/internal/screen"
	"github.com/kdnguyen/gogaku/internal/ui/layout"
	"github.com/kdnguyen/gogaku/internal/ui/theme"
	"github.com/kdnguyen/gogaku/internal/user"
)

type savedMsg struct {
	User user.User
	Err  error
}

var (
	difficultyValues = []string{"adaptive", "easy", "medium", "hard"}
	levelValues      = []string{"n5", "n4", "n3", "n2", "n1"}
	goalValues       = []string{"casual", "regular", "daily"}
)

// item is one editable row. cycle advances enum values; toggle flips
// booleans. Exactly one of the two is set.
type item struct {
	label  string
	value  func(p user.Preferences) string
	cycle  func(p *user.Preferences)
	toggle func(p *user.Preferences)
}

// PrefsScreen edits the signed-in user's study preferences.
type PrefsScreen struct {
	users *user.Service
	prefs user.Preferences

	items    []item
	selected int
	dirty    bool
	saved    bool
	errMsg   string
}

var _ screen.Screen = (*PrefsScreen)(nil)
var _ screen.KeyHintProvider = (*PrefsScreen)(nil)

// New creates a PrefsScreen seeded with u's current preferences.
func New(users *user.Service, u user.User) *PrefsScreen {
	items := []item{
		{
			label: "Difficulty",
			value: func(p user.Preferences) string { return p.Difficulty },
			cycle: func(p *user.Preferences) { p.Difficulty = next(difficultyValues, p.Difficulty) },
		},
		{
			label: "JLPT level",
			value: func(p user.Preferences) string { return strings.ToUpper(p.CurrentLevel) },
			cycle: func(p *user.Preferences) { p.CurrentLevel = next(levelValues, p.CurrentLevel) },
		},
		{
			label: "Learning goal",
			value: func(p user.Preferences) string { return p.LearningGoal },
			cycle: func(p *user.Preferences) { p.LearningGoal = next(goalValues, p.LearningGoal) },
		},
		{
			label:  "Sound effects",
			value:  func(p user.Preferences) string { return onOff(p.SoundEffects) },
			toggle: func(p *user.Preferences) { p.SoundEffects = !p.SoundEffects },
		},
		{
			label:  "Show romaji",
			value:  func(p user.Preferences) string { return onOff(p.ShowRomaji) },
			toggle: func(p *user.Preferences) { p.ShowRomaji = !p.ShowRomaji },
		},
		{
			label:  "Show translations",
			value:  func(p user.Preferences) string { return onOff(p.ShowTranslations) },
			toggle: func(p *user.Preferences) { p.ShowTranslations = !p.ShowTranslations },
		},
		{
			label:  "Daily reminders",
			value:  func(p user.Preferences) string { return onOff(p.DailyReminders) },
			toggle: func(p *user.Preferences) { p.DailyReminders = !p.DailyReminders },
		},
		{
			label:  "Achievement alerts",
			value:  func(p user.Preferences) string { return onOff(p.AchievementNotifs) },
			toggle: func(p *user.Preferences) { p.AchievementNotifs = !p.AchievementNotifs },
		},
		{
			label:  "Content alerts",
			value:  func(p user.Preferences) string { return onOff(p.ContentAlerts) },
			toggle: func(p *user.Preferences) { p.ContentAlerts = !p.ContentAlerts },
		},
	}

	return &PrefsScreen{
		users: users,
		prefs: u.Preferences,
		items: items,
	}
}

func next(values []string, current string) string {
	for i, v := range values {
		if v == current {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (s *PrefsScreen) Init() tea.Cmd { return nil }

func (s *PrefsScreen) Title() string { return "Preferences" }

func (s *PrefsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Change"},
		{Key: "Ctrl+S", Description: "Save"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *PrefsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.dirty = false
		s.saved = true
		return s, func() tea.Msg { return screen.SignedInMsg{User: msg.User} }

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.items)-1 {
				s.selected++
			}
		case "enter", "space", " ":
			it := s.items[s.selected]
			if it.cycle != nil {
				it.cycle(&s.prefs)
			} else if it.toggle != nil {
				it.toggle(&s.prefs)
			}
			s.dirty = true
			s.saved = false
		case "ctrl+s":
			if !s.dirty {
				return s, nil
			}
			prefs := s.prefs
			users := s.users
			return s, func() tea.Msg {
				u, err := users.UpdatePreferences(context.Background(), prefs)
				return savedMsg{User: u, Err: err}
			}
		}
	}
	return s, nil
}

func (s *PrefsScreen) View(width, height int) string {
	var sections []string
	sections = append(sections, theme.Title.Render("Preferences"))
	sections = append(sections, "")

	label := lipgloss.NewStyle().Foreground(theme.Text).Width(22)
	value := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)

	for i, it := range s.items {
		prefix := "   "
		row := label.Render(it.label) + value.Render(it.value(s.prefs))
		if i == s.selected {
			prefix = " ▸ "
			row = theme.Selected.Render(label.Render(it.label)) + value.Render(it.value(s.prefs))
		}
		sections = append(sections, prefix+row)
	}

	sections = append(sections, "")
	switch {
	case s.errMsg != "":
		sections = append(sections, theme.Incorrect.Render("Save failed: "+s.errMsg))
	case s.saved:
		sections = append(sections, theme.Correct.Render("Saved."))
	case s.dirty:
		sections = append(sections, theme.Hint.Render("Unsaved changes. Ctrl+S to save."))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(sections, "\n"))
}
