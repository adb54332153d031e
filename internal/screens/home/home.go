package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kdnguyen/gogaku/internal/catalog"
	"github.com/kdnguyen/gogaku/internal/history"
	"github.com/kdnguyen/gogaku/internal/llm"
	"github.com/kdnguyen/gogaku/internal/router"
	"github.com/kdnguyen/gogaku/internal/screen"
	"github.com/kdnguyen/gogaku/internal/screens/flashcards"
	histscreen "github.com/kdnguyen/gogaku/internal/screens/history"
	"github.com/kdnguyen/gogaku/internal/screens/matching"
	"github.com/kdnguyen/gogaku/internal/screens/prefs"
	"github.com/kdnguyen/gogaku/internal/screens/quiz"
	"github.com/kdnguyen/gogaku/internal/screens/sentence"
	"github.com/kdnguyen/gogaku/internal/screens/stats"
	tutorscreen "github.com/kdnguyen/gogaku/internal/screens/tutor"
	"github.com/kdnguyen/gogaku/internal/ui/components"
	"github.com/kdnguyen/gogaku/internal/ui/theme"
	"github.com/kdnguyen/gogaku/internal/user"
)

// Deps carries everything the home screen and the screens it launches
// need. Provider is nil when no LLM is configured; the tutor entry is
// disabled in that case.
type Deps struct {
	Users        *user.Service
	History      *history.Service
	Catalog      *catalog.Catalog
	Provider     llm.Provider
	User         user.User
	LoginFactory func() screen.Screen
}

// HomeScreen is the signed-in landing screen.
type HomeScreen struct {
	deps  Deps
	menu  components.Menu
	stats history.Stats
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a HomeScreen for the given user.
func New(deps Deps) *HomeScreen {
	st, _ := deps.History.Stats(context.Background(), deps.User.ID)

	push := func(factory func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: factory()}
			}
		}
	}

	items := []components.MenuItem{
		{Label: "MULTIPLE CHOICE", Action: push(func() screen.Screen {
			return quiz.New(deps.Catalog.Questions, deps.History, deps.User.ID)
		})},
		{Label: "SENTENCE BUILDING", Action: push(func() screen.Screen {
			return sentence.New(deps.Catalog.Sentences, deps.History, deps.User.ID)
		})},
		{Label: "WORD MATCHING", Action: push(func() screen.Screen {
			return matching.New(deps.Catalog.Pairs, deps.History, deps.User.ID)
		})},
		{Label: "FLASHCARDS", Action: push(func() screen.Screen {
			return flashcards.New(deps.Catalog.Vocabulary, deps.User.Preferences.ShowRomaji)
		})},
		{Label: "AI TUTOR", Disabled: deps.Provider == nil, Action: push(func() screen.Screen {
			return tutorscreen.New(deps.Provider, grammarFocus(deps.User))
		})},
		{Label: "MY STATS", Action: push(func() screen.Screen {
			return stats.New(deps.History, deps.User.ID)
		})},
		{Label: "HISTORY", Action: push(func() screen.Screen {
			return histscreen.New(deps.History, deps.User.ID)
		})},
		{Label: "PREFERENCES", Action: push(func() screen.Screen {
			return prefs.New(deps.Users, deps.User)
		})},
		{Label: "LOG OUT", Action: func() tea.Cmd {
			users := deps.Users
			loginFactory := deps.LoginFactory
			return func() tea.Msg {
				_ = users.Logout(context.Background())
				return router.ReplaceScreenMsg{Screen: loginFactory()}
			}
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		deps:  deps,
		menu:  components.NewMenu(items),
		stats: st,
	}
}

// grammarFocus picks tutor conversation topics from the user's level.
func grammarFocus(u user.User) []string {
	switch u.Preferences.CurrentLevel {
	case "n4":
		return []string{"〜たことがある", "〜なければならない", "potential form", "〜そうです"}
	case "n3":
		return []string{"〜ばかり", "〜わけではない", "causative form", "〜ように"}
	default:
		return []string{"です/ます", "〜たい", "〜てもいいですか", "particles は/が/を"}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	greeting := h.deps.User.Name
	if greeting == "" {
		greeting = h.deps.User.Email
	}
	sections = append(sections, theme.Title.Render("おかえりなさい、"+greeting+"！"))
	sections = append(sections, theme.Subtitle.Render("Welcome back. What shall we study today?"))
	sections = append(sections, "")

	statLine := fmt.Sprintf("%d games   %d grammar points   %.1f study hours",
		h.stats.GamesPlayed, h.stats.GrammarPoints, h.stats.StudyHours)
	sections = append(sections, lipgloss.NewStyle().Foreground(theme.TextDim).Render(statLine))
	sections = append(sections, "")

	sections = append(sections, h.menu.View())

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
