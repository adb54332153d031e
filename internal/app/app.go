package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kdnguyen/gogaku/internal/catalog"
	"github.com/kdnguyen/gogaku/internal/history"
	"github.com/kdnguyen/gogaku/internal/llm"
	"github.com/kdnguyen/gogaku/internal/router"
	"github.com/kdnguyen/gogaku/internal/screen"
	"github.com/kdnguyen/gogaku/internal/screens/home"
	"github.com/kdnguyen/gogaku/internal/screens/login"
	"github.com/kdnguyen/gogaku/internal/ui/layout"
	"github.com/kdnguyen/gogaku/internal/user"
)

// Options carries the services the TUI runs on. Provider may be nil;
// the tutor is then unavailable.
type Options struct {
	Users    *user.Service
	History  *history.Service
	Catalog  *catalog.Catalog
	Provider llm.Provider
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router   *router.Router
	width    int
	height   int
	userName string
	level    string
}

// newAppModel builds the screen graph. A persisted session skips the
// login screen.
func newAppModel(opts Options) AppModel {
	var loginFactory func() screen.Screen
	homeFactory := func(u user.User) screen.Screen {
		return home.New(home.Deps{
			Users:        opts.Users,
			History:      opts.History,
			Catalog:      opts.Catalog,
			Provider:     opts.Provider,
			User:         u,
			LoginFactory: loginFactory,
		})
	}
	loginFactory = func() screen.Screen {
		return login.New(opts.Users, homeFactory)
	}

	m := AppModel{}
	if u, ok, err := opts.Users.Current(context.Background()); err == nil && ok {
		m.userName = displayName(u)
		m.level = u.Preferences.CurrentLevel
		m.router = router.New(homeFactory(u))
	} else {
		m.router = router.New(loginFactory())
	}
	return m
}

func displayName(u user.User) string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.SignedInMsg:
		m.userName = displayName(msg.User)
		m.level = msg.User.Preferences.CurrentLevel
		return m, nil

	case screen.SignedOutMsg:
		m.userName = ""
		m.level = ""
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
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

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.userName, m.level, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	}
	if footerHints == nil {
		if m.router.Depth() > 1 {
			footerHints = []layout.KeyHint{
				{Key: "Esc", Description: "Back"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		} else {
			footerHints = []layout.KeyHint{
				{Key: "↑↓", Description: "Navigate"},
				{Key: "Enter", Description: "Select"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
