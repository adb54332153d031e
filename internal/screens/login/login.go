package login

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kdnguyen/gogaku/internal/router"
	"github.com/kdnguyen/gogaku/internal/screen"
	"github.com/kdnguyen/gogaku/internal/ui/components"
	"github.com/kdnguyen/gogaku/internal/ui/layout"
	"github.com/kdnguyen/gogaku/internal/ui/theme"
	"github.com/kdnguyen/gogaku/internal/user"
)

type mode int

const (
	modeSignIn mode = iota
	modeRegister
)

type authResultMsg struct {
	User user.User
	Err  error
}

// LoginScreen collects credentials and signs the user in, or registers
// a new account. On success it replaces itself with the home screen.
type LoginScreen struct {
	users       *user.Service
	homeFactory func(u user.User) screen.Screen

	mode    mode
	focus   int
	name    components.TextInput
	email   components.TextInput
	pass    components.TextInput
	errMsg  string
	waiting bool
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)

// New creates a LoginScreen. homeFactory builds the screen shown after
// a successful sign-in.
func New(users *user.Service, homeFactory func(u user.User) screen.Screen) *LoginScreen {
	s := &LoginScreen{
		users:       users,
		homeFactory: homeFactory,
		name:        components.NewTextInput("Name", 40),
		email:       components.NewTextInput("Email", 60),
		pass:        components.NewPasswordInput("Password", 60),
	}
	s.name.Model.Blur()
	s.pass.Model.Blur()
	return s
}

func (s *LoginScreen) Title() string {
	if s.mode == modeRegister {
		return "Create Account"
	}
	return "Sign In"
}

func (s *LoginScreen) Init() tea.Cmd {
	return s.email.Init()
}

func (s *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Ctrl+R", Description: "Sign in / register"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// fields returns the focusable inputs for the current mode, in order.
func (s *LoginScreen) fields() []*components.TextInput {
	if s.mode == modeRegister {
		return []*components.TextInput{&s.name, &s.email, &s.pass}
	}
	return []*components.TextInput{&s.email, &s.pass}
}

func (s *LoginScreen) setFocus(i int) tea.Cmd {
	fields := s.fields()
	if i < 0 {
		i = len(fields) - 1
	}
	if i >= len(fields) {
		i = 0
	}
	s.focus = i
	var cmd tea.Cmd
	for j, f := range fields {
		if j == i {
			cmd = f.Model.Focus()
		} else {
			f.Model.Blur()
		}
	}
	return cmd
}

func (s *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case authResultMsg:
		s.waiting = false
		if msg.Err != nil {
			s.errMsg = authError(msg.Err)
			return s, nil
		}
		next := s.homeFactory(msg.User)
		return s, tea.Batch(
			func() tea.Msg { return screen.SignedInMsg{User: msg.User} },
			func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} },
		)

	case tea.KeyMsg:
		if s.waiting {
			return s, nil
		}
		switch msg.String() {
		case "tab", "down":
			return s, s.setFocus(s.focus + 1)
		case "shift+tab", "up":
			return s, s.setFocus(s.focus - 1)
		case "ctrl+r":
			if s.mode == modeSignIn {
				s.mode = modeRegister
			} else {
				s.mode = modeSignIn
			}
			s.errMsg = ""
			return s, s.setFocus(0)
		case "enter":
			fields := s.fields()
			if s.focus < len(fields)-1 {
				return s, s.setFocus(s.focus + 1)
			}
			return s.submit()
		}
	}

	fields := s.fields()
	var cmd tea.Cmd
	*fields[s.focus], cmd = fields[s.focus].Update(msg)
	return s, cmd
}

func (s *LoginScreen) submit() (screen.Screen, tea.Cmd) {
	email := strings.TrimSpace(s.email.Value())
	password := s.pass.Value()
	name := strings.TrimSpace(s.name.Value())

	if email == "" || password == "" {
		s.errMsg = "Email and password are required."
		return s, nil
	}

	s.errMsg = ""
	s.waiting = true
	register := s.mode == modeRegister
	users := s.users
	return s, func() tea.Msg {
		ctx := context.Background()
		if register {
			if _, err := users.Register(ctx, email, password, name); err != nil {
				return authResultMsg{Err: err}
			}
		}
		u, err := users.Authenticate(ctx, email, password)
		return authResultMsg{User: u, Err: err}
	}
}

func authError(err error) string {
	switch {
	case errors.Is(err, user.ErrDuplicateEmail):
		return "An account with that email already exists."
	case errors.Is(err, user.ErrInvalidCredentials):
		return "Invalid email or password."
	case errors.Is(err, user.ErrWeakPassword):
		return "Password must be at least 6 characters."
	default:
		return err.Error()
	}
}

func (s *LoginScreen) View(width, height int) string {
	var sections []string

	title := theme.Title.Render("語学 Gogaku")
	sections = append(sections, title)
	sections = append(sections, theme.Subtitle.Render("Japanese grammar, one game at a time"))
	sections = append(sections, "")

	label := lipgloss.NewStyle().Foreground(theme.TextDim)
	if s.mode == modeRegister {
		sections = append(sections, label.Render("Name"))
		sections = append(sections, s.name.View())
	}
	sections = append(sections, label.Render("Email"))
	sections = append(sections, s.email.View())
	sections = append(sections, label.Render("Password"))
	sections = append(sections, s.pass.View())

	if s.waiting {
		sections = append(sections, "")
		sections = append(sections, theme.Hint.Render("Signing in..."))
	}
	if s.errMsg != "" {
		sections = append(sections, "")
		sections = append(sections, theme.Incorrect.Render(s.errMsg))
	}

	sections = append(sections, "")
	switchHint := "Ctrl+R to create an account"
	if s.mode == modeRegister {
		switchHint = "Ctrl+R to sign in instead"
	}
	sections = append(sections, theme.Hint.Render(switchHint))

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
