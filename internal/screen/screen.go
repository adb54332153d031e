package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/kdnguyen/gogaku/internal/ui/layout"
	"github.com/kdnguyen/gogaku/internal/user"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// SignedInMsg announces that a user session began. The app model picks
// it up to refresh the header.
type SignedInMsg struct {
	User user.User
}

// SignedOutMsg announces that the session ended.
type SignedOutMsg struct{}
