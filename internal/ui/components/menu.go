package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kdnguyen/gogaku/internal/ui/theme"
)

// MenuItem is one entry in a vertical menu. Disabled items render but
// cannot be selected.
type MenuItem struct {
	Label    string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical navigation menu.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a menu with the cursor on the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items}
	for i, item := range items {
		if !item.Disabled {
			m.Selected = i
			break
		}
	}
	return m
}

func (m Menu) Init() tea.Cmd { return nil }

// Update moves the cursor with up/k and down/j, skipping disabled
// items, and fires the selected action on enter.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		m.Selected = m.seek(-1)
	case "down", "j":
		m.Selected = m.seek(1)
	case "enter":
		if m.Selected < 0 || m.Selected >= len(m.Items) {
			return m, nil
		}
		if item := m.Items[m.Selected]; item.Action != nil && !item.Disabled {
			return m, item.Action()
		}
	}
	return m, nil
}

// seek finds the next enabled index in the given direction, or stays
// put when there is none.
func (m Menu) seek(dir int) int {
	for i := m.Selected + dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			return i
		}
	}
	return m.Selected
}

// View renders the menu.
func (m Menu) View() string {
	selected := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	normal := lipgloss.NewStyle().Foreground(theme.Text)

	var b strings.Builder
	for i, item := range m.Items {
		if i == m.Selected {
			b.WriteString(selected.Render("  ▸ " + item.Label))
		} else {
			b.WriteString(normal.Render("    " + item.Label))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
