package flashcards

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kdnguyen/gogaku/internal/catalog"
	"github.com/kdnguyen/gogaku/internal/game"
	"github.com/kdnguyen/gogaku/internal/screen"
	"github.com/kdnguyen/gogaku/internal/ui/layout"
	"github.com/kdnguyen/gogaku/internal/ui/theme"
)

// FlashcardsScreen flips through the vocabulary deck. Nothing is
// persisted; the known/studying piles live only for this sitting.
type FlashcardsScreen struct {
	deck       *game.Flashcards
	showRomaji bool
	errMsg     string
}

var _ screen.Screen = (*FlashcardsScreen)(nil)
var _ screen.KeyHintProvider = (*FlashcardsScreen)(nil)

// New shuffles a deck from bank.
func New(bank []catalog.VocabularyCard, showRomaji bool) *FlashcardsScreen {
	d, err := game.NewFlashcards(bank, nil)
	s := &FlashcardsScreen{deck: d, showRomaji: showRomaji}
	if err != nil {
		s.errMsg = err.Error()
	}
	return s
}

func (s *FlashcardsScreen) Init() tea.Cmd { return nil }

func (s *FlashcardsScreen) Title() string { return "Flashcards" }

func (s *FlashcardsScreen) KeyHints() []layout.KeyHint {
	if s.deck != nil && s.deck.Flipped() {
		return []layout.KeyHint{
			{Key: "K", Description: "Know it"},
			{Key: "S", Description: "Still studying"},
			{Key: "Space", Description: "Flip back"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Space", Description: "Flip"},
		{Key: "←→", Description: "Navigate"},
		{Key: "R", Description: "Reshuffle"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *FlashcardsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || s.errMsg != "" {
		return s, nil
	}

	switch kmsg.String() {
	case "space", " ":
		s.deck.Flip()
	case "left", "h":
		s.deck.Prev()
	case "right", "l":
		s.deck.Next()
	case "k", "K":
		_ = s.deck.MarkKnown()
	case "s", "S":
		_ = s.deck.MarkStudying()
	case "r", "R":
		s.deck.Reset()
	}
	return s, nil
}

func (s *FlashcardsScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Incorrect.Render("Error: "+s.errMsg))
	}

	card := s.deck.Current()
	var sections []string

	sections = append(sections, theme.Subtitle.Render(
		fmt.Sprintf("Card %d/%d   ✓ %d known   ◌ %d studying",
			s.deck.Index()+1, s.deck.Total(), s.deck.KnownCount(), s.deck.StudyingCount())))
	sections = append(sections, "")

	var face []string
	if s.deck.Flipped() {
		face = append(face, theme.Body.Render(card.English))
		face = append(face, "")
		face = append(face, theme.Hint.Render(card.Example))
		face = append(face, theme.Hint.Render(card.ExampleTranslation))
	} else {
		face = append(face, theme.Japanese.Render(card.Kanji))
		face = append(face, theme.Body.Render(card.Hiragana))
		if s.showRomaji {
			face = append(face, theme.Hint.Render(card.Romaji))
		}
	}
	sections = append(sections, theme.Card.Width(44).Align(lipgloss.Center).
		Render(strings.Join(face, "\n")))

	var marks []string
	if s.deck.Known(card.ID) {
		marks = append(marks, theme.Correct.Render("✓ known"))
	}
	if s.deck.Studying(card.ID) {
		marks = append(marks, theme.Hint.Render("◌ studying"))
	}
	if len(marks) > 0 {
		sections = append(sections, "")
		sections = append(sections, strings.Join(marks, "  "))
	}

	sections = append(sections, "")
	sections = append(sections, theme.Subtitle.Render(card.Level+"  ·  "+card.Category))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(sections, "\n"))
}
