package sentence

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kdnguyen/gogaku/internal/catalog"
	"github.com/kdnguyen/gogaku/internal/game"
	"github.com/kdnguyen/gogaku/internal/history"
	"github.com/kdnguyen/gogaku/internal/router"
	"github.com/kdnguyen/gogaku/internal/screen"
	"github.com/kdnguyen/gogaku/internal/ui/components"
	"github.com/kdnguyen/gogaku/internal/ui/layout"
	"github.com/kdnguyen/gogaku/internal/ui/theme"
)

type recordedMsg struct {
	Record history.Record
	Err    error
}

// SentenceScreen plays a sentence building session: arrange the word
// tiles into a grammatical sentence.
type SentenceScreen struct {
	game     *game.Sentence
	recorder game.Recorder
	userID   int64

	feedback *game.AnswerResult
	recorded bool
	errMsg   string
}

var _ screen.Screen = (*SentenceScreen)(nil)
var _ screen.KeyHintProvider = (*SentenceScreen)(nil)

// New deals a fresh session from bank.
func New(bank []catalog.SentenceChallenge, recorder game.Recorder, userID int64) *SentenceScreen {
	g, err := game.NewSentence(bank, nil)
	s := &SentenceScreen{game: g, recorder: recorder, userID: userID}
	if err != nil {
		s.errMsg = err.Error()
	}
	return s
}

func (s *SentenceScreen) Init() tea.Cmd { return nil }

func (s *SentenceScreen) Title() string { return "Sentence Building" }

func (s *SentenceScreen) KeyHints() []layout.KeyHint {
	if s.game != nil && s.game.Complete() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Done"},
			{Key: "R", Description: "Play again"},
		}
	}
	if s.feedback != nil {
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	}
	return []layout.KeyHint{
		{Key: "1-9", Description: "Pick word"},
		{Key: "Bksp", Description: "Undo"},
		{Key: "C", Description: "Clear"},
		{Key: "Enter", Description: "Check"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SentenceScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case recordedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		return s, func() tea.Msg { return router.PopScreenMsg{} }

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *SentenceScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.game.Complete() {
		switch msg.String() {
		case "r", "R":
			s.game.Reset()
			s.feedback = nil
			s.recorded = false
			return s, nil
		case "enter":
			if s.recorded {
				return s, func() tea.Msg { return router.PopScreenMsg{} }
			}
			s.recorded = true
			return s, s.finish()
		}
		return s, nil
	}

	if s.feedback != nil {
		s.feedback = nil
		_ = s.game.Advance()
		return s, nil
	}

	key := msg.String()
	switch key {
	case "backspace":
		if n := len(s.game.Selected()); n > 0 {
			_ = s.game.Unselect(n - 1)
		}
		return s, nil
	case "c", "C":
		_ = s.game.ClearArrangement()
		return s, nil
	case "enter":
		res, err := s.game.SubmitArrangement()
		if err != nil {
			return s, nil
		}
		s.feedback = &res
		return s, nil
	}

	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		_ = s.game.Select(int(key[0] - '1'))
	}
	return s, nil
}

func (s *SentenceScreen) finish() tea.Cmd {
	g := s.game
	recorder := s.recorder
	userID := s.userID
	return func() tea.Msg {
		rec, err := g.Finish(context.Background(), recorder, userID)
		return recordedMsg{Record: rec, Err: err}
	}
}

func (s *SentenceScreen) View(width, height int) string {
	if s.errMsg != "" {
		return centered(width, height, theme.Incorrect.Render("Error: "+s.errMsg))
	}
	if s.game.Complete() {
		return s.viewSummary(width, height)
	}
	return s.viewChallenge(width, height)
}

func (s *SentenceScreen) viewChallenge(width, height int) string {
	ch, err := s.game.Current()
	if err != nil {
		return centered(width, height, theme.Incorrect.Render(err.Error()))
	}

	var sections []string

	bar := components.NewProgressBar(
		fmt.Sprintf("Sentence %d/%d", s.game.Index()+1, s.game.Total()),
		float64(s.game.Index())/float64(s.game.Total()),
		false, 50)
	sections = append(sections, bar.View())
	sections = append(sections, "")

	sections = append(sections, theme.Body.Render("Translate: ")+
		theme.Japanese.Render(ch.English))
	sections = append(sections, "")

	// The arrangement so far.
	arranged := strings.Join(s.game.Selected(), " ")
	if arranged == "" {
		arranged = theme.Hint.Render("(pick words below)")
	} else {
		arranged = theme.Selected.Render(arranged)
	}
	sections = append(sections, theme.Card.Render(arranged))
	sections = append(sections, "")

	// Remaining word tiles.
	var tiles []string
	for i, w := range s.game.Available() {
		tiles = append(tiles, theme.ButtonInactive.Render(fmt.Sprintf("%d %s", i+1, w)))
	}
	if len(tiles) > 0 {
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
	}

	if s.feedback != nil {
		sections = append(sections, "")
		if s.feedback.Correct {
			sections = append(sections, theme.Correct.Render("正解！ Correct!"))
		} else {
			sections = append(sections, theme.Incorrect.Render("残念... Not quite."))
		}
		if s.feedback.Explanation != "" {
			sections = append(sections, theme.Hint.Render(s.feedback.Explanation))
		}
	}

	return centered(width, height, strings.Join(sections, "\n"))
}

func (s *SentenceScreen) viewSummary(width, height int) string {
	var sections []string
	sections = append(sections, theme.Title.Render("Sentences Complete!"))
	sections = append(sections, "")
	sections = append(sections, theme.Body.Render(
		fmt.Sprintf("Score: %d / %d", s.game.Score(), s.game.Total())))
	if s.game.Score() == s.game.Total() {
		sections = append(sections, theme.Correct.Render("満点！ Perfect score!"))
	}
	sections = append(sections, "")
	sections = append(sections, theme.Hint.Render("Enter to save and return, R to play again"))
	return centered(width, height, strings.Join(sections, "\n"))
}

func centered(width, height int, content string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
