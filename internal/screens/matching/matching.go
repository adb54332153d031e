package matching

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
	"github.com/kdnguyen/gogaku/internal/ui/layout"
	"github.com/kdnguyen/gogaku/internal/ui/theme"
)

type recordedMsg struct {
	Record history.Record
	Err    error
}

var rightKeys = []string{"a", "b", "c", "d", "e"}

// MatchingScreen plays a word matching session: pair each grammar
// pattern on the left with its example sentence on the right.
type MatchingScreen struct {
	game     *game.Matching
	recorder game.Recorder
	userID   int64

	lastResult *game.AnswerResult
	recorded   bool
	errMsg     string
}

var _ screen.Screen = (*MatchingScreen)(nil)
var _ screen.KeyHintProvider = (*MatchingScreen)(nil)

// New deals a fresh session from bank.
func New(bank []catalog.MatchingPair, recorder game.Recorder, userID int64) *MatchingScreen {
	g, err := game.NewMatching(bank, nil)
	s := &MatchingScreen{game: g, recorder: recorder, userID: userID}
	if err != nil {
		s.errMsg = err.Error()
	}
	return s
}

func (s *MatchingScreen) Init() tea.Cmd { return nil }

func (s *MatchingScreen) Title() string { return "Word Matching" }

func (s *MatchingScreen) KeyHints() []layout.KeyHint {
	if s.game != nil && s.game.Complete() {
		return []layout.KeyHint{{Key: "Enter", Description: "Done"}}
	}
	if s.game != nil && s.game.RoundDone() {
		return []layout.KeyHint{{Key: "Enter", Description: "Next round"}}
	}
	return []layout.KeyHint{
		{Key: "1-5", Description: "Grammar"},
		{Key: "A-E", Description: "Example"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *MatchingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
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

func (s *MatchingScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	key := strings.ToLower(msg.String())

	if s.game.Complete() {
		if key == "enter" {
			if s.recorded {
				return s, func() tea.Msg { return router.PopScreenMsg{} }
			}
			s.recorded = true
			return s, s.finish()
		}
		return s, nil
	}

	if s.game.RoundDone() {
		if key == "enter" {
			s.lastResult = nil
			_ = s.game.AdvanceRound()
		}
		return s, nil
	}

	if len(key) == 1 && key[0] >= '1' && key[0] <= '5' {
		res, resolved, _ := s.game.SelectLeft(int(key[0] - '1'))
		if resolved {
			s.lastResult = &res
		}
		return s, nil
	}
	for i, rk := range rightKeys {
		if key == rk {
			res, resolved, _ := s.game.SelectRight(i)
			if resolved {
				s.lastResult = &res
			}
			return s, nil
		}
	}
	return s, nil
}

func (s *MatchingScreen) finish() tea.Cmd {
	g := s.game
	recorder := s.recorder
	userID := s.userID
	return func() tea.Msg {
		rec, err := g.Finish(context.Background(), recorder, userID)
		return recordedMsg{Record: rec, Err: err}
	}
}

func (s *MatchingScreen) View(width, height int) string {
	if s.errMsg != "" {
		return centered(width, height, theme.Incorrect.Render("Error: "+s.errMsg))
	}
	if s.game.Complete() {
		return s.viewSummary(width, height)
	}
	return s.viewRound(width, height)
}

func (s *MatchingScreen) viewRound(width, height int) string {
	var sections []string

	sections = append(sections, theme.Subtitle.Render(
		fmt.Sprintf("Round %d/%d   Score %d/%d",
			s.game.Round(), game.MatchingRounds, s.game.Score(), s.game.Total())))
	sections = append(sections, "")

	left := s.game.Left()
	right := s.game.Right()

	var leftLines, rightLines []string
	for i, p := range left {
		label := fmt.Sprintf("%d. %s", i+1, p.Grammar)
		leftLines = append(leftLines, s.itemStyle(p.ID, i == s.game.SelectedLeft()).Render(label))
	}
	for i, p := range right {
		label := fmt.Sprintf("%s. %s", strings.ToUpper(rightKeys[i]), p.Example)
		rightLines = append(rightLines, s.itemStyle(p.ID, i == s.game.SelectedRight()).Render(label))
	}

	leftCol := strings.Join(leftLines, "\n")
	rightCol := strings.Join(rightLines, "\n")
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top,
		leftCol, strings.Repeat(" ", 6), rightCol))

	if s.lastResult != nil {
		sections = append(sections, "")
		if s.lastResult.Correct {
			sections = append(sections, theme.Correct.Render("マッチ！"))
		} else {
			sections = append(sections, theme.Incorrect.Render("Not a match. Try again."))
		}
	}

	if s.game.RoundDone() {
		sections = append(sections, "")
		if s.game.Round() < game.MatchingRounds {
			sections = append(sections, theme.Hint.Render("Round complete! Enter for the next round."))
		} else {
			sections = append(sections, theme.Hint.Render("Enter to see your results."))
		}
	}

	return centered(width, height, strings.Join(sections, "\n"))
}

func (s *MatchingScreen) itemStyle(pairID int, selected bool) lipgloss.Style {
	if s.game.Matched(pairID) {
		return theme.Matched
	}
	if selected {
		return theme.Selected
	}
	return theme.Unselected
}

func (s *MatchingScreen) viewSummary(width, height int) string {
	var sections []string
	sections = append(sections, theme.Title.Render("Matching Complete!"))
	sections = append(sections, "")
	sections = append(sections, theme.Body.Render(
		fmt.Sprintf("Score: %d / %d", s.game.Score(), s.game.Total())))
	if s.game.Score() == s.game.Total() {
		sections = append(sections, theme.Correct.Render("満点！ Perfect score!"))
	}
	sections = append(sections, "")
	sections = append(sections, theme.Hint.Render("Enter to save and return"))
	return centered(width, height, strings.Join(sections, "\n"))
}

func centered(width, height int, content string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
