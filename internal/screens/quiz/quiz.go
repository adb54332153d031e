package quiz

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

// QuizScreen plays a multiple choice session.
type QuizScreen struct {
	quiz     *game.Quiz
	recorder game.Recorder
	userID   int64

	feedback *game.AnswerResult
	recorded bool
	errMsg   string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New deals a fresh quiz from bank.
func New(bank []catalog.Question, recorder game.Recorder, userID int64) *QuizScreen {
	q, err := game.NewQuiz(bank, nil)
	s := &QuizScreen{quiz: q, recorder: recorder, userID: userID}
	if err != nil {
		s.errMsg = err.Error()
	}
	return s
}

func (s *QuizScreen) Init() tea.Cmd { return nil }

func (s *QuizScreen) Title() string { return "Multiple Choice" }

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.quiz != nil && s.quiz.Complete() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Done"},
			{Key: "R", Description: "Play again"},
		}
	}
	if s.feedback != nil {
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	}
	return []layout.KeyHint{
		{Key: "1-4", Description: "Answer"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
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

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.quiz.Complete() {
		switch msg.String() {
		case "r", "R":
			s.quiz.Reset()
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

	// Feedback overlay: any key advances.
	if s.feedback != nil {
		s.feedback = nil
		_ = s.quiz.Advance()
		return s, nil
	}

	switch msg.String() {
	case "1", "2", "3", "4":
		choice := int(msg.String()[0] - '1')
		q, err := s.quiz.Current()
		if err != nil || choice >= len(q.Options) {
			return s, nil
		}
		res, err := s.quiz.Submit(choice)
		if err != nil {
			return s, nil
		}
		s.feedback = &res
	}
	return s, nil
}

// finish persists the completed game to history.
func (s *QuizScreen) finish() tea.Cmd {
	quiz := s.quiz
	recorder := s.recorder
	userID := s.userID
	return func() tea.Msg {
		rec, err := quiz.Finish(context.Background(), recorder, userID)
		return recordedMsg{Record: rec, Err: err}
	}
}

func (s *QuizScreen) View(width, height int) string {
	if s.errMsg != "" {
		return centered(width, height, theme.Incorrect.Render("Error: "+s.errMsg))
	}
	if s.quiz.Complete() {
		return s.viewSummary(width, height)
	}
	return s.viewQuestion(width, height)
}

func (s *QuizScreen) viewQuestion(width, height int) string {
	q, err := s.quiz.Current()
	if err != nil {
		return centered(width, height, theme.Incorrect.Render(err.Error()))
	}

	var sections []string

	bar := components.NewProgressBar(
		fmt.Sprintf("Question %d/%d", s.quiz.Index()+1, s.quiz.Total()),
		float64(s.quiz.Index())/float64(s.quiz.Total()),
		false, 50)
	sections = append(sections, bar.View())
	sections = append(sections, "")

	sections = append(sections, theme.Japanese.Render(q.Question))
	sections = append(sections, "")

	choice, answered := s.quiz.Choice()
	for i, opt := range q.Options {
		line := fmt.Sprintf("%d. %s", i+1, opt)
		style := theme.Unselected
		if answered {
			switch {
			case i == q.CorrectAnswer:
				style = theme.Correct
			case i == choice:
				style = theme.Incorrect
			default:
				style = lipgloss.NewStyle().Foreground(theme.TextDim)
			}
		}
		sections = append(sections, style.Render(line))
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

func (s *QuizScreen) viewSummary(width, height int) string {
	var sections []string
	sections = append(sections, theme.Title.Render("Quiz Complete!"))
	sections = append(sections, "")
	sections = append(sections, theme.Body.Render(
		fmt.Sprintf("Score: %d / %d", s.quiz.Score(), s.quiz.Total())))
	if s.quiz.Score() == s.quiz.Total() {
		sections = append(sections, theme.Correct.Render("満点！ Perfect score!"))
	}
	sections = append(sections, "")
	sections = append(sections, theme.Hint.Render("Enter to save and return, R to play again"))
	return centered(width, height, strings.Join(sections, "\n"))
}

func centered(width, height int, content string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
