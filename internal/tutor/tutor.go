// Package tutor drives the conversational practice partner. A
// Conversation keeps a bounded transcript and asks the LLM for each
// reply, steering it toward a set of target grammar patterns.
package tutor

import (
	"context"
	"fmt"
	"strings"

	"github.com/kdnguyen/gogaku/internal/llm"
)

const (
	// maxTurns bounds the transcript sent to the model.
	maxTurns = 20

	replyMaxTokens   = 200
	replyTemperature = 0.7
)

// Fallback replies shown when the model fails or returns nothing. Kept
// bilingual to match the rest of the tutor's output style.
const (
	FallbackError = "すみません、エラーが発生しました。もう一度お試しください。\n(Sorry, an error occurred. Please try again.)"
	FallbackEmpty = "申し訳ありません、応答を生成できませんでした。\n(Sorry, I couldn't generate a response.)"
)

// Greeting opens every conversation.
const Greeting = "こんにちは！今日は何を練習しましょうか？\n(Hello! What shall we practice today?)"

// Turn is one message in the conversation.
type Turn struct {
	Role    llm.Role
	Content string
}

// Conversation is a tutoring session. Not safe for concurrent use.
type Conversation struct {
	provider llm.Provider
	focus    []string
	turns    []Turn
}

// New starts a conversation steered toward the given grammar patterns.
// The transcript opens with the tutor's greeting.
func New(provider llm.Provider, grammarFocus []string) *Conversation {
	return &Conversation{
		provider: provider,
		focus:    grammarFocus,
		turns: []Turn{
			{Role: llm.RoleAssistant, Content: Greeting},
		},
	}
}

// Turns returns the transcript, oldest first.
func (c *Conversation) Turns() []Turn {
	out := make([]Turn, len(c.turns))
	copy(out, c.turns)
	return out
}

// Focus returns the target grammar patterns.
func (c *Conversation) Focus() []string {
	return c.focus
}

// Send submits the user's message and returns the tutor's reply. On
// model failure the fallback reply is returned with the error, and the
// failed exchange is not added to the transcript.
func (c *Conversation) Send(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("empty message")
	}

	messages := make([]llm.Message, 0, len(c.turns)+1)
	for _, t := range c.turns {
		messages = append(messages, llm.Message{Role: t.Role, Content: t.Content})
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: text})

	ctx = llm.WithPurpose(ctx, "tutor-chat")
	resp, err := c.provider.Generate(ctx, llm.Request{
		System:      c.systemPrompt(),
		Messages:    messages,
		MaxTokens:   replyMaxTokens,
		Temperature: replyTemperature,
	})
	if err != nil {
		return FallbackError, err
	}

	reply := strings.TrimSpace(resp.Content)
	if reply == "" {
		reply = FallbackEmpty
	}

	c.append(Turn{Role: llm.RoleUser, Content: text})
	c.append(Turn{Role: llm.RoleAssistant, Content: reply})
	return reply, nil
}

// append adds a turn, dropping the oldest when the transcript is full.
func (c *Conversation) append(t Turn) {
	c.turns = append(c.turns, t)
	if len(c.turns) > maxTurns {
		c.turns = c.turns[len(c.turns)-maxTurns:]
	}
}

func (c *Conversation) systemPrompt() string {
	var b strings.Builder
	b.WriteString("You are a helpful Japanese language tutor. Help the user practice Japanese grammar through conversation.\n\n")
	if len(c.focus) > 0 {
		fmt.Fprintf(&b, "Focus on these grammar patterns: %s\n\n", strings.Join(c.focus, ", "))
	}
	b.WriteString("Guidelines:\n")
	b.WriteString("- Keep responses short (1-3 sentences)\n")
	b.WriteString("- Use natural, conversational Japanese\n")
	b.WriteString("- Include an English translation in parentheses after Japanese sentences\n")
	b.WriteString("- Gently correct grammar mistakes the user makes\n")
	b.WriteString("- Encourage the user to use the target grammar patterns\n")
	b.WriteString("- If the user writes in English, reply in simple Japanese with an English translation")
	return b.String()
}
