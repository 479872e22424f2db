package prompts

import (
	"strings"
)

// MaxChatContextPaths bounds how many of the user's paths are described to the assistant.
const MaxChatContextPaths = 5

// PathContext is the slice of a learning path the assistant sees.
type PathContext struct {
	Title       string
	Description string
}

const chatSystemBase = `You are a helpful AI learning assistant for LearnPath AI, a personalized learning platform. Your role is to:

1. Help users understand concepts and topics they're learning
2. Provide clear, concise explanations suitable for their level
3. Suggest learning strategies and resources
4. Motivate and encourage learners
5. Answer questions about their learning paths

Be friendly, supportive, and educational. Keep responses concise but informative.`

// ChatSystem renders the assistant's system prompt with up to
// MaxChatContextPaths of the user's paths appended.
func ChatSystem(paths []PathContext) string {
	var b strings.Builder
	b.WriteString(chatSystemBase)
	n := 0
	for _, p := range paths {
		title := strings.TrimSpace(p.Title)
		if title == "" {
			continue
		}
		if n == MaxChatContextPaths {
			break
		}
		if n == 0 {
			b.WriteString("\n\nUser's current learning paths:")
		}
		b.WriteString("\n- ")
		b.WriteString(title)
		if d := strings.TrimSpace(p.Description); d != "" {
			b.WriteString(": ")
			b.WriteString(d)
		}
		n++
	}
	return b.String()
}
