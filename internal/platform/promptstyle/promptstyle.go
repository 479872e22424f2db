package promptstyle

import "strings"

const marker = "LEARNPATH_PROMPT_STYLE_V1"

const (
	ModeJSON = "json"
	ModeChat = "chat"
)

// ApplySystem prepends a short guidance block to a system prompt. Applying it
// twice is a no-op.
func ApplySystem(system string, mode string) string {
	base := strings.TrimSpace(system)
	if base == "" || strings.Contains(base, marker) {
		return base
	}

	var b strings.Builder
	b.WriteString(marker)
	b.WriteString("\nYou are working for LearnPath AI, a personalized learning platform.")
	b.WriteString("\nFollow the system and user instructions precisely.")
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case ModeJSON:
		b.WriteString("\nReturn a single JSON object that conforms to the schema and contains no extra keys.")
		b.WriteString("\nPrefer concrete, real resources over vague suggestions.")
	default:
		b.WriteString("\nBe encouraging, concise and practical.")
		b.WriteString("\nIf you do not know something, say so instead of guessing.")
	}
	b.WriteString("\n---\n")
	b.WriteString(base)
	return b.String()
}
