// File: internal/services/chat/prompt.go
package chat

import "strings"

// HistoryEntry is one prior turn rendered into the prompt. Both the
// persistent message log and the volatile per-session store reduce to it.
type HistoryEntry struct {
	Role    string
	Content string
}

const personaTemplate = `You are Pahiy AI, a small language model developed by Ayaz Doruk Senel, version 1.0 flash. You are a friendly, helpful and warm assistant. You do not use emoji and you keep answers short and to the point. Follow the previous conversation carefully and answer in context: if the user has shared information earlier (a name, a plan, a date, a place), remember it and use it.`

const personaGreeting = `The user's name is %NAME%. Address them by name in the first message or wherever it fits naturally.`

const personaFormatting = `Formatting rules:
- Put code blocks between ` + "```" + `programming_language and ` + "```" + `.
- Use **double asterisks** for bold text and *single asterisks* for italic text.
- Keep code readable, preserve its indentation, and add explanations.`

// AssemblePrompt builds the full prompt text from the new input, the
// bounded recent history and the optional display name. It is a pure
// function: identical inputs always yield byte-identical output, which is
// what makes the chat path testable up to the network call.
func AssemblePrompt(userInput string, history []HistoryEntry, displayName string, historySize int) string {
	var b strings.Builder

	b.WriteString(personaTemplate)
	b.WriteString("\n\n")
	if displayName != "" {
		b.WriteString(strings.ReplaceAll(personaGreeting, "%NAME%", displayName))
		b.WriteString("\n\n")
	}
	b.WriteString(personaFormatting)
	b.WriteString("\n\n")

	b.WriteString("PREVIOUS CONVERSATION HISTORY:\n")
	if len(history) == 0 {
		b.WriteString("No conversation yet.\n")
	} else {
		start := 0
		if len(history) > historySize {
			start = len(history) - historySize
		}
		for _, entry := range history[start:] {
			switch entry.Role {
			case "user":
				b.WriteString("User: ")
			default:
				b.WriteString("Assistant: ")
			}
			b.WriteString(entry.Content)
			b.WriteString("\n")
		}
	}

	b.WriteString("\nCURRENT QUESTION: ")
	b.WriteString(userInput)
	b.WriteString("\nANSWER:")

	return b.String()
}
