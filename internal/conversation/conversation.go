// Package conversation tracks bounded per-session chat history.
package conversation

// Message roles. Anything else is treated as malformed and dropped.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Bound returns the most recent max messages with well-formed roles. The
// window is applied before each generation so the prompt stays within the
// generator's context budget; the stored history may be longer.
func Bound(history []Message, max int) []Message {
	valid := make([]Message, 0, len(history))
	for _, msg := range history {
		if msg.Role != RoleUser && msg.Role != RoleAssistant {
			continue
		}
		valid = append(valid, msg)
	}

	if max > 0 && len(valid) > max {
		valid = valid[len(valid)-max:]
	}
	return valid
}

// WithTurn appends a completed question/answer exchange to the history.
func WithTurn(history []Message, question, answer string) []Message {
	return append(history,
		Message{Role: RoleUser, Content: question},
		Message{Role: RoleAssistant, Content: answer},
	)
}
