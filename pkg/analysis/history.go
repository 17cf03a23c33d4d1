package analysis

import "strings"

const (
	historyTurns     = 4
	historyTurnRunes = 200
)

// WithHistory prepends the last few turns of the conversation to userContent.
// Older turns are dropped and long turns are shortened. With no history,
// userContent is returned as is.
func WithHistory(turns []Turn, userContent string) string {
	if len(turns) == 0 {
		return userContent
	}
	if len(turns) > historyTurns {
		turns = turns[len(turns)-historyTurns:]
	}

	var b strings.Builder
	b.WriteString("\n\nPrevious conversation:\n")
	for _, t := range turns {
		b.WriteString(roleLabel(t.Role))
		b.WriteString(": ")
		b.WriteString(truncate(t.Content, historyTurnRunes))
		b.WriteString("\n")
	}
	b.WriteString("\n\nCurrent question:\n")
	b.WriteString(userContent)
	return b.String()
}

func roleLabel(role string) string {
	if role == RoleUser {
		return "User"
	}
	return PersonaName
}
