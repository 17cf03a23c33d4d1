package analysis

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithHistory_NoTurns(t *testing.T) {
	assert.Equal(t, "question", WithHistory(nil, "question"))
	assert.Equal(t, "question", WithHistory([]Turn{}, "question"))
}

func TestWithHistory_Format(t *testing.T) {
	turns := []Turn{
		{Role: RoleUser, Content: "hi"},
		{Role: RoleAssistant, Content: "hello"},
	}

	got := WithHistory(turns, "Q")

	assert.Equal(t, "\n\nPrevious conversation:\nUser: hi\nAtlas: hello\n\n\nCurrent question:\nQ", got)
}

func TestWithHistory_KeepsLastFourInOrder(t *testing.T) {
	var turns []Turn
	for i := 1; i <= 7; i++ {
		role := RoleUser
		if i%2 == 0 {
			role = RoleAssistant
		}
		turns = append(turns, Turn{Role: role, Content: fmt.Sprintf("turn-%d", i)})
	}

	got := WithHistory(turns, "Q")

	for i := 1; i <= 3; i++ {
		assert.NotContains(t, got, fmt.Sprintf("turn-%d\n", i))
	}
	i4 := strings.Index(got, "turn-4")
	i5 := strings.Index(got, "turn-5")
	i6 := strings.Index(got, "turn-6")
	i7 := strings.Index(got, "turn-7")
	assert.True(t, i4 >= 0 && i4 < i5 && i5 < i6 && i6 < i7, "turns out of order: %q", got)
	assert.Equal(t, 4, strings.Count(got, "turn-"))
}

func TestWithHistory_TruncatesLongTurns(t *testing.T) {
	long := strings.Repeat("a", 200) + strings.Repeat("b", 50)
	exact := strings.Repeat("c", 200)

	got := WithHistory([]Turn{
		{Role: RoleUser, Content: long},
		{Role: RoleAssistant, Content: exact},
	}, "Q")

	assert.Contains(t, got, "User: "+strings.Repeat("a", 200)+"...\n")
	assert.NotContains(t, got, "b")
	assert.Contains(t, got, "Atlas: "+exact+"\n")
	assert.NotContains(t, got, exact+"...")
}

func TestWithHistory_UnknownRoleUsesPersona(t *testing.T) {
	got := WithHistory([]Turn{{Role: "system", Content: "note"}}, "Q")

	assert.Contains(t, got, "Atlas: note\n")
}

func TestWithHistory_DoesNotMutateInput(t *testing.T) {
	turns := []Turn{
		{Role: RoleUser, Content: "1"},
		{Role: RoleUser, Content: "2"},
		{Role: RoleUser, Content: "3"},
		{Role: RoleUser, Content: "4"},
		{Role: RoleUser, Content: strings.Repeat("5", 300)},
	}
	before := append([]Turn(nil), turns...)

	first := WithHistory(turns, "Q")
	second := WithHistory(turns, "Q")

	assert.Equal(t, before, turns)
	assert.Equal(t, first, second)
}
