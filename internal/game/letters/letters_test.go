package letters

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sortedRunes(s string) string {
	runes := []rune(s)
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })
	return string(runes)
}

func TestShuffleIsPermutation(t *testing.T) {
	for _, word := range words {
		spaced := shuffle(word)
		flat := strings.ReplaceAll(spaced, " ", "")
		assert.Equal(t, sortedRunes(word), sortedRunes(flat), word)
	}
}

// wordFromPrompt recovers which catalog word the shuffled question was
// built from by comparing letter multisets.
func wordFromPrompt(t *testing.T, question string) string {
	t.Helper()
	shuffled := strings.TrimPrefix(question, "كون كلمه من الحروف: ")
	flat := sortedRunes(strings.ReplaceAll(shuffled, " ", ""))
	for _, word := range words {
		if sortedRunes(word) == flat {
			return word
		}
	}
	t.Fatalf("no catalog word matches prompt %q", question)
	return ""
}

func TestAnswerScoresFullReward(t *testing.T) {
	g := New()
	prompt := g.Start()
	require.NotNil(t, prompt)

	word := wordFromPrompt(t, prompt.Question)
	outcome := g.CheckAnswer(context.Background(), word, "U1", "احمد")
	require.NotNil(t, outcome)
	assert.True(t, outcome.Correct)
	assert.Equal(t, int64(10), outcome.Points)
	assert.True(t, outcome.NextQuestion)
}

func TestHintHalvesReward(t *testing.T) {
	g := New()
	prompt := g.Start()
	require.NotNil(t, prompt)

	hint := g.CheckAnswer(context.Background(), "لمح", "U1", "احمد")
	require.NotNil(t, hint)
	assert.False(t, hint.Correct)
	assert.Contains(t, hint.Reply.Text, "تبدأ بحرف")

	word := wordFromPrompt(t, prompt.Question)
	outcome := g.CheckAnswer(context.Background(), word, "U1", "احمد")
	require.NotNil(t, outcome)
	assert.Equal(t, int64(5), outcome.Points)
}
