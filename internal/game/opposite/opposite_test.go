package opposite

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/botabeer/linegames/internal/model"
)

// answerFor extracts the quoted word from a prompt and returns its
// expected antonym from the table.
func answerFor(t *testing.T, question string) string {
	t.Helper()
	start := strings.Index(question, "«")
	end := strings.Index(question, "»")
	require.True(t, start >= 0 && end > start, "prompt %q has no quoted word", question)
	word := question[start+len("«") : end]
	for _, p := range pairs {
		if p.word == word {
			return p.answer
		}
	}
	t.Fatalf("word %q not in table", word)
	return ""
}

func TestFullGameAwardsPoints(t *testing.T) {
	ctx := context.Background()
	g := New()

	assert.Equal(t, model.GameOpposite, g.Type())
	assert.True(t, g.Scored())

	p := g.Start()
	require.NotNil(t, p)

	for round := 1; round <= maxRounds; round++ {
		out := g.CheckAnswer(ctx, answerFor(t, p.Question), "p1", "لاعب")
		require.NotNil(t, out, "round %d", round)
		assert.True(t, out.Correct)
		assert.Equal(t, int64(points), out.Points)

		if round < maxRounds {
			require.True(t, out.NextQuestion)
			p = g.NextQuestion()
			require.NotNil(t, p)
		} else {
			assert.True(t, out.GameOver)
		}
	}

	sum := g.FinalResults()
	require.Len(t, sum.Entries, 1)
	assert.Equal(t, int64(points*maxRounds), sum.Entries[0].Points)
}

func TestDiacriticInsensitiveAnswer(t *testing.T) {
	g := New()
	p := g.Start()

	// Add a fatha and tanween to the expected answer; it must still match.
	decorated := ""
	for _, r := range answerFor(t, p.Question) {
		decorated += string(r) + "َ"
	}

	out := g.CheckAnswer(context.Background(), decorated, "p1", "لاعب")
	require.NotNil(t, out)
	assert.True(t, out.Correct)
}

func TestWrongAnswerIgnored(t *testing.T) {
	g := New()
	g.Start()
	assert.Nil(t, g.CheckAnswer(context.Background(), "كلمه خاطئه قطعا", "p1", "لاعب"))
}
