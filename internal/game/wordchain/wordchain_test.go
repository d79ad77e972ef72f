package wordchain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChainFollowsLastLetter(t *testing.T) {
	ctx := context.Background()
	c := New().(*Chain)

	p := c.Start()
	require.NotNil(t, p)
	first := c.required

	// A word not starting with the required letter is ignored.
	bad := "ب"
	if first == 'ب' {
		bad = "ت"
	}
	assert.Nil(t, c.CheckAnswer(ctx, bad+"يت", "p1", "لاعب"))

	answer := string(first) + "مال"
	out := c.CheckAnswer(ctx, answer, "p1", "لاعب")
	require.NotNil(t, out)
	assert.True(t, out.Correct)
	assert.True(t, out.NextQuestion)

	next := c.NextQuestion()
	require.NotNil(t, next)
	assert.Equal(t, 'ل', c.required, "chain continues from the last letter of the answer")
	assert.Contains(t, next.Question, answer)
}

func TestSingleLetterRejected(t *testing.T) {
	c := New().(*Chain)
	c.Start()
	assert.Nil(t, c.CheckAnswer(context.Background(), string(c.required), "p1", "لاعب"))
}

func TestMultiWordAnswerRejected(t *testing.T) {
	c := New().(*Chain)
	c.Start()
	answer := string(c.required) + "مال " + string(c.required) + "مر"
	assert.Nil(t, c.CheckAnswer(context.Background(), answer, "p1", "لاعب"))
}

func TestRevealDoesNotAdvance(t *testing.T) {
	c := New().(*Chain)
	c.Start()

	out := c.CheckAnswer(context.Background(), "جاوب", "p1", "لاعب")
	require.NotNil(t, out)
	assert.False(t, out.NextQuestion)
	assert.False(t, out.GameOver)
}

func TestGameEndsAfterMaxRounds(t *testing.T) {
	ctx := context.Background()
	c := New().(*Chain)
	c.Start()

	for round := 1; round <= maxRounds; round++ {
		out := c.CheckAnswer(ctx, string(c.required)+"مال", "p1", "لاعب")
		require.NotNil(t, out, "round %d", round)
		if round < maxRounds {
			require.True(t, out.NextQuestion)
			require.NotNil(t, c.NextQuestion())
		} else {
			assert.True(t, out.GameOver)
			assert.Nil(t, c.NextQuestion())
		}
	}

	sum := c.FinalResults()
	require.Len(t, sum.Entries, 1)
	assert.Equal(t, int64(points*maxRounds), sum.Entries[0].Points)
}
