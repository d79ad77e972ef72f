package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopGame struct{}

func (noopGame) Name() string { return "لعبه" }
func (noopGame) Type() string { return "noop" }
func (noopGame) Scored() bool { return false }
func (noopGame) Start() *Prompt { return &Prompt{} }
func (noopGame) CheckAnswer(context.Context, string, string, string) *Outcome { return nil }
func (noopGame) NextQuestion() *Prompt { return nil }
func (noopGame) FinalResults() *Summary { return &Summary{} }

func TestRegisterAndNew(t *testing.T) {
	c := NewCatalog()
	require.NoError(t, c.Register("ضد", func() Game { return noopGame{} }))

	assert.True(t, c.Has("ضد"))
	g, err := c.New("ضد")
	require.NoError(t, err)
	assert.Equal(t, "noop", g.Type())

	_, err = c.New("غيرمسجل")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestRegisterRejectsBadInput(t *testing.T) {
	c := NewCatalog()
	assert.Error(t, c.Register("ضد", nil))
	assert.Error(t, c.Register("", func() Game { return noopGame{} }))
}

func TestUnavailableTrigger(t *testing.T) {
	c := NewCatalog()
	c.RegisterUnavailable("ذكاء")

	assert.True(t, c.Unavailable("ذكاء"))
	assert.False(t, c.Has("ذكاء"))
	_, err := c.New("ذكاء")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.NotContains(t, c.Triggers(), "ذكاء", "unavailable types stay off the help card")

	// Enabling later clears the unavailable mark.
	require.NoError(t, c.Register("ذكاء", func() Game { return noopGame{} }))
	assert.False(t, c.Unavailable("ذكاء"))
	assert.True(t, c.Has("ذكاء"))
}

func TestRegisterUnavailableNeverShadowsEnabled(t *testing.T) {
	c := NewCatalog()
	require.NoError(t, c.Register("ضد", func() Game { return noopGame{} }))
	c.RegisterUnavailable("ضد")

	assert.True(t, c.Has("ضد"))
	assert.False(t, c.Unavailable("ضد"))
}
