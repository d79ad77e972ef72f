// Package compat implements the name-compatibility game: two names in,
// a percentage out. Pure entertainment, never scored.
package compat

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/botabeer/linegames/internal/game"
	"github.com/botabeer/linegames/internal/model"
	"github.com/botabeer/linegames/internal/pkg/arabic"
)

// Trigger is the Arabic token that starts this game.
const Trigger = "توافق"

// Game is a single-round instance: the first well-formed answer ends it.
type Game struct {
	done bool
}

// New builds a fresh compatibility instance.
func New() game.Game {
	return &Game{}
}

func (g *Game) Name() string { return "نسبه التوافق" }
func (g *Game) Type() string { return model.GameCompat }
func (g *Game) Scored() bool { return false }

func (g *Game) Start() *game.Prompt {
	g.done = false
	return &game.Prompt{
		Title:       g.Name(),
		Question:    "اكتب اسمين مفصولين بـ «و» مثل: ساره و خالد",
		Round:       1,
		TotalRounds: 1,
	}
}

// CheckAnswer parses "name و name" and replies with the percentage.
func (g *Game) CheckAnswer(_ context.Context, raw, _, _ string) *game.Outcome {
	if g.done {
		return nil
	}

	first, second, ok := splitNames(arabic.Normalize(raw))
	if !ok {
		return nil
	}

	g.done = true
	return &game.Outcome{
		GameOver: true,
		Reply: game.Reply{
			Text: fmt.Sprintf("نسبه التوافق بين %s و %s هي %d%% 💕", first, second, Percentage(first, second)),
		},
	}
}

func (g *Game) NextQuestion() *game.Prompt { return nil }

func (g *Game) FinalResults() *game.Summary {
	return &game.Summary{GameName: g.Name()}
}

// Percentage is a deterministic score in [0, 100]: the same pair always
// gets the same number, in either order.
func Percentage(a, b string) int {
	if a > b {
		a, b = b, a
	}
	h := fnv.New32a()
	h.Write([]byte(a))
	h.Write([]byte{0})
	h.Write([]byte(b))
	return int(h.Sum32() % 101)
}

// splitNames accepts "a و b" or exactly two words.
func splitNames(normalized string) (string, string, bool) {
	if normalized == "" {
		return "", "", false
	}
	fields := strings.Fields(normalized)
	switch {
	case len(fields) == 3 && fields[1] == "و":
		return fields[0], fields[2], true
	case len(fields) == 2:
		return fields[0], fields[1], true
	}
	return "", "", false
}
