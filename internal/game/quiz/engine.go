// Package quiz implements the round engine shared by the question/answer
// game types. Each type supplies a configuration (name, trigger, scoring
// constants, round source) instead of duplicating the lifecycle logic.
package quiz

import (
	"context"
	"fmt"
	"sort"

	"github.com/botabeer/linegames/internal/game"
	"github.com/botabeer/linegames/internal/pkg/arabic"
)

// Round is one question with its accepted answers and optional hint.
type Round struct {
	Question string
	Answer   string
	Accept   []string
	Hint     string

	// Check overrides the answer comparison when set. It receives the
	// normalized input and reports whether it counts as correct.
	Check func(normalized string) bool
}

// Config is the per-type data table driving the engine.
type Config struct {
	Name      string
	Type      string
	MaxRounds int

	// Points is the reward for a correct answer; using the hint in the
	// same round halves it.
	Points int64

	// AdvanceOnReveal controls whether revealing the answer also moves
	// to the next round. The policy differs per game type.
	AdvanceOnReveal bool

	// Scored marks whether this type participates in the points economy.
	Scored bool

	// Source yields the round for a 1-based round number. It is called
	// once per round.
	Source func(round int) Round
}

// Engine drives Ready -> InRound(n) -> InRound(n+1) | Finished for one
// session. It is not safe for concurrent use; the session registry
// serializes access per session.
type Engine struct {
	cfg      Config
	round    int
	hintUsed bool
	current  Round

	tally map[string]int64
	names map[string]string
	order []string
}

// New creates an engine for the given configuration.
func New(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

func (e *Engine) Name() string { return e.cfg.Name }
func (e *Engine) Type() string { return e.cfg.Type }
func (e *Engine) Scored() bool { return e.cfg.Scored }

// Start resets all state and returns the first prompt.
func (e *Engine) Start() *game.Prompt {
	e.round = 1
	e.hintUsed = false
	e.tally = make(map[string]int64)
	e.names = make(map[string]string)
	e.order = nil
	e.current = e.cfg.Source(1)
	return e.prompt()
}

// CheckAnswer classifies the input for the current round.
func (e *Engine) CheckAnswer(_ context.Context, raw, playerID, displayName string) *game.Outcome {
	norm := arabic.Normalize(raw)
	if norm == "" {
		return nil
	}

	switch norm {
	case game.TokenHint:
		return e.hint()
	case game.TokenReveal:
		return e.reveal()
	case game.TokenSkip:
		next, over := e.advanceFlags()
		return &game.Outcome{
			NextQuestion: next,
			GameOver:     over,
			Reply:        game.Reply{Text: "تم تخطي السؤال"},
		}
	}

	if !e.matches(norm) {
		return nil
	}

	reward := e.cfg.Points
	if e.hintUsed {
		reward /= 2
	}
	e.score(playerID, displayName, reward)

	next, over := e.advanceFlags()
	return &game.Outcome{
		Correct:      true,
		Points:       reward,
		Won:          true,
		NextQuestion: next,
		GameOver:     over,
		Reply:        game.Reply{Text: fmt.Sprintf("اجابه صحيحه يا %s 🎉 +%d", displayName, reward)},
	}
}

// NextQuestion advances the round, or returns nil past the round limit.
func (e *Engine) NextQuestion() *game.Prompt {
	if e.round >= e.cfg.MaxRounds {
		return nil
	}
	e.round++
	e.hintUsed = false
	e.current = e.cfg.Source(e.round)
	return e.prompt()
}

// FinalResults ranks everyone who scored, highest first. Ties keep the
// order in which players first scored.
func (e *Engine) FinalResults() *game.Summary {
	entries := make([]game.Standing, 0, len(e.order))
	for _, id := range e.order {
		entries = append(entries, game.Standing{
			PlayerID:    id,
			DisplayName: e.names[id],
			Points:      e.tally[id],
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Points > entries[j].Points
	})
	return &game.Summary{GameName: e.cfg.Name, Entries: entries}
}

func (e *Engine) hint() *game.Outcome {
	if e.current.Hint == "" {
		return &game.Outcome{Reply: game.Reply{Text: "لا يوجد تلميح لهذا السؤال"}}
	}
	e.hintUsed = true
	return &game.Outcome{Reply: game.Reply{Text: "تلميح: " + e.current.Hint}}
}

func (e *Engine) reveal() *game.Outcome {
	out := &game.Outcome{
		Reply: game.Reply{Text: "الاجابه هي: " + e.current.Answer},
	}
	if e.cfg.AdvanceOnReveal {
		out.NextQuestion, out.GameOver = e.advanceFlags()
	}
	return out
}

func (e *Engine) matches(normalized string) bool {
	if e.current.Check != nil {
		return e.current.Check(normalized)
	}
	if normalized == arabic.Normalize(e.current.Answer) {
		return true
	}
	for _, alt := range e.current.Accept {
		if normalized == arabic.Normalize(alt) {
			return true
		}
	}
	return false
}

func (e *Engine) score(playerID, displayName string, points int64) {
	if _, seen := e.tally[playerID]; !seen {
		e.order = append(e.order, playerID)
	}
	e.tally[playerID] += points
	e.names[playerID] = displayName
}

func (e *Engine) advanceFlags() (next, over bool) {
	if e.round >= e.cfg.MaxRounds {
		return false, true
	}
	return true, false
}

func (e *Engine) prompt() *game.Prompt {
	return &game.Prompt{
		Title:       e.cfg.Name,
		Question:    e.current.Question,
		Round:       e.round,
		TotalRounds: e.cfg.MaxRounds,
	}
}
