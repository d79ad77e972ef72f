// Package speed implements the speed-typing game: a phrase is shown and
// the first player to retype it wins the round, with the reward tiered by
// how fast the answer arrived.
package speed

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/botabeer/linegames/internal/game"
	"github.com/botabeer/linegames/internal/model"
	"github.com/botabeer/linegames/internal/pkg/arabic"
)

// Trigger is the Arabic token that starts this game.
const Trigger = "اسرع"

const maxRounds = 5

// roundLimit is the per-round time budget; answers after it are rejected.
const roundLimit = 30 * time.Second

// Reward tiers by elapsed seconds since the prompt.
const (
	fastTier   = 20
	mediumTier = 10
	floorTier  = 5
)

var phrases = []string{
	"الوقت كالسيف ان لم تقطعه قطعك",
	"الصديق وقت الضيق",
	"العلم نور والجهل ظلام",
	"الصبر مفتاح الفرج",
	"خير الكلام ما قل ودل",
	"من جد وجد ومن زرع حصد",
	"العقل السليم في الجسم السليم",
	"رب ضاره نافعه",
}

// Game is the speed-typing instance.
type Game struct {
	round     int
	phrase    string
	startedAt time.Time
	roundWon  bool
	picks     []int

	tally map[string]int64
	names map[string]string
	order []string

	// now is swappable for tests.
	now func() time.Time
}

// New builds a fresh speed-typing instance.
func New() game.Game {
	return &Game{now: time.Now}
}

func (g *Game) Name() string { return "اسرع واحد" }
func (g *Game) Type() string { return model.GameSpeed }
func (g *Game) Scored() bool { return true }

// Start opens round one with a random phrase.
func (g *Game) Start() *game.Prompt {
	g.round = 1
	g.picks = rand.Perm(len(phrases))
	g.tally = make(map[string]int64)
	g.names = make(map[string]string)
	g.order = nil
	g.openRound()
	return g.prompt()
}

// CheckAnswer accepts the first correct retype inside the time limit.
// Later correct answers in the same round are ignored.
func (g *Game) CheckAnswer(_ context.Context, raw, playerID, displayName string) *game.Outcome {
	norm := arabic.Normalize(raw)
	if norm == "" {
		return nil
	}

	if norm == game.TokenSkip {
		next, over := g.advanceFlags()
		return &game.Outcome{NextQuestion: next, GameOver: over, Reply: game.Reply{Text: "تم تخطي الجوله"}}
	}

	if norm != arabic.Normalize(g.phrase) {
		return nil
	}
	if g.roundWon {
		return nil
	}

	elapsed := g.now().Sub(g.startedAt)
	if elapsed > roundLimit {
		next, over := g.advanceFlags()
		return &game.Outcome{
			NextQuestion: next,
			GameOver:     over,
			Reply:        game.Reply{Text: "انتهى الوقت ⏰"},
		}
	}

	g.roundWon = true
	reward := tierFor(elapsed)
	g.score(playerID, displayName, reward)

	next, over := g.advanceFlags()
	return &game.Outcome{
		Correct:      true,
		Points:       reward,
		Won:          true,
		NextQuestion: next,
		GameOver:     over,
		Reply:        game.Reply{Text: fmt.Sprintf("برق ⚡ %s +%d (%.0f ثانيه)", displayName, reward, elapsed.Seconds())},
	}
}

// NextQuestion opens the next round, or returns nil past the limit.
func (g *Game) NextQuestion() *game.Prompt {
	if g.round >= maxRounds {
		return nil
	}
	g.round++
	g.openRound()
	return g.prompt()
}

// FinalResults ranks scorers highest first, ties in first-score order.
func (g *Game) FinalResults() *game.Summary {
	entries := make([]game.Standing, 0, len(g.order))
	for _, id := range g.order {
		entries = append(entries, game.Standing{PlayerID: id, DisplayName: g.names[id], Points: g.tally[id]})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Points > entries[j].Points })
	return &game.Summary{GameName: g.Name(), Entries: entries}
}

// tierFor maps the answer delay onto a reward.
func tierFor(elapsed time.Duration) int64 {
	switch {
	case elapsed <= 5*time.Second:
		return fastTier
	case elapsed <= 10*time.Second:
		return mediumTier
	default:
		return floorTier
	}
}

func (g *Game) openRound() {
	g.phrase = phrases[g.picks[(g.round-1)%len(g.picks)]]
	g.startedAt = g.now()
	g.roundWon = false
}

func (g *Game) score(playerID, displayName string, pts int64) {
	if _, seen := g.tally[playerID]; !seen {
		g.order = append(g.order, playerID)
	}
	g.tally[playerID] += pts
	g.names[playerID] = displayName
}

func (g *Game) advanceFlags() (next, over bool) {
	if g.round >= maxRounds {
		return false, true
	}
	return true, false
}

func (g *Game) prompt() *game.Prompt {
	return &game.Prompt{
		Title:       g.Name(),
		Question:    "اكتب بسرعه: «" + g.phrase + "»",
		Round:       g.round,
		TotalRounds: maxRounds,
	}
}
