// Package wordchain implements the word-chain game: every answer must
// start with the last letter of the previous word, and becomes the seed
// for the next round.
package wordchain

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/botabeer/linegames/internal/game"
	"github.com/botabeer/linegames/internal/model"
	"github.com/botabeer/linegames/internal/pkg/arabic"
)

// Trigger is the Arabic token that starts this game.
const Trigger = "سلسله"

const (
	maxRounds = 5
	points    = 2
)

// seeds start the chain.
var seeds = []string{"قمر", "شمس", "بحر", "جبل", "نجم", "ورد", "سحاب", "مطر"}

// Chain is the game instance. Any word of two or more letters starting
// with the required letter is accepted; there is no dictionary check.
type Chain struct {
	round    int
	current  string
	required rune
	nextWord string

	tally map[string]int64
	names map[string]string
	order []string
}

// New builds a fresh word-chain instance.
func New() game.Game {
	return &Chain{}
}

func (c *Chain) Name() string { return "سلسله الكلمات" }
func (c *Chain) Type() string { return model.GameWordChain }
func (c *Chain) Scored() bool { return true }

// Start picks a random seed word and opens round one.
func (c *Chain) Start() *game.Prompt {
	c.round = 1
	c.tally = make(map[string]int64)
	c.names = make(map[string]string)
	c.order = nil
	c.setWord(seeds[rand.Intn(len(seeds))])
	return c.prompt()
}

// CheckAnswer accepts any word beginning with the required letter.
func (c *Chain) CheckAnswer(_ context.Context, raw, playerID, displayName string) *game.Outcome {
	norm := arabic.Normalize(raw)
	if norm == "" {
		return nil
	}

	switch norm {
	case game.TokenHint:
		return &game.Outcome{Reply: game.Reply{Text: fmt.Sprintf("اي كلمه تبدأ بحرف «%c»", c.required)}}
	case game.TokenReveal:
		// There is no single right answer, so revealing shows an example
		// and does not advance the round.
		return &game.Outcome{Reply: game.Reply{Text: fmt.Sprintf("مثال: كلمه تبدأ بحرف «%c»", c.required)}}
	case game.TokenSkip:
		next, over := c.advanceFlags()
		return &game.Outcome{NextQuestion: next, GameOver: over, Reply: game.Reply{Text: "تم تخطي الجوله"}}
	}

	word := norm
	if strings.ContainsRune(word, ' ') {
		return nil
	}
	runes := []rune(word)
	if len(runes) < 2 || runes[0] != c.required {
		return nil
	}

	c.score(playerID, displayName, points)
	c.nextWord = word

	next, over := c.advanceFlags()
	return &game.Outcome{
		Correct:      true,
		Points:       points,
		Won:          true,
		NextQuestion: next,
		GameOver:     over,
		Reply:        game.Reply{Text: fmt.Sprintf("ممتاز يا %s 🎉 +%d", displayName, points)},
	}
}

// NextQuestion chains off the last accepted word.
func (c *Chain) NextQuestion() *game.Prompt {
	if c.round >= maxRounds {
		return nil
	}
	c.round++
	if c.nextWord != "" {
		c.setWord(c.nextWord)
	} else {
		// Skipped round: restart the chain from a fresh seed.
		c.setWord(seeds[rand.Intn(len(seeds))])
	}
	return c.prompt()
}

// FinalResults ranks scorers highest first, ties in first-score order.
func (c *Chain) FinalResults() *game.Summary {
	entries := make([]game.Standing, 0, len(c.order))
	for _, id := range c.order {
		entries = append(entries, game.Standing{PlayerID: id, DisplayName: c.names[id], Points: c.tally[id]})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Points > entries[j].Points })
	return &game.Summary{GameName: c.Name(), Entries: entries}
}

func (c *Chain) setWord(word string) {
	c.current = word
	c.nextWord = ""
	runes := []rune(word)
	c.required = runes[len(runes)-1]
}

func (c *Chain) score(playerID, displayName string, pts int64) {
	if _, seen := c.tally[playerID]; !seen {
		c.order = append(c.order, playerID)
	}
	c.tally[playerID] += pts
	c.names[playerID] = displayName
}

func (c *Chain) advanceFlags() (next, over bool) {
	if c.round >= maxRounds {
		return false, true
	}
	return true, false
}

func (c *Chain) prompt() *game.Prompt {
	return &game.Prompt{
		Title:       c.Name(),
		Question:    fmt.Sprintf("الكلمه: «%s» — اكتب كلمه تبدأ بحرف «%c»", c.current, c.required),
		Round:       c.round,
		TotalRounds: maxRounds,
	}
}
