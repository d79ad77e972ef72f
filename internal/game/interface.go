// Package game defines the common contract every mini-game implements and
// the catalog that resolves game availability at startup.
package game

import "context"

// Control tokens recognized inside an active round. Matching is done on
// the normalized form of the incoming text.
const (
	TokenHint   = "لمح"
	TokenReveal = "جاوب"
	TokenSkip   = "تخطي"
)

// Prompt is a renderable question for one round.
type Prompt struct {
	Title       string
	Question    string
	Round       int
	TotalRounds int
	ImageURL    string
}

// Standing is one row of a final ranking.
type Standing struct {
	PlayerID    string
	DisplayName string
	Points      int64
}

// Summary is the ranked final result of a finished game. Entries are
// ordered by points descending; equal totals keep first-to-score order.
type Summary struct {
	GameName string
	Entries  []Standing
}

// Reply is the renderable payload attached to an outcome: a plain text
// message, a final summary, or both.
type Reply struct {
	Text  string
	Final *Summary
}

// Outcome classifies an accepted input for the current round. A nil
// *Outcome from CheckAnswer means the text was not a recognized response
// and must be ignored, which is not an error.
type Outcome struct {
	Correct      bool
	Points       int64 // signed; hint usage typically halves the reward
	Won          bool
	NextQuestion bool
	GameOver     bool
	Reply        Reply
}

// Game is the round state machine shared by every mini-game type:
// Ready -> InRound(1) -> ... -> InRound(MaxRounds) -> Finished.
type Game interface {
	// Name returns the game's display name.
	Name() string

	// Type returns the game-type tag used for score history rows.
	Type() string

	// Scored reports whether correct answers feed the points economy.
	// The session registry zeroes points of non-scoring games before
	// they reach persistence.
	Scored() bool

	// Start resets internal state, selects the first question and
	// returns its prompt.
	Start() *Prompt

	// CheckAnswer classifies raw input for the current round. Returns
	// nil when the text is not a recognized response.
	CheckAnswer(ctx context.Context, raw, playerID, displayName string) *Outcome

	// NextQuestion advances the round counter and returns the next
	// prompt, or nil when the round limit is reached.
	NextQuestion() *Prompt

	// FinalResults renders the ranked breakdown of everyone who scored.
	FinalResults() *Summary
}
