// Package aichat implements the free-chat game backed by an AI assistant.
// It is registered only when API keys are configured, never scored, and
// has no round limit: the session ends by explicit stop or the idle sweep.
package aichat

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/botabeer/linegames/internal/game"
	"github.com/botabeer/linegames/internal/model"
)

// Trigger is the Arabic token that starts this game.
const Trigger = "ذكاء"

// Chatter produces an assistant reply for one user message.
type Chatter interface {
	Chat(ctx context.Context, userText string) (string, error)
}

// Game is the AI chat instance.
type Game struct {
	client Chatter
}

// New builds a factory bound to the given client.
func New(client Chatter) func() game.Game {
	return func() game.Game { return &Game{client: client} }
}

func (g *Game) Name() string { return "دردشه الذكاء" }
func (g *Game) Type() string { return model.GameAIChat }
func (g *Game) Scored() bool { return false }

func (g *Game) Start() *game.Prompt {
	return &game.Prompt{
		Title:       g.Name(),
		Question:    "اسألني اي شيء! اكتب «ايقاف» للانهاء",
		Round:       1,
		TotalRounds: 1,
	}
}

// CheckAnswer forwards any text to the assistant. A failed call degrades
// to a generic message instead of ending the session, so the player can
// retry.
func (g *Game) CheckAnswer(ctx context.Context, raw, _, _ string) *game.Outcome {
	if raw == "" {
		return nil
	}

	reply, err := g.client.Chat(ctx, raw)
	if err != nil {
		log.Error().Err(err).Msg("AI chat call failed")
		return &game.Outcome{Reply: game.Reply{Text: "المساعد مشغول حاليا، حاول مره اخرى 🙏"}}
	}
	return &game.Outcome{Reply: game.Reply{Text: reply}}
}

func (g *Game) NextQuestion() *game.Prompt { return nil }

func (g *Game) FinalResults() *game.Summary {
	return &game.Summary{GameName: g.Name()}
}
