// Package handler routes incoming chat text to commands, game starts and
// answer submission, producing transport-neutral responses.
package handler

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/botabeer/linegames/internal/content"
	"github.com/botabeer/linegames/internal/game"
	"github.com/botabeer/linegames/internal/model"
	"github.com/botabeer/linegames/internal/pkg/arabic"
	"github.com/botabeer/linegames/internal/repository"
	"github.com/botabeer/linegames/internal/service"
	"github.com/botabeer/linegames/internal/session"
)

// Command tokens, stored in their normalized form so they compare equal
// to normalized input.
const (
	cmdHelp        = "مساعده"
	cmdStats       = "نقاطي"
	cmdLeaderboard = "الصداره"
	cmdJoin        = "انضم"
	cmdLeave       = "انسحب"
	cmdStop        = "ايقاف"
	cmdQuestion    = "سوال"
	cmdChallenge   = "تحدي"
	cmdConfession  = "اعتراف"
	cmdMention     = "منشن"
)

// Canned Arabic replies.
const (
	msgJoined      = "تم تسجيلك، اجاباتك صارت تحسب لك نقاط"
	msgLeft        = "تم انسحابك من قائمه اللاعبين"
	msgNotMember   = "انت غير مسجل اصلا"
	msgStopped     = "تم ايقاف اللعبه"
	msgNoGame      = "ما فيه لعبه شغاله الحين"
	msgUnavailable = "هذه اللعبه غير متاحه"
	msgNoStats     = "ما عندك نقاط بعد، العب اول"
	msgGameFailed  = "حصل خطا في اللعبه، حاول مره ثانيه"
	msgFailed      = "حصل خطا، حاول مره ثانيه"
)

// Response is the dispatcher's transport-neutral reply. Nil means the
// text was not addressed to the bot and must be ignored.
type Response struct {
	Text    string
	Prompt  *game.Prompt
	Summary *game.Summary
	Players []*model.Player
	Stats   *service.PlayerStats
	Help    []string
}

// Scores is the slice of the score service the dispatcher reads from.
type Scores interface {
	Touch(ctx context.Context, playerID, displayName string) error
	Stats(ctx context.Context, playerID string) (*service.PlayerStats, error)
	Leaderboard(ctx context.Context) ([]*model.Player, error)
}

// Dispatcher glues the command table, the content lists, the game catalog
// and the session registry together.
type Dispatcher struct {
	registry *session.Registry
	scores   Scores
	library  *content.Library
	catalog  *game.Catalog
	log      zerolog.Logger
}

func NewDispatcher(registry *session.Registry, scores Scores, library *content.Library, catalog *game.Catalog) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		scores:   scores,
		library:  library,
		catalog:  catalog,
		log:      log.With().Str("component", "dispatcher").Logger(),
	}
}

// Handle routes one text message. Precedence: commands, then content
// lists, then game triggers, then answer submission into the live
// session. Unrecognized text outside a session is ignored.
func (d *Dispatcher) Handle(ctx context.Context, conversationID, playerID, displayName, text string) *Response {
	norm := arabic.Normalize(text)
	if norm == "" {
		return nil
	}

	switch norm {
	case cmdHelp:
		return &Response{Help: d.catalog.Triggers()}
	case cmdStats:
		return d.stats(ctx, playerID)
	case cmdLeaderboard:
		return d.leaderboard(ctx)
	case cmdJoin:
		return d.join(ctx, playerID, displayName)
	case cmdLeave:
		if d.registry.Leave(playerID) {
			return &Response{Text: msgLeft}
		}
		return &Response{Text: msgNotMember}
	case cmdStop:
		if d.registry.StopSession(conversationID) {
			return &Response{Text: msgStopped}
		}
		return &Response{Text: msgNoGame}
	case cmdQuestion, cmdChallenge, cmdConfession, cmdMention:
		return d.content(norm)
	}

	if d.catalog.Has(norm) {
		return d.start(ctx, conversationID, norm, playerID)
	}
	if d.catalog.Unavailable(norm) {
		return &Response{Text: msgUnavailable}
	}

	return d.answer(ctx, conversationID, playerID, displayName, text)
}

func (d *Dispatcher) join(ctx context.Context, playerID, displayName string) *Response {
	d.registry.Join(playerID)
	if err := d.scores.Touch(ctx, playerID, displayName); err != nil {
		d.log.Error().Err(err).Str("player_id", playerID).Msg("Failed to touch player on join")
	}
	return &Response{Text: msgJoined}
}

func (d *Dispatcher) stats(ctx context.Context, playerID string) *Response {
	st, err := d.scores.Stats(ctx, playerID)
	if errors.Is(err, repository.ErrPlayerNotFound) {
		return &Response{Text: msgNoStats}
	}
	if err != nil {
		d.log.Error().Err(err).Str("player_id", playerID).Msg("Failed to load player stats")
		return &Response{Text: msgFailed}
	}
	return &Response{Stats: st}
}

func (d *Dispatcher) leaderboard(ctx context.Context) *Response {
	top, err := d.scores.Leaderboard(ctx)
	if err != nil {
		d.log.Error().Err(err).Msg("Failed to load leaderboard")
		return &Response{Text: msgFailed}
	}
	return &Response{Players: top}
}

func (d *Dispatcher) content(kind string) *Response {
	mapped := map[string]string{
		cmdQuestion:   content.KindQuestion,
		cmdChallenge:  content.KindChallenge,
		cmdConfession: content.KindConfession,
		cmdMention:    content.KindMention,
	}[kind]
	line, ok := d.library.Random(mapped)
	if !ok {
		return &Response{Text: msgFailed}
	}
	return &Response{Text: line}
}

func (d *Dispatcher) start(ctx context.Context, conversationID, trigger, playerID string) *Response {
	prompt, err := d.registry.StartSession(ctx, conversationID, trigger, playerID)
	if errors.Is(err, game.ErrUnavailable) {
		return &Response{Text: msgUnavailable}
	}
	if err != nil {
		d.log.Error().Err(err).
			Str("conversation_id", conversationID).
			Str("trigger", trigger).
			Msg("Failed to start session")
		return &Response{Text: msgGameFailed}
	}
	return &Response{Prompt: prompt}
}

func (d *Dispatcher) answer(ctx context.Context, conversationID, playerID, displayName, text string) *Response {
	dispatch, err := d.registry.SubmitAnswer(ctx, conversationID, playerID, displayName, text)
	if errors.Is(err, session.ErrNoActiveGame) {
		return nil
	}
	if err != nil {
		d.log.Error().Err(err).
			Str("conversation_id", conversationID).
			Msg("Answer dispatch failed")
		return &Response{Text: msgGameFailed}
	}
	if dispatch == nil {
		return nil
	}

	resp := &Response{
		Text:    dispatch.Outcome.Reply.Text,
		Prompt:  dispatch.Next,
		Summary: dispatch.Final,
	}
	if dispatch.Outcome.Reply.Final != nil && resp.Summary == nil {
		resp.Summary = dispatch.Outcome.Reply.Final
	}
	return resp
}
