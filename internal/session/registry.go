// Package session owns the active-game registry: at most one live game
// per conversation, answer dispatch, the registered-players set and the
// idle sweep.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/botabeer/linegames/internal/game"
)

// ErrNoActiveGame is returned when a conversation has no live session.
var ErrNoActiveGame = errors.New("no active game for conversation")

// ScoreSink receives the per-round persistence calls. Implementations
// must tolerate concurrent calls for the same player.
type ScoreSink interface {
	Award(ctx context.Context, playerID, displayName string, points int64, won bool, gameType string) error
}

// Session is one live game for one conversation.
type Session struct {
	mu           sync.Mutex
	game         game.Game
	gameType     string
	createdAt    time.Time
	participants map[string]struct{}
	answered     map[string]struct{}
}

// Dispatch is the result of routing one answer into a session.
type Dispatch struct {
	Outcome  *game.Outcome
	Next     *game.Prompt
	Final    *game.Summary
	GameName string
}

// Registry maps conversation ids to sessions. The registry mutex guards
// only the maps; per-session state is guarded by the session's own mutex
// so a slow game (the AI chat) cannot stall other conversations, and
// persistence calls are made with no lock held at all.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	members  map[string]struct{}

	catalog     *game.Catalog
	scores      ScoreSink
	idleTimeout time.Duration

	// now is swappable for tests.
	now func() time.Time

	log zerolog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(catalog *game.Catalog, scores ScoreSink, idleTimeout time.Duration) *Registry {
	return &Registry{
		sessions:    make(map[string]*Session),
		members:     make(map[string]struct{}),
		catalog:     catalog,
		scores:      scores,
		idleTimeout: idleTimeout,
		now:         time.Now,
		log:         log.With().Str("component", "session").Logger(),
	}
}

// StartSession creates a fresh game instance for the trigger and installs
// it for the conversation, silently replacing any session already there.
// The participant snapshot is the registered set plus the initiator.
func (r *Registry) StartSession(ctx context.Context, conversationID, trigger, playerID string) (*game.Prompt, error) {
	instance, err := r.catalog.New(trigger)
	if err != nil {
		return nil, err
	}

	var prompt *game.Prompt
	func() {
		defer r.recoverGamePanic(&err)
		prompt = instance.Start()
	}()
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	participants := make(map[string]struct{}, len(r.members)+1)
	for id := range r.members {
		participants[id] = struct{}{}
	}
	participants[playerID] = struct{}{}

	r.sessions[conversationID] = &Session{
		game:         instance,
		gameType:     instance.Type(),
		createdAt:    r.now(),
		participants: participants,
		answered:     make(map[string]struct{}),
	}

	r.log.Info().
		Str("conversation_id", conversationID).
		Str("game_type", instance.Type()).
		Str("player_id", playerID).
		Msg("Session started")

	return prompt, nil
}

// SubmitAnswer routes text into the conversation's session. It returns
// ErrNoActiveGame when there is none, and (nil, nil) when the text is not
// a recognized response or the player already answered this round.
func (r *Registry) SubmitAnswer(ctx context.Context, conversationID, playerID, displayName, text string) (*Dispatch, error) {
	r.mu.Lock()
	sess, ok := r.sessions[conversationID]
	r.mu.Unlock()
	if !ok {
		return nil, ErrNoActiveGame
	}

	sess.mu.Lock()
	if _, already := sess.answered[playerID]; already {
		sess.mu.Unlock()
		return nil, nil
	}

	var (
		outcome *game.Outcome
		err     error
	)
	func() {
		defer r.recoverGamePanic(&err)
		outcome = sess.game.CheckAnswer(ctx, text, playerID, displayName)
	}()
	if err != nil {
		// Session state is left as-is so the player can retry.
		sess.mu.Unlock()
		return nil, err
	}
	if outcome == nil {
		sess.mu.Unlock()
		return nil, nil
	}

	if outcome.Correct {
		sess.answered[playerID] = struct{}{}
	}

	points := outcome.Points
	if !sess.game.Scored() {
		points = 0
	}
	if _, eligible := sess.participants[playerID]; !eligible {
		points = 0
	}

	d := &Dispatch{Outcome: outcome, GameName: sess.game.Name()}
	if outcome.NextQuestion {
		sess.answered = make(map[string]struct{})
		d.Next = sess.game.NextQuestion()
		if d.Next == nil {
			outcome.GameOver = true
		}
	}
	if outcome.GameOver {
		d.Final = sess.game.FinalResults()
	}
	gameType := sess.gameType
	won := outcome.Won
	sess.mu.Unlock()

	if outcome.GameOver {
		r.remove(conversationID, sess)
	}

	// Persistence happens with no lock held; a store failure must not
	// disturb the in-conversation game state.
	if points != 0 {
		if err := r.scores.Award(ctx, playerID, displayName, points, won, gameType); err != nil {
			r.log.Error().Err(err).
				Str("player_id", playerID).
				Str("game_type", gameType).
				Msg("Score persistence failed")
		}
	}

	return d, nil
}

// StopSession removes the conversation's session, reporting whether one
// existed.
func (r *Registry) StopSession(conversationID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[conversationID]; !ok {
		return false
	}
	delete(r.sessions, conversationID)
	return true
}

// Active reports whether the conversation has a live session.
func (r *Registry) Active(conversationID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.sessions[conversationID]
	return ok
}

// Sweep removes sessions older than the idle timeout and returns how many
// were removed.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	removed := 0
	for id, sess := range r.sessions {
		if now.Sub(sess.createdAt) > r.idleTimeout {
			delete(r.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		r.log.Info().Int("removed", removed).Msg("Idle sessions swept")
	}
	return removed
}

// Run sweeps on the given interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}

// remove deletes the session only if it is still the installed one; a
// newer game may already have replaced it.
func (r *Registry) remove(conversationID string, sess *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sessions[conversationID] == sess {
		delete(r.sessions, conversationID)
	}
}

// recoverGamePanic converts a panicking game instance into an error so a
// broken game never crashes the request path.
func (r *Registry) recoverGamePanic(err *error) {
	if rec := recover(); rec != nil {
		r.log.Error().Interface("panic", rec).Msg("Game instance panicked")
		*err = errors.New("game instance failure")
	}
}
