// Package bot owns the LINE webhook surface: signature verification,
// event fan-out, profile-name caching and message rendering.
package bot

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/botabeer/linegames/internal/config"
	"github.com/botabeer/linegames/internal/handler"
	"github.com/botabeer/linegames/internal/pkg/cache"
	"github.com/botabeer/linegames/internal/pkg/ratelimit"
)

// fallbackName is used when the LINE profile cannot be fetched.
const fallbackName = "لاعب"

// Server is the webhook HTTP server.
type Server struct {
	secret     string
	api        *messaging_api.MessagingApiAPI
	dispatcher *handler.Dispatcher
	limiter    *ratelimit.Limiter
	names      *cache.Cache[string, string]
	health     func(ctx context.Context) error

	srv *http.Server
	log zerolog.Logger
}

// NewServer builds the server and its routes. The health function is
// consulted by GET /healthz.
func NewServer(
	cfg *config.LineConfig,
	dispatcher *handler.Dispatcher,
	limiter *ratelimit.Limiter,
	names *cache.Cache[string, string],
	health func(ctx context.Context) error,
) (*Server, error) {
	api, err := messaging_api.NewMessagingApiAPI(cfg.ChannelToken)
	if err != nil {
		return nil, err
	}

	s := &Server{
		secret:     cfg.ChannelSecret,
		api:        api,
		dispatcher: dispatcher,
		limiter:    limiter,
		names:      names,
		health:     health,
		log:        log.With().Str("component", "webhook").Logger(),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(55 * time.Second))
	r.Post("/callback", s.handleCallback)
	r.Get("/healthz", s.handleHealth)

	s.srv = &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.srv.Addr).Msg("Webhook server listening")
	if err := s.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.health(r.Context()); err != nil {
		http.Error(w, "unhealthy", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleCallback verifies the signature, processes every event and
// always answers 200 so LINE does not retry on per-event failures.
func (s *Server) handleCallback(w http.ResponseWriter, r *http.Request) {
	cb, err := webhook.ParseRequest(s.secret, r)
	if err != nil {
		if errors.Is(err, webhook.ErrInvalidSignature) {
			s.log.Warn().Msg("Webhook signature verification failed")
		} else {
			s.log.Error().Err(err).Msg("Webhook request parsing failed")
		}
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	for _, event := range cb.Events {
		s.handleEvent(r.Context(), event)
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleEvent(ctx context.Context, event webhook.EventInterface) {
	msgEvent, ok := event.(webhook.MessageEvent)
	if !ok {
		return
	}
	text, ok := msgEvent.Message.(webhook.TextMessageContent)
	if !ok {
		return
	}

	conversationID, userID := routeSource(msgEvent.Source)
	if conversationID == "" || userID == "" {
		return
	}

	if !s.limiter.Allow(userID) {
		s.log.Debug().Str("user_id", userID).Msg("Rate limit exceeded, dropping message")
		return
	}

	logger := s.log.With().
		Str("request_id", uuid.NewString()).
		Str("conversation_id", conversationID).
		Str("user_id", userID).
		Logger()

	resp := s.dispatcher.Handle(ctx, conversationID, userID, s.displayName(userID), text.Text)
	messages := Render(resp)
	if len(messages) == 0 {
		return
	}

	if _, err := s.api.ReplyMessage(&messaging_api.ReplyMessageRequest{
		ReplyToken: msgEvent.ReplyToken,
		Messages:   messages,
	}); err != nil {
		logger.Error().Err(err).Msg("Reply failed")
		return
	}
	logger.Debug().Int("messages", len(messages)).Msg("Reply sent")
}

// routeSource maps an event source to its conversation and sender ids.
// Group and room chats share one session per chat, one-on-one chats get
// their own.
func routeSource(source webhook.SourceInterface) (conversationID, userID string) {
	switch src := source.(type) {
	case webhook.UserSource:
		return src.UserId, src.UserId
	case webhook.GroupSource:
		return src.GroupId, src.UserId
	case webhook.RoomSource:
		return src.RoomId, src.UserId
	default:
		return "", ""
	}
}

// displayName resolves the sender's profile name through the TTL cache.
func (s *Server) displayName(userID string) string {
	if name, ok := s.names.Get(userID); ok {
		return name
	}
	profile, err := s.api.GetProfile(userID)
	if err != nil {
		s.log.Debug().Err(err).Str("user_id", userID).Msg("Profile lookup failed")
		return fallbackName
	}
	name := profile.DisplayName
	if name == "" {
		name = fallbackName
	}
	s.names.Set(userID, name)
	return name
}
