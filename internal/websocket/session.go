// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

package websocket

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/dayflow/internal/auth"
	"github.com/tomtom215/dayflow/internal/config"
	"github.com/tomtom215/dayflow/internal/logging"
	"github.com/tomtom215/dayflow/internal/metrics"
)

// Client-facing handshake errors.
const (
	ErrMsgNotAuth      = "First message must be authentication"
	ErrMsgTokenMissing = "Token is required"
	ErrMsgInvalidToken = "Invalid token"
	ErrMsgAuthFailed   = "Authentication failed"
	ErrMsgAuthTimeout  = "Authentication timeout"
	ErrMsgRateLimited  = "Too many messages"
)

// Message types on the socket.
const (
	MessageTypeAuth        = "auth"
	MessageTypeAuthSuccess = "auth_success"
	MessageTypeError       = "error"
)

// TokenValidator resolves a bearer token to claims. auth.JWTManager
// satisfies it.
type TokenValidator interface {
	ValidateToken(token string) (*auth.Claims, error)
}

// State is the lifecycle position of a Session.
type State int32

const (
	StateConnecting State = iota
	StateAwaitingAuth
	StateAuthenticated
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateAwaitingAuth:
		return "awaiting_auth"
	case StateAuthenticated:
		return "authenticated"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

type authMessage struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

type errorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type authSuccessMessage struct {
	Type   string `json:"type"`
	UserID int64  `json:"user_id"`
}

// Gateway runs sessions for upgraded connections.
type Gateway struct {
	registry  *Registry
	validator TokenValidator
	cfg       config.RealtimeConfig
}

// NewGateway creates a gateway that registers authenticated connections in
// registry.
func NewGateway(registry *Registry, validator TokenValidator, cfg config.RealtimeConfig) *Gateway {
	return &Gateway{registry: registry, validator: validator, cfg: cfg}
}

// Serve runs the session for ws and blocks until it ends. ws is always
// closed on return.
func (g *Gateway) Serve(ctx context.Context, ws *websocket.Conn) {
	s := newSession(g, ws)
	s.run(ctx)
}

// Session drives one connection through the handshake and the
// authenticated read loop.
type Session struct {
	gw      *Gateway
	conn    *Conn
	state   atomic.Int32
	limiter *rate.Limiter
	logger  zerolog.Logger
}

func newSession(g *Gateway, ws *websocket.Conn) *Session {
	s := &Session{
		gw:      g,
		conn:    newConn(ws, g.cfg.WriteWait),
		limiter: rate.NewLimiter(rate.Limit(g.cfg.InboundRate), g.cfg.InboundBurst),
	}
	s.logger = logging.WithComponent("websocket-session").With().
		Uint64("conn_id", s.conn.id).
		Str("remote_addr", ws.RemoteAddr().String()).
		Logger()
	return s
}

// State returns the current lifecycle state.
func (s *Session) State() State { return State(s.state.Load()) }

func (s *Session) setState(st State) { s.state.Store(int32(st)) }

func (s *Session) run(ctx context.Context) {
	defer s.teardown()

	s.setState(StateAwaitingAuth)
	if !s.authenticate() {
		return
	}
	s.setState(StateAuthenticated)

	done := make(chan struct{})
	defer close(done)
	go s.keepalive(ctx, done)

	s.readLoop()
}

// authenticate waits for the auth message and registers the connection.
func (s *Session) authenticate() bool {
	ws := s.conn.ws
	ws.SetReadLimit(s.gw.cfg.MaxMessageSize)
	if err := ws.SetReadDeadline(time.Now().Add(s.gw.cfg.AuthTimeout)); err != nil {
		s.logger.Error().Err(err).Msg("failed to set auth read deadline")
		return false
	}

	_, data, err := ws.ReadMessage()
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			s.reject(ErrMsgAuthTimeout, "timeout")
			return false
		}
		metrics.WSHandshakes.WithLabelValues("disconnected").Inc()
		s.logger.Debug().Err(err).Msg("client left before authenticating")
		return false
	}

	var msg authMessage
	if err := json.Unmarshal(data, &msg); err != nil || msg.Type != MessageTypeAuth {
		s.reject(ErrMsgNotAuth, "not_auth_message")
		return false
	}
	if msg.Token == "" {
		s.reject(ErrMsgTokenMissing, "missing_token")
		return false
	}

	claims, err := s.gw.validator.ValidateToken(msg.Token)
	switch {
	case errors.Is(err, auth.ErrMissingUserID):
		s.reject(ErrMsgInvalidToken, "invalid_token")
		return false
	case err != nil:
		s.logger.Debug().Str("error", logging.SanitizeError(err.Error())).Msg("websocket token rejected")
		s.reject(ErrMsgAuthFailed, "auth_failed")
		return false
	case claims == nil || claims.UserID <= 0:
		s.reject(ErrMsgInvalidToken, "invalid_token")
		return false
	}

	s.conn.bind(claims.UserID)
	s.logger = s.logger.With().Int64("user_id", claims.UserID).Logger()
	s.gw.registry.Add(s.conn)

	if err := s.conn.WriteJSON(authSuccessMessage{Type: MessageTypeAuthSuccess, UserID: claims.UserID}); err != nil {
		s.logger.Warn().Err(err).Msg("failed to send auth_success")
		return false
	}
	metrics.WSHandshakes.WithLabelValues("success").Inc()
	s.logger.Info().Msg("websocket authenticated")
	return true
}

// reject sends an error frame and closes with 1008.
func (s *Session) reject(message, result string) {
	metrics.WSHandshakes.WithLabelValues(result).Inc()
	s.logger.Info().Str("reason", message).Msg("websocket handshake rejected")

	if err := s.conn.WriteJSON(errorMessage{Type: MessageTypeError, Message: message}); err != nil {
		s.logger.Debug().Err(err).Msg("failed to send handshake error")
	}
	_ = s.conn.CloseWithCode(websocket.ClosePolicyViolation, message)
}

// readLoop discards inbound messages until the peer goes away.
func (s *Session) readLoop() {
	ws := s.conn.ws
	pongWait := s.gw.cfg.PongWait

	if err := ws.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		s.logger.Error().Err(err).Msg("failed to set read deadline")
		return
	}
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				s.logger.Warn().Err(err).Msg("unexpected websocket close")
			}
			return
		}
		if !s.limiter.Allow() {
			s.logger.Warn().Msg("websocket client exceeded inbound message rate")
			_ = s.conn.CloseWithCode(websocket.ClosePolicyViolation, ErrMsgRateLimited)
			return
		}
		s.logger.Debug().Int("bytes", len(data)).Msg("ignoring client message")
	}
}

// keepalive pings the peer until done closes. Context cancellation closes
// the connection as going away.
func (s *Session) keepalive(ctx context.Context, done <-chan struct{}) {
	ticker := time.NewTicker(s.gw.cfg.PingPeriod())
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			_ = s.conn.CloseWithCode(websocket.CloseGoingAway, "Server shutting down")
			return
		case <-ticker.C:
			if err := s.conn.ping(); err != nil {
				s.logger.Debug().Err(err).Msg("websocket ping failed")
				_ = s.conn.Close()
				return
			}
		}
	}
}

func (s *Session) teardown() {
	s.setState(StateClosed)
	s.gw.registry.Remove(s.conn)
	_ = s.conn.Close()
}
