package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"campus-placement/internal/domain/event"
	"campus-placement/internal/domain/user"
	"campus-placement/internal/pkg/config"
	"campus-placement/internal/pkg/errs"
	"campus-placement/internal/usecase"

	"github.com/google/uuid"
	"golang.org/x/net/websocket"
)

const (
	FrameAuth  = "auth"
	FrameReady = "ready"
	FrameJoin  = "join"
	FrameLeave = "leave"
	FrameAck   = "ack"
	FrameError = "error"
	FrameEvent = "event"
	FramePing  = "ping"
	FramePong  = "pong"
)

const (
	CodePolicyViolation = "POLICY_VIOLATION"
	CodeInvalidArgument = "INVALID_ARGUMENT"
	CodeNotFound        = "NOT_FOUND"
	CodeUnavailable     = "UNAVAILABLE"
	CodeRateLimited     = "RESOURCE_EXHAUSTED"
)

const (
	maxFramePayloadBytes   = 16 * 1024
	maxFramesPerSecond     = 40
	maxDecodeErrorsPerConn = 3
)

// Frame is the only shape exchanged over the socket in either direction.
type Frame struct {
	Type      string          `json:"type"`
	RequestID string          `json:"request_id,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

type AuthPayload struct {
	Token string `json:"token"`
}

type RoomPayload struct {
	Topic string `json:"topic"`
}

type ReadyPayload struct {
	ConnectionID string    `json:"connection_id"`
	UserID       uuid.UUID `json:"user_id"`
	Role         user.Role `json:"role"`
	Topics       []string  `json:"topics"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RoomAuthorizer decides who may watch an application's live room.
type RoomAuthorizer interface {
	CanJoinApplicationRoom(ctx context.Context, viewer user.Identity, applicationID uuid.UUID) (bool, error)
}

// Server terminates WebSocket connections. A connection is only registered
// with the hub after its first frame proved an identity.
type Server struct {
	hub     *Hub
	tokens  usecase.TokenValidator
	rooms   RoomAuthorizer
	cfg     config.RealtimeConfig
	origins []string
	logger  *slog.Logger
}

func NewServer(
	hub *Hub,
	tokens usecase.TokenValidator,
	rooms RoomAuthorizer,
	cfg config.RealtimeConfig,
	allowedOrigins []string,
	logger *slog.Logger,
) *Server {
	return &Server{
		hub:     hub,
		tokens:  tokens,
		rooms:   rooms,
		cfg:     cfg,
		origins: allowedOrigins,
		logger:  logger.With("component", "realtime_session"),
	}
}

func (s *Server) Handler() http.Handler {
	return websocket.Server{Handshake: s.checkOrigin, Handler: s.serve}
}

// Non-browser clients send no Origin and are let through.
func (s *Server) checkOrigin(_ *websocket.Config, r *http.Request) error {
	origin := r.Header.Get("Origin")
	if origin == "" || len(s.origins) == 0 || slices.Contains(s.origins, "*") || slices.Contains(s.origins, origin) {
		return nil
	}
	return errs.Newf("origin %q is not allowed", origin)
}

type peer struct {
	mu           sync.Mutex
	conn         *websocket.Conn
	writeTimeout time.Duration
	closeOnce    sync.Once
}

func (p *peer) write(f Frame) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.writeTimeout > 0 {
		_ = p.conn.SetWriteDeadline(time.Now().Add(p.writeTimeout))
	}
	return websocket.JSON.Send(p.conn, f)
}

func (p *peer) writeError(requestID, code, message string) error {
	return p.write(Frame{Type: FrameError, RequestID: requestID, Payload: mustJSON(ErrorPayload{Code: code, Message: message})})
}

func (p *peer) close() {
	p.closeOnce.Do(func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		_ = p.conn.Close()
	})
}

func (s *Server) serve(conn *websocket.Conn) {
	conn.MaxPayloadBytes = maxFramePayloadBytes
	p := &peer{conn: conn, writeTimeout: s.cfg.WriteTimeout}
	defer p.close()

	ctx := conn.Request().Context()

	identity, ok := s.authenticate(p)
	if !ok {
		return
	}
	client, err := s.hub.Connect(identity)
	if err != nil {
		_ = p.writeError("", CodeUnavailable, "server is shutting down")
		return
	}
	log := s.logger.With("conn_id", client.ID(), "user_id", identity.UserID)
	log.Debug("realtime connection established", "role", identity.Role)
	defer log.Debug("realtime connection closed")

	if err := p.write(Frame{Type: FrameReady, Payload: mustJSON(ReadyPayload{
		ConnectionID: client.ID(),
		UserID:       identity.UserID,
		Role:         identity.Role,
		Topics:       s.hub.Topics(client),
	})}); err != nil {
		s.hub.Disconnect(client)
		return
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.writeLoop(p, client)
	}()

	s.readLoop(ctx, p, client, log)
	s.hub.Disconnect(client)
	wg.Wait()
}

func (s *Server) authenticate(p *peer) (user.Identity, bool) {
	if s.cfg.AuthTimeout > 0 {
		_ = p.conn.SetReadDeadline(time.Now().Add(s.cfg.AuthTimeout))
	}
	var f Frame
	if err := websocket.JSON.Receive(p.conn, &f); err != nil {
		if isTimeout(err) {
			_ = p.writeError("", CodePolicyViolation, "authentication timed out")
		}
		return user.Identity{}, false
	}
	if f.Type != FrameAuth {
		_ = p.writeError(f.RequestID, CodePolicyViolation, "first frame must be auth")
		return user.Identity{}, false
	}
	var payload AuthPayload
	if err := json.Unmarshal(f.Payload, &payload); err != nil || strings.TrimSpace(payload.Token) == "" {
		_ = p.writeError(f.RequestID, CodePolicyViolation, "token is required")
		return user.Identity{}, false
	}
	identity, err := s.tokens.ValidateToken(strings.TrimSpace(payload.Token))
	if err != nil {
		_ = p.writeError(f.RequestID, CodePolicyViolation, "invalid token")
		return user.Identity{}, false
	}
	_ = p.conn.SetReadDeadline(time.Time{})
	return identity, true
}

func (s *Server) readLoop(ctx context.Context, p *peer, client *Client, log *slog.Logger) {
	readTimeout := 2 * s.cfg.PingInterval
	windowStart := time.Now()
	framesInWindow := 0
	decodeErrors := 0

	for {
		if readTimeout > 0 {
			_ = p.conn.SetReadDeadline(time.Now().Add(readTimeout))
		}
		var f Frame
		if err := websocket.JSON.Receive(p.conn, &f); err != nil {
			if !isMalformed(err) {
				return
			}
			decodeErrors++
			_ = p.writeError("", CodeInvalidArgument, "invalid frame")
			if decodeErrors >= maxDecodeErrorsPerConn {
				return
			}
			continue
		}
		decodeErrors = 0

		now := time.Now()
		if now.Sub(windowStart) >= time.Second {
			windowStart = now
			framesInWindow = 0
		}
		framesInWindow++
		if framesInWindow > maxFramesPerSecond {
			_ = p.writeError(f.RequestID, CodeRateLimited, "rate limit exceeded")
			log.Warn("closing connection over frame rate limit")
			return
		}

		switch f.Type {
		case FrameJoin:
			s.handleJoin(ctx, p, client, f, log)
		case FrameLeave:
			s.handleLeave(p, client, f)
		case FramePing:
			_ = p.write(Frame{Type: FramePong, RequestID: f.RequestID})
		case FramePong:
		default:
			_ = p.writeError(f.RequestID, CodeInvalidArgument, "unsupported frame type")
		}

		select {
		case <-client.Done():
			return
		default:
		}
	}
}

func (s *Server) handleJoin(ctx context.Context, p *peer, client *Client, f Frame, log *slog.Logger) {
	var payload RoomPayload
	if err := json.Unmarshal(f.Payload, &payload); err != nil {
		_ = p.writeError(f.RequestID, CodeInvalidArgument, "invalid join payload")
		return
	}
	applicationID, ok := event.ParseApplicationRoom(strings.TrimSpace(payload.Topic))
	if !ok {
		_ = p.writeError(f.RequestID, CodeInvalidArgument, "only application rooms can be joined")
		return
	}
	allowed, err := s.rooms.CanJoinApplicationRoom(ctx, client.Identity(), applicationID)
	if err != nil {
		log.Warn("room authorization failed", "application_id", applicationID, "error", err)
		_ = p.writeError(f.RequestID, CodeUnavailable, "room authorization unavailable")
		return
	}
	if !allowed {
		_ = p.writeError(f.RequestID, CodeNotFound, "room not found")
		return
	}
	topic := event.ApplicationRoom(applicationID)
	if err := s.hub.Join(client, topic); err != nil {
		_ = p.writeError(f.RequestID, CodeUnavailable, "connection is closing")
		return
	}
	_ = p.write(Frame{Type: FrameAck, RequestID: f.RequestID, Payload: mustJSON(RoomPayload{Topic: topic})})
}

func (s *Server) handleLeave(p *peer, client *Client, f Frame) {
	var payload RoomPayload
	if err := json.Unmarshal(f.Payload, &payload); err != nil {
		_ = p.writeError(f.RequestID, CodeInvalidArgument, "invalid leave payload")
		return
	}
	applicationID, ok := event.ParseApplicationRoom(strings.TrimSpace(payload.Topic))
	if !ok {
		_ = p.writeError(f.RequestID, CodeInvalidArgument, "only application rooms can be left")
		return
	}
	topic := event.ApplicationRoom(applicationID)
	s.hub.Leave(client, topic)
	_ = p.write(Frame{Type: FrameAck, RequestID: f.RequestID, Payload: mustJSON(RoomPayload{Topic: topic})})
}

// writeLoop is the only place queued events reach the socket. It also owns
// keepalive pings and closes the socket when the client is disconnected.
func (s *Server) writeLoop(p *peer, client *Client) {
	defer p.close()

	var ping <-chan time.Time
	if s.cfg.PingInterval > 0 {
		ticker := time.NewTicker(s.cfg.PingInterval)
		defer ticker.Stop()
		ping = ticker.C
	}

	for {
		select {
		case <-client.Done():
			return
		case msg := <-client.Messages():
			if err := p.write(Frame{Type: FrameEvent, Payload: mustJSON(msg)}); err != nil {
				s.hub.Disconnect(client)
				return
			}
		case <-ping:
			if err := p.write(Frame{Type: FramePing}); err != nil {
				s.hub.Disconnect(client)
				return
			}
		}
	}
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// isMalformed separates bad client frames from a dead connection.
func isMalformed(err error) bool {
	if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) || isTimeout(err) {
		return false
	}
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.Is(err, websocket.ErrFrameTooLarge) || errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}

func mustJSON(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return b
}
