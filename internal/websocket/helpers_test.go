// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

package websocket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/tomtom215/dayflow/internal/auth"
	"github.com/tomtom215/dayflow/internal/config"
)

func testRealtimeConfig() config.RealtimeConfig {
	return config.RealtimeConfig{
		AuthTimeout:    2 * time.Second,
		WriteWait:      time.Second,
		PongWait:       5 * time.Second,
		MaxMessageSize: 4096,
		InboundRate:    100,
		InboundBurst:   100,
	}
}

// stubValidator maps tokens to claims. "no-user" yields ErrMissingUserID;
// anything unmapped is an invalid token.
type stubValidator map[string]*auth.Claims

func (s stubValidator) ValidateToken(token string) (*auth.Claims, error) {
	if token == "no-user" {
		return nil, auth.ErrMissingUserID
	}
	c, ok := s[token]
	if !ok {
		return nil, auth.ErrInvalidToken
	}
	return c, nil
}

func defaultValidator() stubValidator {
	return stubValidator{
		"alice": {UserID: 42, Role: auth.RoleEmployee},
		"admin": {UserID: 1, Role: auth.RoleAdmin},
	}
}

// setupGatewayServer serves every upgraded connection through a Gateway.
func setupGatewayServer(t *testing.T, registry *Registry, validator TokenValidator, cfg config.RealtimeConfig) *httptest.Server {
	t.Helper()
	gw := NewGateway(registry, validator, cfg)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upgrader := websocket.Upgrader{}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("Failed to upgrade connection: %v", err)
			return
		}
		gw.Serve(context.Background(), conn)
	}))
	t.Cleanup(server.Close)
	return server
}

// dialWebSocket establishes a WebSocket connection to the test server
func dialWebSocket(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if resp != nil && resp.Body != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		t.Fatalf("Failed to dial websocket: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// readJSON reads one frame into a generic map.
func readJSON(t *testing.T, conn *websocket.Conn) map[string]interface{} {
	t.Helper()
	if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatal(err)
	}
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("frame is not JSON: %s", data)
	}
	return out
}

// authenticate performs the handshake and asserts success.
func authenticate(t *testing.T, conn *websocket.Conn, token string) {
	t.Helper()
	if err := conn.WriteJSON(map[string]string{"type": "auth", "token": token}); err != nil {
		t.Fatal(err)
	}
	msg := readJSON(t, conn)
	if msg["type"] != MessageTypeAuthSuccess {
		t.Fatalf("handshake reply = %v, want auth_success", msg)
	}
}

// expectClose reads until the close frame and checks its code.
func expectClose(t *testing.T, conn *websocket.Conn, code int) {
	t.Helper()
	if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatal(err)
	}
	for {
		_, _, err := conn.ReadMessage()
		if err == nil {
			continue
		}
		if !websocket.IsCloseError(err, code) {
			t.Fatalf("read error = %v, want close code %d", err, code)
		}
		return
	}
}

// waitFor polls cond until it holds or timeout elapses.
func waitFor(t *testing.T, timeout time.Duration, msg string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Errorf("%s: timeout after %v", msg, timeout)
}

// newServerConn returns the server side of a live connection plus the client.
func newServerConn(t *testing.T) (*websocket.Conn, *websocket.Conn) {
	t.Helper()
	accepted := make(chan *websocket.Conn, 1)
	done := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upgrader := websocket.Upgrader{}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("Failed to upgrade connection: %v", err)
			return
		}
		accepted <- conn
		<-done
	}))
	t.Cleanup(func() {
		close(done)
		server.Close()
	})

	client := dialWebSocket(t, server)
	select {
	case conn := <-accepted:
		t.Cleanup(func() { _ = conn.Close() })
		return conn, client
	case <-time.After(2 * time.Second):
		t.Fatal("server never accepted the connection")
		return nil, nil
	}
}

// newTestConn returns a bound Conn backed by a real socket, and its client.
func newTestConn(t *testing.T, userID int64) (*Conn, *websocket.Conn) {
	t.Helper()
	server, client := newServerConn(t)
	c := newConn(server, time.Second)
	c.bind(userID)
	return c, client
}

// fakeConn returns a bound Conn with no socket, for registry bookkeeping tests.
func fakeConn(userID int64) *Conn {
	return &Conn{id: connIDCounter.Add(1), userID: userID}
}
