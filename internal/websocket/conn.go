// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

package websocket

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

// connIDCounter hands out monotonically increasing connection ids so
// snapshots can be sorted into a stable order.
var connIDCounter atomic.Uint64

// Conn is one WebSocket connection owned by a Session. The Registry only
// holds a reference to it.
//
// Data frames are serialised by writeMu since gorilla allows a single
// concurrent writer. Control frames (ping, close) go through WriteControl,
// which gorilla allows concurrently with other writes.
type Conn struct {
	id        uint64
	ws        *websocket.Conn
	writeWait time.Duration

	// set once by the session before the conn is registered
	userID          int64
	authenticatedAt time.Time

	writeMu   sync.Mutex
	closeOnce sync.Once
	closed    atomic.Bool
}

func newConn(ws *websocket.Conn, writeWait time.Duration) *Conn {
	return &Conn{
		id:        connIDCounter.Add(1),
		ws:        ws,
		writeWait: writeWait,
	}
}

// ID returns the connection id.
func (c *Conn) ID() uint64 { return c.id }

// UserID returns the authenticated user, or 0 before authentication.
func (c *Conn) UserID() int64 { return c.userID }

// AuthenticatedAt returns when the handshake completed.
func (c *Conn) AuthenticatedAt() time.Time { return c.authenticatedAt }

func (c *Conn) bind(userID int64) {
	c.userID = userID
	c.authenticatedAt = time.Now().UTC()
}

// WriteMessage sends one text frame, bounded by the write deadline.
func (c *Conn) WriteMessage(data []byte) error {
	if c.closed.Load() {
		return websocket.ErrCloseSent
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.ws.SetWriteDeadline(time.Now().Add(c.writeWait)); err != nil {
		return err
	}
	return c.ws.WriteMessage(websocket.TextMessage, data)
}

// WriteJSON marshals v and sends it as a text frame.
func (c *Conn) WriteJSON(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.WriteMessage(data)
}

func (c *Conn) ping() error {
	return c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(c.writeWait))
}

// CloseWithCode sends a close frame with code and reason, then closes the
// socket. Only the first close has any effect.
func (c *Conn) CloseWithCode(code int, reason string) error {
	var err error
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		msg := websocket.FormatCloseMessage(code, reason)
		// best effort; the peer may already be gone
		_ = c.ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(c.writeWait))
		err = c.ws.Close()
	})
	return err
}

// Close closes the socket with a normal closure.
func (c *Conn) Close() error {
	return c.CloseWithCode(websocket.CloseNormalClosure, "")
}
