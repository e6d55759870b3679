package gateway

import (
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/JoelCodes/w6d4-lecture-auth/internal/token"
)

// State tracks a connection attempt through authorization. The only
// legal paths are Pending → Verifying → Authorized → Open → Closed
// and Pending → Verifying → Rejected → Closed.
type State int

const (
	StatePending State = iota
	StateVerifying
	StateAuthorized
	StateRejected
	StateOpen
	StateClosed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateVerifying:
		return "verifying"
	case StateAuthorized:
		return "authorized"
	case StateRejected:
		return "rejected"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Conn is one realtime connection. Each Conn is owned by a single
// goroutine; nothing here is shared across connections.
type Conn struct {
	ID        string
	ws        *websocket.Conn
	claims    *token.Claims
	state     State
	openedAt time.Time
}

func newConn(ws *websocket.Conn) *Conn {
	return &Conn{
		ID:    uuid.NewString(),
		ws:    ws,
		state: StatePending,
	}
}

// authorize attaches verified claims for the life of the connection.
func (c *Conn) authorize(claims *token.Claims) {
	c.claims = claims
	c.state = StateAuthorized
}

func (c *Conn) open() {
	c.state = StateOpen
	c.openedAt = time.Now()
}

// reject terminates the transport immediately. No close frame, no
// payload: a rejected client learns nothing about why.
func (c *Conn) reject() {
	c.state = StateRejected
	_ = c.ws.Close()
	c.state = StateClosed
}

func (c *Conn) close() {
	if c.state == StateClosed {
		return
	}
	_ = c.ws.Close()
	c.state = StateClosed
}
