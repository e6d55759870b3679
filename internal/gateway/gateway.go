// Package gateway authorizes realtime connections with nothing but
// the token-signing secret. It never talks to the auth server or its
// session store; a connection's fate is decided entirely by the token
// it presents.
package gateway

import (
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/JoelCodes/w6d4-lecture-auth/internal/logger"
	"github.com/JoelCodes/w6d4-lecture-auth/internal/token"
)

const (
	handshakeTimeout = 10 * time.Second
	readTimeout      = 5 * time.Minute
	maxMessageSize   = 4096
)

// tokenPattern is the full charset a token may use. The token is read
// from the declared query parameter, not scanned out of the raw URL,
// so adjacent characters can't smuggle anything in.
var tokenPattern = regexp.MustCompile(`^[0-9A-Za-z._-]+$`)

type Gateway struct {
	verifier *token.Verifier
	metrics  *Metrics
	upgrader websocket.Upgrader
}

func New(verifier *token.Verifier, metrics *Metrics) *Gateway {
	return &Gateway{
		verifier: verifier,
		metrics:  metrics,
		upgrader: websocket.Upgrader{
			HandshakeTimeout: handshakeTimeout,
			// Origin checks belong to the reverse proxy in this
			// deployment; the token is the authorization boundary.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// HandleWS upgrades the transport and runs the connection state
// machine. Verification happens after the upgrade so a rejected
// client sees only a dead transport, never an HTTP error body.
func (g *Gateway) HandleWS(c *gin.Context) {
	ws, err := g.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the handshake failure response.
		logger.Warn("upgrade failed", map[string]any{
			"error": err.Error(),
		})
		return
	}

	// Each request already runs on its own goroutine; serve owns the
	// connection from here until it closes.
	g.serve(newConn(ws), c.Request)
}

// serve owns the connection from Pending to Closed. A panic here
// must never take down the process or touch other connections.
func (g *Gateway) serve(conn *Conn, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("connection panic", map[string]any{
				"conn_id": conn.ID,
				"panic":   rec,
			})
			conn.close()
		}
	}()

	claims, reason := g.verify(conn, r)
	if claims == nil {
		g.metrics.rejected.WithLabelValues(reason).Inc()
		logger.Warn("connection rejected", map[string]any{
			"conn_id": conn.ID,
			"reason":  reason,
		})
		conn.reject()
		return
	}

	conn.authorize(claims)
	conn.open()

	g.metrics.authorized.Inc()
	g.metrics.open.Inc()
	defer g.metrics.open.Dec()

	logger.Info("connected", map[string]any{
		"conn_id":   conn.ID,
		"user_id":   claims.ID,
		"issued_at": issuedAt(claims),
	})

	g.readLoop(conn)

	logger.Info("disconnected", map[string]any{
		"conn_id": conn.ID,
		"user_id": claims.ID,
	})
}

// verify runs the Verifying phase: strict token extraction from the
// declared query parameters, then signature/expiry validation. The
// returned reason feeds metrics and logs only.
func (g *Gateway) verify(conn *Conn, r *http.Request) (*token.Claims, string) {
	conn.state = StateVerifying

	raw := r.URL.Query().Get("token")
	if raw == "" {
		return nil, "missing"
	}
	if !tokenPattern.MatchString(raw) {
		return nil, "malformed"
	}

	claims, err := g.verifier.Verify(raw)
	if err != nil {
		return nil, "invalid"
	}

	return claims, ""
}

// readLoop drains the open connection until the peer goes away. The
// realtime application payload is out of scope here; inbound frames
// are read for liveness and discarded.
func (g *Gateway) readLoop(conn *Conn) {
	defer conn.close()

	conn.ws.SetReadLimit(maxMessageSize)

	for {
		conn.ws.SetReadDeadline(time.Now().Add(readTimeout))

		if _, _, err := conn.ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				logger.Warn("read error", map[string]any{
					"conn_id": conn.ID,
					"error":   err.Error(),
				})
			}
			return
		}
	}
}

func issuedAt(claims *token.Claims) string {
	if claims.IssuedAt == nil {
		return ""
	}
	return claims.IssuedAt.Time.Format(time.RFC3339)
}
