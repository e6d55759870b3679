package app

import (
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/JoelCodes/w6d4-lecture-auth/internal/gateway"
)

// TestLoginTokenConnectHandshake walks the whole trust handoff: a
// cookie session on the auth server is exchanged for a bearer token,
// and the gateway authorizes the realtime connection with nothing but
// that token and the shared secret.
func TestLoginTokenConnectHandshake(t *testing.T) {
	authSrv, cfg := newTestServer(t)

	gatewaySrv := httptest.NewServer(gateway.Router(cfg))
	defer gatewaySrv.Close()

	// 1. login as joel/joel
	cookie, status := login(t, authSrv, "joel@joel.joel", "joel")
	if status != http.StatusOK || cookie == nil {
		t.Fatalf("login: status=%d cookie=%v", status, cookie)
	}

	// 2. exchange the cookie for a token
	req, _ := http.NewRequest(http.MethodPost, authSrv.URL+"/token", nil)
	req.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST /token: %v", err)
	}
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST /token status = %d", resp.StatusCode)
	}
	signed := string(raw)

	wsBase := "ws" + strings.TrimPrefix(gatewaySrv.URL, "http") + "/ws"

	// 3. connect with the token: must stay open
	ws, _, err := websocket.DefaultDialer.Dial(wsBase+"?token="+signed, nil)
	if err != nil {
		t.Fatalf("dial with valid token: %v", err)
	}
	defer ws.Close()

	ws.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	if _, _, err := ws.ReadMessage(); err == nil {
		t.Fatal("unexpected server payload")
	} else if ne, ok := err.(net.Error); !ok || !ne.Timeout() {
		t.Fatalf("valid-token connection terminated: %v", err)
	}

	// 4. an altered token must be terminated with no data sent
	bad, _, err := websocket.DefaultDialer.Dial(wsBase+"?token="+signed+"x", nil)
	if err != nil {
		t.Fatalf("dial with altered token: %v", err)
	}
	defer bad.Close()

	bad.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, data, err := bad.ReadMessage(); err == nil {
		t.Fatalf("altered token: expected termination, read %q", data)
	} else if ne, ok := err.(net.Error); ok && ne.Timeout() {
		t.Fatal("altered token: connection left open")
	}
}
