package app

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"

	"github.com/JoelCodes/w6d4-lecture-auth/internal/config"
	"github.com/JoelCodes/w6d4-lecture-auth/internal/session"
	"github.com/JoelCodes/w6d4-lecture-auth/internal/token"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig(t *testing.T) config.Config {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	return config.Config{
		AppPort:      "0",
		CookieSecret: "extraordinary machine",
		TokenSecret:  "the idler wheel",
		TokenTTL:     10 * time.Minute,
		SessionTTL:   time.Hour,
		RedisAddr:    mr.Addr(),
	}
}

func newTestServer(t *testing.T) (*httptest.Server, config.Config) {
	t.Helper()

	cfg := testConfig(t)

	router, cleanup, err := setupHTTP(context.Background(), cfg)
	if err != nil {
		t.Fatalf("setupHTTP: %v", err)
	}
	if cleanup != nil {
		t.Cleanup(func() { _ = cleanup() })
	}

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return srv, cfg
}

// login posts credentials and returns the session cookie, if any.
func login(t *testing.T, srv *httptest.Server, email, password string) (*http.Cookie, int) {
	t.Helper()

	body := `{"email":"` + email + `","password":"` + password + `"}`
	resp, err := http.Post(srv.URL+"/session", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST /session: %v", err)
	}
	defer resp.Body.Close()

	for _, c := range resp.Cookies() {
		if c.Name == session.CookieName {
			return c, resp.StatusCode
		}
	}
	return nil, resp.StatusCode
}

func get(t *testing.T, srv *httptest.Server, method, path string, cookie *http.Cookie) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, srv.URL+path, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if cookie != nil {
		req.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func TestLoginSuccessSetsSessionCookie(t *testing.T) {
	srv, _ := newTestServer(t)

	cookie, status := login(t, srv, "joel@joel.joel", "joel")
	if status != http.StatusOK {
		t.Fatalf("login status = %d, want 200", status)
	}
	if cookie == nil {
		t.Fatal("no session cookie set")
	}
	if !strings.Contains(cookie.Value, ".") {
		t.Error("session cookie is not signed")
	}
}

func TestLoginFailureIsUniform401(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, tc := range []struct{ email, password string }{
		{"joel@joel.joel", "wrong"},
		{"nobody@nowhere.example", "joel"},
		{"", ""},
	} {
		cookie, status := login(t, srv, tc.email, tc.password)
		if status != http.StatusUnauthorized {
			t.Errorf("login(%q) status = %d, want 401", tc.email, status)
		}
		if cookie != nil {
			t.Errorf("login(%q) set a session cookie on failure", tc.email)
		}
	}
}

func TestMeReturnsUserWithoutPasswordMaterial(t *testing.T) {
	srv, _ := newTestServer(t)

	cookie, _ := login(t, srv, "joel@joel.joel", "joel")
	if cookie == nil {
		t.Fatal("login failed")
	}

	resp := get(t, srv, http.MethodGet, "/me", cookie)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /me status = %d, want 200", resp.StatusCode)
	}

	raw, _ := io.ReadAll(resp.Body)

	var body struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("decode /me body: %v", err)
	}
	if body.ID != "joel" || body.Email != "joel@joel.joel" {
		t.Errorf("GET /me = %+v", body)
	}

	lower := strings.ToLower(string(raw))
	if strings.Contains(lower, "password") || strings.Contains(lower, "$2a$") {
		t.Errorf("/me leaked password material: %s", raw)
	}
}

func TestMeWithoutSessionIs401(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := get(t, srv, http.MethodGet, "/me", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("GET /me status = %d, want 401", resp.StatusCode)
	}
}

func TestMeWithTamperedCookieIs401(t *testing.T) {
	srv, _ := newTestServer(t)

	cookie, _ := login(t, srv, "joel@joel.joel", "joel")
	if cookie == nil {
		t.Fatal("login failed")
	}

	tampered := &http.Cookie{Name: cookie.Name, Value: "x" + cookie.Value}
	resp := get(t, srv, http.MethodGet, "/me", tampered)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("GET /me with tampered cookie = %d, want 401", resp.StatusCode)
	}
}

func TestTokenRequiresSession(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := get(t, srv, http.MethodPost, "/token", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("POST /token status = %d, want 401", resp.StatusCode)
	}
}

func TestTokenCarriesUserClaims(t *testing.T) {
	srv, cfg := newTestServer(t)

	cookie, _ := login(t, srv, "sam@sam.sam", "sam")
	if cookie == nil {
		t.Fatal("login failed")
	}

	resp := get(t, srv, http.MethodPost, "/token", cookie)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST /token status = %d, want 200", resp.StatusCode)
	}

	raw, _ := io.ReadAll(resp.Body)

	verifier := token.NewVerifier([]byte(cfg.TokenSecret))
	claims, err := verifier.Verify(string(raw))
	if err != nil {
		t.Fatalf("verify issued token: %v", err)
	}
	if claims.ID != "sam" {
		t.Errorf("claims.ID = %q, want sam", claims.ID)
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	srv, _ := newTestServer(t)

	cookie, _ := login(t, srv, "morgan@morgan.morgan", "morgan")
	if cookie == nil {
		t.Fatal("login failed")
	}

	for i := 0; i < 2; i++ {
		resp := get(t, srv, http.MethodDelete, "/session", cookie)
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("DELETE /session (call %d) = %d, want 200", i+1, resp.StatusCode)
		}
	}

	resp := get(t, srv, http.MethodGet, "/me", cookie)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("GET /me after logout = %d, want 401", resp.StatusCode)
	}
}
