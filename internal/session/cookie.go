package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"
)

const (
	CookieName = "__Host-session"
)

var ErrBadCookieSignature = errors.New("session: cookie signature does not verify")

// CookieOptions defines how session cookies are issued.
type CookieOptions struct {
	Path     string
	HttpOnly bool
	Secure   bool
	SameSite http.SameSite
	Domain   string // should usually be empty for __Host- cookies
}

// normalize applies safe defaults without breaking callers
func (o CookieOptions) normalize() CookieOptions {
	if o.Path == "" {
		o.Path = "/" // required for __Host-
	}
	if !o.HttpOnly {
		o.HttpOnly = true // secure default
	}
	return o
}

// SignValue produces the cookie payload "<id>.<mac>" where mac is the
// base64url HMAC-SHA256 of the id under secret. The session id itself
// stays opaque; the MAC only makes tampering detectable.
func SignValue(sessionID string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(sessionID))
	sig := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
	return sessionID + "." + sig
}

// VerifyValue checks a cookie payload produced by SignValue and
// returns the embedded session id. A value whose MAC does not verify
// must be treated exactly like an absent cookie.
func VerifyValue(value string, secret []byte) (string, error) {
	idx := strings.LastIndexByte(value, '.')
	if idx <= 0 || idx == len(value)-1 {
		return "", ErrBadCookieSignature
	}

	sessionID := value[:idx]
	got, err := base64.RawURLEncoding.DecodeString(value[idx+1:])
	if err != nil {
		return "", ErrBadCookieSignature
	}

	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(sessionID))
	if !hmac.Equal(got, mac.Sum(nil)) {
		return "", ErrBadCookieSignature
	}

	return sessionID, nil
}

// SetCookie issues the signed session cookie to the client.
func SetCookie(
	w http.ResponseWriter,
	sessionID string,
	secret []byte,
	expiresAt time.Time,
	opts CookieOptions,
) {
	opts = opts.normalize()

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    SignValue(sessionID, secret),
		Path:     opts.Path,
		Domain:   opts.Domain,
		Expires:  expiresAt,
		HttpOnly: opts.HttpOnly,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	})
}

// ClearCookie removes the session cookie from the client.
func ClearCookie(
	w http.ResponseWriter,
	opts CookieOptions,
) {
	opts = opts.normalize()

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     opts.Path,
		Domain:   opts.Domain,
		MaxAge:   -1,
		HttpOnly: opts.HttpOnly,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	})
}
