package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStore(client), mr
}

func TestStoreCreateGetDelete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	sess := Session{
		SessionID: "sid-1",
		UserID:    "joel",
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}

	if err := store.Create(ctx, sess); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := store.Get(ctx, "sid-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.UserID != "joel" {
		t.Fatalf("get returned %+v, want user joel", got)
	}

	if err := store.Delete(ctx, "sid-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	got, err = store.Get(ctx, "sid-1")
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if got != nil {
		t.Fatalf("session survived delete: %+v", got)
	}
}

func TestStoreGetUnknownSession(t *testing.T) {
	store, _ := newTestStore(t)

	got, err := store.Get(context.Background(), "never-created")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatalf("got %+v for unknown session", got)
	}
}

func TestStoreExpiresWithTTL(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	sess := Session{
		SessionID: "sid-ttl",
		UserID:    "sam",
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Minute),
	}
	if err := store.Create(ctx, sess); err != nil {
		t.Fatalf("create: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	got, err := store.Get(ctx, "sid-ttl")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatalf("session outlived its TTL: %+v", got)
	}
}

func TestStoreRejectsExpiredCreate(t *testing.T) {
	store, _ := newTestStore(t)

	sess := Session{
		SessionID: "sid-old",
		UserID:    "morgan",
		ExpiresAt: time.Now().Add(-time.Second),
	}
	if err := store.Create(context.Background(), sess); err == nil {
		t.Fatal("create accepted an already-expired session")
	}
}
