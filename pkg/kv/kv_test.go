package kv

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func mustGet(t *testing.T, s Store, key string) (string, bool) {
	t.Helper()
	v, ok, err := s.Get(context.Background(), key)
	if err != nil {
		t.Fatalf("get %s: %v", key, err)
	}
	return v, ok
}

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if _, ok := mustGet(t, m, "cart"); ok {
		t.Fatal("fresh store should not have a cart")
	}

	if err := m.Set(ctx, "cart", "[]"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if v, ok := mustGet(t, m, "cart"); !ok || v != "[]" {
		t.Fatalf("expected [], got %q ok=%v", v, ok)
	}

	if err := m.Del(ctx, "cart"); err != nil {
		t.Fatalf("del: %v", err)
	}
	if _, ok := mustGet(t, m, "cart"); ok {
		t.Fatal("cart should be gone after Del")
	}
}

func TestSessionsIsolateKeys(t *testing.T) {
	ctx := context.Background()
	base := NewMemory()
	sessions := NewSessions(base, "sf:session")

	a := sessions.ForSession("a")
	b := sessions.ForSession("b")
	if err := a.Set(ctx, "locale", "ar"); err != nil {
		t.Fatalf("set: %v", err)
	}

	if _, ok := mustGet(t, b, "locale"); ok {
		t.Fatal("session b must not see session a's locale")
	}
	if raw, ok := mustGet(t, base, "sf:session:a:locale"); !ok || raw != "ar" {
		t.Fatalf("expected namespaced key to hold ar, got %q ok=%v", raw, ok)
	}
}

func TestScopedEmptyPrefixReturnsBase(t *testing.T) {
	base := NewMemory()
	if got := Scoped(base, " "); got != Store(base) {
		t.Fatalf("expected the base store back, got %T", got)
	}
}

type fakeStringClient struct {
	values map[string]string
	ttl    time.Duration
	getErr error
}

func (f *fakeStringClient) Get(_ context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	v, ok := f.values[key]
	if !ok {
		return "", redis.Nil
	}
	return v, nil
}

func (f *fakeStringClient) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	f.values[key] = value.(string)
	f.ttl = ttl
	return nil
}

func (f *fakeStringClient) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.values, k)
	}
	return nil
}

func TestRedisTreatsNilAsMissing(t *testing.T) {
	ctx := context.Background()
	client := &fakeStringClient{values: map[string]string{}}
	store := NewRedis(client, time.Hour)

	if _, ok := mustGet(t, store, "cart"); ok {
		t.Fatal("redis.Nil should read as a missing key")
	}

	if err := store.Set(ctx, "cart", "[]"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if client.ttl != time.Hour {
		t.Fatalf("expected session ttl on set, got %s", client.ttl)
	}
	if v, ok := mustGet(t, store, "cart"); !ok || v != "[]" {
		t.Fatalf("expected [], got %q ok=%v", v, ok)
	}
}

func TestRedisSurfacesTransportErrors(t *testing.T) {
	boom := errors.New("connection refused")
	store := NewRedis(&fakeStringClient{values: map[string]string{}, getErr: boom}, 0)

	_, ok, err := store.Get(context.Background(), "cart")
	if !errors.Is(err, boom) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if ok {
		t.Fatal("failed read must not report a value")
	}
}
