package service

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/go-redis/redis/v8"
)

func newRedisStore(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedis(client), mr
}

// одни и те же проверки для всех бэкендов
func testStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	got, err := s.Members(ctx, "quests:empty")
	if err != nil {
		t.Fatalf("Members on missing key: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("missing key must be empty, got %v", got)
	}

	if err := s.AddMembers(ctx, "quests:a", "1", "2"); err != nil {
		t.Fatalf("AddMembers: %v", err)
	}
	if err := s.AddMembers(ctx, "quests:a", "2", "3"); err != nil {
		t.Fatalf("AddMembers again: %v", err)
	}
	if err := s.AddMembers(ctx, "quests:a"); err != nil {
		t.Fatalf("AddMembers with no ids: %v", err)
	}

	got, err = s.Members(ctx, "quests:a")
	if err != nil {
		t.Fatalf("Members: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 members, got %v", got)
	}
	for _, id := range []string{"1", "2", "3"} {
		if _, ok := got[id]; !ok {
			t.Errorf("missing %s", id)
		}
	}

	// ключи изолированы
	other, _ := s.Members(ctx, "quests:b")
	if len(other) != 0 {
		t.Errorf("other key leaked members: %v", other)
	}
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemory())
}

func TestMemoryStore_ReturnsCopy(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	_ = m.AddMembers(ctx, "k", "x")

	got, _ := m.Members(ctx, "k")
	delete(got, "x")

	again, _ := m.Members(ctx, "k")
	if _, ok := again["x"]; !ok {
		t.Fatal("caller mutated the stored set")
	}
}

func TestRedisStore(t *testing.T) {
	s, mr := newRedisStore(t)
	testStore(t, s)

	members, err := mr.Members("quests:a")
	if err != nil {
		t.Fatalf("miniredis members: %v", err)
	}
	if len(members) != 3 {
		t.Fatalf("redis set has %v", members)
	}
}

func TestRedisStore_Down(t *testing.T) {
	s, mr := newRedisStore(t)
	mr.Close()

	if _, err := s.Members(context.Background(), "quests:a"); err == nil {
		t.Fatal("expected error when redis is down")
	}
	if err := s.AddMembers(context.Background(), "quests:a", "1"); err == nil {
		t.Fatal("expected error when redis is down")
	}
}
