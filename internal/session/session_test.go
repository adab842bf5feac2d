package session

import (
	"fmt"
	"sync"
	"testing"
)

func TestRenderContext(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		turns []Turn
		want  string
	}{
		{"empty", nil, ""},
		{"single user turn", []Turn{{RoleUser, "a"}}, "You: a"},
		{
			"alternating",
			[]Turn{{RoleUser, "a"}, {RoleBot, "b"}},
			"You: a\nBot: b",
		},
		{
			"insertion order preserved",
			[]Turn{{RoleUser, "first"}, {RoleBot, "second"}, {RoleUser, "third"}},
			"You: first\nBot: second\nYou: third",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := RenderContext(tt.turns); got != tt.want {
				t.Fatalf("RenderContext() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInMemoryStore_AppendAndTurns(t *testing.T) {
	t.Parallel()

	s := NewInMemoryStore()

	if err := s.Append("s1", Turn{RoleUser, "hello"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := s.Append("s1", Turn{RoleBot, "hi there"}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	turns, err := s.Turns("s1")
	if err != nil {
		t.Fatalf("Turns: %v", err)
	}
	if len(turns) != 2 {
		t.Fatalf("len(turns) = %d, want 2", len(turns))
	}
	if turns[0].Role != RoleUser || turns[1].Role != RoleBot {
		t.Fatalf("turn order wrong: %+v", turns)
	}

	// Returned slice is a copy — mutating it must not affect the store.
	turns[0].Content = "mutated"
	again, _ := s.Turns("s1")
	if again[0].Content != "hello" {
		t.Fatal("Turns returned a live reference to internal state")
	}
}

func TestInMemoryStore_UnknownSession(t *testing.T) {
	t.Parallel()

	s := NewInMemoryStore()

	turns, err := s.Turns("nope")
	if err != nil {
		t.Fatalf("Turns: %v", err)
	}
	if turns != nil {
		t.Fatalf("turns = %v, want nil for unknown session", turns)
	}
	if n, _ := s.Len("nope"); n != 0 {
		t.Fatalf("Len = %d, want 0", n)
	}
}

func TestInMemoryStore_SessionsAndPurge(t *testing.T) {
	t.Parallel()

	s := NewInMemoryStore()
	_ = s.Append("a", Turn{RoleUser, "x"})
	_ = s.Append("b", Turn{RoleUser, "y"})

	if got := s.Sessions(); got != 2 {
		t.Fatalf("Sessions() = %d, want 2", got)
	}

	if err := s.Purge("a"); err != nil {
		t.Fatalf("Purge: %v", err)
	}
	if got := s.Sessions(); got != 1 {
		t.Fatalf("Sessions() after purge = %d, want 1", got)
	}
}

func TestInMemoryStore_ConcurrentAppends(t *testing.T) {
	t.Parallel()

	s := NewInMemoryStore()
	var wg sync.WaitGroup
	for i := range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Append("shared", Turn{RoleUser, fmt.Sprintf("msg %d", i)})
		}()
	}
	wg.Wait()

	if n, _ := s.Len("shared"); n != 100 {
		t.Fatalf("Len = %d, want 100", n)
	}
}
