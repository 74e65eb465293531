package session

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/prismaticcrm/teacher-assistant/domain"
)

func TestUpdateCommitsOnSuccess(t *testing.T) {
	store := NewMemoryStore()

	err := store.Update("k", func(history []domain.ChatMessage) ([]domain.ChatMessage, error) {
		if len(history) != 0 {
			t.Errorf("new session should start empty, got %d messages", len(history))
		}
		return append(history, domain.ChatMessage{Role: domain.SystemRole, Content: "seed"}), nil
	})
	if err != nil {
		t.Fatal(err)
	}

	history, ok := store.History("k")
	if !ok || len(history) != 1 {
		t.Fatalf("expected committed session with 1 message, got ok=%v len=%d", ok, len(history))
	}
	if store.Len() != 1 {
		t.Errorf("expected 1 session, got %d", store.Len())
	}
}

func TestUpdateRollsBackOnError(t *testing.T) {
	store := NewMemoryStore()
	boom := errors.New("boom")

	err := store.Update("k", func(history []domain.ChatMessage) ([]domain.ChatMessage, error) {
		return append(history, domain.ChatMessage{Role: domain.SystemRole, Content: "seed"}), boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected fn error to propagate, got %v", err)
	}

	if _, ok := store.History("k"); ok {
		t.Error("failed first update must not create a session")
	}
	if store.Len() != 0 {
		t.Errorf("expected 0 sessions, got %d", store.Len())
	}
}

func TestUpdateFailureLeavesPriorHistory(t *testing.T) {
	store := NewMemoryStore()

	if err := store.Update("k", func(history []domain.ChatMessage) ([]domain.ChatMessage, error) {
		return []domain.ChatMessage{{Role: domain.UserRole, Content: "kept"}}, nil
	}); err != nil {
		t.Fatal(err)
	}

	wantErr := errors.New("turn failed")
	err := store.Update("k", func(history []domain.ChatMessage) ([]domain.ChatMessage, error) {
		return append(history, domain.ChatMessage{Role: domain.UserRole, Content: "dropped"}), wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatal(err)
	}

	history, _ := store.History("k")
	if len(history) != 1 || history[0].Content != "kept" {
		t.Errorf("history changed by failed update: %+v", history)
	}
}

func TestHistoryReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	if err := store.Update("k", func(history []domain.ChatMessage) ([]domain.ChatMessage, error) {
		return []domain.ChatMessage{{Role: domain.UserRole, Content: "original"}}, nil
	}); err != nil {
		t.Fatal(err)
	}

	history, _ := store.History("k")
	history[0].Content = "mutated"

	again, _ := store.History("k")
	if again[0].Content != "original" {
		t.Error("History must return a copy, not the stored slice")
	}
}

func TestConcurrentUpdatesSameKeyLoseNothing(t *testing.T) {
	store := NewMemoryStore()

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := store.Update("k", func(history []domain.ChatMessage) ([]domain.ChatMessage, error) {
				return append(history, domain.ChatMessage{
					Role:    domain.UserRole,
					Content: fmt.Sprintf("msg %d", i),
				}), nil
			})
			if err != nil {
				t.Errorf("update %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	history, _ := store.History("k")
	if len(history) != workers {
		t.Errorf("expected %d messages, got %d", workers, len(history))
	}
}

func TestDistinctKeysDoNotInterfere(t *testing.T) {
	store := NewMemoryStore()

	for _, key := range []string{"a", "b"} {
		key := key
		if err := store.Update(key, func(history []domain.ChatMessage) ([]domain.ChatMessage, error) {
			return []domain.ChatMessage{{Role: domain.UserRole, Content: key}}, nil
		}); err != nil {
			t.Fatal(err)
		}
	}

	a, _ := store.History("a")
	b, _ := store.History("b")
	if a[0].Content != "a" || b[0].Content != "b" {
		t.Errorf("sessions bled into each other: a=%+v b=%+v", a, b)
	}
	if store.Len() != 2 {
		t.Errorf("expected 2 sessions, got %d", store.Len())
	}
}
