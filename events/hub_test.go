package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
)

type recorder struct {
	mu       sync.Mutex
	messages [][]byte
}

func (r *recorder) send(data []byte) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, data)
	return true
}

func TestHub_Publish(t *testing.T) {
	hub := NewHub()
	first, second, other := &recorder{}, &recorder{}, &recorder{}
	c1, c2, c3 := NewClient(first.send), NewClient(second.send), NewClient(other.send)
	hub.Add(1, c1)
	hub.Add(1, c2)
	hub.Add(2, c3)
	if got := hub.Connected(1); got != 2 {
		t.Fatalf("Connected(1) = %d, want 2", got)
	}

	if err := hub.Publish(context.Background(), NewEvent(FavouriteAdded, 1, 42)); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	for name, r := range map[string]*recorder{"first": first, "second": second} {
		if len(r.messages) != 1 {
			t.Fatalf("%s connection got %d messages, want 1", name, len(r.messages))
		}
		var e Event
		if err := json.Unmarshal(r.messages[0], &e); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if e.Type != FavouriteAdded || e.UserID != 1 || e.RestaurantID != 42 {
			t.Errorf("%s connection got %+v", name, e)
		}
	}
	if len(other.messages) != 0 {
		t.Errorf("another user's connection got %d messages", len(other.messages))
	}

	hub.Remove(1, c1)
	if got := hub.Connected(1); got != 1 {
		t.Fatalf("Connected(1) after remove = %d, want 1", got)
	}
	hub.Remove(1, c2)
	if got := hub.Connected(1); got != 0 {
		t.Fatalf("Connected(1) after removing all = %d, want 0", got)
	}
	// Nobody listening is not an error
	if err := hub.Publish(context.Background(), NewEvent(FavouriteRemoved, 1, 42)); err != nil {
		t.Errorf("Publish: %v", err)
	}
}

type failingPublisher struct{ calls int }

func (f *failingPublisher) Publish(context.Context, Event) error {
	f.calls++
	return errors.New("broker down")
}

func TestPublishers_IgnoreFailures(t *testing.T) {
	failing := &failingPublisher{}
	hub := NewHub()
	r := &recorder{}
	hub.Add(7, NewClient(r.send))

	ps := Publishers{failing, nil, hub}
	if err := ps.Publish(context.Background(), NewEvent(BlacklistAdded, 7, 1)); err != nil {
		t.Fatalf("Publish() = %v, want nil", err)
	}
	if failing.calls != 1 {
		t.Errorf("failing publisher called %d times", failing.calls)
	}
	if len(r.messages) != 1 {
		t.Errorf("hub did not get the event after a failing publisher")
	}
}
