package events

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestWatermillPublisher_InProcessBus(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	bus := NewInProcessBus(logger)
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	messages, err := bus.Subscribe(ctx, "portal.events")
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	publisher := NewWatermillPublisher(bus, "portal.events", logger)
	event := NewEvent(TypeQuizAnswerChecked, AnswerCheckedData{QuestionID: "q1", Correct: true})
	if err := publisher.Publish(ctx, event); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	select {
	case msg := <-messages:
		defer msg.Ack()
		if msg.UUID != event.ID {
			t.Errorf("expected message uuid %s, got %s", event.ID, msg.UUID)
		}
		if msg.Metadata.Get("type") != TypeQuizAnswerChecked {
			t.Errorf("unexpected type metadata %q", msg.Metadata.Get("type"))
		}
		var decoded Event
		if err := json.Unmarshal(msg.Payload, &decoded); err != nil {
			t.Fatalf("payload is not an event: %v", err)
		}
		if decoded.Source != Source || decoded.Version != Version {
			t.Errorf("unexpected envelope %+v", decoded)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

// syncBuffer lets the test read log output written by the audit goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestStartAuditLog(t *testing.T) {
	var out syncBuffer
	logger := slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelInfo}))
	bus := NewInProcessBus(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError})))
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done, err := StartAuditLog(ctx, bus, "portal.events", logger)
	if err != nil {
		t.Fatalf("StartAuditLog failed: %v", err)
	}

	// Published right after start: the subscription must already exist.
	event := NewEvent(TypeUserLoggedIn, LoginData{Email: "a@b.c"})
	publisher := NewWatermillPublisher(bus, "portal.events", logger)
	if err := publisher.Publish(context.Background(), event); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for !strings.Contains(out.String(), event.ID) {
		if time.Now().After(deadline) {
			t.Fatalf("event %s was not logged; output: %s", event.ID, out.String())
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("audit log did not stop")
	}
}

func TestMockEventPublisher(t *testing.T) {
	mock := NewMockEventPublisher(nil)
	ctx := context.Background()

	mock.Publish(ctx, NewEvent(TypeUserLoggedIn, nil))
	mock.Publish(ctx, NewEvent(TypeUserLoggedOut, nil))

	if got := len(mock.GetPublishedEvents()); got != 2 {
		t.Fatalf("expected 2 events, got %d", got)
	}
	if got := len(mock.EventsOfType(TypeUserLoggedOut)); got != 1 {
		t.Errorf("expected 1 logout event, got %d", got)
	}

	mock.ClearEvents()
	if got := len(mock.GetPublishedEvents()); got != 0 {
		t.Errorf("expected no events after clear, got %d", got)
	}
}
