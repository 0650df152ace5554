package workers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mealdrop/mealdrop/internal/logger"
)

// recordingSender captures every message handed to it.
type recordingSender struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (s *recordingSender) SendPasswordReset(_ context.Context, to string, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, to)
	return s.err
}

func (s *recordingSender) recipients() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.sent...)
}

func TestMailWorker_DeliversQueuedMail(t *testing.T) {
	sender := &recordingSender{}
	worker := NewMailWorker(sender, 4, logger.Nop())
	worker.Run()

	ctx := context.Background()
	if err := worker.DispatchPasswordReset(ctx, "a@mealdrop.dev", "link-a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := worker.DispatchPasswordReset(ctx, "b@mealdrop.dev", "link-b"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	worker.Close()

	got := sender.recipients()
	if len(got) != 2 {
		t.Fatalf("expected 2 delivered messages, got %d", len(got))
	}
	if got[0] != "a@mealdrop.dev" || got[1] != "b@mealdrop.dev" {
		t.Errorf("unexpected delivery order: %v", got)
	}
}

func TestMailWorker_QueueFull(t *testing.T) {
	sender := &recordingSender{}
	worker := NewMailWorker(sender, 1, logger.Nop())
	// worker is not running, so the queue fills up

	ctx := context.Background()
	if err := worker.DispatchPasswordReset(ctx, "a@mealdrop.dev", "link"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := worker.DispatchPasswordReset(ctx, "b@mealdrop.dev", "link")
	if !errors.Is(err, ErrMailQueueFull) {
		t.Fatalf("expected ErrMailQueueFull, got %v", err)
	}
}

func TestMailWorker_SenderErrorDoesNotStopWorker(t *testing.T) {
	sender := &recordingSender{err: errors.New("provider down")}
	worker := NewMailWorker(sender, 4, logger.Nop())
	worker.Run()

	ctx := context.Background()
	for _, to := range []string{"a@mealdrop.dev", "b@mealdrop.dev"} {
		if err := worker.DispatchPasswordReset(ctx, to, "link"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	done := make(chan struct{})
	go func() {
		worker.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not drain the queue")
	}

	if got := sender.recipients(); len(got) != 2 {
		t.Errorf("expected both messages attempted, got %v", got)
	}
}
