// SPDX-License-Identifier: Apache-2.0

package workers

import (
	"context"
	"errors"
	"time"

	"github.com/mealdrop/mealdrop/internal/logger"
	"github.com/mealdrop/mealdrop/internal/mail"
)

// ErrMailQueueFull is returned by DispatchPasswordReset when the delivery
// queue cannot accept another message.
var ErrMailQueueFull = errors.New("mail queue is full")

const sendTimeout = 30 * time.Second

type resetMailJob struct {
	to   string
	link string
}

// MailWorker delivers password-reset mail off the request path. Requests
// enqueue jobs through DispatchPasswordReset and a single background
// goroutine drains the queue.
type MailWorker struct {
	sender mail.Sender
	queue  chan resetMailJob
	done   chan struct{}
	logger *logger.Logger
}

// NewMailWorker constructs a [MailWorker] with a bounded queue of the given
// size.
func NewMailWorker(sender mail.Sender, queueSize int, logger *logger.Logger) *MailWorker {
	if queueSize <= 0 {
		queueSize = 64
	}
	return &MailWorker{
		sender: sender,
		queue:  make(chan resetMailJob, queueSize),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// Run starts the delivery goroutine. It returns immediately.
func (w *MailWorker) Run() {
	go func() {
		defer close(w.done)

		for job := range w.queue {
			ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
			if err := w.sender.SendPasswordReset(ctx, job.to, job.link); err != nil {
				w.logger.Err(err).Str("to", job.to).Msg("password reset mail was not delivered")
			}
			cancel()
		}
	}()
}

// DispatchPasswordReset enqueues a password-reset message for asynchronous
// delivery. It never blocks the caller: when the queue is full the message
// is rejected with [ErrMailQueueFull].
func (w *MailWorker) DispatchPasswordReset(_ context.Context, to string, resetLink string) error {
	select {
	case w.queue <- resetMailJob{to: to, link: resetLink}:
		return nil
	default:
		return ErrMailQueueFull
	}
}

// Close stops accepting new mail and waits for queued messages to drain.
func (w *MailWorker) Close() {
	close(w.queue)
	<-w.done
}
