package mail

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Sender delivers a single message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// LogSender logs messages instead of delivering them.
type LogSender struct {
	Logger *slog.Logger
}

func (s LogSender) Send(ctx context.Context, msg Message) error {
	s.Logger.Info("email dispatched",
		slog.String("from", msg.From),
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.Int("html_bytes", len(msg.HTML)),
	)
	return nil
}

// Worker drains a Queue into a Sender until stopped.
type Worker struct {
	Queue  Queue
	Sender Sender
	Logger *slog.Logger

	// Backoff is the pause after a queue error before polling again.
	Backoff time.Duration

	cancel context.CancelFunc
	doneCh chan struct{}
}

func NewWorker(q Queue, sender Sender, logger *slog.Logger) *Worker {
	return &Worker{
		Queue:   q,
		Sender:  sender,
		Logger:  logger,
		Backoff: 3 * time.Second,
	}
}

// Start launches the worker loop. It does not block.
func (w *Worker) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	w.doneCh = make(chan struct{})

	go w.run(ctx)
	w.Logger.Info("mail worker started")
}

// Stop signals the loop to exit and waits for the in-flight message.
func (w *Worker) Stop() {
	if w.cancel == nil {
		return
	}
	w.cancel()
	<-w.doneCh
	w.Logger.Info("mail worker stopped")
}

func (w *Worker) run(ctx context.Context) {
	defer close(w.doneCh)

	for {
		msg, err := w.Queue.Dequeue(ctx)
		switch {
		case err == nil:
			if err := w.Sender.Send(ctx, msg); err != nil {
				w.Logger.Error("failed to send email", slog.String("to", msg.To), slog.Any("error", err))
			}
		case errors.Is(err, ErrEmpty):
			// poll again
		case ctx.Err() != nil, errors.Is(err, ErrClosed):
			return
		default:
			w.Logger.Warn("mail queue error, backing off", slog.Any("error", err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(w.Backoff):
			}
		}
	}
}
