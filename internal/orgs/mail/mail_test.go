package mail_test

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/orgs/internal/orgs/mail"
	"github.com/stretchr/testify/require"
)

func TestMemoryQueueFIFO(t *testing.T) {
	ctx := context.Background()
	q := mail.NewMemoryQueue(4)

	require.NoError(t, q.Enqueue(ctx, mail.Message{To: "a@example.com"}))
	require.NoError(t, q.Enqueue(ctx, mail.Message{To: "b@example.com"}))
	require.Equal(t, 2, q.Len())

	first, err := q.Dequeue(ctx)
	require.NoError(t, err)
	require.Equal(t, "a@example.com", first.To)

	second, err := q.Dequeue(ctx)
	require.NoError(t, err)
	require.Equal(t, "b@example.com", second.To)
}

func TestMemoryQueueRejectsMissingRecipient(t *testing.T) {
	q := mail.NewMemoryQueue(1)
	require.Error(t, q.Enqueue(context.Background(), mail.Message{Subject: "hi"}))
}

func TestMemoryQueueDequeueHonoursContext(t *testing.T) {
	q := mail.NewMemoryQueue(1)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := q.Dequeue(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMemoryQueueClose(t *testing.T) {
	q := mail.NewMemoryQueue(1)
	require.NoError(t, q.Close())
	require.NoError(t, q.Close())

	require.ErrorIs(t, q.Enqueue(context.Background(), mail.Message{To: "a@example.com"}), mail.ErrClosed)
	_, err := q.Dequeue(context.Background())
	require.ErrorIs(t, err, mail.ErrClosed)
}

func TestRenderCustomEmail(t *testing.T) {
	r, err := mail.NewRenderer()
	require.NoError(t, err)

	html, err := r.Render(mail.TemplateCustomEmail, mail.Content{
		UserName:  "<script>",
		Title:     "Invitation to Join Organization",
		Body:      "<p>You have been invited.</p>",
		ActionURL: "https://app.example.com/accept-invite/acme?token=abc",
	})
	require.NoError(t, err)
	require.Contains(t, html, "<title>Invitation to Join Organization</title>")
	require.Contains(t, html, "<p>You have been invited.</p>")
	require.Contains(t, html, `href="https://app.example.com/accept-invite/acme?token=abc"`)
	require.Contains(t, html, "&lt;script&gt;")
	require.NotContains(t, html, "<script>")
}

func TestRenderUnknownTemplate(t *testing.T) {
	r, err := mail.NewRenderer()
	require.NoError(t, err)

	_, err = r.Render("nope", mail.Content{})
	require.Error(t, err)
}

type recordingSender struct {
	mu   sync.Mutex
	sent []mail.Message
}

func (s *recordingSender) Send(_ context.Context, msg mail.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	return nil
}

func (s *recordingSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func TestWorkerDrainsQueue(t *testing.T) {
	q := mail.NewMemoryQueue(8)
	sender := &recordingSender{}
	w := mail.NewWorker(q, sender, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	w.Start()
	for _, to := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		require.NoError(t, q.Enqueue(context.Background(), mail.Message{To: to}))
	}

	require.Eventually(t, func() bool { return sender.count() == 3 }, 2*time.Second, 10*time.Millisecond)
	w.Stop()
}

func TestWorkerStopWithoutStart(t *testing.T) {
	w := mail.NewWorker(mail.NewMemoryQueue(1), &recordingSender{}, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	require.NotPanics(t, w.Stop)
}

func TestLogSender(t *testing.T) {
	var buf bytes.Buffer
	s := mail.LogSender{Logger: slog.New(slog.NewJSONHandler(&buf, nil))}

	require.NoError(t, s.Send(context.Background(), mail.Message{From: "noreply@example.com", To: "a@example.com", Subject: "hi"}))
	require.Contains(t, buf.String(), `"to":"a@example.com"`)
	require.Contains(t, buf.String(), `"subject":"hi"`)
}
