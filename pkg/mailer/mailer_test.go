package mailer

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skous2/nails-by-brooke/pkg/circuitbreaker"
)

func TestBuildMessage(t *testing.T) {
	m, err := buildMessage("reports@example.com", &Message{
		To:      "owner@example.com",
		Subject: "Income summary 2025",
		Body:    "Attached.",
		Attachments: []Attachment{{
			Filename:    "nails-by-brooke-income-summary-2025.pdf",
			ContentType: "application/pdf",
			Data:        []byte("%PDF-1.4 test"),
		}},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "From: reports@example.com")
	assert.Contains(t, out, "To: owner@example.com")
	assert.Contains(t, out, "Subject: Income summary 2025")
	assert.Contains(t, out, `filename="nails-by-brooke-income-summary-2025.pdf"`)
	assert.Contains(t, out, "application/pdf")
}

func TestBuildMessageRequiresRecipient(t *testing.T) {
	_, err := buildMessage("reports@example.com", &Message{Subject: "x"})
	assert.ErrorIs(t, err, ErrNoRecipient)
}

func TestSendHonoursCancelledContext(t *testing.T) {
	s := NewSMTPSender(Config{Host: "127.0.0.1", Port: 1, From: "a@example.com"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Send(ctx, &Message{To: "b@example.com"})
	assert.ErrorIs(t, err, context.Canceled)
}

type failingSender struct {
	calls int
}

func (s *failingSender) Send(ctx context.Context, msg *Message) error {
	s.calls++
	return errors.New("connection refused")
}

func TestWithCircuitBreaker(t *testing.T) {
	next := &failingSender{}
	cb := circuitbreaker.NewCircuitBreaker(circuitbreaker.Settings{
		Name:        "smtp",
		MaxFailures: 2,
		Timeout:     time.Hour,
	})
	sender := WithCircuitBreaker(next, cb)
	msg := &Message{To: "brooke@example.com", Subject: "hi"}

	assert.Error(t, sender.Send(context.Background(), msg))
	assert.Error(t, sender.Send(context.Background(), msg))
	assert.ErrorIs(t, sender.Send(context.Background(), msg), circuitbreaker.ErrOpen)
	assert.Equal(t, 2, next.calls)
}
