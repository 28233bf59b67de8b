package mailer

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/skous2/nails-by-brooke/pkg/circuitbreaker"
)

// breakerSender stops dialing a relay that keeps failing, so requests fail
// fast instead of waiting on SMTP timeouts.
type breakerSender struct {
	next Sender
	cb   *circuitbreaker.CircuitBreaker
}

func WithCircuitBreaker(next Sender, cb *circuitbreaker.CircuitBreaker) Sender {
	return &breakerSender{next: next, cb: cb}
}

func (s *breakerSender) Send(ctx context.Context, msg *Message) error {
	err := s.cb.Execute(func() error {
		return s.next.Send(ctx, msg)
	})
	if errors.Is(err, circuitbreaker.ErrOpen) {
		log.Warn().Str("breaker", s.cb.Name()).Msg("mail relay unavailable, skipping send")
	}
	return err
}
