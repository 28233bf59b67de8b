package email

import (
	"context"
	"fmt"

	"github.com/skous2/nails-by-brooke/pkg/mailer"
)

// Service sends the application's outgoing mail.
type Service interface {
	SendSummaryReport(ctx context.Context, to string, year int, filename string, pdf []byte) error
}

type service struct {
	sender       mailer.Sender
	businessName string
}

func NewService(sender mailer.Sender, businessName string) Service {
	return &service{sender: sender, businessName: businessName}
}

func (s *service) SendSummaryReport(ctx context.Context, to string, year int, filename string, pdf []byte) error {
	msg := &mailer.Message{
		To:      to,
		Subject: fmt.Sprintf("%s income summary %d", s.businessName, year),
		Body: fmt.Sprintf(
			"Attached is the %d income summary for %s.\n\nOnly appointments marked as paid are included.\n",
			year, s.businessName,
		),
		Attachments: []mailer.Attachment{{
			Filename:    filename,
			ContentType: "application/pdf",
			Data:        pdf,
		}},
	}
	return s.sender.Send(ctx, msg)
}
