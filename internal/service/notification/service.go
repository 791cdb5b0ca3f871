// Package notification composes the outbound messages sent to clients after
// the admin responds to their booking request. WhatsApp delivery is manual:
// the API returns a prefilled wa.me link the admin taps. Email delivery is
// automatic when SMTP is configured, best effort either way.
package notification

import (
	"fmt"
	"net/url"

	gomail "gopkg.in/gomail.v2"

	"github.com/beautybox/salon-api/internal/model"
	"github.com/beautybox/salon-api/internal/service/booking"
	"github.com/beautybox/salon-api/pkg/logger"
)

// SMTPConfig enables email delivery when Host is set.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type Service struct {
	salonName string
	smtp      SMTPConfig
	log       *logger.Logger
}

func NewService(salonName string, smtp SMTPConfig, log *logger.Logger) *Service {
	return &Service{salonName: salonName, smtp: smtp, log: log}
}

// ConfirmationMessage is the text sent to the client when their request is
// confirmed.
func (s *Service) ConfirmationMessage(c *booking.Confirmation) string {
	msg := fmt.Sprintf(
		"¡Hola %s! Tu cita de %s en %s está confirmada para el %s a las %s.",
		c.ClientName, c.ServiceName, s.salonName, c.Date, c.Time)
	if c.Comment != "" {
		msg += " " + c.Comment
	}
	return msg
}

// RejectionMessage is the text sent when the request cannot be accommodated.
func (s *Service) RejectionMessage(r *booking.Rejection) string {
	msg := fmt.Sprintf(
		"Hola %s, lamentablemente no podemos atender tu solicitud en %s en el horario pedido.",
		r.Name, s.salonName)
	if r.Comment != "" {
		msg += " " + r.Comment
	}
	return msg
}

// WhatsAppLink builds the wa.me prefilled-message link for the phone. An
// empty digit string yields an empty link.
func WhatsAppLink(phone, message string) string {
	digits := model.NormalizePhone(phone)
	if digits == "" {
		return ""
	}
	return fmt.Sprintf("https://wa.me/%s?text=%s", digits, url.QueryEscape(message))
}

// SendEmail delivers the message when both SMTP and a recipient are
// configured. Failures are logged, never propagated; notification must not
// fail the workflow that triggered it.
func (s *Service) SendEmail(to, subject, body string) {
	if s.smtp.Host == "" || to == "" {
		return
	}
	m := gomail.NewMessage()
	m.SetHeader("From", s.smtp.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.smtp.Host, s.smtp.Port, s.smtp.Username, s.smtp.Password)
	if err := d.DialAndSend(m); err != nil {
		s.log.Error(err, "failed to send notification email", "to", to)
	}
}
