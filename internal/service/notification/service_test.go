package notification

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/beautybox/salon-api/internal/service/booking"
	"github.com/beautybox/salon-api/pkg/logger"
)

func newService() *Service {
	log := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
	return NewService("BeautyBox", SMTPConfig{}, log)
}

func TestConfirmationMessage(t *testing.T) {
	svc := newService()
	msg := svc.ConfirmationMessage(&booking.Confirmation{
		ClientName:  "Lucía",
		ServiceName: "Laminado de Cejas",
		Date:        "2026-09-05",
		Time:        "16:30",
		Comment:     "Trae el pelo limpio.",
	})

	assert.Contains(t, msg, "Lucía")
	assert.Contains(t, msg, "Laminado de Cejas")
	assert.Contains(t, msg, "2026-09-05")
	assert.Contains(t, msg, "16:30")
	assert.Contains(t, msg, "Trae el pelo limpio.")
}

func TestWhatsAppLink(t *testing.T) {
	link := WhatsAppLink("+34 611-222-333", "¡Hola! Tu cita está confirmada")
	assert.Equal(t, "https://wa.me/34611222333?text=%C2%A1Hola%21+Tu+cita+est%C3%A1+confirmada", link)

	assert.Empty(t, WhatsAppLink("sin teléfono", "hola"))
}

func TestRejectionMessage(t *testing.T) {
	svc := newService()
	msg := svc.RejectionMessage(&booking.Rejection{Name: "Sara", Comment: "Proponnos otra fecha."})
	assert.Contains(t, msg, "Sara")
	assert.Contains(t, msg, "BeautyBox")
	assert.Contains(t, msg, "Proponnos otra fecha.")
}
