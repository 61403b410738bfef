// Package notify holds the outbound side channels: the real-time notifier
// that tells the other party about an appointment or booking outcome, and
// the delivery senders (email, WhatsApp-style messaging). All of them are
// fire-and-forget collaborators; a failed delivery is logged and never
// rolls back the state change that triggered it.
package notify

import (
	"github.com/rs/zerolog"
)

// Notifier publishes an event to a room. Handlers call it after a
// successful state transition and never wait on the result.
type Notifier interface {
	Notify(room, event string, payload interface{})
}

// EmailSender delivers transactional mail.
type EmailSender interface {
	SendEmail(to, subject, body string) error
}

// WhatsAppSender delivers short text notifications.
type WhatsAppSender interface {
	SendWhatsApp(to, message string) error
}

// LogNotifier is the default Notifier. It records the event; a websocket
// hub can replace it without touching the handlers.
type LogNotifier struct {
	Log zerolog.Logger
}

func (n *LogNotifier) Notify(room, event string, payload interface{}) {
	n.Log.Info().
		Str("room", room).
		Str("event", event).
		Interface("payload", payload).
		Msg("notify")
}

// LogEmailSender logs instead of delivering. Used in development and tests.
type LogEmailSender struct {
	Log zerolog.Logger
}

func (s *LogEmailSender) SendEmail(to, subject, body string) error {
	s.Log.Info().Str("to", to).Str("subject", subject).Msg("email")
	return nil
}

// LogWhatsAppSender logs instead of delivering.
type LogWhatsAppSender struct {
	Log zerolog.Logger
}

func (s *LogWhatsAppSender) SendWhatsApp(to, message string) error {
	s.Log.Info().Str("to", to).Msg("whatsapp")
	return nil
}
