// Package notification delivers outbound email requests without holding up
// the request that triggered them.
package notification

import "time"

// Template names understood by the mail worker.
const (
	TemplateWelcome          = "welcome"
	TemplateVerifyEmail      = "verify-email"
	TemplatePasswordReset    = "password-reset"
	TemplatePasswordChanged  = "password-changed"
	TemplateBookingReceived  = "booking-received"
	TemplateBookingAdmin     = "booking-admin"
	TemplateBookingStatus    = "booking-status"
	TemplateQuoteReceived    = "quote-received"
	TemplateQuoteAdmin       = "quote-admin"
	TemplateQuoteSent        = "quote-sent"
	TemplateQuoteResponse    = "quote-response"
	TemplateContactAutoReply = "contact-auto-reply"
	TemplateContactAdmin     = "contact-admin"
)

type Message struct {
	Template  string         `json:"template"`
	To        string         `json:"to"`
	Subject   string         `json:"subject"`
	Data      map[string]any `json:"data,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

func NewMessage(template, to, subject string, data map[string]any) Message {
	return Message{
		Template:  template,
		To:        to,
		Subject:   subject,
		Data:      data,
		CreatedAt: time.Now().UTC(),
	}
}
