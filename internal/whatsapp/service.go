package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// ErrNotConfigured is returned when any of the three provider credentials is
// missing. The check runs before any network I/O.
var ErrNotConfigured = errors.New("whatsapp provider credentials not configured")

// Sender submits one message to one recipient and reports the provider's
// tracking id. The dispatcher and the handlers depend on this seam rather
// than on the Twilio client directly.
type Sender interface {
	Send(ctx context.Context, phone, body string) (string, error)
}

type Config struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

func (c Config) complete() bool {
	return c.AccountSID != "" && c.AuthToken != "" && c.FromNumber != ""
}

// Service sends WhatsApp messages through Twilio.
type Service struct {
	client *twilio.RestClient
	cfg    Config
	log    zerolog.Logger
}

// NewService creates a new WhatsApp service
func NewService(cfg Config, log zerolog.Logger) *Service {
	s := &Service{
		cfg: cfg,
		log: log.With().Str("component", "whatsapp").Logger(),
	}
	if cfg.complete() {
		s.client = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.AccountSID,
			Password: cfg.AuthToken,
		})
	}
	return s
}

// Send submits a single WhatsApp message and returns the provider-assigned
// message SID.
func (s *Service) Send(ctx context.Context, phone, body string) (string, error) {
	if s.client == nil {
		return "", ErrNotConfigured
	}

	to := "whatsapp:+" + NormalizePhoneNumber(phone)
	from := "whatsapp:+" + NormalizePhoneNumber(s.cfg.FromNumber)

	params := &twilioapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(from)
	params.SetBody(body)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return "", fmt.Errorf("failed to send message: %w", err)
	}
	if resp.Sid == nil {
		return "", errors.New("provider returned no message sid")
	}

	s.log.Debug().Str("to", to).Str("sid", *resp.Sid).Msg("Message sent")
	return *resp.Sid, nil
}

// NormalizePhoneNumber normalizes phone numbers to international format.
// Handles Brazilian numbers entered without a country code by prefixing +55.
func NormalizePhoneNumber(phoneNumber string) string {
	for _, r := range []string{"+", " ", "-", "(", ")"} {
		phoneNumber = strings.ReplaceAll(phoneNumber, r, "")
	}

	// Brazilian format: DDD + 8-9 digit subscriber, e.g. 11999999999
	if (len(phoneNumber) == 10 || len(phoneNumber) == 11) && !strings.HasPrefix(phoneNumber, "55") {
		phoneNumber = "55" + phoneNumber
	}

	return phoneNumber
}
