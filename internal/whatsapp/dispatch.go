package whatsapp

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"wedding-rsvp/internal/models"
)

// BulkResult is the per-recipient accounting of a bulk send.
type BulkResult struct {
	Attempted int      `json:"attempted"`
	Succeeded int      `json:"succeeded"`
	Failed    int      `json:"failed"`
	Skipped   []string `json:"skipped,omitempty"`
	Failures  []string `json:"failures,omitempty"`
}

// SendBulk fans the message out to every guest with a phone number, one
// sequential send per recipient. Guests without a phone are reported as
// skipped and never attempted; one recipient's failure does not block any
// other send. There is no retry, backoff or idempotency: a failed send is
// just counted.
func SendBulk(ctx context.Context, sender Sender, guests []models.Guest, message string, log zerolog.Logger) BulkResult {
	var result BulkResult

	for _, guest := range guests {
		if guest.Phone == "" {
			result.Skipped = append(result.Skipped, guest.Name)
			continue
		}

		result.Attempted++
		sid, err := sender.Send(ctx, guest.Phone, message)
		if err != nil {
			result.Failed++
			result.Failures = append(result.Failures, fmt.Sprintf("%s: %v", guest.Name, err))
			log.Warn().Err(err).Str("guest", guest.Name).Msg("Send failed")
			continue
		}

		result.Succeeded++
		log.Info().Str("guest", guest.Name).Str("sid", sid).Msg("Message sent")
	}

	return result
}
