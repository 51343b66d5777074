package whatsapp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMessageSubstitutesVariables(t *testing.T) {
	msg, err := RenderMessage(TemplateReminder, map[string]string{
		"date":      "15 de Agosto de 2025",
		"time":      "16:00",
		"venue":     "Igreja São José",
		"rsvp_link": "https://example.com/rsvp",
	})
	require.NoError(t, err)
	assert.Contains(t, msg, "15 de Agosto de 2025")
	assert.Contains(t, msg, "16:00")
	assert.Contains(t, msg, "Igreja São José")
	assert.Contains(t, msg, "https://example.com/rsvp")
	assert.NotContains(t, msg, "{date}")
}

func TestRenderMessageAllTemplateKeys(t *testing.T) {
	for _, key := range []string{
		TemplateInvite, TemplateReminder, TemplateThankYou, TemplateVenueUpdate, TemplateGiftRegistry,
	} {
		msg, err := RenderMessage(key, nil)
		require.NoError(t, err, "template %q", key)
		assert.NotEmpty(t, msg)
	}
}

func TestRenderMessageUnknownKey(t *testing.T) {
	_, err := RenderMessage("farewell", nil)
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}
