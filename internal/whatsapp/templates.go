package whatsapp

import (
	"errors"
	"strings"
)

// ErrUnknownTemplate is returned when the template key is not in the fixed
// set.
var ErrUnknownTemplate = errors.New("unknown message template")

// Template keys for the fixed wedding message set.
const (
	TemplateInvite       = "invite"
	TemplateReminder     = "reminder"
	TemplateThankYou     = "thank-you"
	TemplateVenueUpdate  = "venue-update"
	TemplateGiftRegistry = "gift-registry"
)

var templates = map[string]string{
	TemplateInvite: `🤍 Você está convidado(a) para o nosso casamento!

📅 Data: {date}
⏰ Horário: {time}
📍 Local: {venue}

Confirme sua presença através do link: {rsvp_link}

Aguardamos você! 💕`,

	TemplateReminder: `🤍 Olá! Este é um lembrete gentil sobre nosso casamento.

📅 Data: {date}
⏰ Horário: {time}
📍 Local: {venue}

Por favor, confirme sua presença através do link: {rsvp_link}

Aguardamos você! 💕`,

	TemplateThankYou: `🤍 Muito obrigado(a) por confirmar sua presença em nosso casamento!

📅 Data: {date}
⏰ Horário: {time}
📍 Local: {venue}

Estamos ansiosos para celebrar este momento especial com você! 💕`,

	TemplateVenueUpdate: `🤍 Informações importantes sobre nosso casamento:

📅 Data: {date}
⏰ Horário: {time}
📍 Local: {venue}
🗺️ Endereço: {address}
{map_link}

Não esqueça de confirmar sua presença! 💕`,

	TemplateGiftRegistry: `🤍 Nosso casamento está chegando!

🎁 Criamos uma lista de presentes para facilitar. Confira em: {gift_link}

📅 Data: {date}
⏰ Horário: {time}

Sua presença já é nosso maior presente! 💕`,
}

// RenderMessage looks up the named template and substitutes the supplied
// variables for their {placeholder} markers. An unknown key is an error, not
// an empty message.
func RenderMessage(key string, vars map[string]string) (string, error) {
	tpl, ok := templates[key]
	if !ok {
		return "", ErrUnknownTemplate
	}

	msg := tpl
	for name, value := range vars {
		msg = strings.ReplaceAll(msg, "{"+name+"}", value)
	}
	return msg, nil
}
