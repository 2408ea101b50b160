package common

import (
	"fmt"
	"strings"

	"github.com/Freeeeeet/studio_booking_bot/internal/model"
)

// maxMessageLen запас до лимита Telegram в 4096 символов
const maxMessageLen = 3800

// BookingList собирает список карточек в одно сообщение.
// Не влезающие карточки заменяются строкой "...и ещё N".
func BookingList(title, empty string, items []*model.BookingDetails, card func(*model.BookingDetails) string) string {
	if len(items) == 0 {
		return empty
	}

	var sb strings.Builder
	sb.WriteString(title)
	sb.WriteString("\n\n")

	for i, d := range items {
		entry := card(d) + "\n\n"
		if len([]rune(sb.String()))+len([]rune(entry)) > maxMessageLen {
			fmt.Fprintf(&sb, "...и ещё %d", len(items)-i)
			break
		}
		sb.WriteString(entry)
	}

	return strings.TrimRight(sb.String(), "\n")
}
