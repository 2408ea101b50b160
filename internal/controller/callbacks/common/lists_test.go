package common

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Freeeeeet/studio_booking_bot/internal/model"
)

func TestBookingList(t *testing.T) {
	card := func(d *model.BookingDetails) string { return d.ServiceName }

	assert.Equal(t, "пусто", BookingList("Записи", "пусто", nil, card))

	items := []*model.BookingDetails{{ServiceName: "Педикюр"}, {ServiceName: "Маникюр"}}
	assert.Equal(t, "Записи\n\nПедикюр\n\nМаникюр", BookingList("Записи", "пусто", items, card))
}

func TestBookingListTruncates(t *testing.T) {
	long := strings.Repeat("я", 1000)
	card := func(*model.BookingDetails) string { return long }

	items := make([]*model.BookingDetails, 10)
	for i := range items {
		items[i] = &model.BookingDetails{}
	}

	text := BookingList("Записи", "", items, card)
	assert.LessOrEqual(t, len([]rune(text)), maxMessageLen+20)
	assert.True(t, strings.HasSuffix(text, "...и ещё 7"))
}
