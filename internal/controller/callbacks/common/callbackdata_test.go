package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/studio_booking_bot/internal/model"
)

func TestParseIDFromCallback(t *testing.T) {
	id, err := ParseIDFromCallback(AdminConfirm + "123")
	require.NoError(t, err)
	assert.Equal(t, int64(123), id)

	_, err = ParseIDFromCallback("admin_confirm:abc")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = ParseIDFromCallback("book_date:1:2024-06-10")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestParseArgs(t *testing.T) {
	args, err := ParseArgs("book_time:3:2024-06-10:1030", BookTime, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "2024-06-10", "1030"}, args)

	_, err = ParseArgs("book_time:3:2024-06-10", BookTime, 3)
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = ParseArgs("book_date:3", BookTime, 1)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestTimeEncoding(t *testing.T) {
	tod := model.NewTimeOfDay(9, 30)
	assert.Equal(t, "0930", EncodeTime(tod))

	back, err := DecodeTime("0930")
	require.NoError(t, err)
	assert.Equal(t, tod, back)

	for _, bad := range []string{"930", "2500", "ab30", ""} {
		_, err := DecodeTime(bad)
		assert.ErrorIs(t, err, ErrInvalidFormat, bad)
	}
}

func TestDateEncoding(t *testing.T) {
	loc := time.FixedZone("MSK", 3*3600)
	date := time.Date(2024, 6, 10, 0, 0, 0, 0, loc)

	encoded := EncodeDate(date)
	assert.Equal(t, "2024-06-10", encoded)

	back, err := DecodeDate(encoded, loc)
	require.NoError(t, err)
	assert.True(t, date.Equal(back))

	_, err = DecodeDate("10.06.2024", loc)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestCallbackDataFitsTelegramLimit(t *testing.T) {
	longest := BookTime + "9223372036854775807:2024-06-10:1030"
	assert.LessOrEqual(t, len(longest), 64)
}

func TestErrorMessage(t *testing.T) {
	assert.Contains(t, ErrorMessage(model.ErrConflict), "занято")
	assert.Contains(t, ErrorMessage(ErrNotAdmin), "запрещен")
	assert.Contains(t, ErrorMessage(assert.AnError), "Попробуйте позже")
}
