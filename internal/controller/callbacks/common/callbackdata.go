package common

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Freeeeeet/studio_booking_bot/internal/model"
)

// ========================
// Callback Data Patterns
// ========================
// Форматы callback data. Параметры разделяются двоеточием,
// время передаётся как HHMM, чтобы не конфликтовать с разделителем.

// Общие
const (
	BackToMain = "back_to_main"
	Noop       = "noop"
)

// Клиент: мастер записи и свои записи
const (
	BookStart    = "book_start"
	BookService  = "book_service:" // book_service:service_id
	BookDate     = "book_date:"    // book_date:service_id:2006-01-02
	BookTime     = "book_time:"    // book_time:service_id:2006-01-02:1030
	BookNotes    = "book_notes"
	BookConfirm  = "book_confirm"
	BookAbort    = "book_abort"
	MyBookings   = "my_bookings"
	CancelOwn    = "cancel_own:"     // cancel_own:booking_id
	ConfirmOwn   = "confirm_cancel:" // confirm_cancel:booking_id
	ServicesList = "services_list"
)

// Администратор
const (
	AdminPanel      = "admin_panel"
	AdminPending    = "admin_pending"
	AdminToday      = "admin_today"
	AdminTomorrow   = "admin_tomorrow"
	AdminWeek       = "admin_week:" // admin_week:offset
	AdminAll        = "admin_all:"  // admin_all:page
	AdminRecent     = "admin_recent"
	AdminStats      = "admin_stats"
	AdminDaily      = "admin_daily:" // admin_daily:2006-01-02
	AdminSearch     = "admin_search"
	AdminGrid       = "admin_grid:"  // admin_grid:2006-01-02
	GridToggle      = "grid_toggle:" // grid_toggle:2006-01-02:1030
	AdminConfirm    = "admin_confirm:"
	AdminReject     = "admin_reject:"
	AdminBroadcast  = "admin_broadcast"
	BroadcastGroup  = "broadcast_group:" // broadcast_group:all
	BroadcastSend   = "broadcast_send"
	BroadcastCancel = "broadcast_cancel"
)

// ParseIDFromCallback извлекает ID из callback data
// Например: "admin_confirm:123" -> 123
func ParseIDFromCallback(data string) (int64, error) {
	parts := strings.Split(data, ":")
	if len(parts) != 2 {
		return 0, ErrInvalidFormat
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, ErrInvalidFormat
	}
	return id, nil
}

// ParseArgs отрезает префикс и возвращает ровно n параметров
func ParseArgs(data, prefix string, n int) ([]string, error) {
	if !strings.HasPrefix(data, prefix) {
		return nil, ErrInvalidFormat
	}
	args := strings.Split(strings.TrimPrefix(data, prefix), ":")
	if len(args) != n {
		return nil, ErrInvalidFormat
	}
	return args, nil
}

// EncodeTime кодирует время дня для callback data: 10:30 -> "1030"
func EncodeTime(t model.TimeOfDay) string {
	return fmt.Sprintf("%02d%02d", t.Hour(), t.Minute())
}

// DecodeTime разбирает "1030" в 10:30
func DecodeTime(s string) (model.TimeOfDay, error) {
	if len(s) != 4 {
		return 0, ErrInvalidFormat
	}
	t, err := model.ParseTimeOfDay(s[:2] + ":" + s[2:])
	if err != nil {
		return 0, ErrInvalidFormat
	}
	return t, nil
}

// EncodeDate кодирует дату для callback data
func EncodeDate(date time.Time) string {
	return date.Format(model.DateLayout)
}

// DecodeDate разбирает дату из callback data в часовом поясе студии
func DecodeDate(s string, loc *time.Location) (time.Time, error) {
	date, err := model.ParseDate(s, loc)
	if err != nil {
		return time.Time{}, ErrInvalidFormat
	}
	return date, nil
}
