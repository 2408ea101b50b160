package state

import "time"

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

const (
	StateNone UserState = "" // Нет активного состояния

	// Мастер записи
	StateBookingConfirm UserState = "booking_confirm" // выбраны услуга и время, ждём подтверждения
	StateBookingNotes   UserState = "booking_notes"   // ждём комментарий к записи

	// Администратор
	StateAdminSearch    UserState = "admin_search"    // ждём строку поиска
	StateBroadcastText  UserState = "broadcast_text"  // ждём текст рассылки
	StateBroadcastReady UserState = "broadcast_ready" // текст получен, ждём подтверждения
)

// Ключи временных данных диалога
const (
	KeyServiceID      = "service_id"
	KeyStartAt        = "start_at"
	KeyNotes          = "notes"
	KeyBroadcastGroup = "broadcast_group"
	KeyBroadcastText  = "broadcast_text"
)

// UserData хранит временные данные пользователя во время диалога
type UserData struct {
	State     UserState
	Data      map[string]interface{} // Временные данные для текущего диалога
	UpdatedAt time.Time
}
