package common

import (
	"errors"

	"github.com/Freeeeeet/studio_booking_bot/internal/model"
)

// Общие ошибки для обработчиков
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrNotAdmin      = errors.New("user is not an admin")
	ErrNoMessage     = errors.New("no message in callback")
	ErrInvalidFormat = errors.New("invalid callback format")
	ErrDialogExpired = errors.New("dialog state expired")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return "❌ Пользователь не найден. Используйте /start"
	case errors.Is(err, ErrNotAdmin):
		return "⛔️ Доступ запрещен"
	case errors.Is(err, ErrNoMessage):
		return "❌ Ошибка обработки сообщения"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Неверный формат данных"
	case errors.Is(err, ErrDialogExpired):
		return "⌛️ Сессия устарела. Начните заново: /book"
	case errors.Is(err, model.ErrConflict):
		return "😔 Это время уже занято. Выберите другое."
	case errors.Is(err, model.ErrNotFound):
		return "❌ Не найдено"
	case errors.Is(err, model.ErrForbidden):
		return "⛔️ Это не ваша запись"
	case errors.Is(err, model.ErrValidation):
		return "❌ Действие недоступно для этой записи"
	default:
		return "❌ Произошла ошибка. Попробуйте позже."
	}
}
