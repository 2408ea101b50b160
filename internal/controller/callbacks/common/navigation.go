package common

import (
	"context"

	"github.com/Freeeeeet/studio_booking_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/studio_booking_bot/internal/controller/callbacks/common/keyboard"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// MainMenuText текст главного меню
const MainMenuText = "Привет, красотуля! 💖\n" +
	"Я бот-ассистент. Я здесь, чтобы твои ручки стали безупречными, " +
	"а запись - быстрой и простой!"

// MainMenuKeyboard главное меню, для администраторов с кнопкой панели
func MainMenuKeyboard(isAdmin bool) *models.InlineKeyboardMarkup {
	kb := keyboard.NewBuilder().
		Row(keyboard.Button("💅 Записаться", BookStart)).
		Row(
			keyboard.Button("📋 Мои записи", MyBookings),
			keyboard.Button("💰 Услуги и цены", ServicesList),
		)
	if isAdmin {
		kb.Row(keyboard.Button("👑 Панель администратора", AdminPanel))
	}
	return kb.Build()
}

// HandleBackToMain возвращает пользователя к главному меню
func HandleBackToMain(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := NewHandlerContext(ctx, b, callback, h)
	hc.ClearState()

	isAdmin, err := h.UserService.IsAdmin(ctx, hc.TelegramID)
	if err != nil {
		hc.Fail(err, "back_to_main")
		return
	}

	hc.Show(MainMenuText, MainMenuKeyboard(isAdmin))
	hc.Answer("")
}
