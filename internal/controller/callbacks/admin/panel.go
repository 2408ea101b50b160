package admin

import (
	"context"
	"time"

	"github.com/Freeeeeet/studio_booking_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/studio_booking_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/studio_booking_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/studio_booking_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const PanelText = "👑 Панель администратора\n\nВыберите действие:"

// PanelKeyboard главное меню администратора
func PanelKeyboard(today time.Time) *models.InlineKeyboardMarkup {
	day := common.EncodeDate(today)

	return keyboard.NewBuilder().
		Row(keyboard.Button("⏳ Ожидают подтверждения", common.AdminPending)).
		Row(
			keyboard.Button("📅 Сегодня", common.AdminToday),
			keyboard.Button("📆 Завтра", common.AdminTomorrow),
			keyboard.Button("🗓 Неделя", common.AdminWeek+"0"),
		).
		Row(
			keyboard.Button("📚 Все записи", common.AdminAll+"0"),
			keyboard.Button("🕐 Последние", common.AdminRecent),
		).
		Row(
			keyboard.Button("📊 Статистика", common.AdminStats),
			keyboard.Button("📈 За день", common.AdminDaily+day),
		).
		Row(
			keyboard.Button("🔍 Поиск", common.AdminSearch),
			keyboard.Button("📣 Рассылка", common.AdminBroadcast),
		).
		Row(keyboard.Button("🧩 Сетка слотов", common.AdminGrid+day)).
		AddBackToMainButton().
		Build()
}

// HandleAdminPanel показывает панель администратора
func HandleAdminPanel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.ClearState()
		hc.Show(PanelText, PanelKeyboard(today(h)))
		hc.Answer("")
	})
}

func today(h *callbacktypes.Handler) time.Time {
	return model.DateOf(time.Now(), h.Location)
}

func backToPanel() *models.InlineKeyboardMarkup {
	return keyboard.NewBuilder().AddBackButton(common.AdminPanel).Build()
}
