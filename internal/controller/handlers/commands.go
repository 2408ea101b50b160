package handlers

import (
	"context"
	"strings"

	"github.com/Freeeeeet/studio_booking_bot/internal/controller/callbacks/client"
	"github.com/Freeeeeet/studio_booking_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/studio_booking_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/studio_booking_bot/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	h.deps.StateManager.ClearState(telegramID)

	isAdmin, err := h.deps.UserService.IsAdmin(ctx, telegramID)
	if err != nil {
		h.logger.Error("Failed to check admin", zap.Int64("telegram_id", telegramID), zap.Error(err))
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, common.MainMenuText, common.MainMenuKeyboard(isAdmin))
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "📚 Справка по командам:\n\n" +
		"/start - Главное меню\n" +
		"/book - Записаться\n" +
		"/services - Услуги и цены\n" +
		"/mybookings - Мои записи\n" +
		"/cancel - Прервать текущее действие\n" +
		"/help - Показать эту справку"

	isAdmin, err := h.deps.UserService.IsAdmin(ctx, update.Message.From.ID)
	if err == nil && isAdmin {
		helpText += "\n\nДля администратора:\n" +
			"/admin - Панель администратора\n" +
			"/block ГГГГ-ММ-ДД ЧЧ:ММ - Закрыть слот\n" +
			"/unblock ГГГГ-ММ-ДД ЧЧ:ММ - Открыть слот\n" +
			"/addadmin ID - Добавить администратора"
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText, nil)
}

// HandleServices обрабатывает команду /services
func (h *Handlers) HandleServices(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	text, err := client.BuildPriceList(ctx, h.deps)
	if err != nil {
		h.logger.Error("Failed to list services", zap.Error(err))
		h.sendMessage(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err), nil)
		return
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, text,
		keyboard.NewBuilder().Row(keyboard.Button("💅 Записаться", common.BookStart)).Build())
}

// HandleBook обрабатывает команду /book - начало мастера записи
func (h *Handlers) HandleBook(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	h.deps.StateManager.ClearState(update.Message.From.ID)

	text, kb, err := client.BuildServicesScreen(ctx, h.deps)
	if err != nil {
		h.logger.Error("Failed to build services screen", zap.Error(err))
		h.sendMessage(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err), nil)
		return
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

// HandleMyBookings обрабатывает команду /mybookings
func (h *Handlers) HandleMyBookings(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	text, kb, err := client.BuildMyBookingsScreen(ctx, h.deps, update.Message.From.ID)
	if err != nil {
		h.logger.Error("Failed to list user bookings", zap.Int64("telegram_id", update.Message.From.ID), zap.Error(err))
		h.sendMessage(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err), nil)
		return
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

// HandleCancel обрабатывает команду /cancel - отмена текущего диалога
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	if h.deps.StateManager.GetState(telegramID) == "" {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ Нет активных операций для отмены.", nil)
		return
	}

	h.deps.StateManager.ClearState(telegramID)
	h.sendMessage(ctx, b, update.Message.Chat.ID,
		"✅ Операция отменена.\n\nИспользуйте /help для просмотра доступных команд.", nil)
}

// HandleTextMessage обрабатывает текстовые сообщения в зависимости от состояния пользователя
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	// Команды обрабатываются своими handlers
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	telegramID := update.Message.From.ID
	currentState := state.UserState(h.deps.StateManager.GetState(telegramID))

	switch currentState {
	case state.StateBookingNotes:
		h.handleBookingNotes(ctx, b, update)
	case state.StateAdminSearch:
		h.handleAdminSearch(ctx, b, update)
	case state.StateBroadcastText:
		h.handleBroadcastText(ctx, b, update)
	case state.StateNone:
		h.sendMessage(ctx, b, update.Message.Chat.ID, "Не понимаю 🙈\n\nИспользуйте /start для главного меню.", nil)
	default:
		h.logger.Debug("Text message ignored in state",
			zap.Int64("telegram_id", telegramID),
			zap.String("state", string(currentState)))
	}
}

// HandleContact сохраняет телефон, которым поделился пользователь
func (h *Handlers) HandleContact(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Contact == nil {
		return
	}

	telegramID := update.Message.From.ID
	contact := update.Message.Contact

	// Принимаем только собственный номер
	if contact.UserID != 0 && contact.UserID != telegramID {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ Пожалуйста, отправьте свой номер кнопкой ниже.", keyboard.ContactRequest())
		return
	}

	phone := strings.TrimSpace(contact.PhoneNumber)
	if len(phone) > PhoneMaxLength {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ Некорректный номер телефона.", keyboard.RemoveReply())
		return
	}

	if err := h.deps.UserService.SetPhone(ctx, telegramID, phone); err != nil {
		h.logger.Error("Failed to save phone", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendMessage(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err), keyboard.RemoveReply())
		return
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, "✅ Спасибо! Номер сохранён.", keyboard.RemoveReply())
}
