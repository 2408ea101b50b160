package handlers

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Freeeeeet/studio_booking_bot/internal/controller/callbacks/admin"
	"github.com/Freeeeeet/studio_booking_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/studio_booking_bot/internal/controller/callbacks/client"
	"github.com/Freeeeeet/studio_booking_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/studio_booking_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/studio_booking_bot/internal/controller/state"
	"github.com/Freeeeeet/studio_booking_bot/internal/formatting"
	"github.com/Freeeeeet/studio_booking_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// handleBookingNotes сохраняет комментарий и возвращает к подтверждению записи
func (h *Handlers) handleBookingNotes(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	sm := h.deps.StateManager

	notes := strings.TrimSpace(update.Message.Text)
	if notes == "" {
		h.sendMessage(ctx, b, chatID, "❌ Комментарий пустой. Напишите текст или /cancel.", nil)
		return
	}
	if utf8.RuneCountInString(notes) > NotesMaxLength {
		h.sendMessage(ctx, b, chatID,
			fmt.Sprintf("❌ Слишком длинный комментарий (максимум %d символов).", NotesMaxLength), nil)
		return
	}

	serviceID, okService := sm.GetInt64(telegramID, state.KeyServiceID)
	start, okStart := sm.GetTime(telegramID, state.KeyStartAt)
	if !okService || !okStart {
		sm.ClearState(telegramID)
		h.sendMessage(ctx, b, chatID, common.ErrorMessage(common.ErrDialogExpired), nil)
		return
	}

	svc, err := h.deps.CatalogService.GetByID(ctx, serviceID)
	if err != nil || svc == nil {
		h.logger.Error("Failed to load service for notes", zap.Int64("service_id", serviceID), zap.Error(err))
		sm.ClearState(telegramID)
		h.sendMessage(ctx, b, chatID, common.ErrorMessage(common.ErrDialogExpired), nil)
		return
	}

	sm.SetData(telegramID, state.KeyNotes, notes)
	sm.SetState(telegramID, callbacktypes.UserState(state.StateBookingConfirm))

	text, kb := client.BuildConfirmScreen(svc, start, &notes)
	h.sendMessage(ctx, b, chatID, text, kb)
}

// handleAdminSearch ищет записи по строке администратора
func (h *Handlers) handleAdminSearch(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	if !h.requireAdmin(ctx, b, update) {
		h.deps.StateManager.ClearState(telegramID)
		return
	}

	term := strings.TrimPrefix(strings.TrimSpace(update.Message.Text), "@")
	length := utf8.RuneCountInString(term)
	if length < SearchMinLength || length > SearchMaxLength {
		h.sendMessage(ctx, b, chatID,
			fmt.Sprintf("❌ Строка поиска от %d до %d символов. Попробуйте ещё раз или /cancel.", SearchMinLength, SearchMaxLength), nil)
		return
	}

	bookings, err := h.deps.BookingService.Search(ctx, term)
	if err != nil {
		h.logger.Error("Failed to search bookings", zap.String("term", term), zap.Error(err))
		h.sendMessage(ctx, b, chatID, common.ErrorMessage(err), nil)
		return
	}

	h.deps.StateManager.ClearState(telegramID)

	text := common.BookingList(
		fmt.Sprintf("🔍 Найдено по «%s»: %d", term, len(bookings)),
		fmt.Sprintf("🔍 По «%s» ничего не найдено.", term),
		bookings,
		formatting.AdminBookingCard,
	)

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("🔍 Искать ещё", common.AdminSearch)).
		AddBackButton(common.AdminPanel).
		Build()

	h.sendMessage(ctx, b, chatID, text, kb)
}

// handleBroadcastText запоминает текст рассылки и показывает предпросмотр
func (h *Handlers) handleBroadcastText(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	sm := h.deps.StateManager

	if !h.requireAdmin(ctx, b, update) {
		sm.ClearState(telegramID)
		return
	}

	group, ok := sm.GetString(telegramID, state.KeyBroadcastGroup)
	if !ok {
		sm.ClearState(telegramID)
		h.sendMessage(ctx, b, chatID, common.ErrorMessage(common.ErrDialogExpired), nil)
		return
	}

	text := strings.TrimSpace(update.Message.Text)
	if text == "" || utf8.RuneCountInString(text) > BroadcastMaxLength {
		h.sendMessage(ctx, b, chatID,
			fmt.Sprintf("❌ Текст рассылки от 1 до %d символов. Попробуйте ещё раз или /cancel.", BroadcastMaxLength), nil)
		return
	}

	sm.SetData(telegramID, state.KeyBroadcastText, text)
	sm.SetState(telegramID, callbacktypes.UserState(state.StateBroadcastReady))

	preview, kb := admin.BroadcastPreview(model.ClientGroup(group), text)
	h.sendMessage(ctx, b, chatID, preview, kb)
}
