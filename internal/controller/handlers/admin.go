package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Freeeeeet/studio_booking_bot/internal/controller/callbacks/admin"
	"github.com/Freeeeeet/studio_booking_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleAdmin обрабатывает команду /admin
func (h *Handlers) HandleAdmin(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || !h.requireAdmin(ctx, b, update) {
		return
	}

	h.deps.StateManager.ClearState(update.Message.From.ID)
	h.sendMessage(ctx, b, update.Message.Chat.ID, admin.PanelText,
		admin.PanelKeyboard(model.DateOf(time.Now(), h.deps.Location)))
}

// HandleBlock обрабатывает /block ГГГГ-ММ-ДД ЧЧ:ММ
func (h *Handlers) HandleBlock(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.setSlotAvailable(ctx, b, update, "/block", false)
}

// HandleUnblock обрабатывает /unblock ГГГГ-ММ-ДД ЧЧ:ММ
func (h *Handlers) HandleUnblock(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.setSlotAvailable(ctx, b, update, "/unblock", true)
}

func (h *Handlers) setSlotAvailable(ctx context.Context, b *bot.Bot, update *models.Update, command string, available bool) {
	if update.Message == nil || !h.requireAdmin(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	date, tod, err := ParseSlotArgs(strings.TrimSpace(strings.TrimPrefix(update.Message.Text, command)), h.deps.Location)
	if err != nil {
		h.sendMessage(ctx, b, chatID,
			fmt.Sprintf("❌ Формат: %s ГГГГ-ММ-ДД ЧЧ:ММ\nНапример: %s 2024-06-10 14:00", command, command), nil)
		return
	}

	err = h.deps.GridService.SetAvailable(ctx, date, tod, available)
	switch {
	case errors.Is(err, model.ErrNotFound):
		h.sendMessage(ctx, b, chatID, "❌ Такого слота нет в сетке (выходной или вне рабочих часов).", nil)
		return
	case errors.Is(err, model.ErrConflict):
		h.sendMessage(ctx, b, chatID, "❌ Слот занят записью. Сначала отклоните её.", nil)
		return
	case errors.Is(err, model.ErrValidation):
		h.sendMessage(ctx, b, chatID, fmt.Sprintf("❌ Время должно быть кратно %d минутам.", model.SlotMinutes), nil)
		return
	case err != nil:
		h.logger.Error("Failed to set slot availability", zap.Error(err))
		h.sendMessage(ctx, b, chatID, "❌ Произошла ошибка. Попробуйте позже.", nil)
		return
	}

	h.logger.Info("Slot availability changed by command",
		zap.Int64("admin_id", update.Message.From.ID),
		zap.String("date", date.Format(model.DateLayout)),
		zap.String("time", tod.String()),
		zap.Bool("available", available))

	if available {
		h.sendMessage(ctx, b, chatID, fmt.Sprintf("🟢 %s %s открыто для записи.", date.Format("02.01.2006"), tod), nil)
	} else {
		h.sendMessage(ctx, b, chatID, fmt.Sprintf("⛔️ %s %s закрыто для записи.", date.Format("02.01.2006"), tod), nil)
	}
}

// HandleAddAdmin обрабатывает /addadmin ID
func (h *Handlers) HandleAddAdmin(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || !h.requireAdmin(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	raw := strings.TrimSpace(strings.TrimPrefix(update.Message.Text, "/addadmin"))
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || userID <= 0 {
		h.sendMessage(ctx, b, chatID, "❌ Формат: /addadmin TELEGRAM_ID", nil)
		return
	}

	if err := h.deps.UserService.AddAdmin(ctx, userID); err != nil {
		h.logger.Error("Failed to add admin", zap.Int64("user_id", userID), zap.Error(err))
		h.sendMessage(ctx, b, chatID, "❌ Произошла ошибка. Попробуйте позже.", nil)
		return
	}

	h.logger.Info("Admin added by command",
		zap.Int64("admin_id", update.Message.From.ID),
		zap.Int64("user_id", userID))
	h.sendMessage(ctx, b, chatID, fmt.Sprintf("✅ Пользователь %d теперь администратор.", userID), nil)
}

// ParseSlotArgs разбирает "ГГГГ-ММ-ДД ЧЧ:ММ"
func ParseSlotArgs(args string, loc *time.Location) (time.Time, model.TimeOfDay, error) {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		return time.Time{}, 0, fmt.Errorf("%w: expected date and time", model.ErrValidation)
	}

	date, err := model.ParseDate(fields[0], loc)
	if err != nil {
		return time.Time{}, 0, err
	}

	tod, err := model.ParseTimeOfDay(fields[1])
	if err != nil {
		return time.Time{}, 0, err
	}

	return date, tod, nil
}
