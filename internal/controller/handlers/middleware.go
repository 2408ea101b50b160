package handlers

import (
	"context"

	"github.com/Freeeeeet/studio_booking_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// TouchUser регистрирует пользователя и обновляет время активности на каждом апдейте.
// Ошибка не прерывает обработку.
func (h *Handlers) TouchUser(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		if from := senderOf(update); from != nil && !from.IsBot {
			err := h.deps.UserService.Touch(ctx, &model.User{
				ID:        from.ID,
				Username:  from.Username,
				FirstName: from.FirstName,
				LastName:  from.LastName,
			})
			if err != nil {
				h.logger.Error("Failed to touch user", zap.Int64("telegram_id", from.ID), zap.Error(err))
			}
		}
		next(ctx, b, update)
	}
}

func senderOf(update *models.Update) *models.User {
	switch {
	case update.Message != nil:
		return update.Message.From
	case update.CallbackQuery != nil:
		return &update.CallbackQuery.From
	}
	return nil
}

// requireAdmin проверяет права и отвечает отказом если их нет
func (h *Handlers) requireAdmin(ctx context.Context, b *bot.Bot, update *models.Update) bool {
	telegramID := update.Message.From.ID

	ok, err := h.deps.UserService.IsAdmin(ctx, telegramID)
	if err != nil {
		h.logger.Error("Failed to check admin", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ Произошла ошибка. Попробуйте позже.", nil)
		return false
	}
	if !ok {
		h.logger.Warn("Admin command from non-admin",
			zap.Int64("telegram_id", telegramID),
			zap.String("text", update.Message.Text))
		h.sendMessage(ctx, b, update.Message.Chat.ID, "⛔️ Доступ запрещен", nil)
		return false
	}
	return true
}

// sendMessage отправляет сообщение и логирует если не удалось
func (h *Handlers) sendMessage(ctx context.Context, b *bot.Bot, chatID int64, text string, markup models.ReplyMarkup) {
	params := &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	}
	if markup != nil {
		params.ReplyMarkup = markup
	}

	if _, err := b.SendMessage(ctx, params); err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}
