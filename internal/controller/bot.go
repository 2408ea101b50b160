package controller

import (
	"context"
	"time"

	"github.com/Freeeeeet/studio_booking_bot/internal/controller/callbacks"
	"github.com/Freeeeeet/studio_booking_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/studio_booking_bot/internal/controller/handlers"
	"github.com/Freeeeeet/studio_booking_bot/internal/controller/state"
	"github.com/Freeeeeet/studio_booking_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Брошенные диалоги удаляются через dialogTTL
const (
	dialogTTL           = 30 * time.Minute
	dialogSweepInterval = 5 * time.Minute
)

// Services сервисы, с которыми работает чат
type Services struct {
	Users        *service.UserService
	Bookings     *service.BookingService
	Catalog      *service.CatalogService
	Availability *service.AvailabilityService
	Grid         *service.GridService
	Notification *service.NotificationService
}

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	stateManager    *state.Manager
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	services Services,
	loc *time.Location,
	bookingHorizonDays int,
	logger *zap.Logger,
) *BotController {
	stateManager := state.NewManager()

	deps := &callbacktypes.Handler{
		UserService:         services.Users,
		BookingService:      services.Bookings,
		CatalogService:      services.Catalog,
		AvailabilityService: services.Availability,
		GridService:         services.Grid,
		NotificationService: services.Notification,
		StateManager:        state.NewAdapter(stateManager),
		Logger:              logger,
		Location:            loc,
		BookingHorizonDays:  bookingHorizonDays,
	}

	return &BotController{
		bot:             botInstance,
		handlers:        handlers.NewHandlers(deps),
		callbackHandler: callbacks.NewHandler(deps),
		stateManager:    stateManager,
		logger:          logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	touch := c.handlers.TouchUser

	commands := map[string]bot.HandlerFunc{
		"/start":      c.handlers.HandleStart,
		"/help":       c.handlers.HandleHelp,
		"/services":   c.handlers.HandleServices,
		"/book":       c.handlers.HandleBook,
		"/mybookings": c.handlers.HandleMyBookings,
		"/cancel":     c.handlers.HandleCancel,
		"/admin":      c.handlers.HandleAdmin,
	}
	for command, handler := range commands {
		c.bot.RegisterHandler(bot.HandlerTypeMessageText, command, bot.MatchTypeExact, touch(handler))
	}

	// Команды администратора с аргументами
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/block", bot.MatchTypePrefix, touch(c.handlers.HandleBlock))
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/unblock", bot.MatchTypePrefix, touch(c.handlers.HandleUnblock))
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/addadmin", bot.MatchTypePrefix, touch(c.handlers.HandleAddAdmin))

	// Контакт из reply-клавиатуры
	c.bot.RegisterHandlerMatchFunc(isContactMessage, touch(c.handlers.HandleContact))

	// Обработчик текстовых сообщений (для диалогов с состояниями)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, touch(c.handlers.HandleTextMessage))

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, touch(c.callbackHandler.HandleCallbackQuery))

	return c.setCommands(ctx)
}

func isContactMessage(update *models.Update) bool {
	return update.Message != nil && update.Message.Contact != nil
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🏠 Главное меню"},
		{Command: "book", Description: "💅 Записаться"},
		{Command: "services", Description: "💰 Услуги и цены"},
		{Command: "mybookings", Description: "📋 Мои записи"},
		{Command: "cancel", Description: "❌ Прервать действие"},
		{Command: "help", Description: "❓ Справка по командам"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота и блокируется до отмены ctx
func (c *BotController) Start(ctx context.Context) {
	c.logger.Info("Starting bot...")

	go c.sweepDialogs(ctx)
	c.bot.Start(ctx)

	c.logger.Info("Bot stopped")
}

// sweepDialogs периодически удаляет брошенные диалоги
func (c *BotController) sweepDialogs(ctx context.Context) {
	ticker := time.NewTicker(dialogSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if removed := c.stateManager.Expire(dialogTTL); removed > 0 {
				c.logger.Debug("Expired dialogs removed", zap.Int("count", removed))
			}
		case <-ctx.Done():
			return
		}
	}
}
