package callbacktypes

import (
	"time"

	"github.com/Freeeeeet/studio_booking_bot/internal/service"
	"go.uber.org/zap"
)

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

// StateManager интерфейс для управления состоянием пользователей
type StateManager interface {
	ClearState(telegramID int64)
	GetState(telegramID int64) UserState
	SetState(telegramID int64, state UserState)
	SetData(telegramID int64, key string, value interface{})
	GetData(telegramID int64, key string) (interface{}, bool)
	GetAllData(telegramID int64) map[string]interface{}

	GetInt64(telegramID int64, key string) (int64, bool)
	GetString(telegramID int64, key string) (string, bool)
	GetTime(telegramID int64, key string) (time.Time, bool)
}

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	UserService         *service.UserService
	BookingService      *service.BookingService
	CatalogService      *service.CatalogService
	AvailabilityService *service.AvailabilityService
	GridService         *service.GridService
	NotificationService *service.NotificationService
	StateManager        StateManager
	Logger              *zap.Logger

	Location           *time.Location
	BookingHorizonDays int
}
