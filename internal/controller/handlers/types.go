package handlers

import (
	"github.com/Freeeeeet/studio_booking_bot/internal/controller/callbacks/callbacktypes"
	"go.uber.org/zap"
)

// Handlers обрабатывает команды и текстовые сообщения.
// Зависимости общие с callback handlers.
type Handlers struct {
	deps   *callbacktypes.Handler
	logger *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(deps *callbacktypes.Handler) *Handlers {
	return &Handlers{
		deps:   deps,
		logger: deps.Logger,
	}
}
