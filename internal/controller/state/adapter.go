package state

import (
	"time"

	"github.com/Freeeeeet/studio_booking_bot/internal/controller/callbacks/callbacktypes"
)

// Adapter адаптирует Manager к интерфейсу callbacktypes.StateManager
type Adapter struct {
	sm *Manager
}

var _ callbacktypes.StateManager = (*Adapter)(nil)

func NewAdapter(sm *Manager) *Adapter {
	return &Adapter{sm: sm}
}

func (a *Adapter) GetState(telegramID int64) callbacktypes.UserState {
	return callbacktypes.UserState(a.sm.GetState(telegramID))
}

func (a *Adapter) SetState(telegramID int64, state callbacktypes.UserState) {
	a.sm.SetState(telegramID, UserState(state))
}

func (a *Adapter) GetData(telegramID int64, key string) (interface{}, bool) {
	return a.sm.GetData(telegramID, key)
}

func (a *Adapter) SetData(telegramID int64, key string, value interface{}) {
	a.sm.SetData(telegramID, key, value)
}

func (a *Adapter) ClearState(telegramID int64) {
	a.sm.ClearState(telegramID)
}

func (a *Adapter) GetAllData(telegramID int64) map[string]interface{} {
	return a.sm.GetAllData(telegramID)
}

// GetInt64 достаёт число из данных диалога
func (a *Adapter) GetInt64(telegramID int64, key string) (int64, bool) {
	v, ok := a.sm.GetData(telegramID, key)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

// GetString достаёт строку из данных диалога
func (a *Adapter) GetString(telegramID int64, key string) (string, bool) {
	v, ok := a.sm.GetData(telegramID, key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// GetTime достаёт момент времени из данных диалога
func (a *Adapter) GetTime(telegramID int64, key string) (time.Time, bool) {
	v, ok := a.sm.GetData(telegramID, key)
	if !ok {
		return time.Time{}, false
	}
	t, ok := v.(time.Time)
	return t, ok
}
