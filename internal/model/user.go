package model

import "time"

type User struct {
	ID             int64     `json:"id"` // Telegram ID
	Username       string    `json:"username"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Phone          *string   `json:"phone"`
	RegisteredAt   time.Time `json:"registered_at"`
	LastActivityAt time.Time `json:"last_activity_at"`
}

// DisplayName возвращает имя для показа
func (u *User) DisplayName() string {
	if u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	return u.FirstName
}

// Admin пользователь с правами администратора
type Admin struct {
	UserID  int64     `json:"user_id"`
	AddedAt time.Time `json:"added_at"`
}
