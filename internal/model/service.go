package model

// Service услуга студии
type Service struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Price           int64  `json:"price"`            // в копейках
	DurationMinutes int    `json:"duration_minutes"` // > 0
	Description     string `json:"description"`
}
