package model

import "time"

// Statistics общая статистика по записям
type Statistics struct {
	Confirmed      int   `json:"confirmed"`
	Pending        int   `json:"pending"`
	Cancelled      int   `json:"cancelled"`
	TodayConfirmed int   `json:"today_confirmed"`
	Revenue        int64 `json:"revenue"` // сумма цен подтверждённых записей, в копейках
	UniqueClients  int   `json:"unique_clients"`
	TotalUsers     int   `json:"total_users"`
}

// DailyStatistics статистика за один день
type DailyStatistics struct {
	Date         time.Time             `json:"date"`
	TotalCount   int                   `json:"total_count"`
	StatusCounts map[BookingStatus]int `json:"status_counts"`
	DailyRevenue int64                 `json:"daily_revenue"`
}

// ClientGroup группа получателей рассылки
type ClientGroup string

const (
	ClientGroupAll      ClientGroup = "all"
	ClientGroupToday    ClientGroup = "today"
	ClientGroupTomorrow ClientGroup = "tomorrow"
)
