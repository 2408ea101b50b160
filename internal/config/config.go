package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	TelegramToken string `envconfig:"TELEGRAM_TOKEN" required:"true"`
	DBDSN         string `envconfig:"DB_DSN" required:"true"`
	Environment   string `envconfig:"ENV" default:"development"`
	Timezone      string `envconfig:"TIMEZONE" default:"Europe/Moscow"`

	// Адрес студии для подтверждений и напоминаний
	StudioAddress string `envconfig:"STUDIO_ADDRESS"`

	// Администраторы, которые добавляются при старте
	AdminIDs []int64 `envconfig:"ADMIN_IDS"`

	ScheduleFile       string        `envconfig:"SCHEDULE_FILE" default:"schedule.toml"`
	GridHorizonDays    int           `envconfig:"GRID_HORIZON_DAYS" default:"30"`
	BookingHorizonDays int           `envconfig:"BOOKING_HORIZON_DAYS" default:"14"`
	BookingBuffer      time.Duration `envconfig:"BOOKING_BUFFER" default:"30m"`
	ReminderInterval   time.Duration `envconfig:"REMINDER_INTERVAL" default:"2h"`

	// RabbitMQ для событий журнала записей (пусто = выключено)
	AMQPURL      string `envconfig:"AMQP_URL"`
	AMQPExchange string `envconfig:"AMQP_EXCHANGE" default:"booking.events"`

	// Адрес для /metrics (пусто = выключено)
	MetricsAddr string `envconfig:"METRICS_ADDR"`

	Location *time.Location `ignored:"true"`
	Schedule *Schedule      `ignored:"true"`
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	schedule, err := LoadSchedule(cfg.ScheduleFile)
	if err != nil {
		return nil, fmt.Errorf("load schedule: %w", err)
	}
	cfg.Schedule = schedule

	log.Printf("Config loaded\n")

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.GridHorizonDays <= 0 {
		return fmt.Errorf("GRID_HORIZON_DAYS must be positive, got %d", c.GridHorizonDays)
	}
	if c.BookingHorizonDays <= 0 {
		return fmt.Errorf("BOOKING_HORIZON_DAYS must be positive, got %d", c.BookingHorizonDays)
	}
	if c.BookingBuffer < 0 {
		return fmt.Errorf("BOOKING_BUFFER must not be negative")
	}
	if c.ReminderInterval <= 0 {
		return fmt.Errorf("REMINDER_INTERVAL must be positive")
	}
	return nil
}
