package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ReminderSender рассылает напоминания о завтрашних записях
type ReminderSender interface {
	SendReminders(ctx context.Context) (sent, failed int, err error)
}

// GridGenerator достраивает сетку слотов вперёд
type GridGenerator interface {
	Generate(ctx context.Context, horizonDays int) (int64, error)
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	reminders        ReminderSender
	grid             GridGenerator
	reminderInterval time.Duration
	gridInterval     time.Duration
	horizonDays      int
	logger           *zap.Logger
	stopChan         chan struct{}
	stopOnce         sync.Once
	wg               sync.WaitGroup
}

// NewScheduler создаёт новый планировщик
func NewScheduler(
	reminders ReminderSender,
	grid GridGenerator,
	reminderInterval time.Duration,
	horizonDays int,
	logger *zap.Logger,
) *Scheduler {
	return &Scheduler{
		reminders:        reminders,
		grid:             grid,
		reminderInterval: reminderInterval,
		gridInterval:     24 * time.Hour,
		horizonDays:      horizonDays,
		logger:           logger,
		stopChan:         make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler",
		zap.Duration("reminder_interval", s.reminderInterval),
		zap.Int("horizon_days", s.horizonDays),
	)

	// Сетка при старте строится синхронно до запуска бота, здесь только продление
	s.wg.Add(2)
	go s.runTask(ctx, "grid generation", s.gridInterval, false, s.generateGrid)
	go s.runTask(ctx, "reminders", s.reminderInterval, true, s.sendReminders)
}

// Stop останавливает фоновые задачи и ждёт их завершения
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info("Stopping background scheduler")
		close(s.stopChan)
	})
	s.wg.Wait()
}

// runTask выполняет задачу по тикеру, при immediate ещё и сразу
func (s *Scheduler) runTask(ctx context.Context, name string, interval time.Duration, immediate bool, task func(context.Context)) {
	defer s.wg.Done()

	if immediate {
		task(ctx)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			task(ctx)
		case <-s.stopChan:
			s.logger.Info("Background task stopped", zap.String("task", name))
			return
		case <-ctx.Done():
			s.logger.Info("Background task cancelled", zap.String("task", name))
			return
		}
	}
}

// generateGrid держит сетку слотов заполненной на horizonDays вперёд
func (s *Scheduler) generateGrid(ctx context.Context) {
	inserted, err := s.grid.Generate(ctx, s.horizonDays)
	if err != nil {
		s.logger.Error("Failed to generate schedule grid", zap.Error(err))
		return
	}

	s.logger.Info("Schedule grid generation completed", zap.Int64("inserted", inserted))
}

func (s *Scheduler) sendReminders(ctx context.Context) {
	sent, failed, err := s.reminders.SendReminders(ctx)
	if err != nil {
		s.logger.Error("Failed to send reminders", zap.Error(err))
		return
	}

	if sent > 0 || failed > 0 {
		s.logger.Info("Reminders processed", zap.Int("sent", sent), zap.Int("failed", failed))
	}
}
