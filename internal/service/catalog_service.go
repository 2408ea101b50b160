package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Freeeeeet/studio_booking_bot/internal/model"
)

// DefaultServices услуги студии, которые добавляются при первом запуске.
// Цены в копейках.
var DefaultServices = []model.Service{
	{Name: "Дизайн ногтей", Price: 15000, DurationMinutes: 15, Description: "Создание уникального дизайна"},
	{Name: "Комбинированный маникюр", Price: 150000, DurationMinutes: 45, Description: "Комбинированная обработка кутикулы"},
	{Name: "Мужской маникюр", Price: 200000, DurationMinutes: 60, Description: "Уход за мужскими руками"},
	{Name: "Маникюр с покрытием гель-лаком", Price: 500000, DurationMinutes: 120, Description: "Маникюр с гель-лаком"},
	{Name: "Наращивание ногтей", Price: 750000, DurationMinutes: 180, Description: "Удлинение ногтевой пластины"},
	{Name: "Японский маникюр", Price: 250000, DurationMinutes: 60, Description: "Японская технология ухода"},
	{Name: "Педикюр с покрытием гель-лаком", Price: 500000, DurationMinutes: 120, Description: "Уход за стопами"},
	{Name: "Снятие гель-лака", Price: 100000, DurationMinutes: 30, Description: "Аккуратное снятие покрытия"},
	{Name: "Обработка сложного участка", Price: 150000, DurationMinutes: 20, Description: "Решение проблемных зон"},
	{Name: "Маникюр с покрытием гелем", Price: 400000, DurationMinutes: 120, Description: "Укрепление гелем"},
}

// CatalogService каталог услуг
type CatalogService struct {
	serviceRepo ServiceRepository
	logger      *zap.Logger
}

func NewCatalogService(serviceRepo ServiceRepository, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		serviceRepo: serviceRepo,
		logger:      logger,
	}
}

// Seed добавляет услуги, которых ещё нет. Существующие не изменяются.
func (s *CatalogService) Seed(ctx context.Context, services []model.Service) error {
	for _, svc := range services {
		if svc.Name == "" || svc.DurationMinutes <= 0 || svc.Price < 0 {
			return fmt.Errorf("%w: invalid service %q", model.ErrValidation, svc.Name)
		}
	}

	inserted, err := s.serviceRepo.InsertIfAbsent(ctx, services)
	if err != nil {
		return fmt.Errorf("seed services: %w", err)
	}

	s.logger.Info("Service catalog seeded",
		zap.Int("total", len(services)),
		zap.Int64("inserted", inserted),
	)

	return nil
}

// GetByID возвращает услугу или nil, если её нет
func (s *CatalogService) GetByID(ctx context.Context, id int64) (*model.Service, error) {
	return s.serviceRepo.GetByID(ctx, id)
}

// List все услуги по возрастанию цены
func (s *CatalogService) List(ctx context.Context) ([]*model.Service, error) {
	return s.serviceRepo.List(ctx)
}
