package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Freeeeeet/studio_booking_bot/internal/model"
)

type UserService struct {
	userRepo  UserRepository
	adminRepo AdminRepository
	logger    *zap.Logger
}

func NewUserService(userRepo UserRepository, adminRepo AdminRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo:  userRepo,
		adminRepo: adminRepo,
		logger:    logger,
	}
}

// Touch регистрирует пользователя или обновляет его профиль и время активности
func (s *UserService) Touch(ctx context.Context, user *model.User) error {
	if user.ID == 0 {
		return fmt.Errorf("%w: user id is required", model.ErrValidation)
	}

	if err := s.userRepo.Upsert(ctx, user); err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}

	s.logger.Debug("User touched",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username),
	)

	return nil
}

// SetPhone сохраняет телефон пользователя
func (s *UserService) SetPhone(ctx context.Context, userID int64, phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return fmt.Errorf("%w: empty phone", model.ErrValidation)
	}

	found, err := s.userRepo.SetPhone(ctx, userID, phone)
	if err != nil {
		return fmt.Errorf("set phone: %w", err)
	}
	if !found {
		return fmt.Errorf("%w: user %d", model.ErrNotFound, userID)
	}

	s.logger.Info("User phone saved", zap.Int64("user_id", userID))

	return nil
}

// GetByID получает пользователя по Telegram ID, nil если не найден
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	return s.adminRepo.Exists(ctx, userID)
}

// AddAdmin выдаёт права администратора
func (s *UserService) AddAdmin(ctx context.Context, userID int64) error {
	added, err := s.adminRepo.Add(ctx, userID)
	if err != nil {
		return fmt.Errorf("add admin: %w", err)
	}

	if added {
		s.logger.Info("Admin added", zap.Int64("user_id", userID))
	}

	return nil
}

func (s *UserService) AdminIDs(ctx context.Context) ([]int64, error) {
	return s.adminRepo.ListIDs(ctx)
}

// BootstrapAdmins добавляет администраторов из конфигурации
func (s *UserService) BootstrapAdmins(ctx context.Context, ids []int64) error {
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if err := s.AddAdmin(ctx, id); err != nil {
			return err
		}
	}
	return nil
}
