package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Freeeeeet/studio_booking_bot/internal/model"
	"github.com/Freeeeeet/studio_booking_bot/internal/repository/base"
)

type UserRepository struct {
	*base.Repository
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{Repository: base.NewRepository(pool)}
}

// Upsert создаёт пользователя или обновляет его профиль и время активности.
// Телефон сохраняется, если в user он не указан.
func (r *UserRepository) Upsert(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (id, username, first_name, last_name, phone)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			username = EXCLUDED.username,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			phone = COALESCE(EXCLUDED.phone, users.phone),
			last_activity_at = NOW()
		RETURNING phone, registered_at, last_activity_at
	`

	err := r.QueryRow(
		ctx, query,
		user.ID,
		user.Username,
		user.FirstName,
		user.LastName,
		user.Phone,
	).Scan(&user.Phone, &user.RegisteredAt, &user.LastActivityAt)

	if err != nil {
		return base.WrapError("upsert user", err)
	}

	return nil
}

// GetByID получает пользователя по Telegram ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `
		SELECT id, COALESCE(username, ''), first_name, COALESCE(last_name, ''), phone, registered_at, last_activity_at
		FROM users
		WHERE id = $1
	`

	var user model.User
	err := r.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.FirstName,
		&user.LastName,
		&user.Phone,
		&user.RegisteredAt,
		&user.LastActivityAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil // Пользователь не найден
		}
		return nil, base.WrapError("get user by id", err)
	}

	return &user, nil
}

// SetPhone сохраняет телефон пользователя. Возвращает false, если пользователя нет.
func (r *UserRepository) SetPhone(ctx context.Context, id int64, phone string) (bool, error) {
	query := `
		UPDATE users
		SET phone = $1, last_activity_at = NOW()
		WHERE id = $2
	`

	affected, err := r.ExecAffected(ctx, query, phone, id)
	if err != nil {
		return false, base.WrapError("set user phone", err)
	}

	return affected > 0, nil
}
