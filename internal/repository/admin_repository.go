package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Freeeeeet/studio_booking_bot/internal/repository/base"
)

// AdminRepository список администраторов, только добавление
type AdminRepository struct {
	*base.Repository
}

func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{Repository: base.NewRepository(pool)}
}

// Add добавляет администратора. Возвращает false, если он уже был.
func (r *AdminRepository) Add(ctx context.Context, userID int64) (bool, error) {
	affected, err := r.ExecAffected(ctx,
		`INSERT INTO admins (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`,
		userID,
	)
	if err != nil {
		return false, base.WrapError("add admin", err)
	}
	return affected > 0, nil
}

// Exists проверяет, является ли пользователь администратором
func (r *AdminRepository) Exists(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	err := r.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM admins WHERE user_id = $1)`,
		userID,
	).Scan(&exists)
	if err != nil {
		return false, base.WrapError("check admin", err)
	}
	return exists, nil
}

// ListIDs возвращает ID всех администраторов
func (r *AdminRepository) ListIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.Query(ctx, `SELECT user_id FROM admins ORDER BY added_at, user_id`)
	if err != nil {
		return nil, base.WrapError("list admins", err)
	}
	defer rows.Close()

	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, base.WrapError("collect admins", err)
	}
	if ids == nil {
		ids = []int64{}
	}

	return ids, nil
}
