package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Freeeeeet/studio_booking_bot/internal/model"
	"github.com/Freeeeeet/studio_booking_bot/internal/repository/base"
)

// ServiceRepository каталог услуг
type ServiceRepository struct {
	*base.Repository
}

func NewServiceRepository(pool *pgxpool.Pool) *ServiceRepository {
	return &ServiceRepository{Repository: base.NewRepository(pool)}
}

// InsertIfAbsent добавляет услуги, существующие (по имени) не трогает
func (r *ServiceRepository) InsertIfAbsent(ctx context.Context, services []model.Service) (int64, error) {
	query := `
		INSERT INTO services (name, price, duration_minutes, description)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO NOTHING
	`

	var inserted int64
	for _, s := range services {
		affected, err := r.ExecAffected(ctx, query, s.Name, s.Price, s.DurationMinutes, s.Description)
		if err != nil {
			return inserted, base.WrapError("insert service", err)
		}
		inserted += affected
	}

	return inserted, nil
}

// GetByID получает услугу по ID
func (r *ServiceRepository) GetByID(ctx context.Context, id int64) (*model.Service, error) {
	query := `
		SELECT id, name, price, duration_minutes, description
		FROM services
		WHERE id = $1
	`

	var s model.Service
	err := r.QueryRow(ctx, query, id).Scan(&s.ID, &s.Name, &s.Price, &s.DurationMinutes, &s.Description)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, base.WrapError("get service by id", err)
	}

	return &s, nil
}

// List возвращает все услуги по возрастанию цены
func (r *ServiceRepository) List(ctx context.Context) ([]*model.Service, error) {
	query := `
		SELECT id, name, price, duration_minutes, description
		FROM services
		ORDER BY price ASC, id ASC
	`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, base.WrapError("list services", err)
	}
	defer rows.Close()

	services := make([]*model.Service, 0)
	for rows.Next() {
		var s model.Service
		if err := rows.Scan(&s.ID, &s.Name, &s.Price, &s.DurationMinutes, &s.Description); err != nil {
			return nil, base.WrapError("scan service", err)
		}
		services = append(services, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, base.WrapError("iterate services", err)
	}

	return services, nil
}
