package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Freeeeeet/studio_booking_bot/internal/model"
	"github.com/Freeeeeet/studio_booking_bot/internal/repository/base"
)

// advisoryLockNamespace первый ключ pg_advisory_xact_lock для блокировок дня
const advisoryLockNamespace = 7301

var bookingColumns = []string{
	"b.id", "b.user_id", "b.service_id", "b.start_at", "b.end_at",
	"b.status", "b.notes", "b.reminded_at", "b.created_at",
}

var detailsColumns = append(append([]string{}, bookingColumns...),
	"u.first_name", "COALESCE(u.last_name, '')", "COALESCE(u.username, '')", "u.phone",
	"s.name", "s.price", "s.duration_minutes",
)

type BookingRepository struct {
	*base.Repository
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт новую запись
func (r *BookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	query := `
		INSERT INTO bookings (user_id, service_id, start_at, end_at, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.QueryRow(
		ctx, query,
		booking.UserID,
		booking.ServiceID,
		booking.StartAt,
		booking.EndAt,
		string(booking.Status),
		booking.Notes,
	).Scan(&booking.ID, &booking.CreatedAt)

	if err != nil {
		return base.WrapError("create booking", err)
	}

	return nil
}

// GetByID получает запись по ID
func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*model.Booking, error) {
	query, args, err := base.Psql.Select(bookingColumns...).
		From("bookings b").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query: %w", err)
	}

	booking, err := scanBooking(r.QueryRow(ctx, query, args...))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, base.WrapError("get booking by id", err)
	}

	return booking, nil
}

// GetDetails получает запись вместе с данными клиента и услуги
func (r *BookingRepository) GetDetails(ctx context.Context, id int64) (*model.BookingDetails, error) {
	query, args, err := detailsQuery().
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking details query: %w", err)
	}

	details, err := scanDetails(r.QueryRow(ctx, query, args...))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, base.WrapError("get booking details", err)
	}

	return details, nil
}

// List возвращает записи по фильтру
func (r *BookingRepository) List(ctx context.Context, filter model.BookingFilter) ([]*model.BookingDetails, error) {
	query, args, err := buildListQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("build list bookings query: %w", err)
	}

	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, base.WrapError("list bookings", err)
	}
	defer rows.Close()

	result := make([]*model.BookingDetails, 0)
	for rows.Next() {
		details, err := scanDetails(rows)
		if err != nil {
			return nil, base.WrapError("scan booking", err)
		}
		result = append(result, details)
	}

	if err := rows.Err(); err != nil {
		return nil, base.WrapError("iterate bookings", err)
	}

	return result, nil
}

// ActiveInRange возвращает активные записи, пересекающие интервал [from, to)
func (r *BookingRepository) ActiveInRange(ctx context.Context, from, to time.Time) ([]*model.Booking, error) {
	query, args, err := base.Psql.Select(bookingColumns...).
		From("bookings b").
		Where(squirrel.Eq{"b.status": statusStrings(model.ActiveBookingStatuses)}).
		Where(squirrel.Lt{"b.start_at": to}).
		Where(squirrel.Gt{"b.end_at": from}).
		OrderBy("b.start_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build active bookings query: %w", err)
	}

	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, base.WrapError("get active bookings", err)
	}
	defer rows.Close()

	result := make([]*model.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, base.WrapError("scan booking", err)
		}
		result = append(result, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, base.WrapError("iterate bookings", err)
	}

	return result, nil
}

// LockDay берёт транзакционную advisory блокировку на день.
// Вызывать только внутри транзакции.
func (r *BookingRepository) LockDay(ctx context.Context, day time.Time) error {
	_, err := r.Executor(ctx).Exec(ctx,
		`SELECT pg_advisory_xact_lock($1, $2)`,
		int32(advisoryLockNamespace), dayKey(day),
	)
	if err != nil {
		return base.WrapError("lock day", err)
	}
	return nil
}

// UpdateStatus меняет статус, если текущий статус равен from.
// Возвращает false, если запись не найдена или статус уже изменился.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, from, to model.BookingStatus) (bool, error) {
	query := `
		UPDATE bookings
		SET status = $1
		WHERE id = $2 AND status = $3
	`

	affected, err := r.ExecAffected(ctx, query, string(to), id, string(from))
	if err != nil {
		return false, base.WrapError("update booking status", err)
	}

	return affected > 0, nil
}

// MarkReminded отмечает, что напоминание отправлено
func (r *BookingRepository) MarkReminded(ctx context.Context, id int64, at time.Time) error {
	query := `
		UPDATE bookings
		SET reminded_at = $1
		WHERE id = $2 AND reminded_at IS NULL
	`

	if _, err := r.ExecAffected(ctx, query, at, id); err != nil {
		return base.WrapError("mark booking reminded", err)
	}

	return nil
}

// Stats считает общую статистику. todayFrom/todayTo ограничивают "сегодня".
func (r *BookingRepository) Stats(ctx context.Context, todayFrom, todayTo time.Time) (*model.Statistics, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE b.status = 'confirmed'),
			COUNT(*) FILTER (WHERE b.status = 'pending'),
			COUNT(*) FILTER (WHERE b.status = 'cancelled'),
			COUNT(*) FILTER (WHERE b.status = 'confirmed' AND b.start_at >= $1 AND b.start_at < $2),
			COALESCE(SUM(s.price) FILTER (WHERE b.status = 'confirmed'), 0),
			COUNT(DISTINCT b.user_id),
			(SELECT COUNT(*) FROM users)
		FROM bookings b
		JOIN services s ON s.id = b.service_id
	`

	var stats model.Statistics
	err := r.QueryRow(ctx, query, todayFrom, todayTo).Scan(
		&stats.Confirmed,
		&stats.Pending,
		&stats.Cancelled,
		&stats.TodayConfirmed,
		&stats.Revenue,
		&stats.UniqueClients,
		&stats.TotalUsers,
	)
	if err != nil {
		return nil, base.WrapError("get statistics", err)
	}

	return &stats, nil
}

// ClientIDs возвращает уникальных клиентов с записями.
// Если задан интервал, учитываются только подтверждённые записи в нём.
func (r *BookingRepository) ClientIDs(ctx context.Context, from, to *time.Time) ([]int64, error) {
	builder := base.Psql.Select("DISTINCT b.user_id").From("bookings b")
	if from != nil && to != nil {
		builder = builder.
			Where(squirrel.Eq{"b.status": string(model.BookingStatusConfirmed)}).
			Where(squirrel.GtOrEq{"b.start_at": *from}).
			Where(squirrel.Lt{"b.start_at": *to})
	}

	query, args, err := builder.OrderBy("b.user_id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build client ids query: %w", err)
	}

	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, base.WrapError("get client ids", err)
	}
	defer rows.Close()

	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, base.WrapError("collect client ids", err)
	}
	if ids == nil {
		ids = []int64{}
	}

	return ids, nil
}

func detailsQuery() squirrel.SelectBuilder {
	return base.Psql.Select(detailsColumns...).
		From("bookings b").
		Join("users u ON u.id = b.user_id").
		Join("services s ON s.id = b.service_id")
}

// buildListQuery собирает SELECT по фильтру
func buildListQuery(f model.BookingFilter) (string, []any, error) {
	builder := detailsQuery()

	if f.UserID != nil {
		builder = builder.Where(squirrel.Eq{"b.user_id": *f.UserID})
	}
	if len(f.Statuses) > 0 {
		builder = builder.Where(squirrel.Eq{"b.status": statusStrings(f.Statuses)})
	}
	if f.From != nil {
		builder = builder.Where(squirrel.GtOrEq{"b.start_at": *f.From})
	}
	if f.To != nil {
		builder = builder.Where(squirrel.Lt{"b.start_at": *f.To})
	}
	if term := strings.TrimSpace(f.Search); term != "" {
		pattern := "%" + escapeLike(term) + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"u.first_name": pattern},
			squirrel.ILike{"u.username": pattern},
			squirrel.ILike{"s.name": pattern},
		})
	}

	switch f.OrderBy {
	case model.OrderByStartDesc:
		builder = builder.OrderBy("b.start_at DESC", "b.id DESC")
	case model.OrderByCreatedDesc:
		builder = builder.OrderBy("b.created_at DESC", "b.id DESC")
	default:
		builder = builder.OrderBy("b.start_at ASC", "b.id ASC")
	}

	if f.Limit > 0 {
		builder = builder.Limit(f.Limit)
	}
	if f.Offset > 0 {
		builder = builder.Offset(f.Offset)
	}

	return builder.ToSql()
}

func scanBooking(row pgx.Row) (*model.Booking, error) {
	var b model.Booking
	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.ServiceID,
		&b.StartAt,
		&b.EndAt,
		&b.Status,
		&b.Notes,
		&b.RemindedAt,
		&b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func scanDetails(row pgx.Row) (*model.BookingDetails, error) {
	var d model.BookingDetails
	err := row.Scan(
		&d.ID,
		&d.UserID,
		&d.ServiceID,
		&d.StartAt,
		&d.EndAt,
		&d.Status,
		&d.Notes,
		&d.RemindedAt,
		&d.CreatedAt,
		&d.ClientFirstName,
		&d.ClientLastName,
		&d.ClientUsername,
		&d.ClientPhone,
		&d.ServiceName,
		&d.ServicePrice,
		&d.DurationMinutes,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func statusStrings(statuses []model.BookingStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}

// escapeLike экранирует спецсимволы LIKE
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// dayKey номер дня от эпохи, используется как ключ блокировки
func dayKey(day time.Time) int32 {
	y, m, d := day.Date()
	return int32(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}
