package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Freeeeeet/studio_booking_bot/internal/model"
	"github.com/Freeeeeet/studio_booking_bot/internal/repository/base"
)

const microsecondsPerMinute = int64(time.Minute / time.Microsecond)

type SlotRepository struct {
	*base.Repository
	loc *time.Location
}

// NewSlotRepository создаёт репозиторий слотов.
// Даты слотов возвращаются в часовом поясе loc.
func NewSlotRepository(pool *pgxpool.Pool, loc *time.Location) *SlotRepository {
	return &SlotRepository{Repository: base.NewRepository(pool), loc: loc}
}

// InsertIfAbsent добавляет слоты, пропуская уже существующие (date, time).
// Возвращает количество реально вставленных строк.
func (r *SlotRepository) InsertIfAbsent(ctx context.Context, slots []model.ScheduleSlot) (int64, error) {
	if len(slots) == 0 {
		return 0, nil
	}

	dates := make([]pgtype.Date, len(slots))
	times := make([]pgtype.Time, len(slots))
	for i, s := range slots {
		dates[i] = toPgDate(s.Date)
		times[i] = toPgTime(s.Time)
	}

	query := `
		INSERT INTO schedule_slots (slot_date, slot_time, available)
		SELECT d, t, TRUE
		FROM unnest($1::date[], $2::time[]) AS x(d, t)
		ON CONFLICT (slot_date, slot_time) DO NOTHING
	`

	inserted, err := r.ExecAffected(ctx, query, dates, times)
	if err != nil {
		return 0, base.WrapError("insert schedule slots", err)
	}

	return inserted, nil
}

// GetByDate возвращает слоты дня, упорядоченные по времени
func (r *SlotRepository) GetByDate(ctx context.Context, date time.Time) ([]*model.ScheduleSlot, error) {
	return r.GetByRange(ctx, date, date)
}

// GetByRange возвращает слоты в диапазоне дат [from, to] включительно
func (r *SlotRepository) GetByRange(ctx context.Context, from, to time.Time) ([]*model.ScheduleSlot, error) {
	query := `
		SELECT id, slot_date, slot_time, available
		FROM schedule_slots
		WHERE slot_date BETWEEN $1 AND $2
		ORDER BY slot_date, slot_time
	`

	rows, err := r.Query(ctx, query, toPgDate(from), toPgDate(to))
	if err != nil {
		return nil, base.WrapError("get schedule slots", err)
	}
	defer rows.Close()

	slots := make([]*model.ScheduleSlot, 0)
	for rows.Next() {
		var (
			slot model.ScheduleSlot
			d    pgtype.Date
			t    pgtype.Time
		)
		if err := rows.Scan(&slot.ID, &d, &t, &slot.Available); err != nil {
			return nil, base.WrapError("scan schedule slot", err)
		}
		slot.Date = r.fromPgDate(d)
		slot.Time = fromPgTime(t)
		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, base.WrapError("iterate schedule slots", err)
	}

	return slots, nil
}

// SetAvailable меняет флаг доступности слота.
// Возвращает false, если слота нет.
func (r *SlotRepository) SetAvailable(ctx context.Context, date time.Time, t model.TimeOfDay, available bool) (bool, error) {
	query := `
		UPDATE schedule_slots
		SET available = $1
		WHERE slot_date = $2 AND slot_time = $3
	`

	affected, err := r.ExecAffected(ctx, query, available, toPgDate(date), toPgTime(t))
	if err != nil {
		return false, base.WrapError("set slot availability", err)
	}

	return affected > 0, nil
}

// toPgDate переносит календарную дату в UTC, чтобы DATE не сдвинулся
func toPgDate(date time.Time) pgtype.Date {
	y, m, d := date.Date()
	return pgtype.Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Valid: true}
}

func (r *SlotRepository) fromPgDate(d pgtype.Date) time.Time {
	y, m, day := d.Time.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, r.loc)
}

func toPgTime(t model.TimeOfDay) pgtype.Time {
	return pgtype.Time{Microseconds: int64(t) * microsecondsPerMinute, Valid: true}
}

func fromPgTime(t pgtype.Time) model.TimeOfDay {
	return model.TimeOfDay(t.Microseconds / microsecondsPerMinute)
}
