package service

import (
	"time"

	"github.com/Freeeeeet/studio_booking_bot/internal/model"
)

const slotDuration = model.SlotMinutes * time.Minute

// SlotsNeeded количество слотов, которое занимает услуга.
// Неполный слот округляется вверх.
func SlotsNeeded(durationMinutes int) int {
	if durationMinutes <= 0 {
		return 0
	}
	return (durationMinutes + model.SlotMinutes - 1) / model.SlotMinutes
}

// consumedEnd конец интервала, занятого записью, с округлением до целых слотов
func consumedEnd(start time.Time, durationMinutes int) time.Time {
	return start.Add(time.Duration(SlotsNeeded(durationMinutes)) * slotDuration)
}

func bookingConsumedEnd(b *model.Booking) time.Time {
	return consumedEnd(b.StartAt, int(b.Duration()/time.Minute))
}

// overlaps проверяет пересечение полуинтервалов [aStart, aEnd) и [bStart, bEnd)
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// busySlots индексы слотов, которые пересекаются с активными записями
func busySlots(slots []*model.ScheduleSlot, bookings []*model.Booking) map[int]int64 {
	busy := make(map[int]int64)
	for _, b := range bookings {
		if !b.Status.IsActive() {
			continue
		}
		end := bookingConsumedEnd(b)
		for i, s := range slots {
			start := s.StartAt()
			if overlaps(start, start.Add(slotDuration), b.StartAt, end) {
				busy[i] = b.ID
			}
		}
	}
	return busy
}

// availableStarts чистая функция расчёта допустимых начал записи на день.
// slots должны быть слотами одного дня date, упорядоченными по времени.
func availableStarts(
	slots []*model.ScheduleSlot,
	bookings []*model.Booking,
	date time.Time,
	durationMinutes int,
	now time.Time,
	buffer time.Duration,
) []model.TimeOfDay {
	result := make([]model.TimeOfDay, 0)

	n := SlotsNeeded(durationMinutes)
	if n == 0 || len(slots) < n {
		return result
	}

	today := model.DateOf(now, date.Location())
	day := model.DateOf(date, date.Location())
	if day.Before(today) {
		return result
	}
	isToday := day.Equal(today)
	earliest := now.Add(buffer)

	busy := busySlots(slots, bookings)

	for i := 0; i+n <= len(slots); i++ {
		if !runIsFree(slots[i:i+n], i, busy) {
			continue
		}
		if isToday && slots[i].StartAt().Before(earliest) {
			continue
		}
		result = append(result, slots[i].Time)
	}

	return result
}

// runIsFree проверяет, что подряд идущие слоты открыты, свободны
// и идут без разрывов с шагом в один слот
func runIsFree(run []*model.ScheduleSlot, offset int, busy map[int]int64) bool {
	for k, s := range run {
		if !s.Available {
			return false
		}
		if _, taken := busy[offset+k]; taken {
			return false
		}
		if k > 0 && s.Time != run[k-1].Time.Add(model.SlotMinutes) {
			return false
		}
	}
	return true
}
