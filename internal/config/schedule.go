package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/Freeeeeet/studio_booking_bot/internal/model"
)

// DayType тип дня недели в расписании студии
type DayType string

const (
	DayClosed  DayType = "closed"
	DayWeekday DayType = "weekday"
	DayWeekend DayType = "weekend"
)

// Schedule недельный шаблон работы студии
type Schedule struct {
	days  [7]DayType
	hours map[DayType][]model.TimeOfDay
}

// scheduleFile формат TOML файла
//
//	[days]
//	monday = "weekday"
//	sunday = "weekend"
//	thursday = "closed"
//
//	[hours]
//	weekday = ["10:00", "10:30"]
//	weekend = ["11:00"]
type scheduleFile struct {
	Days  map[string]string `toml:"days"`
	Hours struct {
		Weekday []string `toml:"weekday"`
		Weekend []string `toml:"weekend"`
	} `toml:"hours"`
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// DefaultSchedule расписание по умолчанию: чт, пт, сб выходные,
// вс по выходному графику, остальные дни по будничному.
func DefaultSchedule() *Schedule {
	s := &Schedule{
		hours: map[DayType][]model.TimeOfDay{
			DayWeekday: hoursRange(model.NewTimeOfDay(10, 0), model.NewTimeOfDay(20, 0)),
			DayWeekend: hoursRange(model.NewTimeOfDay(11, 0), model.NewTimeOfDay(19, 0)),
		},
	}
	s.days[time.Monday] = DayWeekday
	s.days[time.Tuesday] = DayWeekday
	s.days[time.Wednesday] = DayWeekday
	s.days[time.Thursday] = DayClosed
	s.days[time.Friday] = DayClosed
	s.days[time.Saturday] = DayClosed
	s.days[time.Sunday] = DayWeekend
	return s
}

// NewSchedule собирает расписание из готовых значений
func NewSchedule(days map[time.Weekday]DayType, weekdayHours, weekendHours []model.TimeOfDay) (*Schedule, error) {
	s := &Schedule{hours: map[DayType][]model.TimeOfDay{}}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		s.days[wd] = DayClosed
	}
	for wd, dt := range days {
		s.days[wd] = dt
	}

	var err error
	if s.hours[DayWeekday], err = normalizeHours(weekdayHours); err != nil {
		return nil, fmt.Errorf("weekday hours: %w", err)
	}
	if s.hours[DayWeekend], err = normalizeHours(weekendHours); err != nil {
		return nil, fmt.Errorf("weekend hours: %w", err)
	}

	return s, s.validate()
}

// LoadSchedule читает расписание из TOML файла.
// Если файла нет, используется расписание по умолчанию.
func LoadSchedule(path string) (*Schedule, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("⚠️  Schedule file %s not found, using default schedule\n", path)
		return DefaultSchedule(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read schedule file: %w", err)
	}
	return ParseSchedule(string(data))
}

// ParseSchedule разбирает расписание из TOML
func ParseSchedule(data string) (*Schedule, error) {
	var raw scheduleFile
	if _, err := toml.Decode(data, &raw); err != nil {
		return nil, fmt.Errorf("decode schedule: %w", err)
	}

	days := make(map[time.Weekday]DayType, len(raw.Days))
	for name, value := range raw.Days {
		wd, ok := weekdayNames[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", name)
		}
		dt := DayType(strings.ToLower(value))
		if dt != DayClosed && dt != DayWeekday && dt != DayWeekend {
			return nil, fmt.Errorf("unknown day type %q for %s", value, name)
		}
		days[wd] = dt
	}

	weekday, err := parseHours(raw.Hours.Weekday)
	if err != nil {
		return nil, fmt.Errorf("weekday hours: %w", err)
	}
	weekend, err := parseHours(raw.Hours.Weekend)
	if err != nil {
		return nil, fmt.Errorf("weekend hours: %w", err)
	}

	return NewSchedule(days, weekday, weekend)
}

// DayType возвращает тип дня недели
func (s *Schedule) DayType(wd time.Weekday) DayType {
	return s.days[wd]
}

// IsClosed возвращает true если студия не работает в этот день недели
func (s *Schedule) IsClosed(wd time.Weekday) bool {
	return s.days[wd] == DayClosed
}

// HoursFor возвращает начала слотов для даты, nil для выходного дня
func (s *Schedule) HoursFor(date time.Time) []model.TimeOfDay {
	dt := s.days[date.Weekday()]
	if dt == DayClosed {
		return nil
	}
	return s.hours[dt]
}

func (s *Schedule) validate() error {
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		dt := s.days[wd]
		if dt != DayClosed && len(s.hours[dt]) == 0 {
			return fmt.Errorf("%s uses %s hours, but the list is empty", wd, dt)
		}
	}
	return nil
}

func parseHours(values []string) ([]model.TimeOfDay, error) {
	result := make([]model.TimeOfDay, 0, len(values))
	for _, v := range values {
		t, err := model.ParseTimeOfDay(strings.TrimSpace(v))
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, nil
}

// normalizeHours сортирует, убирает дубли и проверяет шаг сетки
func normalizeHours(hours []model.TimeOfDay) ([]model.TimeOfDay, error) {
	sorted := append([]model.TimeOfDay(nil), hours...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	result := make([]model.TimeOfDay, 0, len(sorted))
	for i, t := range sorted {
		if !t.Valid() {
			return nil, fmt.Errorf("time %s out of range", t)
		}
		if int(t)%model.SlotMinutes != 0 {
			return nil, fmt.Errorf("time %s is not aligned to %d minutes", t, model.SlotMinutes)
		}
		if i > 0 && sorted[i-1] == t {
			continue
		}
		result = append(result, t)
	}
	return result, nil
}

// hoursRange генерирует начала слотов в интервале [from, to)
func hoursRange(from, to model.TimeOfDay) []model.TimeOfDay {
	var result []model.TimeOfDay
	for t := from; t < to; t = t.Add(model.SlotMinutes) {
		result = append(result, t)
	}
	return result
}
