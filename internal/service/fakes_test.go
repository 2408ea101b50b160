package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Freeeeeet/studio_booking_bot/internal/events"
	"github.com/Freeeeeet/studio_booking_bot/internal/model"
)

var msk = time.FixedZone("MSK", 3*60*60)

// monday 2024-06-10 09:00 MSK
var testNow = time.Date(2024, 6, 10, 9, 0, 0, 0, msk)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func at(date string, clock string) time.Time {
	d, err := model.ParseDate(date, msk)
	if err != nil {
		panic(err)
	}
	t, err := model.ParseTimeOfDay(clock)
	if err != nil {
		panic(err)
	}
	return t.On(d)
}

func tod(s string) model.TimeOfDay {
	t, err := model.ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

// ledger общее in-memory хранилище для фейковых репозиториев
type ledger struct {
	mu       sync.Mutex
	nextID   int64
	bookings []*model.Booking
	services map[int64]*model.Service
	users    map[int64]*model.User
	failWith error
}

func newLedger() *ledger {
	return &ledger{
		services: map[int64]*model.Service{
			1: {ID: 1, Name: "Снятие гель-лака", Price: 100000, DurationMinutes: 30},
			2: {ID: 2, Name: "Мужской маникюр", Price: 200000, DurationMinutes: 60},
			3: {ID: 3, Name: "Маникюр с покрытием гель-лаком", Price: 150000, DurationMinutes: 90},
			4: {ID: 4, Name: "Обработка сложного участка", Price: 150000, DurationMinutes: 20},
		},
		users: map[int64]*model.User{
			7: {ID: 7, FirstName: "Анна", Username: "anna"},
			8: {ID: 8, FirstName: "Мария", Username: "masha"},
		},
	}
}

type fakeBookingRepo struct {
	l *ledger
}

func (r *fakeBookingRepo) Create(_ context.Context, b *model.Booking) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if r.l.failWith != nil {
		return r.l.failWith
	}
	for _, other := range r.l.bookings {
		if other.Status.IsActive() && other.UserID == b.UserID && other.StartAt.Equal(b.StartAt) {
			return model.ErrConflict
		}
	}
	r.l.nextID++
	b.ID = r.l.nextID
	b.CreatedAt = testNow.Add(time.Duration(b.ID) * time.Second)
	copied := *b
	r.l.bookings = append(r.l.bookings, &copied)
	return nil
}

func (r *fakeBookingRepo) find(id int64) *model.Booking {
	for _, b := range r.l.bookings {
		if b.ID == id {
			return b
		}
	}
	return nil
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id int64) (*model.Booking, error) {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if b := r.find(id); b != nil {
		copied := *b
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeBookingRepo) details(b *model.Booking) *model.BookingDetails {
	d := &model.BookingDetails{Booking: *b}
	if u, ok := r.l.users[b.UserID]; ok {
		d.ClientFirstName = u.FirstName
		d.ClientLastName = u.LastName
		d.ClientUsername = u.Username
		d.ClientPhone = u.Phone
	}
	if s, ok := r.l.services[b.ServiceID]; ok {
		d.ServiceName = s.Name
		d.ServicePrice = s.Price
		d.DurationMinutes = s.DurationMinutes
	}
	return d
}

func (r *fakeBookingRepo) GetDetails(_ context.Context, id int64) (*model.BookingDetails, error) {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if b := r.find(id); b != nil {
		return r.details(b), nil
	}
	return nil, nil
}

func (r *fakeBookingRepo) List(_ context.Context, f model.BookingFilter) ([]*model.BookingDetails, error) {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if r.l.failWith != nil {
		return nil, r.l.failWith
	}

	result := make([]*model.BookingDetails, 0)
	for _, b := range r.l.bookings {
		if f.UserID != nil && b.UserID != *f.UserID {
			continue
		}
		if len(f.Statuses) > 0 && !containsStatus(f.Statuses, b.Status) {
			continue
		}
		if f.From != nil && b.StartAt.Before(*f.From) {
			continue
		}
		if f.To != nil && !b.StartAt.Before(*f.To) {
			continue
		}
		d := r.details(b)
		if f.Search != "" {
			term := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(d.ClientFirstName), term) &&
				!strings.Contains(strings.ToLower(d.ClientUsername), term) &&
				!strings.Contains(strings.ToLower(d.ServiceName), term) {
				continue
			}
		}
		result = append(result, d)
	}

	sort.SliceStable(result, func(i, j int) bool {
		switch f.OrderBy {
		case model.OrderByStartDesc:
			return result[i].StartAt.After(result[j].StartAt)
		case model.OrderByCreatedDesc:
			return result[i].CreatedAt.After(result[j].CreatedAt)
		default:
			return result[i].StartAt.Before(result[j].StartAt)
		}
	})

	if f.Offset > 0 {
		if int(f.Offset) >= len(result) {
			return []*model.BookingDetails{}, nil
		}
		result = result[f.Offset:]
	}
	if f.Limit > 0 && int(f.Limit) < len(result) {
		result = result[:f.Limit]
	}
	return result, nil
}

func containsStatus(statuses []model.BookingStatus, s model.BookingStatus) bool {
	for _, v := range statuses {
		if v == s {
			return true
		}
	}
	return false
}

func (r *fakeBookingRepo) ActiveInRange(_ context.Context, from, to time.Time) ([]*model.Booking, error) {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if r.l.failWith != nil {
		return nil, r.l.failWith
	}
	result := make([]*model.Booking, 0)
	for _, b := range r.l.bookings {
		if b.Status.IsActive() && b.StartAt.Before(to) && b.EndAt.After(from) {
			copied := *b
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *fakeBookingRepo) LockDay(context.Context, time.Time) error { return nil }

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, from, to model.BookingStatus) (bool, error) {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	b := r.find(id)
	if b == nil || b.Status != from {
		return false, nil
	}
	b.Status = to
	return true, nil
}

func (r *fakeBookingRepo) MarkReminded(_ context.Context, id int64, at time.Time) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if b := r.find(id); b != nil && b.RemindedAt == nil {
		b.RemindedAt = &at
	}
	return nil
}

func (r *fakeBookingRepo) Stats(_ context.Context, from, to time.Time) (*model.Statistics, error) {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	stats := &model.Statistics{TotalUsers: len(r.l.users)}
	clients := map[int64]bool{}
	for _, b := range r.l.bookings {
		clients[b.UserID] = true
		switch b.Status {
		case model.BookingStatusConfirmed:
			stats.Confirmed++
			stats.Revenue += r.l.services[b.ServiceID].Price
			if !b.StartAt.Before(from) && b.StartAt.Before(to) {
				stats.TodayConfirmed++
			}
		case model.BookingStatusPending:
			stats.Pending++
		case model.BookingStatusCancelled:
			stats.Cancelled++
		}
	}
	stats.UniqueClients = len(clients)
	return stats, nil
}

func (r *fakeBookingRepo) ClientIDs(_ context.Context, from, to *time.Time) ([]int64, error) {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	seen := map[int64]bool{}
	ids := make([]int64, 0)
	for _, b := range r.l.bookings {
		if from != nil && to != nil {
			if b.Status != model.BookingStatusConfirmed || b.StartAt.Before(*from) || !b.StartAt.Before(*to) {
				continue
			}
		}
		if !seen[b.UserID] {
			seen[b.UserID] = true
			ids = append(ids, b.UserID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

type fakeServiceRepo struct {
	l *ledger
}

func (r *fakeServiceRepo) InsertIfAbsent(_ context.Context, services []model.Service) (int64, error) {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	var inserted int64
outer:
	for _, s := range services {
		for _, existing := range r.l.services {
			if existing.Name == s.Name {
				continue outer
			}
		}
		s.ID = int64(len(r.l.services) + 1)
		copied := s
		r.l.services[s.ID] = &copied
		inserted++
	}
	return inserted, nil
}

func (r *fakeServiceRepo) GetByID(_ context.Context, id int64) (*model.Service, error) {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if s, ok := r.l.services[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeServiceRepo) List(context.Context) ([]*model.Service, error) {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	result := make([]*model.Service, 0, len(r.l.services))
	for _, s := range r.l.services {
		copied := *s
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Price == result[j].Price {
			return result[i].ID < result[j].ID
		}
		return result[i].Price < result[j].Price
	})
	return result, nil
}

type slotKey struct {
	date string
	time model.TimeOfDay
}

type fakeSlotRepo struct {
	mu     sync.Mutex
	nextID int64
	slots  map[slotKey]*model.ScheduleSlot
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{slots: map[slotKey]*model.ScheduleSlot{}}
}

func (r *fakeSlotRepo) InsertIfAbsent(_ context.Context, slots []model.ScheduleSlot) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var inserted int64
	for _, s := range slots {
		key := slotKey{s.Date.Format(model.DateLayout), s.Time}
		if _, ok := r.slots[key]; ok {
			continue
		}
		r.nextID++
		copied := s
		copied.ID = r.nextID
		copied.Date = model.DateOf(s.Date, msk)
		r.slots[key] = &copied
		inserted++
	}
	return inserted, nil
}

func (r *fakeSlotRepo) GetByDate(ctx context.Context, date time.Time) ([]*model.ScheduleSlot, error) {
	return r.GetByRange(ctx, date, date)
}

func (r *fakeSlotRepo) GetByRange(_ context.Context, from, to time.Time) ([]*model.ScheduleSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lo, hi := from.Format(model.DateLayout), to.Format(model.DateLayout)
	result := make([]*model.ScheduleSlot, 0)
	for key, s := range r.slots {
		if key.date >= lo && key.date <= hi {
			copied := *s
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].Time < result[j].Time
	})
	return result, nil
}

func (r *fakeSlotRepo) SetAvailable(_ context.Context, date time.Time, t model.TimeOfDay, available bool) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[slotKey{date.Format(model.DateLayout), t}]
	if !ok {
		return false, nil
	}
	s.Available = available
	return true, nil
}

// addDay добавляет слоты дня с шагом 30 минут в [from, to)
func (r *fakeSlotRepo) addDay(date, from, to string) {
	d, _ := model.ParseDate(date, msk)
	var slots []model.ScheduleSlot
	for t := tod(from); t < tod(to); t = t.Add(model.SlotMinutes) {
		slots = append(slots, model.ScheduleSlot{Date: d, Time: t, Available: true})
	}
	_, _ = r.InsertIfAbsent(context.Background(), slots)
}

func (r *fakeSlotRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.slots)
}

type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type fakePublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, e)
	return nil
}

type sentMessage struct {
	chatID int64
	text   string
}

type fakeNotifier struct {
	mu      sync.Mutex
	sent    []sentMessage
	failFor map[int64]bool
}

func (n *fakeNotifier) Send(_ context.Context, chatID int64, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.failFor[chatID] {
		return errors.New("bot was blocked by the user")
	}
	n.sent = append(n.sent, sentMessage{chatID: chatID, text: text})
	return nil
}

type fakeUserRepo struct {
	users map[int64]*model.User
}

func (r *fakeUserRepo) Upsert(_ context.Context, u *model.User) error {
	if existing, ok := r.users[u.ID]; ok && u.Phone == nil {
		u.Phone = existing.Phone
	}
	copied := *u
	r.users[u.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) SetPhone(_ context.Context, id int64, phone string) (bool, error) {
	u, ok := r.users[id]
	if !ok {
		return false, nil
	}
	u.Phone = &phone
	return true, nil
}

type fakeAdminRepo struct {
	ids []int64
}

func (r *fakeAdminRepo) Add(_ context.Context, id int64) (bool, error) {
	for _, existing := range r.ids {
		if existing == id {
			return false, nil
		}
	}
	r.ids = append(r.ids, id)
	return true, nil
}

func (r *fakeAdminRepo) Exists(_ context.Context, id int64) (bool, error) {
	for _, existing := range r.ids {
		if existing == id {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAdminRepo) ListIDs(context.Context) ([]int64, error) {
	return append([]int64{}, r.ids...), nil
}
