package service

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/n1cash1/ClubOK/internal/model"
	"github.com/n1cash1/ClubOK/internal/repository"
)

// Draft - данные завершенного диалога бронирования.
type Draft struct {
	Type     model.BookingType
	Date     string
	Guests   int
	UserID   int64
	UserName string
	Phone    string
}

// Stats - сводка по заявкам и столикам для админ-панели.
type Stats struct {
	Pending   int
	Confirmed int
	Rejected  int
	Tables    model.TablesState
}

// BookingService управляет жизненным циклом бронирований и учетом столиков.
//
// Все мутации проходят через один мьютекс: проверка доступности и
// резервирование столика при подтверждении, проверка даты коттеджа,
// изменение количества столиков и смена статусов выполняются в общей
// критической секции, поэтому два конкурентных подтверждения не могут
// занять один и тот же последний столик или одну и ту же дату.
type BookingService struct {
	mu       sync.Mutex
	bookings map[string]*model.Booking
	ledger   Ledger

	admins   map[int64]struct{}
	store    repository.Store
	notifier Notifier
	log      *zap.Logger
	now      func() time.Time
}

// NewBookingService создает сервис поверх загруженного состояния.
// notifier может быть nil (например, в read-only API).
func NewBookingService(snap repository.Snapshot, admins []int64, store repository.Store, notifier Notifier, log *zap.Logger) *BookingService {
	adminSet := make(map[int64]struct{}, len(admins))
	for _, id := range admins {
		adminSet[id] = struct{}{}
	}
	return &BookingService{
		bookings: snap.Bookings,
		ledger:   Ledger{Total: snap.Tables.Total, Available: snap.Tables.Available},
		admins:   adminSet,
		store:    store,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

// IsAdmin сообщает, входит ли пользователь в список администраторов.
func (s *BookingService) IsAdmin(userID int64) bool {
	_, ok := s.admins[userID]
	return ok
}

// Create регистрирует новую заявку со статусом "pending" и уведомляет
// администраторов. У пользователя не может быть двух ожидающих заявок
// на одну дату и один тип ресурса.
func (s *BookingService) Create(d Draft) (model.Booking, error) {
	s.mu.Lock()
	for _, b := range s.bookings {
		if b.UserID == d.UserID && b.Date == d.Date && b.Type == d.Type && b.Status == model.StatusPending {
			s.mu.Unlock()
			return model.Booking{}, ErrDuplicatePending
		}
	}

	b := &model.Booking{
		ID:        s.newIDLocked(),
		Type:      d.Type,
		Date:      d.Date,
		Guests:    d.Guests,
		UserID:    d.UserID,
		UserName:  d.UserName,
		Phone:     d.Phone,
		Status:    model.StatusPending,
		CreatedAt: s.now(),
	}
	s.bookings[b.ID] = b
	s.persistLocked()
	created := *b
	s.mu.Unlock()

	if s.notifier != nil {
		s.notifier.BookingRequested(created)
	}
	return created, nil
}

// Confirm переводит заявку в статус "confirmed". Для столика атомарно
// с проверкой занимается один столик; для коттеджа внутри той же
// критической секции перепроверяется доступность даты.
func (s *BookingService) Confirm(id string, actor int64) (model.Booking, error) {
	if !s.IsAdmin(actor) {
		return model.Booking{}, ErrAccessDenied
	}

	s.mu.Lock()
	b, ok := s.bookings[id]
	if !ok {
		s.mu.Unlock()
		return model.Booking{}, ErrNotFound
	}
	if b.Status != model.StatusPending {
		s.mu.Unlock()
		return model.Booking{}, ErrAlreadyDecided
	}

	switch b.Type {
	case model.BookingTable:
		if err := s.ledger.Reserve(); err != nil {
			s.mu.Unlock()
			return model.Booking{}, ErrInsufficientCapacity
		}
	case model.BookingCottage:
		if !s.cottageDateFreeLocked(b.Date) {
			s.mu.Unlock()
			return model.Booking{}, ErrDateTaken
		}
	}

	b.Status = model.StatusConfirmed
	s.persistLocked()
	confirmed := *b
	s.mu.Unlock()

	if s.notifier != nil {
		s.notifier.BookingConfirmed(confirmed)
	}
	return confirmed, nil
}

// Reject переводит заявку в статус "rejected". Отмена уже подтвержденного
// бронирования столика возвращает столик в учет. Причина обязательна и
// пересылается клиенту дословно.
func (s *BookingService) Reject(id string, actor int64, reason string) (model.Booking, error) {
	if !s.IsAdmin(actor) {
		return model.Booking{}, ErrAccessDenied
	}
	if strings.TrimSpace(reason) == "" {
		return model.Booking{}, ErrEmptyReason
	}

	s.mu.Lock()
	b, ok := s.bookings[id]
	if !ok {
		s.mu.Unlock()
		return model.Booking{}, ErrNotFound
	}
	if b.Status == model.StatusRejected {
		s.mu.Unlock()
		return model.Booking{}, ErrAlreadyDecided
	}

	if b.Status == model.StatusConfirmed && b.Type == model.BookingTable {
		s.ledger.Release()
	}
	b.Status = model.StatusRejected
	s.persistLocked()
	rejected := *b
	s.mu.Unlock()

	if s.notifier != nil {
		s.notifier.BookingRejected(rejected, reason)
	}
	return rejected, nil
}

// Resize меняет общее количество столиков. Пересчет доступных идет в той
// же критической секции, что и подтверждения, поэтому не может разойтись
// с числом занятых столиков.
func (s *BookingService) Resize(newTotal int, actor int64) (model.TablesState, error) {
	if !s.IsAdmin(actor) {
		return model.TablesState{}, ErrAccessDenied
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ledger.Resize(newTotal); err != nil {
		return s.tablesLocked(), err
	}
	s.persistLocked()
	return s.tablesLocked(), nil
}

// Get возвращает копию заявки по идентификатору.
func (s *BookingService) Get(id string) (model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return model.Booking{}, ErrNotFound
	}
	return *b, nil
}

// Recent возвращает не более n последних заявок (новые первыми).
func (s *BookingService) Recent(n int) []model.Booking {
	return s.filtered(n, func(*model.Booking) bool { return true })
}

// ConfirmedRecent возвращает не более n последних подтвержденных заявок.
func (s *BookingService) ConfirmedRecent(n int) []model.Booking {
	return s.filtered(n, func(b *model.Booking) bool { return b.Status == model.StatusConfirmed })
}

func (s *BookingService) filtered(n int, keep func(*model.Booking) bool) []model.Booking {
	s.mu.Lock()
	out := make([]model.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		if keep(b) {
			out = append(out, *b)
		}
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Stats возвращает сводку по статусам заявок и столикам.
func (s *BookingService) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := Stats{Tables: s.tablesLocked()}
	for _, b := range s.bookings {
		switch b.Status {
		case model.StatusPending:
			st.Pending++
		case model.StatusConfirmed:
			st.Confirmed++
		case model.StatusRejected:
			st.Rejected++
		}
	}
	return st
}

// Tables возвращает текущий учет столиков.
func (s *BookingService) Tables() model.TablesState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tablesLocked()
}

// IsCottageDateAvailable проверяет, что на дату нет подтвержденного
// бронирования коттеджа. Ожидающие заявки дату не блокируют.
func (s *BookingService) IsCottageDateAvailable(date string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cottageDateFreeLocked(date)
}

// HasConfirmedBooking сообщает, есть ли у пользователя хотя бы одно
// подтвержденное бронирование (условие для отзыва).
func (s *BookingService) HasConfirmedBooking(userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bookings {
		if b.UserID == userID && b.Status == model.StatusConfirmed {
			return true
		}
	}
	return false
}

func (s *BookingService) cottageDateFreeLocked(date string) bool {
	for _, b := range s.bookings {
		if b.Type == model.BookingCottage && b.Status == model.StatusConfirmed && b.Date == date {
			return false
		}
	}
	return true
}

func (s *BookingService) tablesLocked() model.TablesState {
	return model.TablesState{Total: s.ledger.Total, Available: s.ledger.Available}
}

// newIDLocked выдает уникальный идентификатор заявки: последние восемь
// цифр текущего времени, со сдвигом при коллизии.
func (s *BookingService) newIDLocked() string {
	ts := strconv.FormatInt(s.now().UnixNano(), 10)
	n, _ := strconv.ParseInt(ts[len(ts)-8:], 10, 64)
	for {
		id := strconv.FormatInt(n, 10)
		for len(id) < 8 {
			id = "0" + id
		}
		if _, taken := s.bookings[id]; !taken {
			return id
		}
		n = (n + 1) % 100000000
	}
}

// persistLocked синхронно сохраняет состояние. Ошибка записи логируется,
// но изменение в памяти остается в силе: расхождение с диском при сбое
// хранилища - принятый риск.
func (s *BookingService) persistLocked() {
	if err := s.store.SaveBookings(s.bookings, s.tablesLocked()); err != nil {
		s.log.Error("не удалось сохранить бронирования", zap.Error(err))
	}
}
