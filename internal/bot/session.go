package bot

import (
	"sync"

	"github.com/n1cash1/ClubOK/internal/model"
)

// State - состояние диалога пользователя.
type State int

const (
	StateIdle              State = iota
	StateChoosingDate            // ожидается дата бронирования
	StateChoosingGuests          // ожидается количество гостей
	StateCollectingContact       // ожидается контакт или номер телефона
	StateRating                  // ожидается оценка 1..5
	StateReviewText              // ожидается текст отзыва
	StateTablesCount             // админ: ожидается новое количество столиков
	StateRejectReason            // админ: ожидается причина отказа или отмены
)

// Draft накапливает данные заявки по мере прохождения диалога.
type Draft struct {
	Type     model.BookingType
	Date     string
	Guests   int
	Rating   int
	TargetID string // для StateRejectReason: какая заявка отклоняется
}

// Session - диалоговое состояние одного пользователя.
type Session struct {
	State State
	Draft Draft
}

// Sessions хранит сессии по Telegram ID пользователя. Сессия создается
// при первом обращении и удаляется при завершении или отмене диалога;
// тайм-аута простоя нет - незавершенный диалог живет до явной отмены.
//
// Обновления одного пользователя транспорт выдает последовательно,
// поэтому к одной сессии никогда не обращаются два хода одновременно;
// мьютекс защищает только саму карту.
type Sessions struct {
	mu     sync.Mutex
	byUser map[int64]*Session
}

// NewSessions создает пустое хранилище сессий.
func NewSessions() *Sessions {
	return &Sessions{byUser: make(map[int64]*Session)}
}

// Get возвращает сессию пользователя, создавая ее при необходимости.
func (s *Sessions) Get(userID int64) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.byUser[userID]
	if !ok {
		sess = &Session{}
		s.byUser[userID] = sess
	}
	return sess
}

// Reset сбрасывает диалог пользователя в исходное состояние.
func (s *Sessions) Reset(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byUser, userID)
}
