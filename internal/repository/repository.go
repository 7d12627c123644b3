package repository

import (
	"github.com/n1cash1/ClubOK/internal/model"
)

// Snapshot - полное состояние бота: бронирования, учет столиков и отзывы.
type Snapshot struct {
	Bookings map[string]*model.Booking `json:"bookings"`
	Tables   model.TablesState         `json:"tables"`
	Reviews  map[string]*model.Review  `json:"reviews"`
}

// DefaultSnapshot возвращает состояние по умолчанию для нового заведения:
// 10 столиков, все свободны, ни одной заявки.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		Bookings: make(map[string]*model.Booking),
		Tables:   model.TablesState{Total: 10, Available: 10},
		Reviews:  make(map[string]*model.Review),
	}
}

// Store абстрагирует долговременное хранилище состояния.
// Load возвращает состояние по умолчанию, если прежнего состояния нет
// или оно повреждено. Save-* вызываются синхронно после каждой мутации;
// ошибка сохранения логируется вызывающей стороной, но не откатывает
// изменение в памяти.
type Store interface {
	Load() (Snapshot, error)
	SaveBookings(bookings map[string]*model.Booking, tables model.TablesState) error
	SaveReviews(reviews map[string]*model.Review) error
}

// cloneBookings снимает глубокую копию карты бронирований: хранилище
// не должно удерживать ссылки на записи, которые сервис продолжит менять.
func cloneBookings(src map[string]*model.Booking) map[string]*model.Booking {
	dst := make(map[string]*model.Booking, len(src))
	for id, b := range src {
		copied := *b
		dst[id] = &copied
	}
	return dst
}

func cloneReviews(src map[string]*model.Review) map[string]*model.Review {
	dst := make(map[string]*model.Review, len(src))
	for id, r := range src {
		copied := *r
		dst[id] = &copied
	}
	return dst
}
