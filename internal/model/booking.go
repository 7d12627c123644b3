package model

import "time"

// BookingType определяет тип бронируемого ресурса.
type BookingType string

const (
	BookingCottage BookingType = "cottage" // коттедж (на дату, без учета количества)
	BookingTable   BookingType = "table"   // столик (учитывается количеством)
)

// BookingStatus описывает этап жизненного цикла заявки.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"   // ожидает решения администратора
	StatusConfirmed BookingStatus = "confirmed" // подтверждена администратором
	StatusRejected  BookingStatus = "rejected"  // отклонена или отменена
)

// Booking представляет заявку на бронирование коттеджа или столика.
// Записи никогда не удаляются: отклоненные и подтвержденные заявки
// сохраняются для истории и статистики.
type Booking struct {
	ID        string        `db:"id" json:"id"`
	Type      BookingType   `db:"type" json:"type"`
	Date      string        `db:"date" json:"date"` // дата в формате ДД.ММ.ГГГГ, без времени суток
	Guests    int           `db:"guests" json:"guests"`
	UserID    int64         `db:"user_id" json:"user_id"` // Telegram ID клиента, создавшего заявку
	UserName  string        `db:"user_name" json:"user_name"`
	Phone     string        `db:"phone" json:"phone"` // нормализованный номер: только цифры
	Status    BookingStatus `db:"status" json:"status"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
}

// TablesState хранит учет столиков: общее количество и доступное для брони.
// Инвариант: 0 <= Available <= Total; Total-Available равно числу
// подтвержденных бронирований столиков.
type TablesState struct {
	Total     int `db:"total" json:"total"`
	Available int `db:"available" json:"available"`
}
