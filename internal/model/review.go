package model

import "time"

// Review представляет отзыв посетителя о заведении. Отзыв создается
// один раз и после этого не изменяется.
type Review struct {
	ID        string    `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	UserName  string    `db:"user_name" json:"user_name"`
	Rating    int       `db:"rating" json:"rating"` // оценка от 1 до 5
	Text      string    `db:"text" json:"text"`     // текст отзыва, может быть пустым
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
