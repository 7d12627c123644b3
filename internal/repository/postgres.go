package repository

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/n1cash1/ClubOK/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS bookings (
	id         TEXT PRIMARY KEY,
	type       TEXT NOT NULL,
	date       TEXT NOT NULL,
	guests     INT NOT NULL,
	user_id    BIGINT NOT NULL,
	user_name  TEXT NOT NULL,
	phone      TEXT NOT NULL,
	status     TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS reviews (
	id         TEXT PRIMARY KEY,
	user_id    BIGINT NOT NULL,
	user_name  TEXT NOT NULL,
	rating     INT NOT NULL,
	text       TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS tables_state (
	id        INT PRIMARY KEY,
	total     INT NOT NULL,
	available INT NOT NULL
);`

// PostgresStore хранит состояние в PostgreSQL через sqlx.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore создает хранилище и при необходимости создает таблицы.
func NewPostgresStore(db *sqlx.DB) (*PostgresStore, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("не удалось создать схему базы данных: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// Load читает полное состояние из базы. Если учет столиков еще не
// инициализирован, возвращается значение по умолчанию.
func (s *PostgresStore) Load() (Snapshot, error) {
	snap := DefaultSnapshot()

	var bookings []model.Booking
	if err := s.db.Select(&bookings, "SELECT * FROM bookings"); err != nil {
		return snap, fmt.Errorf("не удалось загрузить бронирования: %w", err)
	}
	for i := range bookings {
		snap.Bookings[bookings[i].ID] = &bookings[i]
	}

	var reviews []model.Review
	if err := s.db.Select(&reviews, "SELECT * FROM reviews"); err != nil {
		return snap, fmt.Errorf("не удалось загрузить отзывы: %w", err)
	}
	for i := range reviews {
		snap.Reviews[reviews[i].ID] = &reviews[i]
	}

	var tables model.TablesState
	err := s.db.Get(&tables, "SELECT total, available FROM tables_state WHERE id=1")
	switch {
	case err == sql.ErrNoRows:
		// Нет прежнего состояния - оставляем значение по умолчанию.
	case err != nil:
		return snap, fmt.Errorf("не удалось загрузить учет столиков: %w", err)
	default:
		snap.Tables = tables
	}

	return snap, nil
}

// SaveBookings записывает бронирования и учет столиков в одной транзакции.
func (s *PostgresStore) SaveBookings(bookings map[string]*model.Booking, tables model.TablesState) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("не удалось начать транзакцию: %w", err)
	}
	defer tx.Rollback()

	const upsert = `INSERT INTO bookings (id, type, date, guests, user_id, user_name, phone, status, created_at)
		VALUES (:id, :type, :date, :guests, :user_id, :user_name, :phone, :status, :created_at)
		ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status`
	for _, b := range bookings {
		if _, err := tx.NamedExec(upsert, b); err != nil {
			return fmt.Errorf("не удалось сохранить бронирование %s: %w", b.ID, err)
		}
	}

	const upsertTables = `INSERT INTO tables_state (id, total, available) VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE SET total = EXCLUDED.total, available = EXCLUDED.available`
	if _, err := tx.Exec(upsertTables, tables.Total, tables.Available); err != nil {
		return fmt.Errorf("не удалось сохранить учет столиков: %w", err)
	}

	return tx.Commit()
}

// SaveReviews записывает отзывы. Отзывы неизменяемы, поэтому конфликт
// по идентификатору игнорируется.
func (s *PostgresStore) SaveReviews(reviews map[string]*model.Review) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("не удалось начать транзакцию: %w", err)
	}
	defer tx.Rollback()

	const upsert = `INSERT INTO reviews (id, user_id, user_name, rating, text, created_at)
		VALUES (:id, :user_id, :user_name, :rating, :text, :created_at)
		ON CONFLICT (id) DO NOTHING`
	for _, r := range reviews {
		if _, err := tx.NamedExec(upsert, r); err != nil {
			return fmt.Errorf("не удалось сохранить отзыв %s: %w", r.ID, err)
		}
	}

	return tx.Commit()
}
