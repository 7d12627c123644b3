package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/n1cash1/ClubOK/internal/model"
)

// FileStore хранит состояние в одном JSON-файле (data.json).
// Файл перезаписывается целиком при каждом сохранении, поэтому стор
// удерживает копию последнего известного состояния обеих частей.
type FileStore struct {
	mu   sync.Mutex
	path string
	snap Snapshot
	log  *zap.Logger
}

// NewFileStore создает файловое хранилище по указанному пути.
func NewFileStore(path string, log *zap.Logger) *FileStore {
	return &FileStore{path: path, snap: DefaultSnapshot(), log: log}
}

// Load читает состояние из файла. Если файла нет или он поврежден,
// создается новый файл с состоянием по умолчанию.
func (f *FileStore) Load() (Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	raw, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			f.log.Warn("файл данных не найден, создается новый", zap.String("path", f.path))
			f.snap = DefaultSnapshot()
			return f.snap, f.writeLocked()
		}
		return DefaultSnapshot(), fmt.Errorf("не удалось прочитать файл данных: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		f.log.Error("ошибка чтения JSON, создается новый файл данных", zap.Error(err))
		f.snap = DefaultSnapshot()
		return f.snap, f.writeLocked()
	}

	// Восстанавливаем недостающие части структуры.
	if snap.Bookings == nil {
		snap.Bookings = make(map[string]*model.Booking)
	}
	if snap.Reviews == nil {
		snap.Reviews = make(map[string]*model.Review)
	}
	if snap.Tables.Total == 0 && snap.Tables.Available == 0 {
		snap.Tables = DefaultSnapshot().Tables
	}

	f.snap = snap
	return snap, nil
}

// SaveBookings сохраняет бронирования вместе с учетом столиков.
func (f *FileStore) SaveBookings(bookings map[string]*model.Booking, tables model.TablesState) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snap.Bookings = cloneBookings(bookings)
	f.snap.Tables = tables
	return f.writeLocked()
}

// SaveReviews сохраняет отзывы.
func (f *FileStore) SaveReviews(reviews map[string]*model.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snap.Reviews = cloneReviews(reviews)
	return f.writeLocked()
}

func (f *FileStore) writeLocked() error {
	raw, err := json.MarshalIndent(f.snap, "", "  ")
	if err != nil {
		return fmt.Errorf("не удалось сериализовать данные: %w", err)
	}
	if err := os.WriteFile(f.path, raw, 0o644); err != nil {
		return fmt.Errorf("не удалось сохранить файл данных: %w", err)
	}
	return nil
}
