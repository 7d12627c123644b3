package service

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/n1cash1/ClubOK/internal/model"
	"github.com/n1cash1/ClubOK/internal/repository"
)

// ReviewStats - сводка по отзывам для статистики.
type ReviewStats struct {
	Count   int
	Average float64
}

// ReviewService хранит отзывы посетителей. Оставить отзыв может только
// пользователь с подтвержденным бронированием; созданный отзыв не меняется.
type ReviewService struct {
	mu      sync.Mutex
	reviews map[string]*model.Review

	bookings *BookingService
	store    repository.Store
	notifier Notifier
	log      *zap.Logger
	now      func() time.Time
}

// NewReviewService создает сервис отзывов поверх загруженного состояния.
func NewReviewService(snap repository.Snapshot, bookings *BookingService, store repository.Store, notifier Notifier, log *zap.Logger) *ReviewService {
	return &ReviewService{
		reviews:  snap.Reviews,
		bookings: bookings,
		store:    store,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

// Create сохраняет новый отзыв и уведомляет администраторов.
// Текст может быть пустым, оценка - от 1 до 5.
func (s *ReviewService) Create(userID int64, userName string, rating int, text string) (model.Review, error) {
	if rating < 1 || rating > 5 {
		return model.Review{}, ErrInvalidRating
	}
	if !s.bookings.HasConfirmedBooking(userID) {
		return model.Review{}, ErrNotVisited
	}

	r := &model.Review{
		ID:        uuid.NewString(),
		UserID:    userID,
		UserName:  userName,
		Rating:    rating,
		Text:      text,
		CreatedAt: s.now(),
	}

	s.mu.Lock()
	s.reviews[r.ID] = r
	if err := s.store.SaveReviews(s.reviews); err != nil {
		s.log.Error("не удалось сохранить отзывы", zap.Error(err))
	}
	created := *r
	s.mu.Unlock()

	if s.notifier != nil {
		s.notifier.ReviewReceived(created)
	}
	return created, nil
}

// Stats возвращает количество отзывов и средний рейтинг.
func (s *ReviewService) Stats() ReviewStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := ReviewStats{Count: len(s.reviews)}
	if st.Count == 0 {
		return st
	}
	sum := 0
	for _, r := range s.reviews {
		sum += r.Rating
	}
	st.Average = float64(sum) / float64(st.Count)
	return st
}

// All возвращает все отзывы, новые первыми.
func (s *ReviewService) All() []model.Review {
	s.mu.Lock()
	out := make([]model.Review, 0, len(s.reviews))
	for _, r := range s.reviews {
		out = append(out, *r)
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}
