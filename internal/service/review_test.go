package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/n1cash1/ClubOK/internal/model"
	"github.com/n1cash1/ClubOK/internal/repository"
)

func newTestReviewService(t *testing.T) (*ReviewService, *BookingService, *MockNotifier) {
	t.Helper()
	bookings, store, notifier := newTestService(model.TablesState{Total: 10, Available: 10})
	store.On("SaveReviews", mock.Anything).Return(nil)
	notifier.On("ReviewReceived", mock.Anything).Return()

	snap := repository.Snapshot{Reviews: make(map[string]*model.Review)}
	reviews := NewReviewService(snap, bookings, store, notifier, zap.NewNop())
	return reviews, bookings, notifier
}

func confirmBookingFor(t *testing.T, bookings *BookingService, userID int64) {
	t.Helper()
	b, err := bookings.Create(tableDraft(userID, "01.06.2026"))
	require.NoError(t, err)
	_, err = bookings.Confirm(b.ID, adminID)
	require.NoError(t, err)
}

func TestCreateReview_RequiresConfirmedBooking(t *testing.T) {
	reviews, _, notifier := newTestReviewService(t)

	_, err := reviews.Create(100, "Иван", 5, "отлично")
	assert.ErrorIs(t, err, ErrNotVisited)
	notifier.AssertNumberOfCalls(t, "ReviewReceived", 0)
}

func TestCreateReview_InvalidRating(t *testing.T) {
	reviews, bookings, _ := newTestReviewService(t)
	confirmBookingFor(t, bookings, 100)

	for _, rating := range []int{0, -1, 6} {
		_, err := reviews.Create(100, "Иван", rating, "")
		assert.ErrorIs(t, err, ErrInvalidRating)
	}
}

func TestCreateReview_Success(t *testing.T) {
	reviews, bookings, notifier := newTestReviewService(t)
	confirmBookingFor(t, bookings, 100)

	r, err := reviews.Create(100, "Иван", 4, "Уютно и вкусно")
	require.NoError(t, err)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, 4, r.Rating)
	assert.Equal(t, "Уютно и вкусно", r.Text)
	notifier.AssertNumberOfCalls(t, "ReviewReceived", 1)

	// Пустой текст допустим (кнопка "Пропустить").
	_, err = reviews.Create(100, "Иван", 5, "")
	require.NoError(t, err)

	st := reviews.Stats()
	assert.Equal(t, 2, st.Count)
	assert.InDelta(t, 4.5, st.Average, 0.001)
	assert.Len(t, reviews.All(), 2)
}

func TestReviewStats_Empty(t *testing.T) {
	reviews, _, _ := newTestReviewService(t)
	st := reviews.Stats()
	assert.Equal(t, 0, st.Count)
	assert.Equal(t, 0.0, st.Average)
}
