package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/n1cash1/ClubOK/internal/service"
)

// Handler структурирует зависимости сервисов для обработки HTTP-запросов
// read-only API.
type Handler struct {
	Bookings *service.BookingService
	Reviews  *service.ReviewService
}

// NewHandler создает новый Handler с внедрением зависимостей (сервисов).
func NewHandler(bookings *service.BookingService, reviews *service.ReviewService) *Handler {
	return &Handler{Bookings: bookings, Reviews: reviews}
}

// ListBookings обработчик для GET /api/bookings - все заявки, новые первыми.
func (h *Handler) ListBookings(c *gin.Context) {
	c.JSON(http.StatusOK, h.Bookings.Recent(0))
}

// ListReviews обработчик для GET /api/reviews - все отзывы.
func (h *Handler) ListReviews(c *gin.Context) {
	c.JSON(http.StatusOK, h.Reviews.All())
}

// Stats обработчик для GET /api/stats - сводка по заявкам, столикам и отзывам.
func (h *Handler) Stats(c *gin.Context) {
	st := h.Bookings.Stats()
	rs := h.Reviews.Stats()
	c.JSON(http.StatusOK, gin.H{
		"bookings": gin.H{
			"pending":   st.Pending,
			"confirmed": st.Confirmed,
			"rejected":  st.Rejected,
		},
		"tables": st.Tables,
		"reviews": gin.H{
			"count":          rs.Count,
			"average_rating": rs.Average,
		},
	})
}
