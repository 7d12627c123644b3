package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/n1cash1/ClubOK/internal/model"
	"github.com/n1cash1/ClubOK/internal/service"
)

const dateLayout = "02.01.2006"

// Handler обрабатывает входящие обновления Telegram: продвигает диалоговые
// сессии пользователей и исполняет решения администраторов.
type Handler struct {
	api       Sender
	bookings  *service.BookingService
	reviews   *service.ReviewService
	sessions  *Sessions
	donateURL string
	log       *zap.Logger
}

// NewHandler создает обработчик обновлений.
func NewHandler(api Sender, bookings *service.BookingService, reviews *service.ReviewService, donateURL string, log *zap.Logger) *Handler {
	return &Handler{
		api:       api,
		bookings:  bookings,
		reviews:   reviews,
		sessions:  NewSessions(),
		donateURL: donateURL,
		log:       log,
	}
}

// HandleUpdate обрабатывает одно обновление. Любая неожиданная ошибка шага
// сбрасывает сессию пользователя в исходное состояние, чтобы диалог не
// застрял на полпути.
func (h *Handler) HandleUpdate(update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		cq := update.CallbackQuery
		defer h.recoverStep(cq.From.ID, cq.From.ID)
		h.handleCallback(cq)
	case update.Message != nil && update.Message.From != nil:
		msg := update.Message
		defer h.recoverStep(msg.From.ID, msg.Chat.ID)
		h.handleMessage(msg)
	}
}

func (h *Handler) recoverStep(userID, chatID int64) {
	if r := recover(); r != nil {
		h.log.Error("необработанная ошибка в диалоге",
			zap.Int64("user_id", userID), zap.Any("panic", r))
		h.sessions.Reset(userID)
		h.reply(chatID, "⚠️ Произошла ошибка. Пожалуйста, попробуйте позже.", h.menuFor(userID))
	}
}

// --- Сообщения ---

func (h *Handler) handleMessage(msg *tgbotapi.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID
	in := parseMessage(msg)
	sess := h.sessions.Get(userID)

	// Универсальная отмена: срабатывает из любого незавершенного состояния
	// раньше любой валидации.
	if in.Intent == IntentCancel && sess.State != StateIdle {
		text := "❌ Действие отменено."
		switch sess.State {
		case StateChoosingDate, StateChoosingGuests, StateCollectingContact:
			text = "❌ Бронирование отменено."
		case StateRating, StateReviewText:
			text = "❌ Отзыв не сохранен."
		}
		h.sessions.Reset(userID)
		h.reply(chatID, text, h.menuFor(userID))
		return
	}

	switch sess.State {
	case StateIdle:
		h.stepIdle(chatID, msg, in)
	case StateChoosingDate:
		h.stepDate(chatID, sess, in)
	case StateChoosingGuests:
		h.stepGuests(chatID, sess, in)
	case StateCollectingContact:
		h.stepContact(chatID, msg, sess, in)
	case StateRating:
		h.stepRating(chatID, sess, in)
	case StateReviewText:
		h.stepReviewText(chatID, msg, sess, in)
	case StateTablesCount:
		h.stepTablesCount(chatID, userID, in)
	case StateRejectReason:
		h.stepRejectReason(chatID, userID, sess, in)
	}
}

func (h *Handler) stepIdle(chatID int64, msg *tgbotapi.Message, in Input) {
	userID := msg.From.ID
	sess := h.sessions.Get(userID)

	switch in.Intent {
	case IntentStart:
		if h.bookings.IsAdmin(userID) {
			h.reply(chatID, "👋 Добро пожаловать в админ-панель ClubOK!", adminMenuKeyboard())
		} else {
			h.reply(chatID, "🎉 Добро пожаловать в ClubOK!", mainMenuKeyboard())
		}

	case IntentBookCottage:
		sess.State = StateChoosingDate
		sess.Draft = Draft{Type: model.BookingCottage}
		h.reply(chatID, "📅 На какую дату вы хотите забронировать коттедж? (ДД.ММ.ГГГГ)", cancelKeyboard())

	case IntentBookTable:
		if h.bookings.Tables().Available <= 0 {
			h.reply(chatID, "😔 К сожалению, сейчас нет свободных столиков.", nil)
			return
		}
		sess.State = StateChoosingDate
		sess.Draft = Draft{Type: model.BookingTable}
		h.reply(chatID, "📅 На какую дату вы хотите забронировать столик? (ДД.ММ.ГГГГ)", cancelKeyboard())

	case IntentTip:
		h.reply(chatID, "💌 Благодарим за вашу щедрость!", tipKeyboard(h.donateURL))

	case IntentLeaveReview:
		if !h.bookings.HasConfirmedBooking(userID) {
			h.reply(chatID, "❌ Вы можете оставить отзыв только после посещения нашего заведения.", nil)
			return
		}
		sess.State = StateRating
		h.reply(chatID, "Оцените ваш визит от 1 до 5 звезд:", ratingKeyboard())

	case IntentAdminStats:
		if !h.requireAdmin(chatID, userID) {
			return
		}
		h.reply(chatID, h.statsText(), nil)

	case IntentAdminList:
		if !h.requireAdmin(chatID, userID) {
			return
		}
		recent := h.bookings.Recent(10)
		if len(recent) == 0 {
			h.reply(chatID, "Пока нет бронирований.", nil)
			return
		}
		h.replyWithInline(chatID, "📋 Последние бронирования:", bookingListKeyboard(recent, DecisionInfo))

	case IntentAdminCancel:
		if !h.requireAdmin(chatID, userID) {
			return
		}
		confirmed := h.bookings.ConfirmedRecent(10)
		if len(confirmed) == 0 {
			h.reply(chatID, "❌ Нет активных бронирований для отмены.", nil)
			return
		}
		h.replyWithInline(chatID, "📋 Выберите бронирование для отмены:", bookingListKeyboard(confirmed, DecisionCancel))

	case IntentAdminResize:
		if !h.requireAdmin(chatID, userID) {
			return
		}
		tables := h.bookings.Tables()
		sess.State = StateTablesCount
		h.reply(chatID, fmt.Sprintf(
			"✏️ Текущее количество столиков: %d\nДоступно: %d\n\nВведите новое общее количество столиков:",
			tables.Total, tables.Available), cancelKeyboard())

	case IntentMainMenu:
		h.reply(chatID, "Главное меню:", mainMenuKeyboard())
	}
	// Прочий текст в исходном состоянии игнорируется.
}

func (h *Handler) stepDate(chatID int64, sess *Session, in Input) {
	date, err := time.Parse(dateLayout, strings.TrimSpace(in.Text))
	if err != nil {
		h.reply(chatID, "❌ Неверный формат даты. Пожалуйста, введите дату в формате ДД.ММ.ГГГГ:", nil)
		return
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if date.Before(today) {
		h.reply(chatID, fmt.Sprintf("❌ Нельзя забронировать %s на прошедшую дату. Введите корректную дату:",
			typeLabelAccusative(sess.Draft.Type)), nil)
		return
	}
	if date.Sub(today) > 365*24*time.Hour {
		h.reply(chatID, "❌ Бронирование возможно только на даты в течение года. Введите другую дату:", nil)
		return
	}

	canonical := date.Format(dateLayout)
	if sess.Draft.Type == model.BookingCottage && !h.bookings.IsCottageDateAvailable(canonical) {
		h.reply(chatID, "❌ К сожалению, коттедж на эту дату уже забронирован. Выберите другую дату:", nil)
		return
	}

	sess.Draft.Date = canonical
	sess.State = StateChoosingGuests
	h.reply(chatID, "👥 Укажите количество гостей:", cancelKeyboard())
}

func (h *Handler) stepGuests(chatID int64, sess *Session, in Input) {
	guests, err := strconv.Atoi(strings.TrimSpace(in.Text))
	if err != nil {
		h.reply(chatID, "❌ Пожалуйста, введите число:", cancelKeyboard())
		return
	}

	maxGuests := 20
	rangeMsg := "❌ Количество гостей должно быть от 1 до 20. Введите корректное число:"
	if sess.Draft.Type == model.BookingTable {
		maxGuests = 10
		rangeMsg = "❌ Количество гостей за 1 стол должно быть от 1 до 10. Введите корректное число:"
	}
	if guests < 1 || guests > maxGuests {
		h.reply(chatID, rangeMsg, cancelKeyboard())
		return
	}

	sess.Draft.Guests = guests
	sess.State = StateCollectingContact
	h.reply(chatID, "📞 Пожалуйста, поделитесь вашим контактом для подтверждения бронирования:", contactKeyboard())
}

func (h *Handler) stepContact(chatID int64, msg *tgbotapi.Message, sess *Session, in Input) {
	switch in.Intent {
	case IntentContact:
		h.createBooking(chatID, msg, sess, in.Phone)
	case IntentManualPhone:
		h.reply(chatID, "📱 Введите ваш номер телефона в формате +79991234567:", cancelKeyboard())
	default:
		phone := normalizePhone(in.Text)
		if len(phone) < 11 {
			h.reply(chatID, "❌ Неверный формат телефона. Пожалуйста, введите номер в формате +79991234567:", nil)
			return
		}
		h.createBooking(chatID, msg, sess, phone)
	}
}

func (h *Handler) createBooking(chatID int64, msg *tgbotapi.Message, sess *Session, phone string) {
	userID := msg.From.ID
	draft := service.Draft{
		Type:     sess.Draft.Type,
		Date:     sess.Draft.Date,
		Guests:   sess.Draft.Guests,
		UserID:   userID,
		UserName: displayName(msg.From),
		Phone:    phone,
	}
	h.sessions.Reset(userID)

	_, err := h.bookings.Create(draft)
	switch {
	case errors.Is(err, service.ErrDuplicatePending):
		h.reply(chatID, "⚠️ У вас уже есть ожидающее бронирование на эту дату.", h.menuFor(userID))
	case err != nil:
		h.log.Error("не удалось создать бронирование", zap.Error(err))
		h.reply(chatID, "⚠️ Произошла ошибка. Пожалуйста, попробуйте позже.", h.menuFor(userID))
	default:
		h.reply(chatID, "✅ Ваша заявка принята! Ожидайте подтверждения от администратора.", h.menuFor(userID))
	}
}

func (h *Handler) stepRating(chatID int64, sess *Session, in Input) {
	// Любой текст, кроме точной подписи оценки, молча игнорируется:
	// пользователь остается в том же состоянии.
	if in.Intent != IntentRating {
		return
	}
	sess.Draft.Rating = in.Rating
	sess.State = StateReviewText
	h.reply(chatID, "Напишите ваш отзыв (или нажмите 'Пропустить'):", reviewTextKeyboard())
}

func (h *Handler) stepReviewText(chatID int64, msg *tgbotapi.Message, sess *Session, in Input) {
	userID := msg.From.ID
	text := in.Text
	if in.Intent == IntentSkip {
		text = ""
	}
	rating := sess.Draft.Rating
	h.sessions.Reset(userID)

	_, err := h.reviews.Create(userID, displayName(msg.From), rating, text)
	switch {
	case errors.Is(err, service.ErrNotVisited):
		h.reply(chatID, "❌ Вы можете оставить отзыв только после посещения нашего заведения.", h.menuFor(userID))
	case err != nil:
		h.log.Error("не удалось сохранить отзыв", zap.Error(err))
		h.reply(chatID, "⚠️ Произошла ошибка. Пожалуйста, попробуйте позже.", h.menuFor(userID))
	default:
		h.reply(chatID, "Спасибо за ваш отзыв!", h.menuFor(userID))
	}
}

func (h *Handler) stepTablesCount(chatID, userID int64, in Input) {
	count, err := strconv.Atoi(strings.TrimSpace(in.Text))
	if err != nil {
		h.reply(chatID, "❌ Пожалуйста, введите число:", nil)
		return
	}

	tables, err := h.bookings.Resize(count, userID)
	switch {
	case errors.Is(err, service.ErrInvalidCapacity):
		h.reply(chatID, "❌ Количество столиков должно быть положительным числом. Введите корректное значение:", nil)
	case errors.Is(err, service.ErrCapacityBelowCommitted):
		h.reply(chatID, fmt.Sprintf("❌ Нельзя установить меньше %d столиков (уже забронировано).",
			tables.Total-tables.Available), nil)
	case errors.Is(err, service.ErrAccessDenied):
		h.sessions.Reset(userID)
		h.reply(chatID, "⛔ Доступ запрещен!", nil)
	case err != nil:
		h.sessions.Reset(userID)
		h.log.Error("не удалось изменить количество столиков", zap.Error(err))
		h.reply(chatID, "⚠️ Произошла ошибка. Пожалуйста, попробуйте позже.", adminMenuKeyboard())
	default:
		h.sessions.Reset(userID)
		h.reply(chatID, fmt.Sprintf("✅ Количество столиков изменено. Теперь доступно %d/%d",
			tables.Available, tables.Total), adminMenuKeyboard())
	}
}

func (h *Handler) stepRejectReason(chatID, userID int64, sess *Session, in Input) {
	reason := strings.TrimSpace(in.Text)
	if reason == "" {
		h.reply(chatID, "📝 Укажите причину отказа (это сообщение увидит клиент):", nil)
		return
	}

	targetID := sess.Draft.TargetID
	h.sessions.Reset(userID)

	b, err := h.bookings.Reject(targetID, userID, reason)
	switch {
	case errors.Is(err, service.ErrNotFound):
		h.reply(chatID, "❌ Бронирование не найдено!", adminMenuKeyboard())
	case errors.Is(err, service.ErrAlreadyDecided):
		h.reply(chatID, "ℹ️ Это бронирование уже обработано!", adminMenuKeyboard())
	case err != nil:
		h.log.Error("не удалось отклонить бронирование", zap.Error(err))
		h.reply(chatID, "⚠️ Произошла ошибка. Пожалуйста, попробуйте позже.", adminMenuKeyboard())
	default:
		h.reply(chatID, fmt.Sprintf("✅ Клиент уведомлен об отмене бронирования.\nID: %s\nПричина: %s",
			b.ID, reason), adminMenuKeyboard())
	}
}

// --- Callback-кнопки ---

func (h *Handler) handleCallback(cq *tgbotapi.CallbackQuery) {
	actor := cq.From.ID
	if !h.bookings.IsAdmin(actor) {
		h.answerCallback(cq.ID, "⛔ Доступ запрещен!")
		return
	}

	dec, ok := parseDecision(cq.Data)
	if !ok {
		h.answerCallback(cq.ID, "")
		return
	}

	switch dec.Kind {
	case DecisionConfirm:
		h.decideConfirm(cq, dec.BookingID)
	case DecisionReject:
		h.askRejectReason(cq, dec.BookingID, false)
	case DecisionCancel:
		h.askRejectReason(cq, dec.BookingID, true)
	case DecisionInfo:
		h.showBookingInfo(cq, dec.BookingID)
	}
}

func (h *Handler) decideConfirm(cq *tgbotapi.CallbackQuery, bookingID string) {
	b, err := h.bookings.Confirm(bookingID, cq.From.ID)
	switch {
	case errors.Is(err, service.ErrNotFound):
		h.answerCallback(cq.ID, "❌ Бронирование не найдено!")
	case errors.Is(err, service.ErrAlreadyDecided):
		h.answerCallback(cq.ID, "ℹ️ Это бронирование уже обработано!")
	case errors.Is(err, service.ErrInsufficientCapacity):
		h.answerCallback(cq.ID, "❌ Нет свободных столиков!")
	case errors.Is(err, service.ErrDateTaken):
		h.answerCallback(cq.ID, "❌ Дата уже занята другим бронированием!")
	case err != nil:
		h.log.Error("не удалось подтвердить бронирование", zap.Error(err))
		h.answerCallback(cq.ID, "⚠️ Произошла ошибка")
	default:
		h.answerCallback(cq.ID, "")
		if cq.Message != nil {
			edit := tgbotapi.NewEditMessageText(cq.Message.Chat.ID, cq.Message.MessageID,
				fmt.Sprintf("✅ Бронирование %s подтверждено!", b.ID))
			if _, err := h.api.Send(edit); err != nil {
				h.log.Error("не удалось обновить сообщение", zap.Error(err))
			}
		}
	}
}

// askRejectReason проверяет заявку и открывает одношаговый диалог сбора
// причины; сам отказ выполняется, когда администратор пришлет причину.
func (h *Handler) askRejectReason(cq *tgbotapi.CallbackQuery, bookingID string, cancelConfirmed bool) {
	b, err := h.bookings.Get(bookingID)
	if err != nil {
		h.answerCallback(cq.ID, "❌ Бронирование не найдено!")
		return
	}
	if cancelConfirmed && b.Status != model.StatusConfirmed {
		h.answerCallback(cq.ID, "ℹ️ Это бронирование уже отменено или не подтверждено!")
		return
	}
	if !cancelConfirmed && b.Status != model.StatusPending {
		h.answerCallback(cq.ID, "ℹ️ Это бронирование уже обработано!")
		return
	}

	sess := h.sessions.Get(cq.From.ID)
	sess.State = StateRejectReason
	sess.Draft = Draft{TargetID: bookingID}
	h.answerCallback(cq.ID, "")

	prompt := "📝 Укажите причину отказа (это сообщение увидит клиент):"
	if cancelConfirmed {
		prompt = "📝 Укажите причину отмены (это сообщение увидит клиент):"
	}
	h.reply(cq.From.ID, prompt, nil)
}

func (h *Handler) showBookingInfo(cq *tgbotapi.CallbackQuery, bookingID string) {
	b, err := h.bookings.Get(bookingID)
	if err != nil {
		h.answerCallback(cq.ID, "❌ Бронирование не найдено!")
		return
	}
	h.answerCallback(cq.ID, "")
	h.reply(cq.From.ID, fmt.Sprintf(
		"📋 Информация о бронировании:\n\n"+
			"🔹 ID: %s\n🔹 Тип: %s\n🔹 Дата: %s\n🔹 Гостей: %d\n🔹 Клиент: %s\n🔹 Телефон: %s\n🔹 Статус: %s\n🔹 Создано: %s",
		b.ID, typeLabel(b.Type), b.Date, b.Guests, b.UserName, b.Phone,
		statusText(b.Status), b.CreatedAt.Format("02.01.2006 15:04")), nil)
}

// --- Вспомогательные ---

func (h *Handler) requireAdmin(chatID, userID int64) bool {
	if h.bookings.IsAdmin(userID) {
		return true
	}
	h.reply(chatID, "⛔ Доступ запрещен!", nil)
	return false
}

func (h *Handler) statsText() string {
	st := h.bookings.Stats()
	rs := h.reviews.Stats()
	return fmt.Sprintf(
		"📊 Статистика:\n\n"+
			"📌 Бронирования:\n⏳ Ожидают: %d\n✅ Подтверждены: %d\n❌ Отклонены: %d\n\n"+
			"🍾 Столики:\nДоступно: %d/%d\n\n"+
			"⭐️ Отзывы:\nСредний рейтинг: %.1f/5\nВсего отзывов: %d",
		st.Pending, st.Confirmed, st.Rejected,
		st.Tables.Available, st.Tables.Total,
		rs.Average, rs.Count,
	)
}

func (h *Handler) menuFor(userID int64) tgbotapi.ReplyKeyboardMarkup {
	if h.bookings.IsAdmin(userID) {
		return adminMenuKeyboard()
	}
	return mainMenuKeyboard()
}

func (h *Handler) reply(chatID int64, text string, keyboard interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	if keyboard != nil {
		msg.ReplyMarkup = keyboard
	}
	if _, err := h.api.Send(msg); err != nil {
		h.log.Error("не удалось отправить сообщение", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (h *Handler) replyWithInline(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	if _, err := h.api.Send(msg); err != nil {
		h.log.Error("не удалось отправить сообщение", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (h *Handler) answerCallback(id, text string) {
	if _, err := h.api.Request(tgbotapi.NewCallback(id, text)); err != nil {
		h.log.Error("не удалось ответить на callback", zap.Error(err))
	}
}

func displayName(u *tgbotapi.User) string {
	if u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	return u.FirstName
}

func typeLabelAccusative(t model.BookingType) string {
	if t == model.BookingCottage {
		return "коттедж"
	}
	return "столик"
}

func statusText(status model.BookingStatus) string {
	switch status {
	case model.StatusPending:
		return "⏳ Ожидает подтверждения"
	case model.StatusConfirmed:
		return "✅ Подтверждено"
	default:
		return "❌ Отклонено"
	}
}
