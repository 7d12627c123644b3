package bot

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Подписи кнопок меню. Намерение пользователя определяется один раз
// на границе транспорта, дальше обработчики работают с закрытым
// перечислением Intent, а не с текстом кнопок.
const (
	btnBookCottage = "🏠 Забронировать коттедж"
	btnBookTable   = "🍾 Забронировать столик"
	btnTip         = "💸 Оставить чаевые"
	btnReview      = "⭐️ Оставить отзыв"

	btnAdminStats  = "📊 Статистика"
	btnAdminList   = "📋 Список бронирований"
	btnAdminCancel = "❌ Отменить бронирование"
	btnAdminResize = "✏️ Изменить кол-во столиков"
	btnMainMenu    = "🔙 В главное меню"

	btnCancel      = "🔙 Отменить"
	btnManualPhone = "📞 Ввести номер вручную"
	btnSendContact = "📱 Отправить контакт"
	btnSkip        = "Пропустить"
)

// Intent - распознанное намерение входящего сообщения.
type Intent int

const (
	IntentText Intent = iota // произвольный текст, интерпретируется состоянием диалога
	IntentStart
	IntentBookCottage
	IntentBookTable
	IntentTip
	IntentLeaveReview
	IntentCancel
	IntentManualPhone
	IntentSkip
	IntentContact
	IntentRating
	IntentAdminStats
	IntentAdminList
	IntentAdminCancel
	IntentAdminResize
	IntentMainMenu
)

// Input - разобранное входящее сообщение.
type Input struct {
	Intent Intent
	Text   string
	Phone  string // для IntentContact
	Rating int    // для IntentRating, 1..5
}

// ratingTokens - допустимые подписи оценок; любой другой текст в состоянии
// выбора оценки молча игнорируется.
var ratingTokens = map[string]int{
	"⭐️ 1": 1,
	"⭐️ 2": 2,
	"⭐️ 3": 3,
	"⭐️ 4": 4,
	"⭐️ 5": 5,
}

// parseMessage классифицирует входящее сообщение Telegram.
func parseMessage(msg *tgbotapi.Message) Input {
	if msg.Contact != nil {
		return Input{Intent: IntentContact, Phone: normalizePhone(msg.Contact.PhoneNumber)}
	}
	if msg.IsCommand() && msg.Command() == "start" {
		return Input{Intent: IntentStart}
	}
	if rating, ok := ratingTokens[msg.Text]; ok {
		return Input{Intent: IntentRating, Rating: rating, Text: msg.Text}
	}

	switch msg.Text {
	case btnBookCottage:
		return Input{Intent: IntentBookCottage}
	case btnBookTable:
		return Input{Intent: IntentBookTable}
	case btnTip:
		return Input{Intent: IntentTip}
	case btnReview:
		return Input{Intent: IntentLeaveReview}
	case btnCancel:
		return Input{Intent: IntentCancel}
	case btnManualPhone:
		return Input{Intent: IntentManualPhone}
	case btnSkip:
		return Input{Intent: IntentSkip, Text: msg.Text}
	case btnAdminStats:
		return Input{Intent: IntentAdminStats}
	case btnAdminList:
		return Input{Intent: IntentAdminList}
	case btnAdminCancel:
		return Input{Intent: IntentAdminCancel}
	case btnAdminResize:
		return Input{Intent: IntentAdminResize}
	case btnMainMenu:
		return Input{Intent: IntentMainMenu}
	}
	return Input{Intent: IntentText, Text: msg.Text}
}

// normalizePhone оставляет в номере только цифры.
func normalizePhone(raw string) string {
	var sb strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
