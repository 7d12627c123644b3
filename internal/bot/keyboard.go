package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/n1cash1/ClubOK/internal/model"
)

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnBookCottage)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnBookTable)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnTip)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnReview)),
	)
	kb.ResizeKeyboard = true
	return kb
}

func adminMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnAdminStats)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnAdminList)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnAdminCancel)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnAdminResize)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnMainMenu)),
	)
	kb.ResizeKeyboard = true
	return kb
}

func cancelKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnCancel)),
	)
	kb.ResizeKeyboard = true
	return kb
}

func contactKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButtonContact(btnSendContact)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnManualPhone)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnCancel)),
	)
	kb.ResizeKeyboard = true
	return kb
}

func ratingKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton("⭐️ 1"), tgbotapi.NewKeyboardButton("⭐️ 2")),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton("⭐️ 3"), tgbotapi.NewKeyboardButton("⭐️ 4")),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton("⭐️ 5"), tgbotapi.NewKeyboardButton(btnCancel)),
	)
	kb.ResizeKeyboard = true
	return kb
}

func reviewTextKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnSkip)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnCancel)),
	)
	kb.ResizeKeyboard = true
	return kb
}

// decisionKeyboard - inline-кнопки подтверждения и отказа для администраторов.
func decisionKeyboard(bookingID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Подтвердить", decisionToken(DecisionConfirm, bookingID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ Отклонить", decisionToken(DecisionReject, bookingID)),
		),
	)
}

func tipKeyboard(url string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonURL("💖 Перейти к оплате", url)),
	)
}

// bookingListKeyboard строит список бронирований, по кнопке на заявку.
func bookingListKeyboard(bookings []model.Booking, kind DecisionKind) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(bookings))
	for _, b := range bookings {
		var label string
		switch kind {
		case DecisionInfo:
			label = fmt.Sprintf("%s %s на %s", statusIcon(b.Status), typeLabel(b.Type), b.Date)
		default:
			label = fmt.Sprintf("%s на %s (%d чел.)", typeLabel(b.Type), b.Date, b.Guests)
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, decisionToken(kind, b.ID)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func statusIcon(status model.BookingStatus) string {
	switch status {
	case model.StatusPending:
		return "🟡"
	case model.StatusConfirmed:
		return "🟢"
	default:
		return "🔴"
	}
}

func typeLabel(t model.BookingType) string {
	if t == model.BookingCottage {
		return "Коттедж"
	}
	return "Столик"
}
