package bot

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
)

func TestParseMessage_Buttons(t *testing.T) {
	cases := map[string]Intent{
		btnBookCottage: IntentBookCottage,
		btnBookTable:   IntentBookTable,
		btnTip:         IntentTip,
		btnReview:      IntentLeaveReview,
		btnCancel:      IntentCancel,
		btnManualPhone: IntentManualPhone,
		btnSkip:        IntentSkip,
		btnAdminStats:  IntentAdminStats,
		btnAdminList:   IntentAdminList,
		btnAdminCancel: IntentAdminCancel,
		btnAdminResize: IntentAdminResize,
		btnMainMenu:    IntentMainMenu,
	}
	for text, want := range cases {
		in := parseMessage(&tgbotapi.Message{Text: text})
		assert.Equal(t, want, in.Intent, "кнопка %q", text)
	}
}

func TestParseMessage_StartCommand(t *testing.T) {
	msg := &tgbotapi.Message{
		Text:     "/start",
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: 6}},
	}
	assert.Equal(t, IntentStart, parseMessage(msg).Intent)

	// Другие команды не считаются стартом.
	msg = &tgbotapi.Message{
		Text:     "/help",
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: 5}},
	}
	assert.Equal(t, IntentText, parseMessage(msg).Intent)
}

func TestParseMessage_Rating(t *testing.T) {
	for text, want := range ratingTokens {
		in := parseMessage(&tgbotapi.Message{Text: text})
		assert.Equal(t, IntentRating, in.Intent)
		assert.Equal(t, want, in.Rating)
	}

	// Похожий, но не точный текст - обычное сообщение.
	in := parseMessage(&tgbotapi.Message{Text: "⭐️ 6"})
	assert.Equal(t, IntentText, in.Intent)
	in = parseMessage(&tgbotapi.Message{Text: "5"})
	assert.Equal(t, IntentText, in.Intent)
}

func TestParseMessage_Contact(t *testing.T) {
	msg := &tgbotapi.Message{
		Contact: &tgbotapi.Contact{PhoneNumber: "+7 (999) 123-45-67"},
	}
	in := parseMessage(msg)
	assert.Equal(t, IntentContact, in.Intent)
	assert.Equal(t, "79991234567", in.Phone)
}

func TestParseMessage_PlainText(t *testing.T) {
	in := parseMessage(&tgbotapi.Message{Text: "15.06.2026"})
	assert.Equal(t, IntentText, in.Intent)
	assert.Equal(t, "15.06.2026", in.Text)
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "79991234567", normalizePhone("+7 (999) 123-45-67"))
	assert.Equal(t, "89991234567", normalizePhone("8 999 123 45 67"))
	assert.Equal(t, "", normalizePhone("нет номера"))
}
