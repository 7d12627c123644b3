package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/n1cash1/ClubOK/internal/model"
)

// Sender покрывает используемую часть Telegram Bot API; *tgbotapi.BotAPI
// удовлетворяет интерфейсу, в тестах подменяется заглушкой.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Dispatcher рассылает уведомления о событиях жизненного цикла
// администраторам и клиентам. События обрабатываются асинхронно одной
// горутиной; переход состояния к этому моменту уже сохранен, поэтому
// сбой доставки никогда его не откатывает. Ошибка по одному получателю
// не мешает доставке остальным; повторных попыток нет.
type Dispatcher struct {
	api    Sender
	admins []int64
	log    *zap.Logger

	queue chan func()
	done  chan struct{}
}

// NewDispatcher создает диспетчер и запускает обработку очереди.
func NewDispatcher(api Sender, admins []int64, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		api:    api,
		admins: admins,
		log:    log,
		queue:  make(chan func(), 64),
		done:   make(chan struct{}),
	}
	go d.run()
	return d
}

func (d *Dispatcher) run() {
	for task := range d.queue {
		task()
	}
	close(d.done)
}

// Close дожидается доставки уже поставленных в очередь уведомлений.
func (d *Dispatcher) Close() {
	close(d.queue)
	<-d.done
}

// BookingRequested уведомляет всех администраторов о новой заявке
// с кнопками подтверждения и отказа.
func (d *Dispatcher) BookingRequested(b model.Booking) {
	text := fmt.Sprintf(
		"📌 Новая заявка на бронирование:\n\n"+
			"🔹 Тип: %s\n🔹 Дата: %s\n🔹 Гостей: %d\n🔹 Клиент: %s\n🔹 Телефон: %s\n\n"+
			"ID брони: %s",
		typeLabel(b.Type), b.Date, b.Guests, b.UserName, b.Phone, b.ID,
	)
	kb := decisionKeyboard(b.ID)
	d.queue <- func() {
		for _, adminID := range d.admins {
			msg := tgbotapi.NewMessage(adminID, text)
			msg.ReplyMarkup = kb
			if _, err := d.api.Send(msg); err != nil {
				d.log.Error("не удалось уведомить администратора",
					zap.Int64("admin_id", adminID), zap.Error(err))
			}
		}
	}
}

// BookingConfirmed уведомляет клиента о подтверждении его бронирования.
func (d *Dispatcher) BookingConfirmed(b model.Booking) {
	text := fmt.Sprintf(
		"🎉 Ваше бронирование подтверждено!\n\n"+
			"🔹 Тип: %s\n🔹 Дата: %s\n🔹 Гостей: %d\n\n"+
			"Ждем вас в ClubOK!",
		typeLabel(b.Type), b.Date, b.Guests,
	)
	d.sendToUser(b.UserID, text)
}

// BookingRejected уведомляет клиента об отказе с причиной от администратора.
func (d *Dispatcher) BookingRejected(b model.Booking, reason string) {
	text := fmt.Sprintf(
		"😔 К сожалению, ваше бронирование отклонено.\n\n"+
			"🔹 Тип: %s\n🔹 Дата: %s\n🔹 Гостей: %d\n\n"+
			"Причина: %s\n\n"+
			"Вы можете создать новое бронирование.",
		typeLabel(b.Type), b.Date, b.Guests, reason,
	)
	d.sendToUser(b.UserID, text)
}

// ReviewReceived уведомляет администраторов о новом отзыве.
func (d *Dispatcher) ReviewReceived(r model.Review) {
	text := fmt.Sprintf("⭐️ Новый отзыв!\n\nОценка: %d/5", r.Rating)
	if r.Text != "" {
		text += fmt.Sprintf("\nОтзыв: %s", r.Text)
	}
	d.queue <- func() {
		for _, adminID := range d.admins {
			if _, err := d.api.Send(tgbotapi.NewMessage(adminID, text)); err != nil {
				d.log.Error("не удалось уведомить администратора об отзыве",
					zap.Int64("admin_id", adminID), zap.Error(err))
			}
		}
	}
}

func (d *Dispatcher) sendToUser(userID int64, text string) {
	d.queue <- func() {
		if _, err := d.api.Send(tgbotapi.NewMessage(userID, text)); err != nil {
			d.log.Error("не удалось уведомить клиента",
				zap.Int64("user_id", userID), zap.Error(err))
		}
	}
}
