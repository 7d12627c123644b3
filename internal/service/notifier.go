package service

import "github.com/n1cash1/ClubOK/internal/model"

// Notifier доставляет уведомления о событиях жизненного цикла заявок
// и отзывов. Вызывается после того, как переход состояния уже сохранен:
// доставка best-effort, ошибки по отдельным получателям логируются
// реализацией и не возвращаются вызывающей стороне.
type Notifier interface {
	// BookingRequested уведомляет администраторов о новой заявке
	// с возможностью подтвердить или отклонить ее.
	BookingRequested(b model.Booking)
	// BookingConfirmed уведомляет клиента о подтверждении.
	BookingConfirmed(b model.Booking)
	// BookingRejected уведомляет клиента об отказе с причиной.
	BookingRejected(b model.Booking, reason string)
	// ReviewReceived уведомляет администраторов о новом отзыве.
	ReviewReceived(r model.Review)
}
