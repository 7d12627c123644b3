package bot

import "strings"

// DecisionKind - вид действия, закодированного в callback-кнопке
// администратора.
type DecisionKind string

const (
	DecisionConfirm DecisionKind = "confirm" // подтвердить ожидающую заявку
	DecisionReject  DecisionKind = "reject"  // отклонить ожидающую заявку
	DecisionCancel  DecisionKind = "cancel"  // отменить подтвержденное бронирование
	DecisionInfo    DecisionKind = "info"    // показать карточку бронирования
)

// Decision - разобранный токен решения: вид действия и целевая заявка.
type Decision struct {
	Kind      DecisionKind
	BookingID string
}

// decisionToken кодирует действие и идентификатор заявки в callback data.
func decisionToken(kind DecisionKind, bookingID string) string {
	return string(kind) + "_" + bookingID
}

// parseDecision разбирает callback data. Неизвестный формат не считается
// решением и молча игнорируется.
func parseDecision(data string) (Decision, bool) {
	kind, id, ok := strings.Cut(data, "_")
	if !ok || id == "" {
		return Decision{}, false
	}
	switch DecisionKind(kind) {
	case DecisionConfirm, DecisionReject, DecisionCancel, DecisionInfo:
		return Decision{Kind: DecisionKind(kind), BookingID: id}, true
	}
	return Decision{}, false
}
