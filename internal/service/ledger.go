package service

// Ledger учитывает общее и доступное количество столиков.
//
// Сам по себе Ledger не потокобезопасен: все обращения сериализуются
// мьютексом BookingService, чтобы последовательность "проверить
// доступность - занять столик" выполнялась в одной критической секции.
type Ledger struct {
	Total     int
	Available int
}

// Committed возвращает число занятых (подтвержденных) столиков.
func (l *Ledger) Committed() int {
	return l.Total - l.Available
}

// Reserve занимает один столик под подтверждаемое бронирование.
func (l *Ledger) Reserve() error {
	if l.Available <= 0 {
		return ErrExhausted
	}
	l.Available--
	return nil
}

// Release возвращает столик после отмены подтвержденного бронирования.
// Доступное количество не может превысить общее.
func (l *Ledger) Release() {
	if l.Available < l.Total {
		l.Available++
	}
}

// Resize меняет общее количество столиков с пересчетом доступных.
// Нельзя установить меньше одного столика и меньше, чем уже занято.
func (l *Ledger) Resize(newTotal int) error {
	if newTotal < 1 {
		return ErrInvalidCapacity
	}
	committed := l.Committed()
	if newTotal < committed {
		return ErrCapacityBelowCommitted
	}
	l.Total = newTotal
	l.Available = newTotal - committed
	return nil
}
