package service

import "errors"

// Ошибки бизнес-логики. Обработчики сопоставляют их через errors.Is и
// отвечают пользователю конкретным сообщением; ни одна из них не должна
// приводить к падению диалога.
var (
	ErrNotFound               = errors.New("бронирование не найдено")
	ErrAlreadyDecided         = errors.New("бронирование уже обработано")
	ErrDuplicatePending       = errors.New("уже есть ожидающая заявка на эту дату")
	ErrInsufficientCapacity   = errors.New("нет свободных столиков")
	ErrExhausted              = errors.New("свободные столики закончились")
	ErrInvalidCapacity        = errors.New("недопустимое количество столиков")
	ErrCapacityBelowCommitted = errors.New("меньше уже забронированного количества столиков")
	ErrDateTaken              = errors.New("дата уже занята подтвержденным бронированием")
	ErrAccessDenied           = errors.New("доступ запрещен")
	ErrEmptyReason            = errors.New("причина отказа обязательна")
	ErrInvalidRating          = errors.New("оценка должна быть от 1 до 5")
	ErrNotVisited             = errors.New("отзыв доступен только после посещения заведения")
)
