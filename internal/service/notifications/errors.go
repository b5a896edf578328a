package notifications

import "errors"

var (
	// ErrInvalidType возвращается при неизвестном типе уведомления
	ErrInvalidType = errors.New("notifications: invalid notification type")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("notifications: invalid input data")
)
