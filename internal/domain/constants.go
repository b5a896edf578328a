package domain

// Default configuration values
const (
	DefaultSlotDurationMinutes = 30
)

// Business validation constants
const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 480 // 8 hours

	// CancellationNoticeHours минимальное время до начала бронирования,
	// при котором разрешены отмена и перенос
	CancellationNoticeHours = 24

	MinReviewRating = 1
	MaxReviewRating = 5

	MinDiscountPercent = 1
	MaxDiscountPercent = 100

	MaxNotesLength   = 500
	MaxCommentLength = 1000
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, при которых бронирование занимает слот
// Используется при подсчете доступных слотов
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses статусы, при которых бронирование слот не занимает
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusCompleted,
}
