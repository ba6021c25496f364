package get_available_slots

import "errors"

var (
	// ErrInvalidDate возвращается при дате не в формате YYYY-MM-DD
	ErrInvalidDate = errors.New("invalid booking date")

	// ErrDateInPast возвращается для дат раньше сегодняшней
	ErrDateInPast = errors.New("date is in the past")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
