package slots

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден на эту дату
	ErrSlotNotFound = errors.New("slot not found")

	// ErrSlotExists возвращается при повторном создании слота с тем же id
	ErrSlotExists = errors.New("slot already exists")

	// ErrVirtualSlot виртуальный слот нельзя удалить, его можно только выключить
	ErrVirtualSlot = errors.New("virtual slot cannot be deleted")

	// ErrAccessDenied изменять расписание может только администратор
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
