package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrDuplicateID возвращается, когда тикет с таким номером уже существует
	ErrDuplicateID = errors.New("booking id already exists")

	// ErrAccessDenied возвращается, когда у пользователя нет прав (проверка рекомендательная)
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidStatus возвращается при попытке установить недопустимый статус
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrExport возвращается, если не удалось сформировать файл выгрузки
	ErrExport = errors.New("export failed")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
