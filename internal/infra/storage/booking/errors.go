package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrDuplicateID возвращается, когда тикет с таким номером уже есть
	ErrDuplicateID = errors.New("booking.repository: booking id already exists")

	// ErrUndefinedColumn таблица не знает одну из колонок запроса (SQLSTATE 42703)
	ErrUndefinedColumn = errors.New("booking.repository: undefined column")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")

	// ErrEncodeHistory возвращается, если журнал не удалось сериализовать
	ErrEncodeHistory = errors.New("booking.repository: failed to encode history")
)
