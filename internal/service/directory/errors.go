package directory

import "errors"

var (
	// ErrNotFound запись справочника не найдена
	ErrNotFound = errors.New("directory entry not found")

	// ErrAlreadyExists email или имя уже заняты
	ErrAlreadyExists = errors.New("directory entry already exists")

	// ErrAccessDenied изменять справочники может только администратор
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
