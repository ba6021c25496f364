package create_public_booking

import "errors"

var (
	// ErrInvalidInput не заполнены обязательные поля, в БД ничего не отправлялось
	ErrInvalidInput = errors.New("create_public_booking: invalid input data")

	// ErrInvalidDate возвращается при дате не в формате YYYY-MM-DD или в прошлом
	ErrInvalidDate = errors.New("create_public_booking: invalid booking date")

	// ErrSlotNotFound слота с таким id на эту дату нет
	ErrSlotNotFound = errors.New("create_public_booking: slot not found")

	// ErrSlotNotAvailable слот заполнен, отключён или уже прошёл
	ErrSlotNotAvailable = errors.New("create_public_booking: slot is not available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_public_booking: internal error")
)
