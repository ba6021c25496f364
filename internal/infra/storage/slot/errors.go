package slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot.repository: slot not found")

	// ErrSlotExists возвращается, когда слот с таким id уже есть на эту дату
	ErrSlotExists = errors.New("slot.repository: slot already exists")

	ErrBuildQuery = errors.New("slot.repository: failed to build query")
	ErrExecQuery  = errors.New("slot.repository: failed to execute query")
	ErrScanRow    = errors.New("slot.repository: failed to scan row")
)
