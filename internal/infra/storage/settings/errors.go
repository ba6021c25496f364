package settings

import "errors"

var (
	// ErrSettingsNotFound запись настроек ещё не создана
	ErrSettingsNotFound = errors.New("settings.repository: settings not found")

	// ErrSchemaMismatch колонка отсутствует или её тип не принимает значение
	ErrSchemaMismatch = errors.New("settings.repository: schema mismatch")

	ErrBuildQuery = errors.New("settings.repository: failed to build query")
	ErrExecQuery  = errors.New("settings.repository: failed to execute query")
	ErrScanRow    = errors.New("settings.repository: failed to scan row")
	ErrEncode     = errors.New("settings.repository: failed to encode tutorials")
)
