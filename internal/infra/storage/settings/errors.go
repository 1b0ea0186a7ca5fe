package settings

import "errors"

var (
	// ErrConfigNotFound возвращается, когда конфигурация салона ещё не сохранялась
	ErrConfigNotFound = errors.New("settings.repository: config not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("settings.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("settings.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("settings.repository: failed to scan row")

	// ErrEncode возвращается при ошибке (де)сериализации документа конфигурации
	ErrEncode = errors.New("settings.repository: failed to encode config")
)
