package settings

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных значениях конфигурации
	ErrInvalidInput = errors.New("invalid config data")

	// ErrInvalidTimeFormat возвращается при неверном формате времени (ожидается HH:MM)
	ErrInvalidTimeFormat = errors.New("invalid time format, expected HH:MM")

	// ErrInvalidWorkingHours возвращается, если время закрытия не позже открытия
	ErrInvalidWorkingHours = errors.New("close time must be after open time")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
