package imagehost

import "errors"

var (
	// ErrUpload возвращается, когда хостинг отклонил изображение
	ErrUpload = errors.New("imagehost client: upload rejected")

	// ErrUnavailable возвращается, когда хостинг недоступен (сеть, таймаут, 5xx)
	ErrUnavailable = errors.New("imagehost client: service unavailable")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("imagehost client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе хостинга
	ErrInvalidResponse = errors.New("imagehost client: invalid response")
)
