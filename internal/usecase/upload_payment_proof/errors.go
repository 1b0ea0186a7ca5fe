package upload_payment_proof

import "errors"

var (
	// ErrInvalidImage возвращается, когда файл пустой, не картинка или не читается
	ErrInvalidImage = errors.New("upload_payment_proof: invalid image")

	// ErrImageTooLarge возвращается при превышении допустимого размера файла
	ErrImageTooLarge = errors.New("upload_payment_proof: image too large")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("upload_payment_proof: booking not found")

	// ErrAccessDenied возвращается, когда бронирование принадлежит другому пользователю
	ErrAccessDenied = errors.New("upload_payment_proof: access denied")

	// ErrInvalidStatus возвращается, когда бронирование не ожидает чек
	ErrInvalidStatus = errors.New("upload_payment_proof: booking is not awaiting payment proof")

	// ErrUpstream возвращается, когда хостинг изображений недоступен или отклонил файл
	ErrUpstream = errors.New("upload_payment_proof: image host failed")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("upload_payment_proof: internal error")
)
