package divecenter

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено в основном сервисе
	ErrBookingNotFound = errors.New("divecenter client: booking not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("divecenter client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе основного сервиса
	ErrInvalidResponse = errors.New("divecenter client: invalid response")
)
