package domain

import "errors"

var (
	// ErrMalformedSlotID возвращается, когда идентификатор слота не разбирается
	ErrMalformedSlotID = errors.New("domain: malformed slot id")

	// ErrUnknownSession возвращается при неизвестной лодочной сессии
	ErrUnknownSession = errors.New("domain: unknown boat session")
)
