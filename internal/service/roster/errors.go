package roster

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при ошибке получения ростера
	ErrInternal = errors.New("internal error")
)
