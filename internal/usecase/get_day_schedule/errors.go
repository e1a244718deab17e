package get_day_schedule

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренней ошибке получения расписания
	ErrInternal = errors.New("internal error")
)
