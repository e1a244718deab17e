package assignments

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrLaneMismatch возвращается при попытке назначить бронирование в слот
	// чужой линии (береговая активность на лодку и наоборот)
	ErrLaneMismatch = errors.New("booking activity does not match slot lane")

	// ErrBookingIneligible возвращается для бронирований с неизвестным типом
	// активности: они видимы, но не подлежат назначению
	ErrBookingIneligible = errors.New("booking is not eligible for slot assignment")

	// ErrGuideNotEligible возвращается, если гид не найден среди персонала
	// с допустимыми ролями
	ErrGuideNotEligible = errors.New("guide is not in the eligible staff roster")

	// ErrPersistence возвращается при отказе записи в основной сервис,
	// соответствующая оптимистичная мутация при этом откачена
	ErrPersistence = errors.New("failed to persist assignment")

	// ErrInternal возвращается при внутренней ошибке сервиса
	ErrInternal = errors.New("internal error")
)
