package guides

import "errors"

var (
	// ErrPendingNotFound возвращается, когда для слота нет отложенных гидов
	ErrPendingNotFound = errors.New("guides.repository: pending guide assignment not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("guides.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("guides.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("guides.repository: failed to scan row")
)
