package roster

import (
	"context"

	"github.com/m04kA/DCMS-ScheduleService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// DiveCenterClient интерфейс клиента основного сервиса дайв-центра
type DiveCenterClient interface {
	ListStaff(ctx context.Context, locationID string, roles []domain.StaffRole) ([]domain.Staff, error)
}
