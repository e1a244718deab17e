package get_day_schedule

import (
	"context"
	"time"

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
	ListBookings(ctx context.Context, locationID string, from, to time.Time) ([]*domain.Booking, error)
	ListBoats(ctx context.Context, locationID string) ([]domain.Boat, error)
	ListDiveSites(ctx context.Context, locationID string) ([]domain.DiveSite, error)
}

// PendingGuidesRepo интерфейс репозитория отложенных назначений гидов
type PendingGuidesRepo interface {
	ListByLocation(ctx context.Context, locationID string) (map[string][]string, error)
}
