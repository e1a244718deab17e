package get_guides

import (
	"context"

	"github.com/m04kA/DCMS-ScheduleService/internal/domain"
)

type RosterService interface {
	GetGuides(ctx context.Context, locationID string) ([]domain.Staff, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
