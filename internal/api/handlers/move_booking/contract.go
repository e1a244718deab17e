package move_booking

import (
	"context"

	"github.com/m04kA/DCMS-ScheduleService/internal/service/assignments"
)

type AssignmentsService interface {
	Move(ctx context.Context, req assignments.MoveRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
