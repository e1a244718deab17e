package assign_booking

import (
	"context"

	"github.com/m04kA/DCMS-ScheduleService/internal/service/assignments"
)

type AssignmentsService interface {
	Assign(ctx context.Context, req assignments.AssignRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
