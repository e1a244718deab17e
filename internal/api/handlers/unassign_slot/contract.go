package unassign_slot

import (
	"context"

	"github.com/m04kA/DCMS-ScheduleService/internal/service/assignments"
)

type AssignmentsService interface {
	Unassign(ctx context.Context, req assignments.UnassignRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
