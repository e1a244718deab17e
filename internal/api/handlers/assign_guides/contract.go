package assign_guides

import (
	"context"

	"github.com/m04kA/DCMS-ScheduleService/internal/service/assignments"
)

type AssignmentsService interface {
	AssignGuides(ctx context.Context, req assignments.AssignGuidesRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
