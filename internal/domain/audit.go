package domain

import "time"

// ScheduleOperation вид операции диспетчера над расписанием
type ScheduleOperation string

const (
	OperationAssign       ScheduleOperation = "assign"
	OperationUnassign     ScheduleOperation = "unassign"
	OperationMove         ScheduleOperation = "move"
	OperationAssignGuides ScheduleOperation = "assign_guides"
)

// ScheduleEvent запись журнала операций над расписанием
// Журнал только пишется этим сервисом; чтение - забота отчётности
type ScheduleEvent struct {
	ID         int64
	LocationID string
	OperatorID string
	Operation  ScheduleOperation
	SlotKey    string
	BookingIDs []string
	GuideIDs   []string
	CreatedAt  time.Time
}
