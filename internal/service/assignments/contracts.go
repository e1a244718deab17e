package assignments

import (
	"context"
	"time"

	"github.com/m04kA/DCMS-ScheduleService/internal/domain"
	"github.com/m04kA/DCMS-ScheduleService/internal/integrations/divecenter"
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
	ListStaff(ctx context.Context, locationID string, roles []domain.StaffRole) ([]domain.Staff, error)
	UpdateBookingSlot(ctx context.Context, bookingID string, patch divecenter.BookingSlotPatch) error
}

// PendingGuidesRepo интерфейс репозитория отложенных назначений гидов
type PendingGuidesRepo interface {
	Upsert(ctx context.Context, locationID, slotKey string, guideIDs []string) error
	Get(ctx context.Context, locationID, slotKey string) ([]string, error)
	Delete(ctx context.Context, locationID, slotKey string) error
}

// AuditRepo интерфейс репозитория журнала операций
type AuditRepo interface {
	Insert(ctx context.Context, event *domain.ScheduleEvent) error
}

// TxManager интерфейс менеджера транзакций
type TxManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}
