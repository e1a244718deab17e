package assignments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DCMS-ScheduleService/internal/domain"
)

func assignedBooking(id, rawSlotID string) *domain.Booking {
	return &domain.Booking{
		ID:             id,
		ActivityType:   domain.ActivityDiscovery,
		SlotAssignment: domain.NewShoreAssignmentFromRaw(rawSlotID),
	}
}

func TestStoreAssignUnassignIdempotence(t *testing.T) {
	store := NewStore()

	store.Assign("b1", "shore-2026-07-01-09-30")
	store.Unassign("b1")

	assert.Empty(t, store.Bookings("shore-2026-07-01-09-30"))
	_, ok := store.SlotOf("b1")
	assert.False(t, ok)
}

func TestStoreExclusivity(t *testing.T) {
	store := NewStore()

	store.Assign("b1", "shore-2026-07-01-09-30")
	store.Assign("b1", "shore-2026-07-01-10-00")

	assert.Empty(t, store.Bookings("shore-2026-07-01-09-30"))
	assert.Equal(t, []string{"b1"}, store.Bookings("shore-2026-07-01-10-00"))

	slot, ok := store.SlotOf("b1")
	require.True(t, ok)
	assert.Equal(t, "shore-2026-07-01-10-00", slot)
}

func TestStoreUnionMerge(t *testing.T) {
	store := NewStore()

	// Перезагрузка стартует до локального назначения и привозит снимок,
	// в котором b1 ещё не назначен
	token := store.BeginReload()
	store.Assign("b1", "shore-2026-07-01-09-30")

	store.ApplyReload(token, []*domain.Booking{
		assignedBooking("b2", "shore-2026-07-01-10-00"),
	})

	assert.Equal(t, []string{"b1"}, store.Bookings("shore-2026-07-01-09-30"))
	assert.Equal(t, []string{"b2"}, store.Bookings("shore-2026-07-01-10-00"))
}

func TestStoreStaleReloadDoesNotResurrectRemoval(t *testing.T) {
	store := NewStore()
	store.Assign("b1", "shore-2026-07-01-09-30")

	// Снимок сделан до снятия и всё ещё содержит b1
	token := store.BeginReload()
	store.Unassign("b1")

	store.ApplyReload(token, []*domain.Booking{
		assignedBooking("b1", "shore-2026-07-01-09-30"),
	})

	assert.Empty(t, store.Bookings("shore-2026-07-01-09-30"))
}

func TestStoreConfirmedOpsAreForgotten(t *testing.T) {
	store := NewStore()
	store.Assign("b1", "shore-2026-07-01-09-30")

	// Перезагрузка после мутации: снимок авторитетен
	token := store.BeginReload()
	store.ApplyReload(token, []*domain.Booking{
		assignedBooking("b1", "shore-2026-07-01-09-30"),
	})
	assert.Equal(t, []string{"b1"}, store.Bookings("shore-2026-07-01-09-30"))

	// Следующий снимок без b1 больше не перекрывается старой мутацией
	token = store.BeginReload()
	store.ApplyReload(token, nil)
	assert.Empty(t, store.Bookings("shore-2026-07-01-09-30"))
}

func TestStoreRestoreCancelsFailedAssign(t *testing.T) {
	store := NewStore()

	prev := store.Assign("b1", "shore-2026-07-01-09-30")
	require.Nil(t, prev)
	store.Restore("b1", prev)

	assert.Empty(t, store.Bookings("shore-2026-07-01-09-30"))

	// Откат переживает устаревшую перезагрузку со снимком до отката
	token := store.BeginReload()
	store.ApplyReload(token, nil)
	assert.Empty(t, store.Bookings("shore-2026-07-01-09-30"))
}

func TestStoreRestorePreviousSlot(t *testing.T) {
	store := NewStore()
	store.Assign("b1", "shore-2026-07-01-09-30")

	prev := store.Assign("b1", "shore-2026-07-01-10-00")
	require.NotNil(t, prev)
	store.Restore("b1", prev)

	assert.Equal(t, []string{"b1"}, store.Bookings("shore-2026-07-01-09-30"))
	assert.Empty(t, store.Bookings("shore-2026-07-01-10-00"))
}

func TestStoreGuidesSurviveReload(t *testing.T) {
	store := NewStore()

	token := store.BeginReload()
	store.SetGuides("boat-w-morning", []string{"g1"})

	store.ApplyReload(token, nil)
	assert.Equal(t, []string{"g1"}, store.Guides("boat-w-morning"))

	// Подтверждённый набор гидов уступает следующему снимку
	token = store.BeginReload()
	store.ApplyReload(token, nil)
	assert.Empty(t, store.Guides("boat-w-morning"))
}

func TestStoreOrderPreserved(t *testing.T) {
	store := NewStore()
	store.Assign("b1", "boat-w-morning")
	store.Assign("b2", "boat-w-morning")
	store.Assign("b3", "boat-w-morning")

	assert.Equal(t, []string{"b1", "b2", "b3"}, store.Bookings("boat-w-morning"))

	store.Unassign("b2")
	assert.Equal(t, []string{"b1", "b3"}, store.Bookings("boat-w-morning"))
}
