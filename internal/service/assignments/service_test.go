package assignments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DCMS-ScheduleService/internal/domain"
	"github.com/m04kA/DCMS-ScheduleService/internal/infra/storage/guides"
	"github.com/m04kA/DCMS-ScheduleService/internal/integrations/divecenter"
	"github.com/m04kA/DCMS-ScheduleService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type recordedPatch struct {
	bookingID string
	patch     divecenter.BookingSlotPatch
}

// fakeClient хранит бронирования в памяти и применяет к ним патчи,
// чтобы перезагрузка видела персистентное состояние
type fakeClient struct {
	bookings []*domain.Booking
	staff    []domain.Staff
	patches  []recordedPatch

	failPatch func(bookingID string, patch divecenter.BookingSlotPatch) error
}

func (c *fakeClient) ListBookings(_ context.Context, _ string, _, _ time.Time) ([]*domain.Booking, error) {
	out := make([]*domain.Booking, len(c.bookings))
	for i, b := range c.bookings {
		clone := *b
		out[i] = &clone
	}
	return out, nil
}

func (c *fakeClient) ListStaff(_ context.Context, _ string, _ []domain.StaffRole) ([]domain.Staff, error) {
	return c.staff, nil
}

func (c *fakeClient) UpdateBookingSlot(_ context.Context, bookingID string, patch divecenter.BookingSlotPatch) error {
	if c.failPatch != nil {
		if err := c.failPatch(bookingID, patch); err != nil {
			return err
		}
	}

	for _, b := range c.bookings {
		if b.ID != bookingID {
			continue
		}
		b.SlotAssignment = patch.SlotAssignment
		if patch.BoatID != nil {
			b.BoatID = patch.BoatID
		} else if patch.ClearBoat {
			b.BoatID = nil
		}
		c.patches = append(c.patches, recordedPatch{bookingID: bookingID, patch: patch})
		return nil
	}
	return divecenter.ErrBookingNotFound
}

type fakeGuidesRepo struct {
	pending map[string][]string
}

func newFakeGuidesRepo() *fakeGuidesRepo {
	return &fakeGuidesRepo{pending: make(map[string][]string)}
}

func (r *fakeGuidesRepo) key(locationID, slotKey string) string {
	return locationID + "|" + slotKey
}

func (r *fakeGuidesRepo) Upsert(_ context.Context, locationID, slotKey string, guideIDs []string) error {
	r.pending[r.key(locationID, slotKey)] = guideIDs
	return nil
}

func (r *fakeGuidesRepo) Get(_ context.Context, locationID, slotKey string) ([]string, error) {
	ids, ok := r.pending[r.key(locationID, slotKey)]
	if !ok {
		return nil, guides.ErrPendingNotFound
	}
	return ids, nil
}

func (r *fakeGuidesRepo) Delete(_ context.Context, locationID, slotKey string) error {
	key := r.key(locationID, slotKey)
	if _, ok := r.pending[key]; !ok {
		return guides.ErrPendingNotFound
	}
	delete(r.pending, key)
	return nil
}

type fakeAuditRepo struct {
	events []*domain.ScheduleEvent
}

func (r *fakeAuditRepo) Insert(_ context.Context, event *domain.ScheduleEvent) error {
	r.events = append(r.events, event)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func testDate() time.Time {
	return time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
}

func shoreSlot(start string) domain.SlotID {
	id, err := domain.ParseSlotID("shore-2026-07-01-" + start)
	if err != nil {
		panic(err)
	}
	return id
}

func newTestService(client *fakeClient) (*Service, *fakeGuidesRepo, *fakeAuditRepo) {
	guidesRepo := newFakeGuidesRepo()
	auditRepo := &fakeAuditRepo{}
	svc := NewService(client, guidesRepo, auditRepo, fakeTxManager{}, nopLogger{})
	return svc, guidesRepo, auditRepo
}

func TestAssignShore(t *testing.T) {
	client := &fakeClient{
		bookings: []*domain.Booking{
			{ID: "b1", ActivityType: domain.ActivityDiscovery, BookingDate: testDate()},
		},
	}
	svc, _, auditRepo := newTestService(client)

	err := svc.Assign(context.Background(), AssignRequest{
		LocationID: "loc1",
		OperatorID: "op1",
		BookingID:  "b1",
		SlotID:     shoreSlot("09-30"),
	})
	require.NoError(t, err)

	require.Len(t, client.patches, 1)
	patch := client.patches[0].patch
	require.NotNil(t, patch.SlotAssignment)
	assert.Equal(t, domain.SlotKindShore, patch.SlotAssignment.Kind)
	assert.Equal(t, "shore-2026-07-01-09-30", patch.SlotAssignment.SlotID)
	assert.True(t, patch.ClearBoat)

	store := svc.storeFor("loc1", testDate())
	assert.Equal(t, []string{"b1"}, store.Bookings("shore-2026-07-01-09-30"))

	require.Len(t, auditRepo.events, 1)
	assert.Equal(t, domain.OperationAssign, auditRepo.events[0].Operation)
	assert.Equal(t, []string{"b1"}, auditRepo.events[0].BookingIDs)
}

func TestAssignBoatSetsBoatReference(t *testing.T) {
	client := &fakeClient{
		bookings: []*domain.Booking{
			{ID: "b1", ActivityType: domain.ActivityDiving, BookingDate: testDate()},
		},
	}
	svc, _, _ := newTestService(client)

	slotID, err := domain.ParseSlotID("boat-whitey-morning")
	require.NoError(t, err)

	err = svc.Assign(context.Background(), AssignRequest{
		LocationID: "loc1",
		OperatorID: "op1",
		BookingID:  "b1",
		SlotID:     slotID,
		Date:       testDate(),
	})
	require.NoError(t, err)

	require.Len(t, client.patches, 1)
	patch := client.patches[0].patch
	require.NotNil(t, patch.BoatID)
	assert.Equal(t, "whitey", *patch.BoatID)
	assert.Equal(t, domain.SessionMorning, patch.SlotAssignment.Session)
}

func TestAssignRollbackOnPersistFailure(t *testing.T) {
	client := &fakeClient{
		bookings: []*domain.Booking{
			{ID: "b1", ActivityType: domain.ActivityDiscovery, BookingDate: testDate()},
		},
		failPatch: func(string, divecenter.BookingSlotPatch) error {
			return errors.New("write rejected")
		},
	}
	svc, _, auditRepo := newTestService(client)

	err := svc.Assign(context.Background(), AssignRequest{
		LocationID: "loc1",
		OperatorID: "op1",
		BookingID:  "b1",
		SlotID:     shoreSlot("09-30"),
	})
	assert.ErrorIs(t, err, ErrPersistence)

	store := svc.storeFor("loc1", testDate())
	assert.Empty(t, store.Bookings("shore-2026-07-01-09-30"))
	assert.Empty(t, auditRepo.events)
}

func TestAssignUnknownBookingIsNoop(t *testing.T) {
	client := &fakeClient{}
	svc, _, _ := newTestService(client)

	err := svc.Assign(context.Background(), AssignRequest{
		LocationID: "loc1",
		OperatorID: "op1",
		BookingID:  "ghost",
		SlotID:     shoreSlot("09-30"),
	})
	assert.NoError(t, err)
	assert.Empty(t, client.patches)
}

func TestAssignLaneMismatch(t *testing.T) {
	client := &fakeClient{
		bookings: []*domain.Booking{
			{ID: "b1", ActivityType: domain.ActivityDiving, BookingDate: testDate()},
		},
	}
	svc, _, _ := newTestService(client)

	err := svc.Assign(context.Background(), AssignRequest{
		LocationID: "loc1",
		OperatorID: "op1",
		BookingID:  "b1",
		SlotID:     shoreSlot("09-30"),
	})
	assert.ErrorIs(t, err, ErrLaneMismatch)
	assert.Empty(t, client.patches)
}

func TestAssignIneligibleBooking(t *testing.T) {
	client := &fakeClient{
		bookings: []*domain.Booking{
			{ID: "b1", ActivityType: domain.ActivityType("night_safari"), BookingDate: testDate()},
		},
	}
	svc, _, _ := newTestService(client)

	err := svc.Assign(context.Background(), AssignRequest{
		LocationID: "loc1",
		OperatorID: "op1",
		BookingID:  "b1",
		SlotID:     shoreSlot("09-30"),
	})
	assert.ErrorIs(t, err, ErrBookingIneligible)
}

func TestAssignConsumesPendingGuides(t *testing.T) {
	client := &fakeClient{
		bookings: []*domain.Booking{
			{ID: "b1", ActivityType: domain.ActivityDiscovery, BookingDate: testDate()},
		},
	}
	svc, guidesRepo, _ := newTestService(client)

	require.NoError(t, guidesRepo.Upsert(context.Background(), "loc1", "shore-2026-07-01-09-30", []string{"g1", "g2"}))

	err := svc.Assign(context.Background(), AssignRequest{
		LocationID: "loc1",
		OperatorID: "op1",
		BookingID:  "b1",
		SlotID:     shoreSlot("09-30"),
	})
	require.NoError(t, err)

	require.Len(t, client.patches, 1)
	assert.Equal(t, []string{"g1", "g2"}, client.patches[0].patch.SlotAssignment.GuideIDs)

	// Отложенный набор потреблён первым бронированием
	_, err = guidesRepo.Get(context.Background(), "loc1", "shore-2026-07-01-09-30")
	assert.ErrorIs(t, err, guides.ErrPendingNotFound)
}

func TestUnassignSingleBooking(t *testing.T) {
	client := &fakeClient{
		bookings: []*domain.Booking{
			{
				ID:             "b1",
				ActivityType:   domain.ActivityDiscovery,
				BookingDate:    testDate(),
				SlotAssignment: domain.NewShoreAssignmentFromRaw("shore-2026-07-01-09-30"),
			},
			{
				ID:             "b2",
				ActivityType:   domain.ActivityDiscovery,
				BookingDate:    testDate(),
				SlotAssignment: domain.NewShoreAssignmentFromRaw("shore-2026-07-01-09-30"),
			},
		},
	}
	svc, _, auditRepo := newTestService(client)

	err := svc.Unassign(context.Background(), UnassignRequest{
		LocationID: "loc1",
		OperatorID: "op1",
		SlotID:     shoreSlot("09-30"),
		BookingID:  ptr.Ptr("b1"),
	})
	require.NoError(t, err)

	require.Len(t, client.patches, 1)
	assert.Equal(t, "b1", client.patches[0].bookingID)
	assert.Nil(t, client.patches[0].patch.SlotAssignment)

	store := svc.storeFor("loc1", testDate())
	assert.Equal(t, []string{"b2"}, store.Bookings("shore-2026-07-01-09-30"))

	require.Len(t, auditRepo.events, 1)
	assert.Equal(t, domain.OperationUnassign, auditRepo.events[0].Operation)
}

func TestUnassignAllClearsBoatReference(t *testing.T) {
	client := &fakeClient{
		bookings: []*domain.Booking{
			{
				ID:             "b1",
				ActivityType:   domain.ActivityDiving,
				BookingDate:    testDate(),
				BoatID:         ptr.Ptr("whitey"),
				SlotAssignment: domain.NewBoatAssignment("whitey", domain.SessionMorning),
			},
			{
				ID:             "b2",
				ActivityType:   domain.ActivityDiving,
				BookingDate:    testDate(),
				BoatID:         ptr.Ptr("whitey"),
				SlotAssignment: domain.NewBoatAssignment("whitey", domain.SessionMorning),
			},
		},
	}
	svc, _, _ := newTestService(client)

	slotID, err := domain.ParseSlotID("boat-whitey-morning")
	require.NoError(t, err)

	err = svc.Unassign(context.Background(), UnassignRequest{
		LocationID: "loc1",
		OperatorID: "op1",
		SlotID:     slotID,
		Date:       testDate(),
	})
	require.NoError(t, err)

	require.Len(t, client.patches, 2)
	for _, recorded := range client.patches {
		assert.Nil(t, recorded.patch.SlotAssignment)
		assert.True(t, recorded.patch.ClearBoat)
	}
	for _, b := range client.bookings {
		assert.Nil(t, b.SlotAssignment)
		assert.Nil(t, b.BoatID)
	}
}

func TestMoveSecondHalfFailureLeavesUnassigned(t *testing.T) {
	client := &fakeClient{
		bookings: []*domain.Booking{
			{
				ID:             "b1",
				ActivityType:   domain.ActivityDiscovery,
				BookingDate:    testDate(),
				SlotAssignment: domain.NewShoreAssignmentFromRaw("shore-2026-07-01-09-30"),
			},
		},
	}
	// Снятие проходит, назначение отклоняется
	client.failPatch = func(_ string, patch divecenter.BookingSlotPatch) error {
		if patch.SlotAssignment != nil {
			return errors.New("write rejected")
		}
		return nil
	}
	svc, _, _ := newTestService(client)

	err := svc.Move(context.Background(), MoveRequest{
		LocationID: "loc1",
		OperatorID: "op1",
		BookingID:  "b1",
		FromSlotID: shoreSlot("09-30"),
		ToSlotID:   shoreSlot("10-00"),
	})
	assert.ErrorIs(t, err, ErrPersistence)

	// Принятый режим отказа: бронирование осталось неназначенным
	assert.Nil(t, client.bookings[0].SlotAssignment)
	store := svc.storeFor("loc1", testDate())
	assert.Empty(t, store.Bookings("shore-2026-07-01-09-30"))
	assert.Empty(t, store.Bookings("shore-2026-07-01-10-00"))
}

func TestMoveHappyPath(t *testing.T) {
	client := &fakeClient{
		bookings: []*domain.Booking{
			{
				ID:             "b1",
				ActivityType:   domain.ActivityDiscovery,
				BookingDate:    testDate(),
				SlotAssignment: domain.NewShoreAssignmentFromRaw("shore-2026-07-01-09-30"),
			},
		},
	}
	svc, _, auditRepo := newTestService(client)

	err := svc.Move(context.Background(), MoveRequest{
		LocationID: "loc1",
		OperatorID: "op1",
		BookingID:  "b1",
		FromSlotID: shoreSlot("09-30"),
		ToSlotID:   shoreSlot("10-00"),
	})
	require.NoError(t, err)

	store := svc.storeFor("loc1", testDate())
	assert.Empty(t, store.Bookings("shore-2026-07-01-09-30"))
	assert.Equal(t, []string{"b1"}, store.Bookings("shore-2026-07-01-10-00"))

	// Обе половины переноса помечены операцией move
	require.Len(t, auditRepo.events, 2)
	assert.Equal(t, domain.OperationMove, auditRepo.events[0].Operation)
	assert.Equal(t, domain.OperationMove, auditRepo.events[1].Operation)
}

func TestAssignGuidesFanOut(t *testing.T) {
	client := &fakeClient{
		bookings: []*domain.Booking{
			{
				ID:             "b1",
				ActivityType:   domain.ActivityDiscovery,
				BookingDate:    testDate(),
				SlotAssignment: domain.NewShoreAssignmentFromRaw("shore-2026-07-01-09-30"),
			},
			{
				ID:             "b2",
				ActivityType:   domain.ActivityDiscovery,
				BookingDate:    testDate(),
				SlotAssignment: domain.NewShoreAssignmentFromRaw("shore-2026-07-01-09-30"),
			},
		},
		staff: []domain.Staff{
			{ID: "g1", Role: domain.RoleInstructor, IsActive: true},
			{ID: "g2", Role: domain.RoleDivemaster, IsActive: true},
		},
	}
	svc, _, _ := newTestService(client)

	err := svc.AssignGuides(context.Background(), AssignGuidesRequest{
		LocationID: "loc1",
		OperatorID: "op1",
		SlotID:     shoreSlot("09-30"),
		GuideIDs:   []string{"g1", "g2"},
	})
	require.NoError(t, err)

	require.Len(t, client.patches, 2)
	for _, b := range client.bookings {
		require.NotNil(t, b.SlotAssignment)
		assert.Equal(t, []string{"g1", "g2"}, b.SlotAssignment.GuideIDs)
	}
}

func TestAssignGuidesEmptySlotStoredAsPending(t *testing.T) {
	client := &fakeClient{
		staff: []domain.Staff{{ID: "g1", Role: domain.RoleAssistant, IsActive: true}},
	}
	svc, guidesRepo, auditRepo := newTestService(client)

	err := svc.AssignGuides(context.Background(), AssignGuidesRequest{
		LocationID: "loc1",
		OperatorID: "op1",
		SlotID:     shoreSlot("11-00"),
		GuideIDs:   []string{"g1"},
	})
	require.NoError(t, err)

	assert.Empty(t, client.patches)

	pending, err := guidesRepo.Get(context.Background(), "loc1", "shore-2026-07-01-11-00")
	require.NoError(t, err)
	assert.Equal(t, []string{"g1"}, pending)

	require.Len(t, auditRepo.events, 1)
	assert.Equal(t, domain.OperationAssignGuides, auditRepo.events[0].Operation)
}

func TestAssignGuidesRejectsUnknownGuide(t *testing.T) {
	client := &fakeClient{
		staff: []domain.Staff{{ID: "g1", Role: domain.RoleInstructor, IsActive: true}},
	}
	svc, _, _ := newTestService(client)

	err := svc.AssignGuides(context.Background(), AssignGuidesRequest{
		LocationID: "loc1",
		OperatorID: "op1",
		SlotID:     shoreSlot("09-30"),
		GuideIDs:   []string{"g1", "stranger"},
	})
	assert.ErrorIs(t, err, ErrGuideNotEligible)
}

func TestValidationErrors(t *testing.T) {
	svc, _, _ := newTestService(&fakeClient{})

	err := svc.Assign(context.Background(), AssignRequest{
		OperatorID: "op1",
		BookingID:  "b1",
		SlotID:     shoreSlot("09-30"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = svc.Assign(context.Background(), AssignRequest{
		LocationID: "loc1",
		BookingID:  "b1",
		SlotID:     shoreSlot("09-30"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	boatSlot, parseErr := domain.ParseSlotID("boat-whitey-morning")
	require.NoError(t, parseErr)
	err = svc.Assign(context.Background(), AssignRequest{
		LocationID: "loc1",
		OperatorID: "op1",
		BookingID:  "b1",
		SlotID:     boatSlot,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = svc.Move(context.Background(), MoveRequest{
		LocationID: "loc1",
		OperatorID: "op1",
		BookingID:  "b1",
		FromSlotID: shoreSlot("09-30"),
		ToSlotID:   shoreSlot("09-30"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
