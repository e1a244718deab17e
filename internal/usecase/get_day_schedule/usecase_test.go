package get_day_schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DCMS-ScheduleService/internal/domain"
	"github.com/m04kA/DCMS-ScheduleService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeClient struct {
	bookings []*domain.Booking
	boats    []domain.Boat
	sites    []domain.DiveSite
}

func (c *fakeClient) ListBookings(_ context.Context, _ string, _, _ time.Time) ([]*domain.Booking, error) {
	return c.bookings, nil
}

func (c *fakeClient) ListBoats(_ context.Context, _ string) ([]domain.Boat, error) {
	return c.boats, nil
}

func (c *fakeClient) ListDiveSites(_ context.Context, _ string) ([]domain.DiveSite, error) {
	return c.sites, nil
}

type fakePendingRepo struct {
	pending map[string][]string
}

func (r *fakePendingRepo) ListByLocation(_ context.Context, _ string) (map[string][]string, error) {
	return r.pending, nil
}

func scheduleDate() time.Time {
	return time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
}

func TestExecuteComposesDaySchedule(t *testing.T) {
	date := scheduleDate()

	client := &fakeClient{
		bookings: []*domain.Booking{
			{
				ID:            "b-shore",
				CustomerID:    "c1",
				ActivityType:  domain.ActivityDiscovery,
				NumberOfDives: 1,
				BookingDate:   date,
				SlotAssignment: domain.NewShoreAssignmentFromRaw("shore-2026-07-01-10-00"),
			},
			{
				ID:            "b-free",
				CustomerID:    "c2",
				ActivityType:  domain.ActivityTryDive,
				NumberOfDives: 1,
				BookingDate:   date,
			},
			{
				ID:            "b-boat-1",
				CustomerID:    "c3",
				ActivityType:  domain.ActivityDiving,
				NumberOfDives: 2,
				BookingDate:   date,
				BoatID:        ptr.Ptr("w"),
				SlotAssignment: domain.NewBoatAssignment("w", domain.SessionMorning),
			},
			{
				ID:            "b-boat-2",
				CustomerID:    "c4",
				ActivityType:  domain.ActivityDiving,
				NumberOfDives: 3,
				BookingDate:   date,
				BoatID:        ptr.Ptr("w"),
				SlotAssignment: domain.NewBoatAssignment("w", domain.SessionMorning),
			},
			{
				ID:           "b-weird",
				CustomerID:   "c5",
				ActivityType: domain.ActivityType("night_safari"),
				BookingDate:  date,
			},
		},
		boats: []domain.Boat{
			{ID: "w", Name: "White Shark", Capacity: 4, IsActive: true},
			{ID: "b", Name: "Black Manta", Capacity: 8, IsActive: true},
		},
		sites: []domain.DiveSite{{ID: "s1", Name: "Blue Hole", Difficulty: "advanced"}},
	}

	uc := NewUseCase(client, &fakePendingRepo{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), Request{LocationID: "loc1", Date: date})
	require.NoError(t, err)

	// Береговая сетка: 6 окон, бронирование в окне 10:00
	require.Len(t, resp.ShoreWindows, 6)
	assert.Equal(t, []string{"b-shore"}, resp.ShoreWindows[1].BookingIDs)
	assert.Empty(t, resp.ShoreWindows[0].BookingIDs)

	// Одна активная лодка: оба бронирования назначены на w
	require.Len(t, resp.Boats, 1)
	assert.Equal(t, "w", resp.Boats[0].Boat.ID)
	require.Len(t, resp.Boats[0].Sessions, 3)

	morning := resp.Boats[0].Sessions[0]
	assert.ElementsMatch(t, []string{"b-boat-1", "b-boat-2"}, morning.BookingIDs)
	assert.Equal(t, 5, morning.Occupied)
	// Вес 5 при вместимости 4: подсветка переполнения, не блокировка
	assert.True(t, morning.OverCapacity)
	assert.False(t, resp.Boats[0].Sessions[1].OverCapacity)

	// Свободное береговое бронирование в списке неназначенных
	require.Len(t, resp.Unassigned, 1)
	assert.Equal(t, "b-free", resp.Unassigned[0].BookingID)

	// Неизвестная активность не втягивается ни в одну линию
	require.Len(t, resp.Ineligible, 1)
	assert.Equal(t, "b-weird", resp.Ineligible[0].BookingID)
	assert.Equal(t, domain.LaneNone, resp.Ineligible[0].Lane)

	require.Len(t, resp.DiveSites, 1)
	assert.Equal(t, "Blue Hole", resp.DiveSites[0].Name)
}

func TestExecuteUnmatchedAssignment(t *testing.T) {
	date := scheduleDate()

	client := &fakeClient{
		bookings: []*domain.Booking{
			{
				ID:           "b-stale",
				ActivityType: domain.ActivityDiscovery,
				BookingDate:  date,
				// Ключ другого дня не совпадает ни с одним окном сетки
				SlotAssignment: domain.NewShoreAssignmentFromRaw("shore-2026-06-30-10-00"),
			},
		},
	}

	uc := NewUseCase(client, &fakePendingRepo{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), Request{LocationID: "loc1", Date: date})
	require.NoError(t, err)

	require.Len(t, resp.Unmatched, 1)
	assert.Equal(t, "b-stale", resp.Unmatched[0].Booking.BookingID)
	assert.Equal(t, "shore-2026-06-30-10-00", resp.Unmatched[0].SlotKey)
}

func TestExecutePendingGuidesOnEmptyWindow(t *testing.T) {
	date := scheduleDate()

	client := &fakeClient{}
	pending := &fakePendingRepo{pending: map[string][]string{
		"shore-2026-07-01-09-30": {"g1", "g2"},
	}}

	uc := NewUseCase(client, pending, nopLogger{})

	resp, err := uc.Execute(context.Background(), Request{LocationID: "loc1", Date: date})
	require.NoError(t, err)

	require.Len(t, resp.ShoreWindows, 6)
	assert.Equal(t, []string{"g1", "g2"}, resp.ShoreWindows[0].GuideIDs)
	assert.Empty(t, resp.ShoreWindows[1].GuideIDs)
}

func TestExecuteValidation(t *testing.T) {
	uc := NewUseCase(&fakeClient{}, &fakePendingRepo{}, nopLogger{})

	_, err := uc.Execute(context.Background(), Request{Date: scheduleDate()})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), Request{LocationID: "loc1"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
