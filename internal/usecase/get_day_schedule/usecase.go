package get_day_schedule

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/DCMS-ScheduleService/internal/domain"
)

// UseCase сценарий получения расписания дня локации
// Слоты не хранятся: сетка окон пересчитывается из фиксированных правил
// генерации на каждый запрос, а бронирования раскладываются по ней
// по ключу назначения
type UseCase struct {
	client      DiveCenterClient
	pendingRepo PendingGuidesRepo
	log         Logger
}

// NewUseCase создает новый экземпляр сценария
func NewUseCase(client DiveCenterClient, pendingRepo PendingGuidesRepo, log Logger) *UseCase {
	return &UseCase{
		client:      client,
		pendingRepo: pendingRepo,
		log:         log,
	}
}

// Execute возвращает расписание дня
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	// Загружаем бронирования дня
	bookings, err := uc.client.ListBookings(ctx, req.LocationID, req.Date, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}

	// Разделяем бронирования по линиям
	var shoreBookings, boatBookings, ineligible []*domain.Booking
	for _, booking := range bookings {
		switch booking.Lane() {
		case domain.LaneShore:
			shoreBookings = append(shoreBookings, booking)
		case domain.LaneBoat:
			boatBookings = append(boatBookings, booking)
		default:
			ineligible = append(ineligible, booking)
		}
	}

	// Загружаем ростер лодок и решаем, какие показывать активными
	roster, err := uc.client.ListBoats(ctx, req.LocationID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list boats: %v", ErrInternal, err)
	}
	activeBoats := planActiveBoats(roster, boatBookings)

	// Отложенные гиды пустых слотов: при ошибке расписание отдаём без них
	pendingGuides, err := uc.pendingRepo.ListByLocation(ctx, req.LocationID)
	if err != nil {
		uc.log.Warn("GetDaySchedule: failed to load pending guides for location=%s: %v", req.LocationID, err)
		pendingGuides = nil
	}

	resp := &Response{
		LocationID: req.LocationID,
		Date:       req.Date,
	}

	unmatched := buildShoreWindows(resp, req.Date, shoreBookings, pendingGuides)
	unmatched = append(unmatched, buildBoatSchedules(resp, activeBoats, boatBookings, pendingGuides)...)
	resp.Unmatched = unmatched

	for _, booking := range bookings {
		if booking.Lane() != domain.LaneNone && !booking.IsAssigned() {
			resp.Unassigned = append(resp.Unassigned, summarize(booking))
		}
	}
	for _, booking := range ineligible {
		resp.Ineligible = append(resp.Ineligible, summarize(booking))
	}
	sortSummaries(resp.Unassigned)
	sortSummaries(resp.Ineligible)

	sites, err := uc.client.ListDiveSites(ctx, req.LocationID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list dive sites: %v", ErrInternal, err)
	}
	for i := range sites {
		resp.DiveSites = append(resp.DiveSites, DiveSiteOption{
			ID:         sites[i].ID,
			Name:       sites[i].Name,
			Difficulty: sites[i].Difficulty,
		})
	}

	return resp, nil
}

// buildShoreWindows раскладывает береговые бронирования по сгенерированным
// окнам. Возвращает назначенные бронирования, ключ которых не совпал ни с
// одним окном дня
func buildShoreWindows(resp *Response, date time.Time, shoreBookings []*domain.Booking, pendingGuides map[string][]string) []UnmatchedAssignment {
	slots := generateShoreWindows(date)

	windows := make([]ShoreWindow, len(slots))
	index := make(map[string]int, len(slots))
	for i, slot := range slots {
		windows[i] = ShoreWindow{Slot: slot}
		index[slot.ID.Encode()] = i
	}

	var unmatched []UnmatchedAssignment
	for _, booking := range shoreBookings {
		if !booking.IsAssigned() {
			continue
		}
		key := booking.SlotAssignment.SlotKey()
		i, ok := index[key]
		if !ok {
			unmatched = append(unmatched, UnmatchedAssignment{Booking: summarize(booking), SlotKey: key})
			continue
		}
		windows[i].BookingIDs = append(windows[i].BookingIDs, booking.ID)
		windows[i].Occupied += booking.DiveWeight()
		windows[i].GuideIDs = mergeGuides(windows[i].GuideIDs, booking.SlotAssignment.GuideIDs)
	}

	// Отложенные гиды показываются только на пустых окнах: занятое окно несёт
	// гидов своих бронирований
	for i := range windows {
		if len(windows[i].BookingIDs) == 0 {
			if guides, ok := pendingGuides[windows[i].Slot.ID.Encode()]; ok {
				windows[i].GuideIDs = guides
			}
		}
	}

	resp.ShoreWindows = windows
	return unmatched
}

// buildBoatSchedules раскладывает лодочные бронирования по сессиям активных
// лодок. Бронирования, назначенные на лодку вне активного списка, попадают
// в unmatched
func buildBoatSchedules(resp *Response, activeBoats []domain.Boat, boatBookings []*domain.Booking, pendingGuides map[string][]string) []UnmatchedAssignment {
	schedules := make([]BoatSchedule, len(activeBoats))
	index := make(map[string][2]int)
	for i, boat := range activeBoats {
		slots := generateBoatWindows(boat)
		sessions := make([]SessionWindow, len(slots))
		for j, slot := range slots {
			sessions[j] = SessionWindow{Slot: slot}
			index[slot.ID.Encode()] = [2]int{i, j}
		}
		schedules[i] = BoatSchedule{Boat: boat, Sessions: sessions}
	}

	var unmatched []UnmatchedAssignment
	for _, booking := range boatBookings {
		if !booking.IsAssigned() {
			continue
		}
		key := booking.SlotAssignment.SlotKey()
		pos, ok := index[key]
		if !ok {
			unmatched = append(unmatched, UnmatchedAssignment{Booking: summarize(booking), SlotKey: key})
			continue
		}
		window := &schedules[pos[0]].Sessions[pos[1]]
		window.BookingIDs = append(window.BookingIDs, booking.ID)
		window.Occupied += booking.DiveWeight()
		window.GuideIDs = mergeGuides(window.GuideIDs, booking.SlotAssignment.GuideIDs)
	}

	for i := range schedules {
		for j := range schedules[i].Sessions {
			window := &schedules[i].Sessions[j]
			if len(window.BookingIDs) == 0 {
				if guides, ok := pendingGuides[window.Slot.ID.Encode()]; ok {
					window.GuideIDs = guides
				}
			}
			// Переполнение только подсвечивается, назначение не блокируется
			window.OverCapacity = window.Slot.Capacity > 0 && window.Occupied > window.Slot.Capacity
		}
	}

	resp.Boats = schedules
	return unmatched
}

// mergeGuides объединяет наборы гидов без дубликатов, сохраняя порядок
func mergeGuides(existing, extra []string) []string {
	for _, id := range extra {
		seen := false
		for _, have := range existing {
			if have == id {
				seen = true
				break
			}
		}
		if !seen {
			existing = append(existing, id)
		}
	}
	return existing
}

func sortSummaries(list []BookingSummary) {
	sort.Slice(list, func(i, j int) bool {
		return list[i].BookingID < list[j].BookingID
	})
}
