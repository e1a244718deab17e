package get_day_schedule

import (
	"github.com/m04kA/DCMS-ScheduleService/internal/domain"
	getDaySchedule "github.com/m04kA/DCMS-ScheduleService/internal/usecase/get_day_schedule"
)

// DayScheduleResponse HTTP response model расписания дня
type DayScheduleResponse struct {
	LocationID   string            `json:"locationId"`
	Date         string            `json:"date"`
	ShoreWindows []ShoreWindowDTO  `json:"shoreWindows"`
	Boats        []BoatScheduleDTO `json:"boats"`
	Unassigned   []BookingDTO      `json:"unassigned"`
	Ineligible   []BookingDTO      `json:"ineligible"`
	Unmatched    []UnmatchedDTO    `json:"unmatched,omitempty"`
	DiveSites    []DiveSiteDTO     `json:"diveSites"`
}

// ShoreWindowDTO береговое окно расписания
type ShoreWindowDTO struct {
	SlotID          string   `json:"slotId"`
	StartTime       string   `json:"startTime"`
	EndTime         string   `json:"endTime"`
	DurationMinutes int      `json:"durationMinutes"`
	BookingIDs      []string `json:"bookingIds"`
	GuideIDs        []string `json:"guideIds"`
	Occupied        int      `json:"occupied"`
}

// BoatScheduleDTO активная лодка с её сессиями
type BoatScheduleDTO struct {
	BoatID   string             `json:"boatId"`
	Name     string             `json:"name"`
	Capacity int                `json:"capacity"`
	Sessions []SessionWindowDTO `json:"sessions"`
}

// SessionWindowDTO лодочная сессия расписания
type SessionWindowDTO struct {
	SlotID          string   `json:"slotId"`
	Session         string   `json:"session"`
	StartTime       string   `json:"startTime"`
	EndTime         string   `json:"endTime"`
	DurationMinutes int      `json:"durationMinutes"`
	Capacity        int      `json:"capacity"`
	BookingIDs      []string `json:"bookingIds"`
	GuideIDs        []string `json:"guideIds"`
	Occupied        int      `json:"occupied"`
	OverCapacity    bool     `json:"overCapacity"`
}

// BookingDTO краткое бронирование вне сетки слотов
type BookingDTO struct {
	BookingID    string `json:"bookingId"`
	CustomerID   string `json:"customerId"`
	ActivityType string `json:"activityType"`
	Lane         string `json:"lane,omitempty"`
	DiveWeight   int    `json:"diveWeight"`
}

// UnmatchedDTO назначенное бронирование с неразрешимым ключом слота
type UnmatchedDTO struct {
	Booking BookingDTO `json:"booking"`
	SlotKey string     `json:"slotKey"`
}

// DiveSiteDTO дайв-сайт локации
type DiveSiteDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Difficulty string `json:"difficulty,omitempty"`
}

// FromUseCaseResponse конвертирует результат use case в HTTP ответ
func FromUseCaseResponse(result *getDaySchedule.Response) *DayScheduleResponse {
	resp := &DayScheduleResponse{
		LocationID:   result.LocationID,
		Date:         result.Date.Format(domain.DateFormat),
		ShoreWindows: make([]ShoreWindowDTO, 0, len(result.ShoreWindows)),
		Boats:        make([]BoatScheduleDTO, 0, len(result.Boats)),
		Unassigned:   make([]BookingDTO, 0, len(result.Unassigned)),
		Ineligible:   make([]BookingDTO, 0, len(result.Ineligible)),
		DiveSites:    make([]DiveSiteDTO, 0, len(result.DiveSites)),
	}

	for i := range result.ShoreWindows {
		window := &result.ShoreWindows[i]
		resp.ShoreWindows = append(resp.ShoreWindows, ShoreWindowDTO{
			SlotID:          window.Slot.ID.Encode(),
			StartTime:       window.Slot.StartTime.String(),
			EndTime:         endTimeOf(&window.Slot),
			DurationMinutes: window.Slot.DurationMin,
			BookingIDs:      orEmpty(window.BookingIDs),
			GuideIDs:        orEmpty(window.GuideIDs),
			Occupied:        window.Occupied,
		})
	}

	for i := range result.Boats {
		boat := &result.Boats[i]
		dto := BoatScheduleDTO{
			BoatID:   boat.Boat.ID,
			Name:     boat.Boat.Name,
			Capacity: boat.Boat.CapacityOrDefault(),
			Sessions: make([]SessionWindowDTO, 0, len(boat.Sessions)),
		}
		for j := range boat.Sessions {
			window := &boat.Sessions[j]
			dto.Sessions = append(dto.Sessions, SessionWindowDTO{
				SlotID:          window.Slot.ID.Encode(),
				Session:         string(window.Slot.ID.Session),
				StartTime:       window.Slot.StartTime.String(),
				EndTime:         endTimeOf(&window.Slot),
				DurationMinutes: window.Slot.DurationMin,
				Capacity:        window.Slot.Capacity,
				BookingIDs:      orEmpty(window.BookingIDs),
				GuideIDs:        orEmpty(window.GuideIDs),
				Occupied:        window.Occupied,
				OverCapacity:    window.OverCapacity,
			})
		}
		resp.Boats = append(resp.Boats, dto)
	}

	for _, summary := range result.Unassigned {
		resp.Unassigned = append(resp.Unassigned, fromSummary(summary))
	}
	for _, summary := range result.Ineligible {
		resp.Ineligible = append(resp.Ineligible, fromSummary(summary))
	}
	for _, unmatched := range result.Unmatched {
		resp.Unmatched = append(resp.Unmatched, UnmatchedDTO{
			Booking: fromSummary(unmatched.Booking),
			SlotKey: unmatched.SlotKey,
		})
	}

	for _, site := range result.DiveSites {
		resp.DiveSites = append(resp.DiveSites, DiveSiteDTO{
			ID:         site.ID,
			Name:       site.Name,
			Difficulty: site.Difficulty,
		})
	}

	return resp
}

func fromSummary(summary getDaySchedule.BookingSummary) BookingDTO {
	return BookingDTO{
		BookingID:    summary.BookingID,
		CustomerID:   summary.CustomerID,
		ActivityType: string(summary.ActivityType),
		Lane:         string(summary.Lane),
		DiveWeight:   summary.DiveWeight,
	}
}

func endTimeOf(slot *domain.Slot) string {
	end, err := slot.EndTime()
	if err != nil {
		return slot.StartTime.String()
	}
	return end.String()
}

func orEmpty(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
