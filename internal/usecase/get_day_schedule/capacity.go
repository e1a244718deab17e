package get_day_schedule

import (
	"github.com/m04kA/DCMS-ScheduleService/internal/domain"
)

// planActiveBoats решает, какие лодки показывать активными на день
//
// Эвристика (не оптимизатор bin-packing):
//  1. Нет лодочных бронирований - нет лодок
//  2. Лодка с хотя бы одним назначенным бронированием всегда включается
//  3. Число дополнительных лодок = ceil(вес неназначенных / репрезентативная
//     вместимость), где репрезентативная вместимость - вместимость первой
//     лодки отсортированного ростера (или дефолт)
//  4. Дополнительные лодки берутся из ещё не включённых, не больше ростера
//  5. Если назначенных бронирований нет вовсе, а спрос есть, число лодок
//     считается от полного веса
//
// Уже назначенные бронирования никогда не перераспределяются ради баланса
// Результат отсортирован конвенциональным порядком имён
func planActiveBoats(roster []domain.Boat, boatBookings []*domain.Booking) []domain.Boat {
	if len(boatBookings) == 0 {
		return nil
	}

	sorted := make([]domain.Boat, len(roster))
	copy(sorted, roster)
	domain.SortBoats(sorted)

	if len(sorted) == 0 {
		return nil
	}

	representative := sorted[0].CapacityOrDefault()

	// Разделяем бронирования на назначенные на конкретную лодку и свободные
	assignedWeightByBoat := make(map[string]int)
	unassignedWeight := 0
	totalWeight := 0
	for _, booking := range boatBookings {
		weight := booking.DiveWeight()
		totalWeight += weight
		if booking.HasBoat() {
			assignedWeightByBoat[*booking.BoatID] += weight
		} else {
			unassignedWeight += weight
		}
	}

	included := make(map[string]bool)
	for _, boat := range sorted {
		if assignedWeightByBoat[boat.ID] > 0 {
			included[boat.ID] = true
		}
	}

	switch {
	case unassignedWeight > 0:
		additional := ceilDiv(unassignedWeight, representative)
		for _, boat := range sorted {
			if additional == 0 {
				break
			}
			if included[boat.ID] {
				continue
			}
			included[boat.ID] = true
			additional--
		}
	case len(included) == 0:
		// Все бронирования ссылаются на лодки вне ростера: показываем
		// столько лодок, сколько нужно под полный вес
		needed := ceilDiv(totalWeight, representative)
		for _, boat := range sorted {
			if needed == 0 {
				break
			}
			included[boat.ID] = true
			needed--
		}
	}

	active := make([]domain.Boat, 0, len(included))
	for _, boat := range sorted {
		if included[boat.ID] {
			active = append(active, boat)
		}
	}

	return active
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		b = domain.DefaultBoatCapacity
	}
	return (a + b - 1) / b
}
