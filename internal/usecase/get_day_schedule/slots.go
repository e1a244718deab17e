package get_day_schedule

import (
	"time"

	"github.com/m04kA/DCMS-ScheduleService/internal/domain"
)

// generateShoreWindows генерирует береговые окна на день
// Окна начинаются в 09:30, длятся 60 минут и стартуют каждые 30 минут,
// пока конец окна не выходит за 13:00. Окна намеренно пересекаются
// Функция чистая: одинаковая дата всегда даёт одинаковый список
func generateShoreWindows(date time.Time) []domain.Slot {
	windows := make([]domain.Slot, 0)

	current := domain.ShoreWindowStartTime
	for current.IsBefore(domain.ShoreWindowCutoffTime) {
		end, err := current.AddMinutes(domain.ShoreWindowDurationMin)
		if err != nil {
			break
		}

		// Окно, заканчивающееся позже отсечки, не показывается
		if !end.IsAfter(domain.ShoreWindowCutoffTime) {
			windows = append(windows, domain.Slot{
				ID:          domain.NewShoreSlotID(date, current),
				StartTime:   current,
				DurationMin: domain.ShoreWindowDurationMin,
			})
		}

		current, err = current.AddMinutes(domain.ShoreWindowIntervalMin)
		if err != nil {
			break
		}
	}

	return windows
}

// generateBoatWindows генерирует лодочные окна: по одному экземпляру каждой
// фиксированной сессии на каждую активную лодку, вместимость окна равна
// вместимости лодки
func generateBoatWindows(boat domain.Boat) []domain.Slot {
	windows := make([]domain.Slot, 0, len(domain.BoatSessionWindows))

	for _, session := range domain.BoatSessionWindows {
		windows = append(windows, domain.Slot{
			ID:          domain.NewBoatSlotID(boat.ID, session.Session),
			StartTime:   session.StartTime,
			DurationMin: session.DurationMin,
			Capacity:    boat.CapacityOrDefault(),
		})
	}

	return windows
}
