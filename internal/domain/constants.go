package domain

import "github.com/m04kA/DCMS-ScheduleService/pkg/types"

// Shore lane window generation parameters
// Окна пересекаются намеренно: дайвер занимает одно окно, но близкие по времени
// сессии идут параллельно и делят инструкторов
const (
	ShoreWindowStartTime  types.TimeString = "09:30"
	ShoreWindowCutoffTime types.TimeString = "13:00"

	ShoreWindowDurationMin = 60
	ShoreWindowIntervalMin = 30
)

// DefaultBoatCapacity вместимость лодки по умолчанию, если она не указана
const DefaultBoatCapacity = 8

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BoatSessionWindow фиксированное окно лодочной сессии
type BoatSessionWindow struct {
	Session     Session
	StartTime   types.TimeString
	DurationMin int
}

// BoatSessionWindows фиксированный набор лодочных сессий дня
// Порядок используется при выводе расписания
var BoatSessionWindows = []BoatSessionWindow{
	{Session: SessionMorning, StartTime: "09:00", DurationMin: 240},
	{Session: SessionAfternoon, StartTime: "12:00", DurationMin: 240},
	{Session: SessionNight, StartTime: "18:00", DurationMin: 120},
}

// BoatNamePriority порядок лодок в расписании (по конвенции имён),
// лодки вне списка идут после, по алфавиту
var BoatNamePriority = []string{"white", "black", "grey"}

// ShoreActivityTypes типы активностей, которые всегда проводятся на берегу (Mole)
var ShoreActivityTypes = []ActivityType{
	ActivityDiscovery,
	ActivityDiscover,
	ActivityTryDive,
	ActivityOrientation,
	ActivityTryScuba,
}

// BoatActivityTypes типы активностей, которые проводятся с лодки
var BoatActivityTypes = []ActivityType{
	ActivityDiving,
}

// GuideEligibleRoles роли персонала, допустимые для назначения гидом на слот
var GuideEligibleRoles = []StaffRole{
	RoleDivemaster,
	RoleInstructor,
	RoleAssistant,
}
