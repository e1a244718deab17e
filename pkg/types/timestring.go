package types

import (
	"fmt"
	"time"
)

// timeLayout формат времени HH:MM
const timeLayout = "15:04"

// TimeString время дня в формате "HH:MM" без даты и таймзоны
// Используется для времён слотов, сериализуется как обычная строка
type TimeString string

// NewTimeString создает TimeString из time.Time (берёт только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString валидирует строку "HH:MM" и возвращает TimeString
func NewTimeStringFromString(s string) (TimeString, error) {
	if _, err := time.Parse(timeLayout, s); err != nil {
		return "", fmt.Errorf("types: invalid time string %q: %w", s, err)
	}
	return TimeString(s), nil
}

// String возвращает строковое представление "HH:MM"
func (t TimeString) String() string {
	return string(t)
}

func (t TimeString) parse() (time.Time, error) {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return time.Time{}, fmt.Errorf("types: invalid time string %q: %w", string(t), err)
	}
	return parsed, nil
}

// Minutes возвращает количество минут с начала суток
func (t TimeString) Minutes() (int, error) {
	parsed, err := t.parse()
	if err != nil {
		return 0, err
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// AddMinutes возвращает время через m минут (в пределах суток)
func (t TimeString) AddMinutes(m int) (TimeString, error) {
	parsed, err := t.parse()
	if err != nil {
		return "", err
	}
	return TimeString(parsed.Add(time.Duration(m) * time.Minute).Format(timeLayout)), nil
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	a, errA := t.parse()
	b, errB := other.parse()
	if errA != nil || errB != nil {
		return false
	}
	return a.Before(b)
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	a, errA := t.parse()
	b, errB := other.parse()
	if errA != nil || errB != nil {
		return false
	}
	return a.After(b)
}

// At привязывает время дня к конкретной дате (в таймзоне даты)
func (t TimeString) At(date time.Time) (time.Time, error) {
	parsed, err := t.parse()
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, date.Location()), nil
}
