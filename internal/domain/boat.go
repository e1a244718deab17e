package domain

import (
	"sort"
	"strings"
)

// Boat represents a boat from the dive-center registry, read-only here
type Boat struct {
	ID         string
	LocationID string
	Name       string
	Capacity   int
	IsActive   bool
}

// CapacityOrDefault returns the boat capacity, falling back to the default
func (b *Boat) CapacityOrDefault() int {
	if b.Capacity > 0 {
		return b.Capacity
	}
	return DefaultBoatCapacity
}

// namePriority возвращает позицию лодки в конвенциональном порядке имён
// (-1 для лодок вне списка)
func namePriority(name string) int {
	lower := strings.ToLower(name)
	for i, p := range BoatNamePriority {
		if strings.Contains(lower, p) {
			return i
		}
	}
	return -1
}

// SortBoats sorts boats into the deterministic display order: conventional
// name priority first, everything else alphabetically
func SortBoats(boats []Boat) {
	sort.SliceStable(boats, func(i, j int) bool {
		pi, pj := namePriority(boats[i].Name), namePriority(boats[j].Name)
		switch {
		case pi != -1 && pj != -1:
			if pi != pj {
				return pi < pj
			}
		case pi != -1:
			return true
		case pj != -1:
			return false
		}
		return strings.ToLower(boats[i].Name) < strings.ToLower(boats[j].Name)
	})
}
