package domain

// DiveSite represents a dive site from the dive-center registry, read-only here
type DiveSite struct {
	ID         string
	LocationID string
	Name       string
	Difficulty string
}
