package domain

// StaffRole роль сотрудника дайв-центра
type StaffRole string

const (
	RoleDivemaster StaffRole = "divemaster"
	RoleInstructor StaffRole = "instructor"
	RoleAssistant  StaffRole = "assistant"
	RoleCaptain    StaffRole = "captain"
)

// Staff represents a staff member from the dive-center registry, read-only here
type Staff struct {
	ID         string
	LocationID string
	FirstName  string
	LastName   string
	Role       StaffRole
	IsActive   bool
}

// IsGuideEligible returns true if the role may be assigned as a slot guide
func IsGuideEligible(role StaffRole) bool {
	for _, r := range GuideEligibleRoles {
		if role == r {
			return true
		}
	}
	return false
}

// FullName возвращает полное имя сотрудника
func (s *Staff) FullName() string {
	if s.FirstName == "" {
		return s.LastName
	}
	if s.LastName == "" {
		return s.FirstName
	}
	return s.FirstName + " " + s.LastName
}
