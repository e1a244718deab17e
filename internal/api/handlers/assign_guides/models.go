package assign_guides

// AssignGuidesRequest HTTP request model назначения гидов на слот
// Пустой список снимает гидов со слота
type AssignGuidesRequest struct {
	GuideIDs []string `json:"guideIds"`
	// Date день расписания, обязателен для лодочных слотов
	Date string `json:"date,omitempty"`
}
