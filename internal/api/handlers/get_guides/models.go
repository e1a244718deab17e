package get_guides

import "github.com/m04kA/DCMS-ScheduleService/internal/domain"

// GuideResponse HTTP response model гида
type GuideResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// GuidesResponse список гидов локации
type GuidesResponse struct {
	Guides []GuideResponse `json:"guides"`
}

// FromDomain конвертирует ростер в HTTP ответ
func FromDomain(staff []domain.Staff) *GuidesResponse {
	resp := &GuidesResponse{Guides: make([]GuideResponse, 0, len(staff))}
	for i := range staff {
		resp.Guides = append(resp.Guides, GuideResponse{
			ID:   staff[i].ID,
			Name: staff[i].FullName(),
			Role: string(staff[i].Role),
		})
	}
	return resp
}
