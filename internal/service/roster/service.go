package roster

import (
	"context"
	"fmt"

	"github.com/m04kA/DCMS-ScheduleService/internal/domain"
)

// Service сервис ростера гидов: персонал локации, допустимый к назначению
// гидом на слот
type Service struct {
	client DiveCenterClient
	log    Logger
}

// NewService создает новый экземпляр сервиса ростера
func NewService(client DiveCenterClient, log Logger) *Service {
	return &Service{client: client, log: log}
}

// GetGuides возвращает персонал локации с допустимыми для гида ролями
func (s *Service) GetGuides(ctx context.Context, locationID string) ([]domain.Staff, error) {
	if locationID == "" {
		return nil, fmt.Errorf("%w: locationId is required", ErrInvalidInput)
	}

	staff, err := s.client.ListStaff(ctx, locationID, domain.GuideEligibleRoles)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list staff: %v", ErrInternal, err)
	}

	// Клиент фильтрует по ролям на стороне основного сервиса, но чужие роли
	// в ответе всё равно отбрасываем
	guides := make([]domain.Staff, 0, len(staff))
	for i := range staff {
		if domain.IsGuideEligible(staff[i].Role) {
			guides = append(guides, staff[i])
		}
	}

	return guides, nil
}
