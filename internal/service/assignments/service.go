package assignments

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/DCMS-ScheduleService/internal/domain"
	"github.com/m04kA/DCMS-ScheduleService/internal/infra/storage/guides"
	"github.com/m04kA/DCMS-ScheduleService/internal/integrations/divecenter"
	"github.com/m04kA/DCMS-ScheduleService/pkg/ptr"
)

// Service сервис назначений: бронирования на слоты, гиды на слоты
//
// Мутации оптимистичны: индекс дня меняется сразу, затем изменение
// персистится в основном сервисе, после чего индекс сверяется с авторитетным
// состоянием перезагрузкой. Откат при отказе записи затрагивает только
// соответствующую мутацию, а не весь индекс
type Service struct {
	client     DiveCenterClient
	guidesRepo PendingGuidesRepo
	auditRepo  AuditRepo
	txManager  TxManager
	log        Logger

	mu     sync.Mutex
	stores map[string]*Store
}

// NewService создает новый экземпляр сервиса назначений
func NewService(client DiveCenterClient, guidesRepo PendingGuidesRepo, auditRepo AuditRepo, txManager TxManager, log Logger) *Service {
	return &Service{
		client:     client,
		guidesRepo: guidesRepo,
		auditRepo:  auditRepo,
		txManager:  txManager,
		log:        log,
		stores:     make(map[string]*Store),
	}
}

// Assign назначает бронирование на слот
// Повторное назначение разрешено и неявно снимает прежнее
func (s *Service) Assign(ctx context.Context, req AssignRequest) error {
	if err := validateAssign(req); err != nil {
		return err
	}
	return s.assign(ctx, req, domain.OperationAssign)
}

// Unassign снимает одно или все бронирования со слота
func (s *Service) Unassign(ctx context.Context, req UnassignRequest) error {
	if err := validateUnassign(req); err != nil {
		return err
	}
	_, err := s.unassign(ctx, req, domain.OperationUnassign)
	return err
}

// Move переносит бронирование между слотами: снятие, затем назначение,
// двумя записями. Если назначение не удалось после успешного снятия,
// бронирование остаётся неназначенным; это принятый режим отказа,
// повторов здесь нет, оператор видит результат после перезагрузки
func (s *Service) Move(ctx context.Context, req MoveRequest) error {
	if err := validateMove(req); err != nil {
		return err
	}

	bookingID := req.BookingID
	affected, err := s.unassign(ctx, UnassignRequest{
		LocationID: req.LocationID,
		OperatorID: req.OperatorID,
		SlotID:     req.FromSlotID,
		BookingID:  &bookingID,
		Date:       req.Date,
	}, domain.OperationMove)
	if err != nil {
		return err
	}
	if len(affected) == 0 {
		// Бронирования уже нет в исходном слоте, перенос теряет смысл
		s.log.Warn("Move: booking id=%s not found in slot %s, skipping", req.BookingID, req.FromSlotID.Encode())
		return nil
	}

	if err := s.assign(ctx, AssignRequest{
		LocationID: req.LocationID,
		OperatorID: req.OperatorID,
		BookingID:  req.BookingID,
		SlotID:     req.ToSlotID,
		Date:       req.Date,
	}, domain.OperationMove); err != nil {
		return fmt.Errorf("booking %s was unassigned but re-assign failed: %w", req.BookingID, err)
	}

	return nil
}

// AssignGuides назначает набор гидов на слот и раздаёт его всем бронированиям
// слота. Для пустого слота набор сохраняется отложенно и применяется к первому
// бронированию, назначенному в этот слот. Пустой список снимает гидов
func (s *Service) AssignGuides(ctx context.Context, req AssignGuidesRequest) error {
	if err := validateAssignGuides(req); err != nil {
		return err
	}

	date := scheduleDate(req.SlotID, req.Date)
	slotKey := req.SlotID.Encode()

	if len(req.GuideIDs) > 0 {
		if err := s.checkGuideRoster(ctx, req.LocationID, req.GuideIDs); err != nil {
			return err
		}
	}

	bookings, err := s.loadDay(ctx, req.LocationID, date)
	if err != nil {
		return err
	}

	var affected []*domain.Booking
	for _, booking := range bookings {
		if booking.IsAssigned() && booking.SlotAssignment.SlotKey() == slotKey {
			affected = append(affected, booking)
		}
	}

	store := s.storeFor(req.LocationID, date)
	prevGuides := store.SetGuides(slotKey, req.GuideIDs)

	event := &domain.ScheduleEvent{
		LocationID: req.LocationID,
		OperatorID: req.OperatorID,
		Operation:  domain.OperationAssignGuides,
		SlotKey:    slotKey,
		GuideIDs:   req.GuideIDs,
	}

	if len(affected) == 0 {
		// Слот пуст: персистить нечего, набор сохраняется отложенно
		err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
			if len(req.GuideIDs) == 0 {
				if err := s.guidesRepo.Delete(ctx, req.LocationID, slotKey); err != nil && !errors.Is(err, guides.ErrPendingNotFound) {
					return err
				}
			} else {
				if err := s.guidesRepo.Upsert(ctx, req.LocationID, slotKey, req.GuideIDs); err != nil {
					return err
				}
			}
			return s.auditRepo.Insert(ctx, event)
		})
		if err != nil {
			store.SetGuides(slotKey, prevGuides)
			return fmt.Errorf("%w: failed to store pending guides: %v", ErrInternal, err)
		}
		return nil
	}

	// Раздаём набор каждому бронированию слота
	var failed []string
	for _, booking := range affected {
		assignment := *booking.SlotAssignment
		assignment.GuideIDs = req.GuideIDs

		patch := divecenter.BookingSlotPatch{SlotAssignment: &assignment}
		if err := s.client.UpdateBookingSlot(ctx, booking.ID, patch); err != nil {
			s.log.Error("AssignGuides: failed to persist guides for booking id=%s: %v", booking.ID, err)
			failed = append(failed, booking.ID)
			continue
		}
		event.BookingIDs = append(event.BookingIDs, booking.ID)
	}

	if err := s.auditRepo.Insert(ctx, event); err != nil {
		s.log.Error("AssignGuides: failed to write audit event: %v", err)
	}

	s.reload(ctx, store, req.LocationID, date)

	if len(failed) > 0 {
		store.SetGuides(slotKey, prevGuides)
		return fmt.Errorf("%w: guides not persisted for bookings %v", ErrPersistence, failed)
	}
	return nil
}

func (s *Service) assign(ctx context.Context, req AssignRequest, op domain.ScheduleOperation) error {
	date := scheduleDate(req.SlotID, req.Date)
	slotKey := req.SlotID.Encode()

	bookings, err := s.loadDay(ctx, req.LocationID, date)
	if err != nil {
		return err
	}

	booking := findBooking(bookings, req.BookingID)
	if booking == nil {
		// Устаревшая ссылка: бронирования уже нет, молча не падаем
		s.log.Warn("Assign: booking id=%s not found for location=%s date=%s, skipping",
			req.BookingID, req.LocationID, date.Format(domain.DateFormat))
		return nil
	}

	if err := checkLane(booking, req.SlotID); err != nil {
		return err
	}

	store := s.storeFor(req.LocationID, date)

	// Гиды слота: сначала локальный набор, затем отложенный из хранилища
	guideIDs := store.Guides(slotKey)
	if len(guideIDs) == 0 {
		pending, err := s.guidesRepo.Get(ctx, req.LocationID, slotKey)
		switch {
		case err == nil:
			guideIDs = pending
		case !errors.Is(err, guides.ErrPendingNotFound):
			s.log.Warn("Assign: failed to load pending guides for slot %s: %v", slotKey, err)
		}
	}

	assignment, patch := buildAssignment(req.SlotID, guideIDs)

	prev := store.Assign(req.BookingID, slotKey)

	if err := s.client.UpdateBookingSlot(ctx, req.BookingID, patch); err != nil {
		store.Restore(req.BookingID, prev)
		if errors.Is(err, divecenter.ErrBookingNotFound) {
			s.log.Warn("Assign: booking id=%s vanished during persist, rolled back", req.BookingID)
			return nil
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	// Отложенные гиды считаются применёнными и удаляются вместе с записью
	// в журнал, в одной транзакции
	event := &domain.ScheduleEvent{
		LocationID: req.LocationID,
		OperatorID: req.OperatorID,
		Operation:  op,
		SlotKey:    slotKey,
		BookingIDs: []string{req.BookingID},
		GuideIDs:   assignment.GuideIDs,
	}
	err = s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		_, getErr := s.guidesRepo.Get(ctx, req.LocationID, slotKey)
		switch {
		case getErr == nil:
			if err := s.guidesRepo.Delete(ctx, req.LocationID, slotKey); err != nil {
				return err
			}
		case !errors.Is(getErr, guides.ErrPendingNotFound):
			return getErr
		}
		return s.auditRepo.Insert(ctx, event)
	})
	if err != nil {
		// Назначение уже записано, журнал догоним позже
		s.log.Error("Assign: failed to consume pending guides / write audit: %v", err)
	}

	s.reload(ctx, store, req.LocationID, date)
	return nil
}

func (s *Service) unassign(ctx context.Context, req UnassignRequest, op domain.ScheduleOperation) ([]string, error) {
	date := scheduleDate(req.SlotID, req.Date)
	slotKey := req.SlotID.Encode()

	bookings, err := s.loadDay(ctx, req.LocationID, date)
	if err != nil {
		return nil, err
	}

	var affected []*domain.Booking
	for _, booking := range bookings {
		if !booking.IsAssigned() || booking.SlotAssignment.SlotKey() != slotKey {
			continue
		}
		if req.BookingID != nil && booking.ID != *req.BookingID {
			continue
		}
		affected = append(affected, booking)
	}

	if len(affected) == 0 {
		s.log.Warn("Unassign: no bookings in slot %s for location=%s date=%s, skipping",
			slotKey, req.LocationID, date.Format(domain.DateFormat))
		return nil, nil
	}

	store := s.storeFor(req.LocationID, date)

	patch := divecenter.BookingSlotPatch{SlotAssignment: nil}
	if req.SlotID.Kind == domain.SlotKindBoat {
		patch.ClearBoat = true
	}

	var done []string
	var failed []string
	for _, booking := range affected {
		prev := store.Unassign(booking.ID)

		if err := s.client.UpdateBookingSlot(ctx, booking.ID, patch); err != nil {
			store.Restore(booking.ID, prev)
			if errors.Is(err, divecenter.ErrBookingNotFound) {
				s.log.Warn("Unassign: booking id=%s vanished during persist", booking.ID)
				done = append(done, booking.ID)
				continue
			}
			s.log.Error("Unassign: failed to persist removal for booking id=%s: %v", booking.ID, err)
			failed = append(failed, booking.ID)
			continue
		}
		done = append(done, booking.ID)
	}

	if len(done) > 0 {
		event := &domain.ScheduleEvent{
			LocationID: req.LocationID,
			OperatorID: req.OperatorID,
			Operation:  op,
			SlotKey:    slotKey,
			BookingIDs: done,
		}
		if err := s.auditRepo.Insert(ctx, event); err != nil {
			s.log.Error("Unassign: failed to write audit event: %v", err)
		}
	}

	s.reload(ctx, store, req.LocationID, date)

	if len(failed) > 0 {
		return done, fmt.Errorf("%w: removal not persisted for bookings %v", ErrPersistence, failed)
	}
	return done, nil
}

// reload сверяет индекс дня с авторитетным состоянием бронирований
// Ошибка перезагрузки не фатальна: индекс останется на оптимистичном
// состоянии до следующей сверки
func (s *Service) reload(ctx context.Context, store *Store, locationID string, date time.Time) {
	token := store.BeginReload()
	bookings, err := s.client.ListBookings(ctx, locationID, date, date)
	if err != nil {
		s.log.Warn("reload: failed to list bookings for location=%s date=%s: %v",
			locationID, date.Format(domain.DateFormat), err)
		return
	}
	store.ApplyReload(token, bookings)
}

func (s *Service) loadDay(ctx context.Context, locationID string, date time.Time) ([]*domain.Booking, error) {
	bookings, err := s.client.ListBookings(ctx, locationID, date, date)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}
	return bookings, nil
}

// checkGuideRoster проверяет, что все гиды есть в ростере персонала
// с допустимыми ролями
func (s *Service) checkGuideRoster(ctx context.Context, locationID string, guideIDs []string) error {
	staff, err := s.client.ListStaff(ctx, locationID, domain.GuideEligibleRoles)
	if err != nil {
		return fmt.Errorf("%w: failed to list staff: %v", ErrInternal, err)
	}

	eligible := make(map[string]bool, len(staff))
	for i := range staff {
		eligible[staff[i].ID] = true
	}

	for _, id := range guideIDs {
		if !eligible[id] {
			return fmt.Errorf("%w: %s", ErrGuideNotEligible, id)
		}
	}
	return nil
}

// storeFor возвращает индекс назначений дня локации, создавая его лениво
func (s *Service) storeFor(locationID string, date time.Time) *Store {
	key := locationID + "/" + date.Format(domain.DateFormat)

	s.mu.Lock()
	defer s.mu.Unlock()

	store, ok := s.stores[key]
	if !ok {
		store = NewStore()
		s.stores[key] = store
	}
	return store
}

// scheduleDate возвращает день расписания операции: для береговых слотов
// дата зашита в идентификатор, для лодочных берётся из запроса
func scheduleDate(slotID domain.SlotID, date time.Time) time.Time {
	if slotID.Kind == domain.SlotKindShore {
		return slotID.Date
	}
	return date
}

func findBooking(bookings []*domain.Booking, bookingID string) *domain.Booking {
	for _, booking := range bookings {
		if booking.ID == bookingID {
			return booking
		}
	}
	return nil
}

// checkLane проверяет соответствие линии бронирования и вида слота
func checkLane(booking *domain.Booking, slotID domain.SlotID) error {
	lane := booking.Lane()
	if lane == domain.LaneNone {
		return fmt.Errorf("%w: booking %s has unknown activity type %q",
			ErrBookingIneligible, booking.ID, booking.ActivityType)
	}

	want := domain.LaneShore
	if slotID.Kind == domain.SlotKindBoat {
		want = domain.LaneBoat
	}
	if lane != want {
		return fmt.Errorf("%w: booking %s is %s-lane, slot is %s",
			ErrLaneMismatch, booking.ID, lane, slotID.Kind)
	}
	return nil
}

// buildAssignment собирает объект назначения и частичное обновление для слота
// Назначение на береговое окно явно обнуляет ссылку на лодку
func buildAssignment(slotID domain.SlotID, guideIDs []string) (*domain.SlotAssignment, divecenter.BookingSlotPatch) {
	var assignment *domain.SlotAssignment
	patch := divecenter.BookingSlotPatch{}

	switch slotID.Kind {
	case domain.SlotKindBoat:
		assignment = domain.NewBoatAssignment(slotID.BoatID, slotID.Session)
		patch.BoatID = ptr.Ptr(slotID.BoatID)
	default:
		assignment = domain.NewShoreAssignment(slotID)
		patch.ClearBoat = true
	}

	assignment.GuideIDs = guideIDs
	patch.SlotAssignment = assignment
	return assignment, patch
}
