package assignments

import (
	"sync"

	"github.com/m04kA/DCMS-ScheduleService/internal/domain"
)

// pendingOp локальная оптимистичная мутация назначения, ещё не подтверждённая
// авторитетной перезагрузкой. slotKey nil означает снятие со слота
type pendingOp struct {
	rev     uint64
	slotKey *string
}

// pendingGuideOp локальная мутация набора гидов слота
type pendingGuideOp struct {
	rev      uint64
	guideIDs []string
}

// Store индекс назначений одного дня одной локации
//
// Индекс эфемерный: он перестраивается из авторитетных бронирований при каждой
// перезагрузке, а оптимистичные мутации, сделанные после начала перезагрузки,
// переигрываются поверх загруженного снимка. Монотонный счётчик ревизий решает,
// какой из двух конфликтующих взглядов новее: устаревшая перезагрузка не может
// ни стереть свежее назначение, ни воскресить свежее снятие
type Store struct {
	mu sync.Mutex

	revision uint64

	bySlot    map[string][]string
	byBooking map[string]string
	guides    map[string][]string

	pendingOps    map[string]pendingOp
	pendingGuides map[string]pendingGuideOp
}

// NewStore создает пустой индекс назначений
func NewStore() *Store {
	return &Store{
		bySlot:        make(map[string][]string),
		byBooking:     make(map[string]string),
		guides:        make(map[string][]string),
		pendingOps:    make(map[string]pendingOp),
		pendingGuides: make(map[string]pendingGuideOp),
	}
}

// Assign оптимистично помещает бронирование в слот и возвращает прежний слот
// бронирования (nil, если его не было). Бронирование всегда состоит не более
// чем в одном слоте: назначение в новый слот снимает его с прежнего
func (s *Store) Assign(bookingID, slotKey string) *string {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.detachLocked(bookingID)
	s.attachLocked(bookingID, slotKey)

	s.revision++
	key := slotKey
	s.pendingOps[bookingID] = pendingOp{rev: s.revision, slotKey: &key}

	return prev
}

// Unassign оптимистично снимает бронирование со слота и возвращает прежний
// слот (nil, если бронирование не было назначено)
func (s *Store) Unassign(bookingID string) *string {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.detachLocked(bookingID)

	s.revision++
	s.pendingOps[bookingID] = pendingOp{rev: s.revision, slotKey: nil}

	return prev
}

// Restore откатывает оптимистичную мутацию, возвращая бронирование в прежнее
// состояние. Откат записывается как новая мутация, чтобы устаревшая
// перезагрузка не воскресила отменённую операцию
func (s *Store) Restore(bookingID string, slotKey *string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.detachLocked(bookingID)
	if slotKey != nil {
		s.attachLocked(bookingID, *slotKey)
	}

	s.revision++
	s.pendingOps[bookingID] = pendingOp{rev: s.revision, slotKey: slotKey}
}

// SetGuides запоминает набор гидов слота и возвращает прежний набор
func (s *Store) SetGuides(slotKey string, guideIDs []string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.guides[slotKey]

	ids := append([]string(nil), guideIDs...)
	s.guides[slotKey] = ids

	s.revision++
	s.pendingGuides[slotKey] = pendingGuideOp{rev: s.revision, guideIDs: ids}

	return prev
}

// Guides возвращает набор гидов слота
func (s *Store) Guides(slotKey string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.guides[slotKey]...)
}

// Bookings возвращает упорядоченный список бронирований слота
func (s *Store) Bookings(slotKey string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.bySlot[slotKey]...)
}

// SlotOf возвращает слот бронирования
func (s *Store) SlotOf(bookingID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slotKey, ok := s.byBooking[bookingID]
	return slotKey, ok
}

// BeginReload фиксирует начало перезагрузки и возвращает её маркер:
// текущую ревизию индекса. Мутации с ревизией выше маркера считаются
// новее загружаемого снимка
func (s *Store) BeginReload() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

// ApplyReload перестраивает индекс из авторитетных бронирований и
// переигрывает поверх снимка оптимистичные мутации, сделанные после
// начала перезагрузки. Мутации старше маркера считаются отражёнными
// в снимке и забываются
func (s *Store) ApplyReload(token uint64, bookings []*domain.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bySlot = make(map[string][]string)
	s.byBooking = make(map[string]string)
	s.guides = make(map[string][]string)

	for _, booking := range bookings {
		if !booking.IsAssigned() {
			continue
		}
		slotKey := booking.SlotAssignment.SlotKey()
		s.attachLocked(booking.ID, slotKey)
		if len(booking.SlotAssignment.GuideIDs) > 0 {
			s.guides[slotKey] = mergeUnique(s.guides[slotKey], booking.SlotAssignment.GuideIDs)
		}
	}

	for bookingID, op := range s.pendingOps {
		if op.rev <= token {
			delete(s.pendingOps, bookingID)
			continue
		}
		s.detachLocked(bookingID)
		if op.slotKey != nil {
			s.attachLocked(bookingID, *op.slotKey)
		}
	}

	for slotKey, op := range s.pendingGuides {
		if op.rev <= token {
			delete(s.pendingGuides, slotKey)
			continue
		}
		s.guides[slotKey] = append([]string(nil), op.guideIDs...)
	}
}

// attachLocked добавляет бронирование в слот, вызывается под мьютексом
func (s *Store) attachLocked(bookingID, slotKey string) {
	if current, ok := s.byBooking[bookingID]; ok {
		if current == slotKey {
			return
		}
		s.removeFromSlotLocked(bookingID, current)
	}
	s.bySlot[slotKey] = append(s.bySlot[slotKey], bookingID)
	s.byBooking[bookingID] = slotKey
}

// detachLocked снимает бронирование с его слота, вызывается под мьютексом
func (s *Store) detachLocked(bookingID string) *string {
	slotKey, ok := s.byBooking[bookingID]
	if !ok {
		return nil
	}
	s.removeFromSlotLocked(bookingID, slotKey)
	delete(s.byBooking, bookingID)
	return &slotKey
}

func (s *Store) removeFromSlotLocked(bookingID, slotKey string) {
	ids := s.bySlot[slotKey]
	for i, id := range ids {
		if id == bookingID {
			s.bySlot[slotKey] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if len(s.bySlot[slotKey]) == 0 {
		delete(s.bySlot, slotKey)
	}
}

func mergeUnique(existing, extra []string) []string {
	for _, id := range extra {
		seen := false
		for _, have := range existing {
			if have == id {
				seen = true
				break
			}
		}
		if !seen {
			existing = append(existing, id)
		}
	}
	return existing
}
