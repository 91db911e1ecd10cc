package availability

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// Checker контроль допуска бронирований: вместимость слотов и инвентарь номеров
// Проверка и последующая запись должны выполняться в одной транзакции после Lock*
type Checker struct {
	bookings BookingRepository
	rooms    RoomInventory
	logger   Logger
}

// NewChecker создает новый экземпляр checker
func NewChecker(bookings BookingRepository, rooms RoomInventory, logger Logger) *Checker {
	return &Checker{
		bookings: bookings,
		rooms:    rooms,
		logger:   logger,
	}
}

// SlotLockKey ключ блокировки слота услуги
func SlotLockKey(date types.DateString, time types.TimeString) string {
	return fmt.Sprintf("slot:%s:%s", date, time)
}

// RoomTypeLockKey ключ блокировки типа номера
func RoomTypeLockKey(roomTypeID string) string {
	return "roomtype:" + roomTypeID
}

// LockSlot сериализует допуск в слот до конца текущей транзакции
func (c *Checker) LockSlot(ctx context.Context, date types.DateString, time types.TimeString) error {
	if err := c.bookings.AcquireAdmissionLock(ctx, SlotLockKey(date, time)); err != nil {
		return fmt.Errorf("%w: LockSlot: %w", domain.ErrPersistence, err)
	}
	return nil
}

// LockRoomType сериализует допуск по типу номера до конца текущей транзакции
func (c *Checker) LockRoomType(ctx context.Context, roomTypeID string) error {
	if err := c.bookings.AcquireAdmissionLock(ctx, RoomTypeLockKey(roomTypeID)); err != nil {
		return fmt.Errorf("%w: LockRoomType: %w", domain.ErrPersistence, err)
	}
	return nil
}

// CheckSlot отклоняет запрос с ErrSlotFull, если занятых мест не меньше вместимости
func (c *Checker) CheckSlot(ctx context.Context, req SlotRequest, settings *domain.BookingSettings) error {
	capacity, technician := effectiveCapacity(settings, req.Time, req.TechnicianID)

	count, err := c.bookings.CountSlotBookings(ctx, bookingRepo.SlotFilter{
		Date:         req.Date,
		Time:         req.Time,
		TechnicianID: technician,
		Statuses:     domain.SlotCountedStatuses,
	})
	if err != nil {
		c.logger.Error("CheckSlot: failed to count bookings date=%s, time=%s: %v", req.Date, req.Time, err)
		return fmt.Errorf("%w: CheckSlot - count bookings: %w", domain.ErrPersistence, err)
	}

	if count >= capacity {
		if technician != nil {
			c.logger.Warn("CheckSlot: technician=%s busy at date=%s, time=%s", *technician, req.Date, req.Time)
			return ErrTechnicianBusy
		}
		c.logger.Warn("CheckSlot: slot full date=%s, time=%s, %d/%d spots taken", req.Date, req.Time, count, capacity)
		return fmt.Errorf("%w: %d/%d spots taken", domain.ErrSlotFull, count, capacity)
	}

	c.logger.Info("CheckSlot: slot available date=%s, time=%s, %d/%d spots taken", req.Date, req.Time, count, capacity)
	return nil
}

// AssignRoom проверяет инвентарь и назначает свободный номер на период
func (c *Checker) AssignRoom(ctx context.Context, req RoomRequest) (*domain.Room, error) {
	rooms, err := c.rooms.GetRooms(ctx, req.RoomTypeID)
	if err != nil {
		return nil, err
	}

	overlapping, err := c.bookings.GetOverlappingRoomBookings(ctx, req.RoomTypeID, req.CheckIn, req.CheckOut, domain.ActiveRoomStatuses)
	if err != nil {
		c.logger.Error("AssignRoom: failed to get bookings for room type=%s: %v", req.RoomTypeID, err)
		return nil, fmt.Errorf("%w: AssignRoom - get bookings: %w", domain.ErrPersistence, err)
	}

	room, err := selectRoom(rooms, overlapping, req)
	if err != nil {
		c.logger.Warn("AssignRoom: room type=%s fully booked for %s..%s: %v", req.RoomTypeID, req.CheckIn, req.CheckOut, err)
		return nil, err
	}

	c.logger.Info("AssignRoom: assigned room=%s (type=%s) for %s..%s", room.Number, req.RoomTypeID, req.CheckIn, req.CheckOut)
	return room, nil
}

// ListSlots занятость всех настроенных слотов даты
func (c *Checker) ListSlots(ctx context.Context, date types.DateString, settings *domain.BookingSettings) ([]domain.AvailableSlot, error) {
	counts, err := c.bookings.CountByTimeOnDate(ctx, date, domain.SlotCountedStatuses)
	if err != nil {
		c.logger.Error("ListSlots: failed to count bookings date=%s: %v", date, err)
		return nil, fmt.Errorf("%w: ListSlots - count bookings: %w", domain.ErrPersistence, err)
	}

	return buildSlots(settings, counts), nil
}

// effectiveCapacity вместимость слота и фильтр по мастеру
// При эксклюзивности мастера и конкретном мастере вместимость 1 и считаются только его брони
func effectiveCapacity(settings *domain.BookingSettings, tm types.TimeString, technicianID *string) (int, *string) {
	if settings.TechnicianExclusive && isConcreteTechnician(technicianID) {
		return 1, technicianID
	}
	return settings.CapacityFor(tm.String()), nil
}

func isConcreteTechnician(id *string) bool {
	return id != nil && *id != "" && *id != domain.AutoAssignTechnician
}

// overlaps пересечение полуинтервалов [inA, outA) и [inB, outB)
// Выезд в день чужого заезда пересечением не считается
func overlaps(inA, outA, inB, outB types.DateString) bool {
	return inA.Before(outB) && outA.After(inB)
}

// selectRoom считает занятые номера среди активных пересекающихся броней
// и выбирает первый свободный рабочий номер
func selectRoom(rooms []*domain.Room, bookings []*domain.Booking, req RoomRequest) (*domain.Room, error) {
	usable := make([]*domain.Room, 0, len(rooms))
	for _, r := range rooms {
		if r.IsUsable() {
			usable = append(usable, r)
		}
	}

	requested := req.Rooms
	if requested < 1 {
		requested = 1
	}

	reserved := 0
	occupied := make(map[string]struct{})
	for _, b := range bookings {
		if b.RoomInfo == nil || b.RoomInfo.RoomTypeID != req.RoomTypeID || !b.IsActive() {
			continue
		}
		if !overlaps(req.CheckIn, req.CheckOut, b.RoomInfo.CheckInDate, b.RoomInfo.CheckOutDate) {
			continue
		}
		reserved += max(1, b.RoomInfo.Rooms)
		if b.RoomInfo.RoomID != "" {
			occupied[b.RoomInfo.RoomID] = struct{}{}
		}
	}

	if reserved+requested > len(usable) {
		return nil, fmt.Errorf("%w: %d reserved + %d requested > %d units",
			domain.ErrRoomFullyBooked, reserved, requested, len(usable))
	}

	for _, r := range usable {
		if _, taken := occupied[r.ID]; !taken {
			return r, nil
		}
	}

	return nil, ErrNoFreeRoom
}

func buildSlots(settings *domain.BookingSettings, counts map[types.TimeString]int) []domain.AvailableSlot {
	slots := make([]domain.AvailableSlot, 0, len(settings.TimeSlots))
	for _, raw := range settings.TimeSlots {
		tm, err := types.NewTimeStringFromString(raw)
		if err != nil {
			continue
		}

		total := settings.CapacityFor(tm.String())
		available := total - counts[tm]
		if available < 0 {
			available = 0
		}

		slots = append(slots, domain.AvailableSlot{
			Time:           tm,
			AvailableSpots: available,
			TotalSpots:     total,
		})
	}
	return slots
}
