package create_room_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/internal/infra/events"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/availability"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/pricing"
	"github.com/m04kA/SMC-SpaBookingService/pkg/ptr"
)

const admissionKind = "room"

// UseCase use case для бронирования номера
type UseCase struct {
	bookingRepo  BookingRepository
	catalog      CatalogReader
	availability AvailabilityChecker
	coupons      CouponValidator
	customers    CustomerRepository
	notifier     Notifier
	publisher    EventPublisher
	effects      Effects
	metrics      AdmissionRecorder
	txManager    TransactionManager
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalog CatalogReader,
	availability AvailabilityChecker,
	coupons CouponValidator,
	customers CustomerRepository,
	notifier Notifier,
	publisher EventPublisher,
	effects Effects,
	metrics AdmissionRecorder,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalog:      catalog,
		availability: availability,
		coupons:      coupons,
		customers:    customers,
		notifier:     notifier,
		publisher:    publisher,
		effects:      effects,
		metrics:      metrics,
		txManager:    txManager,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case бронирования номера
// Подсчёт занятости, выбор номера, вставка и погашение купона идут в одной
// сериализуемой транзакции под блокировкой типа номера
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.BookingResponse, error) {
	uc.logger.Info("CreateRoomBooking: roomType=%s, checkIn=%s, checkOut=%s, rooms=%d",
		req.RoomTypeID, req.CheckInDate, req.CheckOutDate, req.Rooms)

	// 1. Проверяем личность вызывающего
	if !req.Principal.IsAdmin() && !req.Principal.IsEndUser() {
		uc.logger.Warn("CreateRoomBooking: caller identity is not resolved")
		return nil, ErrUnauthorized
	}

	// 2. Валидация входных данных
	nights, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateRoomBooking: validation failed: %v", err)
		return nil, err
	}
	rooms := max(1, req.Rooms)

	// 3. Получаем тип номера
	roomType, err := uc.catalog.GetRoomType(ctx, req.RoomTypeID)
	if err != nil {
		uc.logger.Warn("CreateRoomBooking: failed to get room type id=%s: %v", req.RoomTypeID, err)
		return nil, err
	}
	if !roomType.Active {
		uc.logger.Warn("CreateRoomBooking: room type id=%s is inactive", req.RoomTypeID)
		return nil, ErrRoomTypeInactive
	}
	if roomType.MaxGuests > 0 && req.Guests > roomType.MaxGuests*rooms {
		return nil, fmt.Errorf("%w: %d guests for %d room(s) of max %d", ErrTooManyGuests, req.Guests, rooms, roomType.MaxGuests)
	}

	// 4. Считаем стоимость проживания
	quote := pricing.ResolveRoom(roomType, nights, rooms, req.Totals)

	// 5. Купон заменяет скидку с экрана бронирования
	customer := customerInfo(req)
	discount := quote.Discount
	if req.CouponID != nil && *req.CouponID != "" {
		_, discount, err = uc.coupons.Validate(ctx, ptr.Deref(customer.UserID), *req.CouponID, quote.Subtotal)
		if err != nil {
			uc.logger.Warn("CreateRoomBooking: coupon=%s rejected: %v", *req.CouponID, err)
			uc.metrics.RecordAdmission(admissionKind, outcomeOf(err))
			return nil, err
		}
	}

	// 6. Собираем документ бронирования
	booking := uc.buildBooking(req, customer, quote, discount, nights, rooms, uc.timeProvider.Now())

	// 7. Допуск и запись в сериализуемой транзакции
	var created *domain.Booking
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Блокируем тип номера до конца транзакции
		if err := uc.availability.LockRoomType(txCtx, req.RoomTypeID); err != nil {
			return err
		}

		// 7.2. Проверяем инвентарь и выбираем номер
		room, err := uc.availability.AssignRoom(txCtx, availability.RoomRequest{
			RoomTypeID: req.RoomTypeID,
			CheckIn:    req.CheckInDate,
			CheckOut:   req.CheckOutDate,
			Rooms:      rooms,
		})
		if err != nil {
			return err
		}
		booking.RoomInfo.RoomID = room.ID
		booking.RoomInfo.RoomNumber = room.Number

		// 7.3. Создаем бронирование
		created, err = uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateRoomBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", domain.ErrPersistence, err)
		}

		// 7.4. Гасим купон после вставки
		if booking.CouponID != nil {
			if err := uc.coupons.Consume(txCtx, *booking.CouponID, created.ID); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		uc.logger.Warn("CreateRoomBooking: booking rejected: %v", err)
		uc.metrics.RecordAdmission(admissionKind, outcomeOf(err))
		return nil, err
	}

	uc.metrics.RecordAdmission(admissionKind, "admitted")
	uc.logger.Info("CreateRoomBooking: created booking id=%s, room=%s, nights=%d, total=%d",
		created.ID, created.RoomInfo.RoomNumber, nights, created.Payment.TotalPrice)

	// 8. Побочные эффекты в фоне
	uc.afterCreate(ctx, created)

	return models.FromDomainBooking(created), nil
}

func (uc *UseCase) buildBooking(
	req *Request,
	customer domain.CustomerInfo,
	quote pricing.RoomQuote,
	discount int64,
	nights, rooms int,
	now time.Time,
) *domain.Booking {
	var requested domain.BookingStatus
	if req.Status != nil {
		requested = domain.BookingStatus(*req.Status)
	}

	payment := pricing.Finalize(quote.Subtotal, discount)
	dueAt := domain.EndOfBusinessDay(now, uc.location)
	if req.PaymentDueAt != nil {
		dueAt = *req.PaymentDueAt
	}
	payment.PaymentDueAt = &dueAt

	snapshot := quote.Snapshot
	booking := &domain.Booking{
		ID:     uuid.NewString(),
		Type:   domain.BookingTypeRoom,
		Status: domain.InitialStatus(req.Principal, requested),
		RoomInfo: &domain.RoomBookingInfo{
			RoomTypeID:   req.RoomTypeID,
			CheckInDate:  req.CheckInDate,
			CheckOutDate: req.CheckOutDate,
			Nights:       nights,
			Rooms:        rooms,
			Guests:       req.Guests,
		},
		Customer:     customer,
		RoomTypeInfo: &snapshot,
		Payment:      payment,
		Notes:        req.Notes,
	}
	if req.CouponID != nil && *req.CouponID != "" {
		booking.CouponID = req.CouponID
	}
	return booking
}

func customerInfo(req *Request) domain.CustomerInfo {
	info := domain.CustomerInfo{
		Name:  req.CustomerName,
		Phone: req.CustomerPhone,
	}
	switch {
	case req.Principal.IsEndUser():
		info.UserID = ptr.Ptr(req.Principal.UserID)
	case req.CustomerUserID != nil && *req.CustomerUserID != "":
		info.UserID = req.CustomerUserID
	}
	return info
}

func (uc *UseCase) afterCreate(ctx context.Context, booking *domain.Booking) {
	uc.effects.Go(ctx, "customer upsert booking="+booking.ID, func(ctx context.Context) error {
		return uc.customers.UpsertOnBooking(ctx, booking.Customer)
	})
	uc.effects.Go(ctx, "notify customer booking="+booking.ID, func(ctx context.Context) error {
		uc.notifier.NotifyCustomer(ctx, domain.NotifyCustomerCreated, booking, "")
		return nil
	})
	uc.effects.Go(ctx, "notify admins booking="+booking.ID, func(ctx context.Context) error {
		uc.notifier.NotifyAdmins(ctx, domain.NotifyAdminNewBooking, booking)
		return nil
	})
	uc.effects.Go(ctx, "publish created booking="+booking.ID, func(ctx context.Context) error {
		return uc.publisher.Publish(ctx, domain.BookingEvent{
			Type:       events.EventBookingCreated,
			BookingID:  booking.ID,
			Kind:       booking.Type,
			Status:     booking.Status,
			TotalPrice: booking.Payment.TotalPrice,
			OccurredAt: booking.CreatedAt,
		})
	})
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, domain.ErrRoomFullyBooked):
		return "room_full"
	case errors.Is(err, domain.ErrCouponAlreadyUsed):
		return "coupon_used"
	case errors.Is(err, domain.ErrInvalidCoupon), errors.Is(err, domain.ErrInvalidCouponType):
		return "invalid_coupon"
	}
	return "error"
}
