package create_booking

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
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

const admissionKind = "service"

// UseCase use case для записи на услугу
type UseCase struct {
	bookingRepo  BookingRepository
	catalog      CatalogReader
	settings     SettingsReader
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
	settings SettingsReader,
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
		settings:     settings,
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

// Execute выполняет use case записи на услугу
// Проверка вместимости, вставка и погашение купона выполняются в одной
// сериализуемой транзакции под блокировкой слота
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.BookingResponse, error) {
	uc.logger.Info("CreateBooking: service=%s, date=%s, time=%s, technician=%v",
		req.ServiceID, req.Date, req.Time, ptr.Deref(req.TechnicianID))

	// 1. Проверяем личность вызывающего
	if !req.Principal.IsAdmin() && !req.Principal.IsEndUser() {
		uc.logger.Warn("CreateBooking: caller identity is not resolved")
		return nil, ErrUnauthorized
	}

	// 2. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}
	if tm, err := types.NewTimeStringFromString(req.Time.String()); err == nil {
		req.Time = tm
	}

	// 3. Получаем услугу из каталога
	service, err := uc.catalog.GetService(ctx, req.ServiceID)
	if err != nil {
		uc.logger.Warn("CreateBooking: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, err
	}
	if !service.Active {
		uc.logger.Warn("CreateBooking: service id=%s is inactive", req.ServiceID)
		return nil, ErrServiceInactive
	}

	// 4. Считаем цену только по каталогу
	quote := pricing.ResolveService(service, req.Selection)

	// 5. Проверяем купон
	customer := customerInfo(req)
	var discount int64
	if req.CouponID != nil && *req.CouponID != "" {
		_, discount, err = uc.coupons.Validate(ctx, ptr.Deref(customer.UserID), *req.CouponID, quote.Subtotal)
		if err != nil {
			uc.logger.Warn("CreateBooking: coupon=%s rejected: %v", *req.CouponID, err)
			uc.metrics.RecordAdmission(admissionKind, outcomeOf(err))
			return nil, err
		}
	}

	// 6. Получаем настройки вместимости
	settings, err := uc.settings.BookingSettings(ctx)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get booking settings: %v", err)
		return nil, err
	}

	// 7. Собираем документ бронирования
	now := uc.timeProvider.Now()
	booking := uc.buildBooking(req, customer, quote, discount, now)

	// 8. Допуск и запись в сериализуемой транзакции
	var created *domain.Booking
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Блокируем слот до конца транзакции
		if err := uc.availability.LockSlot(txCtx, req.Date, req.Time); err != nil {
			return err
		}

		// 8.2. Проверяем вместимость слота
		slot := availability.SlotRequest{Date: req.Date, Time: req.Time, TechnicianID: req.TechnicianID}
		if err := uc.availability.CheckSlot(txCtx, slot, settings); err != nil {
			return err
		}

		// 8.3. Создаем бронирование
		var err error
		created, err = uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", domain.ErrPersistence, err)
		}

		// 8.4. Гасим купон после вставки: при откате купон остаётся свободным
		if booking.CouponID != nil {
			if err := uc.coupons.Consume(txCtx, *booking.CouponID, created.ID); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		uc.logger.Warn("CreateBooking: booking rejected: %v", err)
		uc.metrics.RecordAdmission(admissionKind, outcomeOf(err))
		return nil, err
	}

	uc.metrics.RecordAdmission(admissionKind, "admitted")
	uc.logger.Info("CreateBooking: created booking id=%s, status=%s, total=%d",
		created.ID, created.Status, created.Payment.TotalPrice)

	// 9. Побочные эффекты в фоне, на результат не влияют
	uc.afterCreate(ctx, created)

	return models.FromDomainBooking(created), nil
}

func (uc *UseCase) buildBooking(
	req *Request,
	customer domain.CustomerInfo,
	quote pricing.ServiceQuote,
	discount int64,
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
		ID:           uuid.NewString(),
		Type:         domain.BookingTypeService,
		Status:       domain.InitialStatus(req.Principal, requested),
		Date:         req.Date,
		Time:         req.Time,
		TechnicianID: req.TechnicianID,
		Customer:     customer,
		ServiceInfo:  &snapshot,
		Payment:      payment,
		Notes:        req.Notes,
	}
	if req.CouponID != nil && *req.CouponID != "" {
		booking.CouponID = req.CouponID
	}
	return booking
}

// customerInfo данные клиента: для пользователя идентификатор берётся из токена
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

// outcomeOf метка исхода допуска для метрик
func outcomeOf(err error) string {
	switch {
	case errors.Is(err, domain.ErrSlotFull):
		return "slot_full"
	case errors.Is(err, domain.ErrCouponAlreadyUsed):
		return "coupon_used"
	case errors.Is(err, domain.ErrInvalidCoupon), errors.Is(err, domain.ErrInvalidCouponType):
		return "invalid_coupon"
	}
	return "error"
}
