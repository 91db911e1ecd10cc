package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/bookings/models"
)

// Service управление жизненным циклом существующих бронирований
type Service struct {
	bookingRepo  BookingRepository
	directory    EmployeeDirectory
	notifier     Notifier
	points       PointsAwarder
	customers    CustomerRepository
	calendar     CalendarRepository
	publisher    EventPublisher
	effects      Effects
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	directory EmployeeDirectory,
	notifier Notifier,
	points PointsAwarder,
	customers CustomerRepository,
	calendar CalendarRepository,
	publisher EventPublisher,
	effects Effects,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		directory:    directory,
		notifier:     notifier,
		points:       points,
		customers:    customers,
		calendar:     calendar,
		publisher:    publisher,
		effects:      effects,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Доступно администратору, сотруднику и владельцу бронирования
func (s *Service) GetByID(ctx context.Context, principal *domain.Principal, id string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s", id)

	booking, err := s.load(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if _, err := s.authorize(ctx, principal, booking, true); err != nil {
		s.logger.Warn("GetByID: access denied to booking id=%s", id)
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований текущего пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, principal *domain.Principal, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	if !principal.IsEndUser() {
		return nil, ErrAccessDenied
	}
	s.logger.Info("GetUserBookings: fetching bookings for user=%s, status=%v", principal.UserID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%s", *req.Status, principal.UserID)
			return nil, ErrInvalidStatus
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByCustomerUserID(ctx, principal.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%s: %v", principal.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %w", domain.ErrPersistence, err)
	}

	s.logger.Info("GetUserBookings: fetched %d bookings for user=%s", len(bookings), principal.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// ApplyTransition выполняет действие confirm, start или complete
// Подтвердить своё бронирование может и сам клиент
func (s *Service) ApplyTransition(ctx context.Context, principal *domain.Principal, id string, req *models.TransitionRequest) (*models.BookingResponse, error) {
	transition := domain.Transition(req.Action)
	if !transition.IsValid() || transition == domain.TransitionCancel {
		return nil, ErrInvalidAction
	}
	if req.Note != nil && len([]rune(*req.Note)) > domain.MaxCompletionNoteLength {
		return nil, ErrNoteTooLong
	}

	selfService := transition == domain.TransitionConfirm
	booking, prev, actor, err := s.change(ctx, "ApplyTransition", principal, id, selfService,
		func(b *domain.Booking, _ domain.ActorKind, now time.Time) error {
			if !transition.CanApply(b.Status) {
				return fmt.Errorf("%w: %s from %s", domain.ErrInvalidTransition, transition, b.Status)
			}
			b.Status = transition.Target()
			switch transition {
			case domain.TransitionConfirm:
				b.ConfirmedAt = &now
			case domain.TransitionStart:
				b.StartedAt = &now
			case domain.TransitionComplete:
				b.CompletedAt = &now
				b.CompletionNote = req.Note
			}
			return nil
		})
	if err != nil {
		return nil, err
	}

	switch transition {
	case domain.TransitionConfirm:
		s.notify(ctx, domain.NotifyCustomerConfirmed, booking, "")
		s.syncCalendar(ctx, booking)
	case domain.TransitionStart:
		s.syncCalendar(ctx, booking)
	case domain.TransitionComplete:
		s.onCompleted(ctx, booking)
	}
	s.publish(ctx, booking, prev, actor)

	return models.FromDomainBooking(booking), nil
}

// Cancel отменяет бронирование
// Статус оплаты не меняется, причина и автор отмены сохраняются
func (s *Service) Cancel(ctx context.Context, principal *domain.Principal, id string, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	if len([]rune(req.Reason)) > domain.MaxCancellationReasonLength {
		return nil, ErrNoteTooLong
	}

	booking, prev, actor, err := s.change(ctx, "Cancel", principal, id, true,
		func(b *domain.Booking, actor domain.ActorKind, now time.Time) error {
			if !domain.TransitionCancel.CanApply(b.Status) {
				return fmt.Errorf("%w: cancel from %s", domain.ErrInvalidTransition, b.Status)
			}
			b.Status = domain.StatusCancelled
			b.CancelledAt = &now
			b.CancelledBy = &actor
			if req.Reason != "" {
				reason := req.Reason
				b.CancellationReason = &reason
			}
			return nil
		})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, domain.NotifyCustomerCancelled, booking, req.Reason)
	s.releaseCalendar(ctx, booking.ID)
	s.publish(ctx, booking, prev, actor)

	return models.FromDomainBooking(booking), nil
}

// UpdatePayment изменяет статус оплаты
// Клиент может только сообщить об оплате (pending_verification)
func (s *Service) UpdatePayment(ctx context.Context, principal *domain.Principal, id string, req *models.UpdatePaymentRequest) (*models.BookingResponse, error) {
	status, err := models.ToDomainPaymentStatus(req.PaymentStatus)
	if err != nil {
		return nil, ErrInvalidPaymentStatus
	}

	selfService := status == domain.PaymentPendingVerification
	autoConfirmed := false
	wasPaid := false

	booking, prev, actor, err := s.change(ctx, "UpdatePayment", principal, id, selfService,
		func(b *domain.Booking, actor domain.ActorKind, now time.Time) error {
			if actor == domain.ActorUser && !canSendPaymentNotice(b) {
				return fmt.Errorf("%w: payment notice on %s booking with payment %s",
					domain.ErrInvalidTransition, b.Status, b.Payment.PaymentStatus)
			}

			wasPaid = b.IsPaid()
			b.Payment.PaymentStatus = status
			if req.PaymentMethod != "" {
				b.Payment.PaymentMethod = req.PaymentMethod
			}
			if status != domain.PaymentPaid || wasPaid {
				return nil
			}
			b.Payment.PaidAt = &now
			// после оплаты бронирование подтверждается, если ещё не ушло дальше
			if !b.Status.IsAdvancedPastConfirmed() && b.Status != domain.StatusBlocked {
				b.Status = domain.StatusConfirmed
				b.ConfirmedAt = &now
				autoConfirmed = true
			}
			return nil
		})
	if err != nil {
		return nil, err
	}

	// отменённое бронирование баллов не получает
	if status == domain.PaymentPaid && !wasPaid && !booking.IsCancelled() {
		s.notify(ctx, domain.NotifyCustomerPaymentConfirmed, booking, "")
		s.awardPoints(ctx, booking, domain.PointsPurchase)
	}
	if autoConfirmed {
		s.syncCalendar(ctx, booking)
		s.publish(ctx, booking, prev, actor)
	}

	return models.FromDomainBooking(booking), nil
}

// ForceStatus устанавливает любой статус в обход графа переходов
// Доступно только администратору
func (s *Service) ForceStatus(ctx context.Context, principal *domain.Principal, id string, req *models.ForceStatusRequest) (*models.BookingResponse, error) {
	if !principal.IsAdmin() {
		return nil, ErrAccessDenied
	}

	status, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		return nil, ErrInvalidStatus
	}

	booking, prev, actor, err := s.change(ctx, "ForceStatus", principal, id, false,
		func(b *domain.Booking, actor domain.ActorKind, now time.Time) error {
			b.Status = status
			stampStatus(b, actor, now)
			return nil
		})
	if err != nil {
		return nil, err
	}

	if status == domain.StatusCancelled {
		s.releaseCalendar(ctx, booking.ID)
	} else {
		s.syncCalendar(ctx, booking)
	}
	s.publish(ctx, booking, prev, actor)

	return models.FromDomainBooking(booking), nil
}

// Delete физически удаляет бронирование в обход графа статусов
// Доступно только администратору
func (s *Service) Delete(ctx context.Context, principal *domain.Principal, id string) error {
	if !principal.IsAdmin() {
		return ErrAccessDenied
	}
	s.logger.Info("Delete: deleting booking id=%s", id)

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Delete: booking id=%s not found", id)
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %w", domain.ErrPersistence, err)
	}

	s.releaseCalendar(ctx, id)
	s.logger.Info("Delete: deleted booking id=%s", id)
	return nil
}

// Вспомогательные методы

// change загружает бронирование, проверяет права, применяет mutate и сохраняет
// с проверкой версии. Возвращает сохранённое бронирование, прежний статус и автора.
func (s *Service) change(
	ctx context.Context,
	op string,
	principal *domain.Principal,
	id string,
	selfService bool,
	mutate func(b *domain.Booking, actor domain.ActorKind, now time.Time) error,
) (*domain.Booking, domain.BookingStatus, domain.ActorKind, error) {
	// 1. Получаем бронирование
	booking, err := s.load(ctx, op, id)
	if err != nil {
		return nil, "", "", err
	}

	// 2. Проверяем права доступа
	actor, err := s.authorize(ctx, principal, booking, selfService)
	if err != nil {
		s.logger.Warn("%s: access denied to booking id=%s", op, id)
		return nil, "", "", err
	}

	// 3. Применяем изменение
	prev := booking.Status
	if err := mutate(booking, actor, s.timeProvider.Now()); err != nil {
		s.logger.Warn("%s: booking id=%s rejected: %v", op, id, err)
		return nil, "", "", err
	}

	// 4. Сохраняем с проверкой версии
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrVersionConflict):
			s.logger.Warn("%s: booking id=%s was modified concurrently", op, id)
			return nil, "", "", ErrBookingModified
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			return nil, "", "", ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, "", "", fmt.Errorf("%w: %s - repository error: %w", domain.ErrPersistence, op, err)
	}

	s.logger.Info("%s: booking id=%s status %s -> %s by %s", op, id, prev, booking.Status, actor)
	return booking, prev, actor, nil
}

func (s *Service) load(ctx context.Context, op, id string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", domain.ErrPersistence, op, err)
	}
	return booking, nil
}

// authorize определяет автора действия
// Администратор и сотрудник могут всё, владелец только действия самообслуживания
func (s *Service) authorize(ctx context.Context, principal *domain.Principal, booking *domain.Booking, selfService bool) (domain.ActorKind, error) {
	if principal.IsAdmin() {
		return domain.ActorAdmin, nil
	}
	if !principal.IsEndUser() {
		return "", ErrAccessDenied
	}

	isEmployee, err := s.directory.IsEmployee(ctx, principal.UserID)
	if err != nil {
		return "", err
	}
	if isEmployee {
		return domain.ActorEmployee, nil
	}

	if selfService && booking.IsOwnedBy(principal.UserID) {
		return domain.ActorUser, nil
	}

	return "", ErrAccessDenied
}

// canSendPaymentNotice клиент сообщает об оплате только по неоплаченному активному бронированию
func canSendPaymentNotice(b *domain.Booking) bool {
	if b.Status.IsTerminal() {
		return false
	}
	return b.Payment.PaymentStatus == domain.PaymentUnpaid || b.Payment.PaymentStatus == domain.PaymentInvoiced
}

// stampStatus отметки времени для принудительно установленного статуса
func stampStatus(b *domain.Booking, actor domain.ActorKind, now time.Time) {
	switch b.Status {
	case domain.StatusConfirmed:
		if b.ConfirmedAt == nil {
			b.ConfirmedAt = &now
		}
	case domain.StatusInProgress:
		if b.StartedAt == nil {
			b.StartedAt = &now
		}
	case domain.StatusCompleted:
		if b.CompletedAt == nil {
			b.CompletedAt = &now
		}
	case domain.StatusCancelled:
		if b.CancelledAt == nil {
			b.CancelledAt = &now
			b.CancelledBy = &actor
		}
	}
}
