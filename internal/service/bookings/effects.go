package bookings

import (
	"context"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/internal/infra/events"
)

// Побочные эффекты переходов выполняются в фоне и не влияют на ответ

func (s *Service) onCompleted(ctx context.Context, booking *domain.Booking) {
	s.awardPoints(ctx, booking, domain.PointsPurchase)
	s.awardPoints(ctx, booking, domain.PointsVisit)
	s.notify(ctx, domain.NotifyCustomerCompleted, booking, "")
	s.notify(ctx, domain.NotifyReviewRequest, booking, "")
	s.syncCalendar(ctx, booking)

	s.effects.Go(ctx, "customer visit booking="+booking.ID, func(ctx context.Context) error {
		return s.customers.RecordVisit(ctx, booking.Customer, booking.Payment.TotalPrice)
	})
}

func (s *Service) notify(ctx context.Context, kind domain.NotificationType, booking *domain.Booking, reason string) {
	s.effects.Go(ctx, "notify "+string(kind)+" booking="+booking.ID, func(ctx context.Context) error {
		s.notifier.NotifyCustomer(ctx, kind, booking, reason)
		return nil
	})
}

func (s *Service) awardPoints(ctx context.Context, booking *domain.Booking, kind domain.PointKind) {
	s.effects.Go(ctx, "points "+string(kind)+" booking="+booking.ID, func(ctx context.Context) error {
		_, err := s.points.Award(ctx, booking, kind)
		return err
	})
}

func (s *Service) syncCalendar(ctx context.Context, booking *domain.Booking) {
	s.effects.Go(ctx, "calendar upsert booking="+booking.ID, func(ctx context.Context) error {
		return s.calendar.Upsert(ctx, booking)
	})
}

func (s *Service) releaseCalendar(ctx context.Context, bookingID string) {
	s.effects.Go(ctx, "calendar release booking="+bookingID, func(ctx context.Context) error {
		return s.calendar.Delete(ctx, bookingID)
	})
}

func (s *Service) publish(ctx context.Context, booking *domain.Booking, prev domain.BookingStatus, actor domain.ActorKind) {
	event := domain.BookingEvent{
		Type:       events.EventBookingStatusChanged,
		BookingID:  booking.ID,
		Kind:       booking.Type,
		Status:     booking.Status,
		PrevStatus: prev,
		Actor:      actor,
		TotalPrice: booking.Payment.TotalPrice,
		OccurredAt: s.timeProvider.Now(),
	}
	s.effects.Go(ctx, "publish status_changed booking="+booking.ID, func(ctx context.Context) error {
		return s.publisher.Publish(ctx, event)
	})
}
