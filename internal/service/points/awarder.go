package points

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// Awarder начисление баллов за бронирование
// Каждая категория начисляется не более одного раза на бронирование
type Awarder struct {
	bookings  BookingRepository
	ledger    Ledger
	settings  SettingsReader
	txManager TransactionManager
	logger    Logger
}

// NewAwarder создает новый экземпляр awarder
func NewAwarder(bookings BookingRepository, ledger Ledger, settings SettingsReader, txManager TransactionManager, logger Logger) *Awarder {
	return &Awarder{
		bookings:  bookings,
		ledger:    ledger,
		settings:  settings,
		txManager: txManager,
		logger:    logger,
	}
}

// Award начисляет баллы категории kind и возвращает их количество
// Повторный вызов для той же категории возвращает 0
func (a *Awarder) Award(ctx context.Context, booking *domain.Booking, kind domain.PointKind) (int64, error) {
	if booking.Customer.UserID == nil || *booking.Customer.UserID == "" {
		return 0, nil
	}

	settings, err := a.settings.PointSettings(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: Award - read point settings: %w", domain.ErrPersistence, err)
	}

	amount := amountFor(settings, booking, kind)
	if amount <= 0 {
		a.logger.Info("Award: no %s points for booking=%s", kind, booking.ID)
		return 0, nil
	}

	userID := *booking.Customer.UserID
	awarded := int64(0)

	// Отметка и запись в журнал в одной транзакции: без записи отметка откатывается
	err = a.txManager.Do(ctx, func(txCtx context.Context) error {
		claimed, err := a.bookings.ClaimPointsAward(txCtx, booking.ID, kind)
		if err != nil {
			return err
		}
		if !claimed {
			return nil
		}
		if err := a.ledger.Award(txCtx, userID, booking.ID, kind, amount); err != nil {
			return err
		}
		awarded = amount
		return nil
	})
	if err != nil {
		a.logger.Error("Award: failed to award %s points for booking=%s: %v", kind, booking.ID, err)
		return 0, fmt.Errorf("%w: Award - %s points: %w", domain.ErrPersistence, kind, err)
	}

	if awarded == 0 {
		a.logger.Info("Award: %s points already awarded for booking=%s", kind, booking.ID)
		return 0, nil
	}

	a.logger.Info("Award: %d %s points to user=%s for booking=%s", awarded, kind, userID, booking.ID)
	return awarded, nil
}

func amountFor(settings *domain.PointSettings, booking *domain.Booking, kind domain.PointKind) int64 {
	switch kind {
	case domain.PointsPurchase:
		return settings.PurchasePoints(booking.Payment.TotalPrice)
	case domain.PointsVisit:
		if !settings.Enabled {
			return 0
		}
		return settings.VisitPoints
	}
	return 0
}
