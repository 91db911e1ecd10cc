package notifications

import (
	"context"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// Dispatcher отправка уведомлений клиенту и администраторам
// Ошибки доставки только логируются и наружу не возвращаются
type Dispatcher struct {
	messenger Messenger
	adminIDs  []string
	fallback  AdminFallback
	settings  SettingsReader
	logger    Logger
}

// NewDispatcher создает новый экземпляр dispatcher
// messenger и fallback могут быть nil, если канал отключен
func NewDispatcher(messenger Messenger, adminIDs []string, fallback AdminFallback, settings SettingsReader, logger Logger) *Dispatcher {
	return &Dispatcher{
		messenger: messenger,
		adminIDs:  adminIDs,
		fallback:  fallback,
		settings:  settings,
		logger:    logger,
	}
}

// NotifyCustomer отправляет уведомление клиенту бронирования
func (d *Dispatcher) NotifyCustomer(ctx context.Context, kind domain.NotificationType, booking *domain.Booking, reason string) {
	if !d.enabled(ctx, kind) {
		return
	}
	if d.messenger == nil || booking.Customer.UserID == nil || *booking.Customer.UserID == "" {
		d.logger.Info("NotifyCustomer: skip type=%s for booking=%s, no channel to customer", kind, booking.ID)
		return
	}

	if err := d.messenger.Push(ctx, *booking.Customer.UserID, render(kind, booking, reason)); err != nil {
		d.logger.Error("NotifyCustomer: failed to push type=%s for booking=%s: %v", kind, booking.ID, err)
		return
	}
	d.logger.Info("NotifyCustomer: sent type=%s for booking=%s", kind, booking.ID)
}

// NotifyAdmins рассылает уведомление администраторам, при неудаче через резервный канал
func (d *Dispatcher) NotifyAdmins(ctx context.Context, kind domain.NotificationType, booking *domain.Booking) {
	if !d.enabled(ctx, kind) {
		return
	}
	text := render(kind, booking, "")

	if d.messenger != nil && len(d.adminIDs) > 0 {
		err := d.messenger.Multicast(ctx, d.adminIDs, text)
		if err == nil {
			d.logger.Info("NotifyAdmins: sent type=%s for booking=%s to %d admins", kind, booking.ID, len(d.adminIDs))
			return
		}
		d.logger.Warn("NotifyAdmins: multicast failed for booking=%s, trying fallback: %v", booking.ID, err)
	}

	if d.fallback == nil {
		d.logger.Warn("NotifyAdmins: no admin channel for type=%s, booking=%s", kind, booking.ID)
		return
	}
	if err := d.fallback.SendAdminMessage(ctx, text); err != nil {
		d.logger.Error("NotifyAdmins: fallback failed for booking=%s: %v", booking.ID, err)
		return
	}
	d.logger.Info("NotifyAdmins: sent type=%s for booking=%s via fallback", kind, booking.ID)
}

// enabled при ошибке чтения настроек уведомление отправляется
func (d *Dispatcher) enabled(ctx context.Context, kind domain.NotificationType) bool {
	settings, err := d.settings.NotificationSettings(ctx)
	if err != nil {
		d.logger.Warn("enabled: failed to read notification settings, type=%s treated as enabled: %v", kind, err)
		return true
	}
	if !settings.IsEnabled(kind) {
		d.logger.Info("enabled: notification type=%s disabled", kind)
		return false
	}
	return true
}
