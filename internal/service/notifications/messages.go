package notifications

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// render текст уведомления по типу
func render(kind domain.NotificationType, b *domain.Booking, reason string) string {
	subject := describe(b)

	switch kind {
	case domain.NotifyCustomerCreated:
		return fmt.Sprintf("Бронирование принято: %s. К оплате: %d", subject, b.Payment.TotalPrice)
	case domain.NotifyCustomerConfirmed:
		return fmt.Sprintf("Бронирование подтверждено: %s", subject)
	case domain.NotifyCustomerPaymentConfirmed:
		return fmt.Sprintf("Оплата получена: %s, сумма %d", subject, b.Payment.TotalPrice)
	case domain.NotifyCustomerCompleted:
		return fmt.Sprintf("Спасибо за визит! %s", subject)
	case domain.NotifyReviewRequest:
		return "Пожалуйста, оцените качество обслуживания"
	case domain.NotifyCustomerCancelled:
		if reason != "" {
			return fmt.Sprintf("Бронирование отменено: %s. Причина: %s", subject, reason)
		}
		return fmt.Sprintf("Бронирование отменено: %s", subject)
	case domain.NotifyAdminNewBooking:
		return fmt.Sprintf("Новое бронирование %s: %s, клиент %s %s, сумма %d",
			b.ID, subject, b.Customer.Name, b.Customer.Phone, b.Payment.TotalPrice)
	}

	return subject
}

func describe(b *domain.Booking) string {
	if b.Type == domain.BookingTypeRoom && b.RoomInfo != nil {
		name := b.RoomInfo.RoomNumber
		if b.RoomTypeInfo != nil {
			name = strings.TrimSpace(b.RoomTypeInfo.Name + " " + b.RoomInfo.RoomNumber)
		}
		return fmt.Sprintf("%s, %s - %s", name, b.RoomInfo.CheckInDate, b.RoomInfo.CheckOutDate)
	}

	name := "услуга"
	if b.ServiceInfo != nil {
		name = b.ServiceInfo.Name
	}
	return fmt.Sprintf("%s, %s %s", name, b.Date, b.Time)
}
