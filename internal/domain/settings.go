package domain

import (
	"strings"

	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// Ключи документов настроек
const (
	SettingsKeyBooking       = "booking"
	SettingsKeyNotifications = "notifications"
	SettingsKeyPoints        = "points"
)

// SlotOverride переопределение вместимости для конкретного времени
type SlotOverride struct {
	Time  string `json:"time"`
	Count int    `json:"count"`
}

// BookingSettings настройки вместимости слотов
type BookingSettings struct {
	TechnicianExclusive bool           `json:"technicianExclusive"`
	MaxBookingsPerSlot  int            `json:"maxBookingsPerSlot"`
	TimeOverrides       []SlotOverride `json:"timeOverrides,omitempty"`
	TimeSlots           []string       `json:"timeSlots,omitempty"`
}

// CapacityFor вместимость слота с учетом переопределений по времени
// Время сравнивается в формате HH:MM ("9:00" == "09:00")
func (s *BookingSettings) CapacityFor(tm string) int {
	want := normalizeSlotTime(tm)
	for _, o := range s.TimeOverrides {
		if normalizeSlotTime(o.Time) == want {
			return o.Count
		}
	}
	if s.MaxBookingsPerSlot <= 0 {
		return DefaultMaxBookingsPerSlot
	}
	return s.MaxBookingsPerSlot
}

func normalizeSlotTime(s string) string {
	normalized, err := types.NewTimeStringFromString(strings.TrimSpace(s))
	if err != nil {
		return s
	}
	return normalized.String()
}

// DefaultBookingSettings настройки по умолчанию, если документа нет
func DefaultBookingSettings() *BookingSettings {
	return &BookingSettings{MaxBookingsPerSlot: DefaultMaxBookingsPerSlot}
}

// NotificationType тип уведомления
type NotificationType string

const (
	NotifyCustomerCreated          NotificationType = "customerCreated"
	NotifyCustomerConfirmed        NotificationType = "customerConfirmed"
	NotifyCustomerPaymentConfirmed NotificationType = "customerPaymentConfirmed"
	NotifyCustomerCompleted        NotificationType = "customerCompleted"
	NotifyReviewRequest            NotificationType = "reviewRequest"
	NotifyCustomerCancelled        NotificationType = "customerCancelled"
	NotifyAdminNewBooking          NotificationType = "adminNewBooking"
)

// NotificationSettings переключатели уведомлений (отсутствующий ключ = включено)
type NotificationSettings struct {
	Toggles map[NotificationType]bool `json:"toggles"`
}

// IsEnabled проверяет, включен ли тип уведомления
func (s *NotificationSettings) IsEnabled(t NotificationType) bool {
	if s == nil || s.Toggles == nil {
		return true
	}
	enabled, ok := s.Toggles[t]
	return !ok || enabled
}

// PointSettings правила начисления баллов
type PointSettings struct {
	Enabled       bool  `json:"enabled"`
	SpendPerPoint int64 `json:"spendPerPoint"` // сколько потратить за 1 балл
	VisitPoints   int64 `json:"visitPoints"`
}

// PurchasePoints баллы за сумму покупки
func (s *PointSettings) PurchasePoints(amount int64) int64 {
	if !s.Enabled || s.SpendPerPoint <= 0 || amount <= 0 {
		return 0
	}
	return amount / s.SpendPerPoint
}

// DefaultPointSettings правила по умолчанию
func DefaultPointSettings() *PointSettings {
	return &PointSettings{
		Enabled:       true,
		SpendPerPoint: DefaultSpendPerPoint,
		VisitPoints:   DefaultVisitPoints,
	}
}
