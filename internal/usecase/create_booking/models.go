package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/pricing"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// Request модель запроса на запись на услугу
// Цена и длительность из запроса не принимаются: Selection только выбирает позиции каталога
type Request struct {
	Principal    *domain.Principal // проверенная личность вызывающего
	ServiceID    string
	Date         types.DateString // "2024-05-01"
	Time         types.TimeString // "10:00"
	TechnicianID *string          // "auto" или пусто - любой мастер

	CustomerName   string
	CustomerPhone  string
	CustomerUserID *string // только для администратора: бронь от имени клиента

	Selection    pricing.ServiceSelection
	CouponID     *string
	Status       *string    // учитывается только для администратора
	PaymentDueAt *time.Time // по умолчанию конец текущего дня
	Notes        *string
}
