package pricing

import "github.com/m04kA/SMC-SpaBookingService/internal/domain"

// ServiceSelection выбор клиента внутри услуги
// Цены из запроса сюда не попадают: индексы и имена только выбирают позиции каталога
type ServiceSelection struct {
	AreaIndex    *int
	PackageIndex *int
	Options      []domain.OptionSelection
	AddOns       []string
}

// ServiceQuote расчёт услуги до скидки
type ServiceQuote struct {
	Price    int64 // цена выбранного тарифа без дополнений
	Duration int   // итоговая длительность с дополнениями, минуты
	Subtotal int64 // тариф + дополнения
	Snapshot domain.ServiceSnapshot
}

// CallerTotals предрасчитанные суммы с экрана бронирования номера
// Учитываются только значения > 0
type CallerTotals struct {
	OriginalPrice int64
	Discount      int64
	TotalPrice    int64
}

// RoomQuote расчёт проживания до скидки
type RoomQuote struct {
	Subtotal int64
	// Discount скидка, переданная вызывающей стороной (0, если не передана)
	Discount int64
	Snapshot domain.RoomTypeSnapshot
}
