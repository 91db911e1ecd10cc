package pricing

import (
	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// ResolveService считает цену и длительность услуги только по данным каталога
func ResolveService(service *domain.Service, sel ServiceSelection) ServiceQuote {
	snapshot := domain.ServiceSnapshot{
		ServiceID: service.ID,
		Name:      service.Name,
		Category:  service.Category,
	}

	// 1. Тариф: базовая цена, зона/пакет или опции по зонам
	price, duration := service.Price, service.Duration
	switch {
	case service.HasAreaTiers():
		price, duration = resolveArea(service, sel, &snapshot)
	case service.HasAreaOptions():
		price, duration = resolveOptions(service, sel.Options, &snapshot)
	}

	// 2. Дополнения суммируются поверх тарифа
	subtotal := price
	totalDuration := duration
	for _, name := range sel.AddOns {
		addOn, ok := findAddOn(service.AddOns, name)
		if !ok {
			continue
		}
		subtotal += addOn.Price
		totalDuration += addOn.Duration
		snapshot.AddOns = append(snapshot.AddOns, addOn)
	}

	snapshot.Price = price
	snapshot.Duration = totalDuration

	return ServiceQuote{
		Price:    price,
		Duration: totalDuration,
		Subtotal: subtotal,
		Snapshot: snapshot,
	}
}

// resolveArea выбирает зону и пакет по индексам
// Неверный индекс зоны -> базовая цена услуги, неверный индекс пакета -> цена зоны
func resolveArea(service *domain.Service, sel ServiceSelection, snapshot *domain.ServiceSnapshot) (int64, int) {
	if !inRange(sel.AreaIndex, len(service.Areas)) {
		return service.Price, service.Duration
	}

	area := service.Areas[*sel.AreaIndex]
	snapshot.AreaName = area.Name

	if !inRange(sel.PackageIndex, len(area.Packages)) {
		return area.Price, area.Duration
	}

	pkg := area.Packages[*sel.PackageIndex]
	snapshot.PackageName = pkg.Name
	return pkg.Price, pkg.Duration
}

// resolveOptions суммирует выбранные опции зон, начиная с нуля
func resolveOptions(service *domain.Service, selected []domain.OptionSelection, snapshot *domain.ServiceSnapshot) (int64, int) {
	var price int64
	var duration int
	for _, s := range selected {
		option, ok := findOption(service.AreaOptions, s)
		if !ok {
			continue
		}
		price += option.Price
		duration += option.Duration
		snapshot.SelectedOptions = append(snapshot.SelectedOptions, s)
	}
	return price, duration
}

// ResolveRoom считает стоимость проживания: basePrice × nights × max(1, rooms)
// Переданные вызывающей стороной суммы > 0 принимаются как есть
func ResolveRoom(roomType *domain.RoomType, nights, rooms int, caller CallerTotals) RoomQuote {
	quote := RoomQuote{
		Subtotal: roomType.BasePrice * int64(nights) * int64(max(1, rooms)),
		Snapshot: domain.RoomTypeSnapshot{
			RoomTypeID: roomType.ID,
			Name:       roomType.Name,
			BasePrice:  roomType.BasePrice,
		},
	}

	if caller.Discount > 0 {
		quote.Discount = caller.Discount
	}

	switch {
	case caller.OriginalPrice > 0:
		quote.Subtotal = caller.OriginalPrice
	case caller.TotalPrice > 0:
		// итог без подытога: восстанавливаем подытог из итога и скидки
		quote.Subtotal = caller.TotalPrice + quote.Discount
	}

	return quote
}

// Finalize применяет скидку к подытогу
func Finalize(subtotal, discount int64) domain.PaymentInfo {
	return domain.NewPaymentInfo(subtotal, discount)
}

func inRange(idx *int, n int) bool {
	return idx != nil && *idx >= 0 && *idx < n
}

func findAddOn(addOns []domain.AddOn, name string) (domain.AddOn, bool) {
	for _, a := range addOns {
		if a.Name == name {
			return a, true
		}
	}
	return domain.AddOn{}, false
}

func findOption(groups []domain.AreaOptionGroup, sel domain.OptionSelection) (domain.AreaOption, bool) {
	for _, g := range groups {
		if g.AreaName != sel.AreaName {
			continue
		}
		for _, o := range g.Options {
			if o.Name == sel.OptionName {
				return o, true
			}
		}
	}
	return domain.AreaOption{}, false
}
