package domain

// Service услуга каталога (массаж, spa-процедура и т.д.)
// Цена и длительность для расчёта берутся только отсюда
type Service struct {
	ID       string
	Name     string
	Category string
	Price    int64
	Duration int // минуты
	Active   bool

	// Многоуровневые тарифы: зона -> пакет
	Areas []ServiceArea
	// Опции по зонам: начинают с нуля и суммируются
	AreaOptions []AreaOptionGroup
	AddOns      []AddOn
}

// HasAreaTiers true, если услуга использует выбор зоны/пакета по индексу
func (s *Service) HasAreaTiers() bool {
	return len(s.Areas) > 0
}

// HasAreaOptions true, если услуга собирается из опций по зонам
func (s *Service) HasAreaOptions() bool {
	return len(s.AreaOptions) > 0
}

// ServiceArea зона услуги со своей ценой
type ServiceArea struct {
	Name     string           `json:"name"`
	Price    int64            `json:"price"`
	Duration int              `json:"duration"`
	Packages []ServicePackage `json:"packages,omitempty"`
}

// ServicePackage пакет внутри зоны
type ServicePackage struct {
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Duration int    `json:"duration"`
}

// AreaOptionGroup набор опций одной зоны
type AreaOptionGroup struct {
	AreaName string       `json:"areaName"`
	Options  []AreaOption `json:"options"`
}

// AreaOption опция зоны
type AreaOption struct {
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Duration int    `json:"duration"`
}

// AddOn дополнительная позиция к услуге
type AddOn struct {
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Duration int    `json:"duration"`
}

// OptionSelection выбранная клиентом опция зоны
type OptionSelection struct {
	AreaName   string `json:"areaName"`
	OptionName string `json:"optionName"`
}

// ServiceSnapshot копия данных услуги на момент бронирования
type ServiceSnapshot struct {
	ServiceID       string            `json:"serviceId"`
	Name            string            `json:"name"`
	Category        string            `json:"category,omitempty"`
	Price           int64             `json:"price"`
	Duration        int               `json:"duration"`
	AreaName        string            `json:"areaName,omitempty"`
	PackageName     string            `json:"packageName,omitempty"`
	SelectedOptions []OptionSelection `json:"selectedOptions,omitempty"`
	AddOns          []AddOn           `json:"addOns,omitempty"`
}

// RoomType тип номера
type RoomType struct {
	ID          string
	Name        string
	BasePrice   int64 // за ночь
	MaxGuests   int
	Description string
	Active      bool
}

// RoomUnitStatus состояние конкретного номера
type RoomUnitStatus string

const (
	RoomUnitAvailable   RoomUnitStatus = "available"
	RoomUnitMaintenance RoomUnitStatus = "maintenance"
)

// Room конкретный номер (единица инвентаря)
type Room struct {
	ID         string
	RoomTypeID string
	Number     string
	Status     RoomUnitStatus
}

// IsUsable в инвентарь попадают номера с пустым статусом или available
func (r *Room) IsUsable() bool {
	return r.Status == "" || r.Status == RoomUnitAvailable
}

// RoomTypeSnapshot копия данных типа номера на момент бронирования
type RoomTypeSnapshot struct {
	RoomTypeID string `json:"roomTypeId"`
	Name       string `json:"name"`
	BasePrice  int64  `json:"basePrice"`
}
