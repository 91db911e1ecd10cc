package get_available_slots

import (
	"context"
	"time"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	settings     SettingsReader
	slots        SlotLister
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	settings SettingsReader,
	slots SlotLister,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		settings:     settings,
		slots:        slots,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s", req.Date)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Прошедшие даты не бронируются
	now := uc.timeProvider.Now()
	state := classifyDate(req.Date, now, uc.location)
	if state == dayPast {
		uc.logger.Info("GetAvailableSlots: date=%s is in the past", req.Date)
		return &Response{Date: req.Date, Slots: []Slot{}}, nil
	}

	// 3. Получаем настройки слотов
	settings, err := uc.settings.BookingSettings(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get booking settings: %v", err)
		return nil, err
	}

	// 4. Считаем занятость каждого настроенного слота
	slots, err := uc.slots.ListSlots(ctx, req.Date, settings)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list slots date=%s: %v", req.Date, err)
		return nil, err
	}

	result := toResponseSlots(slots, state, now, uc.location)
	uc.logger.Info("GetAvailableSlots: generated %d slots for date=%s", len(result), req.Date)

	return &Response{Date: req.Date, Slots: result}, nil
}
