package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/settings"
)

// Reader чтение документов настроек с кэшем
// Отсутствующий документ не ошибка: возвращаются значения по умолчанию
type Reader struct {
	repo   Repository
	cache  Cache
	ttl    time.Duration
	logger Logger
}

// NewReader создает новый экземпляр reader настроек
func NewReader(repo Repository, cache Cache, ttl time.Duration, logger Logger) *Reader {
	return &Reader{
		repo:   repo,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// BookingSettings настройки вместимости слотов
func (r *Reader) BookingSettings(ctx context.Context) (*domain.BookingSettings, error) {
	settings := domain.DefaultBookingSettings()
	if err := r.load(ctx, domain.SettingsKeyBooking, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// NotificationSettings переключатели уведомлений
// Документ хранится плоско: {"customerConfirmed": true, ...}
func (r *Reader) NotificationSettings(ctx context.Context) (*domain.NotificationSettings, error) {
	settings := &domain.NotificationSettings{Toggles: map[domain.NotificationType]bool{}}
	if err := r.load(ctx, domain.SettingsKeyNotifications, &settings.Toggles); err != nil {
		return nil, err
	}
	return settings, nil
}

// PointSettings правила начисления баллов
func (r *Reader) PointSettings(ctx context.Context) (*domain.PointSettings, error) {
	settings := domain.DefaultPointSettings()
	if err := r.load(ctx, domain.SettingsKeyPoints, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// Invalidate удаляет документ из кэша
func (r *Reader) Invalidate(ctx context.Context, key string) error {
	if r.cache == nil {
		return nil
	}
	if err := r.cache.Delete(ctx, key); err != nil {
		r.logger.Warn("settings cache: failed to invalidate key=%s: %v", key, err)
		return err
	}
	return nil
}

// load накладывает документ поверх значений по умолчанию в dst
func (r *Reader) load(ctx context.Context, key string, dst interface{}) error {
	doc, err := r.document(ctx, key)
	if err != nil {
		return err
	}
	if len(doc) == 0 {
		return nil
	}

	if err := json.Unmarshal(doc, dst); err != nil {
		r.logger.Error("settings: document key=%s is malformed: %v", key, err)
		return fmt.Errorf("%w: settings %s: %v", domain.ErrPersistence, key, err)
	}
	return nil
}

func (r *Reader) document(ctx context.Context, key string) (json.RawMessage, error) {
	if r.cache != nil {
		var cached json.RawMessage
		found, err := r.cache.Get(ctx, key, &cached)
		if err != nil {
			r.logger.Warn("settings cache: failed to read key=%s: %v", key, err)
		} else if found {
			return cached, nil
		}
	}

	doc, err := r.repo.GetDocument(ctx, key)
	if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
		r.logger.Info("settings: document key=%s not found, using defaults", key)
		return nil, nil
	}
	if err != nil {
		r.logger.Error("settings: repository error for key=%s: %v", key, err)
		return nil, fmt.Errorf("%w: settings %s: %w", domain.ErrPersistence, key, err)
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, key, json.RawMessage(doc), r.ttl); err != nil {
			r.logger.Warn("settings cache: failed to write key=%s: %v", key, err)
		}
	}

	return doc, nil
}
