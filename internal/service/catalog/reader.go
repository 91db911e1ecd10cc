package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/catalog"
)

const (
	serviceKeyPrefix  = "service:"
	roomTypeKeyPrefix = "roomtype:"
)

// Reader источник истины по услугам и типам номеров
// Услуги и типы номеров читаются через кэш, номера (инвентарь) всегда из хранилища
type Reader struct {
	repo   Repository
	cache  Cache
	ttl    time.Duration
	logger Logger
}

// NewReader создает новый экземпляр reader каталога
// cache может быть nil, тогда все чтения идут в хранилище
func NewReader(repo Repository, cache Cache, ttl time.Duration, logger Logger) *Reader {
	return &Reader{
		repo:   repo,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// GetService получает услугу по ID
func (r *Reader) GetService(ctx context.Context, id string) (*domain.Service, error) {
	var cached domain.Service
	if r.fromCache(ctx, serviceKeyPrefix+id, &cached) {
		return &cached, nil
	}

	service, err := r.repo.GetService(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return nil, fmt.Errorf("%w: service id=%s", domain.ErrNotFound, id)
		}
		r.logger.Error("GetService: repository error for service id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetService - repository error: %w", domain.ErrPersistence, err)
	}

	r.toCache(ctx, serviceKeyPrefix+id, service)
	return service, nil
}

// GetRoomType получает тип номера по ID
func (r *Reader) GetRoomType(ctx context.Context, id string) (*domain.RoomType, error) {
	var cached domain.RoomType
	if r.fromCache(ctx, roomTypeKeyPrefix+id, &cached) {
		return &cached, nil
	}

	roomType, err := r.repo.GetRoomType(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrRoomTypeNotFound) {
			return nil, fmt.Errorf("%w: room type id=%s", domain.ErrNotFound, id)
		}
		r.logger.Error("GetRoomType: repository error for room type id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetRoomType - repository error: %w", domain.ErrPersistence, err)
	}

	r.toCache(ctx, roomTypeKeyPrefix+id, roomType)
	return roomType, nil
}

// GetRooms получает номера типа для подсчёта инвентаря
func (r *Reader) GetRooms(ctx context.Context, roomTypeID string) ([]*domain.Room, error) {
	rooms, err := r.repo.GetRoomsByType(ctx, roomTypeID)
	if err != nil {
		r.logger.Error("GetRooms: repository error for room type id=%s: %v", roomTypeID, err)
		return nil, fmt.Errorf("%w: GetRooms - repository error: %w", domain.ErrPersistence, err)
	}
	return rooms, nil
}

// InvalidateService удаляет услугу из кэша
func (r *Reader) InvalidateService(ctx context.Context, id string) error {
	return r.invalidate(ctx, serviceKeyPrefix+id)
}

// InvalidateRoomType удаляет тип номера из кэша
func (r *Reader) InvalidateRoomType(ctx context.Context, id string) error {
	return r.invalidate(ctx, roomTypeKeyPrefix+id)
}

func (r *Reader) invalidate(ctx context.Context, key string) error {
	if r.cache == nil {
		return nil
	}
	if err := r.cache.Delete(ctx, key); err != nil {
		r.logger.Warn("catalog cache: failed to invalidate key=%s: %v", key, err)
		return err
	}
	return nil
}

// fromCache ошибка кэша не фатальна, чтение уходит в хранилище
func (r *Reader) fromCache(ctx context.Context, key string, dst interface{}) bool {
	if r.cache == nil {
		return false
	}
	found, err := r.cache.Get(ctx, key, dst)
	if err != nil {
		r.logger.Warn("catalog cache: failed to read key=%s: %v", key, err)
		return false
	}
	return found
}

func (r *Reader) toCache(ctx context.Context, key string, value interface{}) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Set(ctx, key, value, r.ttl); err != nil {
		r.logger.Warn("catalog cache: failed to write key=%s: %v", key, err)
	}
}
