package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Florddev/match-room-sub001/internal/domain/hotel"
	"github.com/Florddev/match-room-sub001/internal/domain/identity"
	"github.com/Florddev/match-room-sub001/internal/domain/room"
	"github.com/Florddev/match-room-sub001/internal/domain/stay"
	redisinfra "github.com/Florddev/match-room-sub001/internal/infrastructure/redis"
	"github.com/Florddev/match-room-sub001/internal/pkg/logger"
)

const (
	roomCacheTTL = 5 * time.Minute
)

// RoomService はホテル・客室の参照系ユースケースを提供する
// 客室レコードのみキャッシュし、空室状況は毎回ストアを参照する
type RoomService struct {
	roomRepo     room.Repository
	hotelRepo    hotel.Repository
	cache        redisinfra.RoomCacheInterface
	availability *AvailabilityService
}

func NewRoomService(rr room.Repository, hr hotel.Repository, cache redisinfra.RoomCacheInterface, av *AvailabilityService) *RoomService {
	return &RoomService{roomRepo: rr, hotelRepo: hr, cache: cache, availability: av}
}

type CreateRoomInput struct {
	HotelID       string
	Name          string
	Description   string
	PricePerNight int
	Categories    []string
	Tags          []string
	RoomTypes     []string
}

// CreateRoom はホテル管理者が新しい客室を登録する
func (s *RoomService) CreateRoom(ctx context.Context, ident identity.Identity, input CreateRoomInput) (*room.Room, error) {
	if !ident.CanManageHotel(input.HotelID) {
		return nil, hotel.ErrNotHotelManager
	}
	if _, err := s.hotelRepo.GetByID(ctx, input.HotelID); err != nil {
		return nil, fmt.Errorf("ホテル取得に失敗: %w", err)
	}
	rm := room.NewRoom(input.HotelID, input.Name, input.PricePerNight)
	rm.Description = input.Description
	rm.Categories = input.Categories
	rm.Tags = input.Tags
	rm.RoomTypes = input.RoomTypes
	if err := rm.Validate(); err != nil {
		return nil, err
	}
	if err := s.roomRepo.Create(ctx, rm); err != nil {
		return nil, err
	}
	return rm, nil
}

// GetRoom は客室を取得する（キャッシュ優先）
func (s *RoomService) GetRoom(ctx context.Context, id string) (*room.Room, error) {
	if s.cache != nil {
		rm, err := s.cache.Get(ctx, id)
		if err == nil {
			logger.Debug("キャッシュヒット", zap.String("room_id", id))
			return rm, nil
		}
		if !errors.Is(err, redisinfra.ErrCacheMiss) {
			logger.Warn("キャッシュ取得エラー", zap.Error(err))
		}
	}

	rm, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if cacheErr := s.cache.Set(ctx, rm, roomCacheTTL); cacheErr != nil {
			logger.Warn("キャッシュ保存エラー", zap.Error(cacheErr))
		}
	}
	return rm, nil
}

// ListRooms は客室一覧を取得する
func (s *RoomService) ListRooms(ctx context.Context, limit, offset int) ([]*room.Room, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.roomRepo.List(ctx, limit, offset)
}

// GetHotel はホテルを取得する
func (s *RoomService) GetHotel(ctx context.Context, id string) (*hotel.Hotel, error) {
	return s.hotelRepo.GetByID(ctx, id)
}

// ListHotels はホテル一覧を取得する
func (s *RoomService) ListHotels(ctx context.Context, limit, offset int) ([]*hotel.Hotel, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.hotelRepo.List(ctx, limit, offset)
}

// GetHotelRooms はホテル配下の客室一覧を取得する
func (s *RoomService) GetHotelRooms(ctx context.Context, hotelID string) ([]*room.Room, error) {
	if _, err := s.hotelRepo.GetByID(ctx, hotelID); err != nil {
		return nil, err
	}
	return s.roomRepo.GetByHotelID(ctx, hotelID)
}

// CheckAvailability は指定期間に客室が空いているかを返す
func (s *RoomService) CheckAvailability(ctx context.Context, roomID string, r stay.Range) (bool, error) {
	return s.availability.IsRoomAvailable(ctx, roomID, r)
}

// InvalidateCache は客室のキャッシュを無効化する
func (s *RoomService) InvalidateCache(ctx context.Context, roomID string) {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, roomID); err != nil {
			logger.Warn("キャッシュ無効化エラー", zap.Error(err))
		}
	}
}
