package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Florddev/match-room-sub001/internal/domain/room"
)

var (
	ErrCacheMiss = errors.New("キャッシュが見つかりません")
)

// RoomCacheInterface は客室キャッシュの抽象化
type RoomCacheInterface interface {
	Get(ctx context.Context, roomID string) (*room.Room, error)
	Set(ctx context.Context, rm *room.Room, ttl time.Duration) error
	Invalidate(ctx context.Context, roomID string) error
}

// RoomCache は客室レコードのキャッシュを管理する
// 空室状況は毎回ストアを参照するため、キャッシュ対象は客室レコードのみ
type RoomCache struct {
	client *redis.Client
}

var _ RoomCacheInterface = (*RoomCache)(nil)

// NewRoomCache は新しいRoomCacheインスタンスを作成する
func NewRoomCache(client *redis.Client) *RoomCache {
	return &RoomCache{client: client}
}

// Get は客室をキャッシュから取得する
func (c *RoomCache) Get(ctx context.Context, roomID string) (*room.Room, error) {
	val, err := c.client.Get(ctx, c.roomKey(roomID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("キャッシュ取得に失敗: %w", err)
	}
	var rm room.Room
	if err := json.Unmarshal(val, &rm); err != nil {
		return nil, fmt.Errorf("キャッシュ復元に失敗: %w", err)
	}
	return &rm, nil
}

// Set は客室をキャッシュに保存する
func (c *RoomCache) Set(ctx context.Context, rm *room.Room, ttl time.Duration) error {
	val, err := json.Marshal(rm)
	if err != nil {
		return fmt.Errorf("キャッシュ変換に失敗: %w", err)
	}
	if err := c.client.Set(ctx, c.roomKey(rm.ID), val, ttl).Err(); err != nil {
		return fmt.Errorf("キャッシュ保存に失敗: %w", err)
	}
	return nil
}

// Invalidate は客室のキャッシュを無効化する
func (c *RoomCache) Invalidate(ctx context.Context, roomID string) error {
	if err := c.client.Del(ctx, c.roomKey(roomID)).Err(); err != nil {
		return fmt.Errorf("キャッシュ無効化に失敗: %w", err)
	}
	return nil
}

func (c *RoomCache) roomKey(roomID string) string {
	return fmt.Sprintf("room:record:%s", roomID)
}
