package room

import "context"

// Repository は客室リポジトリのインターフェース
type Repository interface {
	// Create は新しい客室を作成する
	Create(ctx context.Context, room *Room) error

	// GetByID はIDから客室を取得する
	GetByID(ctx context.Context, id string) (*Room, error)

	// GetByHotelID はホテルIDから客室一覧を取得する
	GetByHotelID(ctx context.Context, hotelID string) ([]*Room, error)

	// List は客室一覧を取得する
	List(ctx context.Context, limit, offset int) ([]*Room, error)
}
