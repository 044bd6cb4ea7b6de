package hotel

import "context"

// Repository はホテルリポジトリのインターフェース
type Repository interface {
	// GetByID はIDからホテルを取得する
	GetByID(ctx context.Context, id string) (*Hotel, error)

	// List はホテル一覧を取得する
	List(ctx context.Context, limit, offset int) ([]*Hotel, error)

	// IsManagedBy はユーザーがホテルの管理者かを返す
	IsManagedBy(ctx context.Context, hotelID, userID string) (bool, error)

	// GetManagedHotelIDs はユーザーが管理するホテルIDの一覧を取得する
	GetManagedHotelIDs(ctx context.Context, userID string) ([]string, error)
}
