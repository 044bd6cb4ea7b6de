package negotiation

import (
	"context"

	"github.com/Florddev/match-room-sub001/internal/domain/stay"
	"github.com/Florddev/match-room-sub001/internal/domain/transaction"
)

// Repository は価格交渉リポジトリのインターフェース
type Repository interface {
	// Create は新しい交渉を作成する
	Create(ctx context.Context, n *Negotiation) error

	// GetByID はIDから交渉を取得する
	GetByID(ctx context.Context, id string) (*Negotiation, error)

	// GetByUserID はゲストの交渉一覧を取得する
	GetByUserID(ctx context.Context, userID string, limit, offset int) ([]*Negotiation, error)

	// GetByHotelID はホテル配下の客室への交渉一覧を取得する（管理者向け）
	GetByHotelID(ctx context.Context, hotelID string, limit, offset int) ([]*Negotiation, error)

	// Update は交渉の状態を更新する（トランザクション必須）
	Update(ctx context.Context, tx transaction.Tx, n *Negotiation) error

	// FindAcceptedOverlapping は指定期間と重なる承諾済み交渉を取得する
	FindAcceptedOverlapping(ctx context.Context, roomID string, r stay.Range) ([]*Negotiation, error)

	// CountAcceptedOverlapping はトランザクション内で重複する承諾済み交渉数を再確認する
	CountAcceptedOverlapping(ctx context.Context, tx transaction.Tx, roomID string, r stay.Range) (int, error)

	// FindActiveByUserAndRoom はゲストの同一客室への進行中交渉を取得する
	FindActiveByUserAndRoom(ctx context.Context, userID, roomID string) ([]*Negotiation, error)
}
