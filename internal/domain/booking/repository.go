package booking

import (
	"context"

	"github.com/Florddev/match-room-sub001/internal/domain/stay"
	"github.com/Florddev/match-room-sub001/internal/domain/transaction"
)

// Repository は予約リポジトリのインターフェース
type Repository interface {
	// Create は新しい予約を作成する（トランザクション必須）
	Create(ctx context.Context, tx transaction.Tx, b *Booking) error

	// GetByID はIDから予約を取得する
	GetByID(ctx context.Context, id string) (*Booking, error)

	// GetByUserID はユーザーIDから予約一覧を取得する
	GetByUserID(ctx context.Context, userID string, limit, offset int) ([]*Booking, error)

	// Update は予約の状態を更新する（トランザクション必須）
	Update(ctx context.Context, tx transaction.Tx, b *Booking) error

	// SetPaymentSession は予約に決済セッションIDを紐付ける
	SetPaymentSession(ctx context.Context, id, sessionID string) error

	// FindOverlapping は指定期間と重なるキャンセル以外の予約を取得する
	FindOverlapping(ctx context.Context, roomID string, r stay.Range) ([]*Booking, error)

	// CountOverlapping はトランザクション内で重複予約数を再確認する
	CountOverlapping(ctx context.Context, tx transaction.Tx, roomID string, r stay.Range) (int, error)

	// CountByStatus は状態ごとの予約数を取得する
	CountByStatus(ctx context.Context) (map[Status]int, error)
}
