package payment

import (
	"context"

	"github.com/Florddev/match-room-sub001/internal/domain/stay"
)

// SessionStatus は決済セッションの状態を表す
type SessionStatus string

const (
	SessionStatusPaid     SessionStatus = "paid"
	SessionStatusUnpaid   SessionStatus = "unpaid"
	SessionStatusNotFound SessionStatus = "not-found"
)

// Session は外部決済プロバイダが発行するセッションを表す
type Session struct {
	ID          string
	RedirectURL string
}

// CreateSessionInput は決済セッション作成の入力
type CreateSessionInput struct {
	BookingID string
	RoomID    string
	UserID    string
	Stay      stay.Range
	Amount    int
}

// Provider は外部決済プロバイダのインターフェース
// コアはセッションの作成と支払い状態の照会のみを行う
type Provider interface {
	// CreateSession は予約に紐付く決済セッションを作成する
	CreateSession(ctx context.Context, input CreateSessionInput) (*Session, error)

	// GetSessionStatus はセッションの支払い状態を照会する
	// プロバイダ側の障害は SessionStatus と区別できるエラーとして返す
	GetSessionStatus(ctx context.Context, sessionID string) (SessionStatus, error)
}
