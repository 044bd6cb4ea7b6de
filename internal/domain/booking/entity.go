package booking

import (
	"strings"
	"time"

	"github.com/Florddev/match-room-sub001/internal/domain/stay"
)

// Status は予約の状態を表す
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPaid      Status = "PAID"
	StatusCancelled Status = "CANCELLED"
)

// ParseStatus は文字列を予約状態に正規化する
// 永続化層や外部入力の大文字小文字の揺れはここで一度だけ吸収する
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToUpper(s)) {
	case StatusPending:
		return StatusPending, nil
	case StatusPaid:
		return StatusPaid, nil
	case StatusCancelled:
		return StatusCancelled, nil
	}
	return "", ErrInvalidStatus
}

// MinCancellationNotice はキャンセルに必要なチェックインまでの最低リードタイム
const MinCancellationNotice = 48 * time.Hour

// Booking は予約エンティティを表す
type Booking struct {
	ID               string
	RoomID           string
	UserID           string
	NegotiationID    *string // 承諾された交渉から生成された場合のみ設定される
	Stay             stay.Range
	TotalPrice       int
	Status           Status
	PaymentSessionID *string
	PaidAt           *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewBooking は新しい予約をPENDING状態で作成する
func NewBooking(roomID, userID string, r stay.Range, totalPrice int) *Booking {
	now := time.Now()
	return &Booking{
		RoomID:     roomID,
		UserID:     userID,
		Stay:       r,
		TotalPrice: totalPrice,
		Status:     StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// NewBookingFromNegotiation は承諾された交渉を合意価格・期間の予約として具体化する
// 1つの交渉からは最大1つの予約しか作られない（ストア側の一意制約で担保）
func NewBookingFromNegotiation(negotiationID, roomID, userID string, r stay.Range, agreedPrice int) *Booking {
	b := NewBooking(roomID, userID, r, agreedPrice)
	b.NegotiationID = &negotiationID
	return b
}

// IsPaid は予約が支払い済みかを返す
func (b *Booking) IsPaid() bool {
	return b.Status == StatusPaid
}

// IsActive はキャンセルされていない予約かを返す
// 空室判定ではアクティブな予約のみが対象になる
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// MarkPaid は決済セッションの支払い確認を受けて予約を支払い済みにする
func (b *Booking) MarkPaid() error {
	if b.Status == StatusCancelled {
		return ErrBookingCancelled
	}
	if b.Status == StatusPaid {
		return nil
	}
	now := time.Now()
	b.Status = StatusPaid
	b.PaidAt = &now
	b.UpdatedAt = now
	return nil
}

// Cancel は予約をキャンセルする
// 支払い済みの予約はキャンセルできず、チェックイン48時間前を過ぎてもキャンセルできない
func (b *Booking) Cancel(now time.Time) error {
	if b.Status == StatusPaid {
		return ErrCancelPaidBooking
	}
	if b.Status == StatusCancelled {
		return ErrBookingAlreadyCancelled
	}
	if b.Stay.Until(now) < MinCancellationNotice {
		return ErrCancellationTooLate
	}
	b.Status = StatusCancelled
	b.UpdatedAt = now
	return nil
}

// AttachPaymentSession は外部決済セッションを予約に紐付ける
func (b *Booking) AttachPaymentSession(sessionID string) {
	b.PaymentSessionID = &sessionID
	b.UpdatedAt = time.Now()
}

// Validate は予約の検証を行う
func (b *Booking) Validate() error {
	if b.RoomID == "" {
		return ErrRoomIDRequired
	}
	if b.UserID == "" {
		return ErrUserIDRequired
	}
	if err := b.Stay.Validate(); err != nil {
		return err
	}
	if b.TotalPrice <= 0 {
		return ErrInvalidTotalPrice
	}
	return nil
}
