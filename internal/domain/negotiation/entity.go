package negotiation

import (
	"strings"
	"time"

	"github.com/Florddev/match-room-sub001/internal/domain/stay"
)

// Status は価格交渉の状態を表す
type Status string

const (
	StatusPending   Status = "pending"
	StatusCountered Status = "countered"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// ParseStatus は文字列を交渉状態に正規化する
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(s)) {
	case StatusPending:
		return StatusPending, nil
	case StatusCountered:
		return StatusCountered, nil
	case StatusAccepted:
		return StatusAccepted, nil
	case StatusRejected:
		return StatusRejected, nil
	case StatusCancelled:
		return StatusCancelled, nil
	}
	return "", ErrInvalidStatus
}

// Negotiation は価格交渉エンティティを表す
// ゲストが希望価格を提示し、ホテル管理者が承諾・拒否・逆提案で応答する
type Negotiation struct {
	ID         string
	RoomID     string
	UserID     string
	Stay       stay.Range
	Price      int // 現在提示中の価格（逆提案で上書きされる）
	Status     Status
	AcceptedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewNegotiation は新しい価格交渉をpending状態で作成する
func NewNegotiation(roomID, userID string, r stay.Range, price int) *Negotiation {
	now := time.Now()
	return &Negotiation{
		RoomID:    roomID,
		UserID:    userID,
		Stay:      r,
		Price:     price,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsActive は交渉が進行中（pendingまたはcountered）かを返す
func (n *Negotiation) IsActive() bool {
	return n.Status == StatusPending || n.Status == StatusCountered
}

// Accept は交渉を承諾する
// pendingまたはcounteredからのみ遷移できる
func (n *Negotiation) Accept() error {
	if !n.IsActive() {
		return ErrNegotiationNotActive
	}
	now := time.Now()
	n.Status = StatusAccepted
	n.AcceptedAt = &now
	n.UpdatedAt = now
	return nil
}

// Reject は交渉を拒否する
func (n *Negotiation) Reject() error {
	if !n.IsActive() {
		return ErrNegotiationNotActive
	}
	n.Status = StatusRejected
	n.UpdatedAt = time.Now()
	return nil
}

// Counter は逆提案価格で交渉を上書きする
// 元の提示価格は保持しない
func (n *Negotiation) Counter(price int) error {
	if !n.IsActive() {
		return ErrNegotiationNotActive
	}
	if price <= 0 {
		return ErrInvalidPrice
	}
	n.Price = price
	n.Status = StatusCountered
	n.UpdatedAt = time.Now()
	return nil
}

// Cancel はゲストが交渉を取り下げる
func (n *Negotiation) Cancel() error {
	if !n.IsActive() {
		return ErrNegotiationNotActive
	}
	n.Status = StatusCancelled
	n.UpdatedAt = time.Now()
	return nil
}

// Validate は交渉の検証を行う
func (n *Negotiation) Validate() error {
	if n.RoomID == "" {
		return ErrRoomIDRequired
	}
	if n.UserID == "" {
		return ErrUserIDRequired
	}
	if err := n.Stay.Validate(); err != nil {
		return err
	}
	if n.Price <= 0 {
		return ErrInvalidPrice
	}
	return nil
}
