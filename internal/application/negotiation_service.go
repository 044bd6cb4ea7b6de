package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Florddev/match-room-sub001/internal/domain/booking"
	"github.com/Florddev/match-room-sub001/internal/domain/hotel"
	"github.com/Florddev/match-room-sub001/internal/domain/identity"
	"github.com/Florddev/match-room-sub001/internal/domain/negotiation"
	"github.com/Florddev/match-room-sub001/internal/domain/room"
	"github.com/Florddev/match-room-sub001/internal/domain/stay"
	"github.com/Florddev/match-room-sub001/internal/domain/transaction"
	redislock "github.com/Florddev/match-room-sub001/internal/infrastructure/redis"
)

// NegotiationService は価格交渉のユースケースを提供する
type NegotiationService struct {
	negotiationRepo negotiation.Repository
	bookingRepo     booking.Repository
	roomRepo        room.Repository
	txManager       transaction.Manager
	lockManager     redislock.LockManagerInterface
	availability    *AvailabilityService
}

func NewNegotiationService(
	nr negotiation.Repository,
	br booking.Repository,
	rr room.Repository,
	tm transaction.Manager,
	lm redislock.LockManagerInterface,
	av *AvailabilityService,
) *NegotiationService {
	return &NegotiationService{
		negotiationRepo: nr,
		bookingRepo:     br,
		roomRepo:        rr,
		txManager:       tm,
		lockManager:     lm,
		availability:    av,
	}
}

type CreateNegotiationInput struct {
	RoomID string
	Stay   stay.Range
	Price  int
}

// CreateNegotiation はゲストが希望価格を提示して交渉を開始する
func (s *NegotiationService) CreateNegotiation(ctx context.Context, ident identity.Identity, input CreateNegotiationInput) (*negotiation.Negotiation, error) {
	// 客室の存在確認
	if _, err := s.roomRepo.GetByID(ctx, input.RoomID); err != nil {
		return nil, err
	}

	// 同一ゲスト・同一客室の進行中交渉は1つまで
	active, err := s.negotiationRepo.FindActiveByUserAndRoom(ctx, ident.UserID, input.RoomID)
	if err != nil {
		return nil, fmt.Errorf("進行中交渉の確認に失敗: %w", err)
	}
	for _, n := range active {
		if n.Stay.Overlaps(input.Stay) {
			return nil, negotiation.ErrActiveNegotiationExists
		}
	}

	// 既に埋まっている期間への交渉は受け付けない
	available, err := s.availability.IsRoomAvailable(ctx, input.RoomID, input.Stay)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, room.ErrRoomNotAvailable
	}

	n := negotiation.NewNegotiation(input.RoomID, ident.UserID, input.Stay, input.Price)
	if err := n.Validate(); err != nil {
		return nil, err
	}
	if err := s.negotiationRepo.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// GetNegotiation は交渉を取得する（提示者本人または客室のホテル管理者のみ）
func (s *NegotiationService) GetNegotiation(ctx context.Context, ident identity.Identity, id string) (*negotiation.Negotiation, error) {
	n, err := s.negotiationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ident.Owns(n.UserID) {
		return n, nil
	}
	rm, err := s.roomRepo.GetByID(ctx, n.RoomID)
	if err != nil {
		return nil, err
	}
	if !ident.CanManageHotel(rm.HotelID) {
		return nil, negotiation.ErrNotNegotiationOwner
	}
	return n, nil
}

// GetUserNegotiations はゲスト自身の交渉一覧を取得する
func (s *NegotiationService) GetUserNegotiations(ctx context.Context, ident identity.Identity, limit, offset int) ([]*negotiation.Negotiation, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.negotiationRepo.GetByUserID(ctx, ident.UserID, limit, offset)
}

// GetHotelNegotiations はホテル配下の客室への交渉一覧を取得する（管理者向け）
func (s *NegotiationService) GetHotelNegotiations(ctx context.Context, ident identity.Identity, hotelID string, limit, offset int) ([]*negotiation.Negotiation, error) {
	if !ident.CanManageHotel(hotelID) {
		return nil, hotel.ErrNotHotelManager
	}
	if limit <= 0 {
		limit = 20
	}
	return s.negotiationRepo.GetByHotelID(ctx, hotelID, limit, offset)
}

// Accept はホテル管理者が交渉を承諾し、合意価格の予約を生成する
// 承諾と予約生成は同一トランザクションで行われ、期間が埋まっていた場合は
// 交渉の状態を変えずに失敗する
func (s *NegotiationService) Accept(ctx context.Context, ident identity.Identity, id string) (*negotiation.Negotiation, *booking.Booking, error) {
	n, err := s.negotiationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if err := s.authorizeManager(ctx, ident, n.RoomID); err != nil {
		return nil, nil, err
	}
	b, err := s.acceptAndMaterialize(ctx, n)
	if err != nil {
		return nil, nil, err
	}
	return n, b, nil
}

// AcceptCounter はゲストが逆提案を承諾し、合意価格の予約を生成する
// 逆提案が提示されていない交渉は承諾できない
func (s *NegotiationService) AcceptCounter(ctx context.Context, ident identity.Identity, id string) (*negotiation.Negotiation, *booking.Booking, error) {
	n, err := s.negotiationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if !ident.Owns(n.UserID) {
		return nil, nil, negotiation.ErrNotNegotiationOwner
	}
	if n.Status != negotiation.StatusCountered {
		return nil, nil, negotiation.ErrNoCounterOffer
	}
	b, err := s.acceptAndMaterialize(ctx, n)
	if err != nil {
		return nil, nil, err
	}
	return n, b, nil
}

// Reject はホテル管理者が交渉を拒否する
func (s *NegotiationService) Reject(ctx context.Context, ident identity.Identity, id string) (*negotiation.Negotiation, error) {
	return s.transition(ctx, ident, id, func(n *negotiation.Negotiation) error {
		return n.Reject()
	})
}

// Counter はホテル管理者が逆提案価格を提示する
func (s *NegotiationService) Counter(ctx context.Context, ident identity.Identity, id string, price int) (*negotiation.Negotiation, error) {
	return s.transition(ctx, ident, id, func(n *negotiation.Negotiation) error {
		return n.Counter(price)
	})
}

// CancelNegotiation はゲストが交渉を取り下げる
func (s *NegotiationService) CancelNegotiation(ctx context.Context, ident identity.Identity, id string) (*negotiation.Negotiation, error) {
	n, err := s.negotiationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ident.Owns(n.UserID) {
		return nil, negotiation.ErrNotNegotiationOwner
	}
	if err := n.Cancel(); err != nil {
		return nil, err
	}
	if err := s.update(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// acceptAndMaterialize は分散ロックとSERIALIZABLEトランザクションの下で
// 交渉を承諾済みにし、合意価格のPENDING予約を生成する
func (s *NegotiationService) acceptAndMaterialize(ctx context.Context, n *negotiation.Negotiation) (*booking.Booking, error) {
	lock, err := s.lockManager.AcquireLockWithRetry(ctx, redislock.RoomLockKey(n.RoomID), 10*time.Second, 3, 100*time.Millisecond)
	if err != nil {
		if errors.Is(err, redislock.ErrLockNotAcquired) {
			return nil, fmt.Errorf("客室が他のユーザーによって処理中です")
		}
		return nil, fmt.Errorf("ロック取得に失敗: %w", err)
	}
	defer lock.Release(ctx)

	tx, err := s.txManager.BeginSerializable(ctx)
	if err != nil {
		return nil, fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	// 承諾前に期間が埋まっていないか再確認する。埋まっていた場合は
	// 交渉を自動キャンセルせず、進行中のまま残す
	if err := s.availability.recheckInTx(ctx, tx, n.RoomID, n.Stay); err != nil {
		return nil, err
	}

	if err := n.Accept(); err != nil {
		return nil, err
	}
	if err := s.negotiationRepo.Update(ctx, tx, n); err != nil {
		return nil, err
	}

	b := booking.NewBookingFromNegotiation(n.ID, n.RoomID, n.UserID, n.Stay, n.Price)
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if err := s.bookingRepo.Create(ctx, tx, b); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("コミットに失敗: %w", err)
	}
	return b, nil
}

// transition はホテル管理者による状態遷移（拒否・逆提案）を適用して保存する
func (s *NegotiationService) transition(ctx context.Context, ident identity.Identity, id string, apply func(*negotiation.Negotiation) error) (*negotiation.Negotiation, error) {
	n, err := s.negotiationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeManager(ctx, ident, n.RoomID); err != nil {
		return nil, err
	}
	if err := apply(n); err != nil {
		return nil, err
	}
	if err := s.update(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *NegotiationService) authorizeManager(ctx context.Context, ident identity.Identity, roomID string) error {
	rm, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return err
	}
	if !ident.CanManageHotel(rm.HotelID) {
		return hotel.ErrNotHotelManager
	}
	return nil
}

func (s *NegotiationService) update(ctx context.Context, n *negotiation.Negotiation) error {
	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()
	if err := s.negotiationRepo.Update(ctx, tx, n); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("コミットに失敗: %w", err)
	}
	return nil
}
