package application

import (
	"context"
	"fmt"

	"github.com/Florddev/match-room-sub001/internal/domain/booking"
	"github.com/Florddev/match-room-sub001/internal/domain/negotiation"
	"github.com/Florddev/match-room-sub001/internal/domain/room"
	"github.com/Florddev/match-room-sub001/internal/domain/stay"
	"github.com/Florddev/match-room-sub001/internal/domain/transaction"
)

// AvailabilityService は客室の空室判定を行う
// キャンセル以外の予約と承諾済み交渉の両方を占有として扱う
// 判定結果はキャッシュせず、毎回ストアを参照する
type AvailabilityService struct {
	bookingRepo     booking.Repository
	negotiationRepo negotiation.Repository
	roomRepo        room.Repository
}

func NewAvailabilityService(br booking.Repository, nr negotiation.Repository, rr room.Repository) *AvailabilityService {
	return &AvailabilityService{bookingRepo: br, negotiationRepo: nr, roomRepo: rr}
}

// IsRoomAvailable は指定期間に客室が空いているかを返す
func (s *AvailabilityService) IsRoomAvailable(ctx context.Context, roomID string, r stay.Range) (bool, error) {
	if err := r.Validate(); err != nil {
		return false, err
	}
	if _, err := s.roomRepo.GetByID(ctx, roomID); err != nil {
		return false, err
	}

	bookings, err := s.bookingRepo.FindOverlapping(ctx, roomID, r)
	if err != nil {
		return false, fmt.Errorf("重複予約の取得に失敗: %w", err)
	}
	if len(bookings) > 0 {
		return false, nil
	}

	accepted, err := s.negotiationRepo.FindAcceptedOverlapping(ctx, roomID, r)
	if err != nil {
		return false, fmt.Errorf("重複交渉の取得に失敗: %w", err)
	}
	return len(accepted) == 0, nil
}

// recheckInTx はトランザクション内で空室状況を再確認する
// ロック取得後の確認と書き込みの間の競合をここで塞ぐ
func (s *AvailabilityService) recheckInTx(ctx context.Context, tx transaction.Tx, roomID string, r stay.Range) error {
	count, err := s.bookingRepo.CountOverlapping(ctx, tx, roomID, r)
	if err != nil {
		return fmt.Errorf("重複予約の再確認に失敗: %w", err)
	}
	if count > 0 {
		return room.ErrRoomNotAvailable
	}

	count, err = s.negotiationRepo.CountAcceptedOverlapping(ctx, tx, roomID, r)
	if err != nil {
		return fmt.Errorf("重複交渉の再確認に失敗: %w", err)
	}
	if count > 0 {
		return room.ErrRoomNotAvailable
	}
	return nil
}
