package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Florddev/match-room-sub001/internal/domain/booking"
	"github.com/Florddev/match-room-sub001/internal/domain/identity"
	"github.com/Florddev/match-room-sub001/internal/domain/payment"
	"github.com/Florddev/match-room-sub001/internal/domain/room"
	"github.com/Florddev/match-room-sub001/internal/domain/stay"
	"github.com/Florddev/match-room-sub001/internal/domain/transaction"
	redislock "github.com/Florddev/match-room-sub001/internal/infrastructure/redis"
)

// BookingService は予約のユースケースを提供する
type BookingService struct {
	bookingRepo  booking.Repository
	roomRepo     room.Repository
	txManager    transaction.Manager
	lockManager  redislock.LockManagerInterface
	availability *AvailabilityService
	provider     payment.Provider
}

func NewBookingService(
	br booking.Repository,
	rr room.Repository,
	tm transaction.Manager,
	lm redislock.LockManagerInterface,
	av *AvailabilityService,
	pp payment.Provider,
) *BookingService {
	return &BookingService{
		bookingRepo:  br,
		roomRepo:     rr,
		txManager:    tm,
		lockManager:  lm,
		availability: av,
		provider:     pp,
	}
}

type CreateBookingInput struct {
	RoomID string
	Stay   stay.Range
}

// CreateBooking は定価での直接予約をPENDING状態で作成する
// 分散ロックとSERIALIZABLEトランザクション内の再確認で二重予約を防ぐ
func (s *BookingService) CreateBooking(ctx context.Context, ident identity.Identity, input CreateBookingInput) (*booking.Booking, error) {
	rm, err := s.roomRepo.GetByID(ctx, input.RoomID)
	if err != nil {
		return nil, err
	}
	if err := input.Stay.Validate(); err != nil {
		return nil, err
	}

	b := booking.NewBooking(input.RoomID, ident.UserID, input.Stay, rm.PricePerNight*input.Stay.Nights())
	if err := b.Validate(); err != nil {
		return nil, err
	}

	lock, err := s.lockManager.AcquireLockWithRetry(ctx, redislock.RoomLockKey(input.RoomID), 10*time.Second, 3, 100*time.Millisecond)
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

	if err := s.availability.recheckInTx(ctx, tx, input.RoomID, input.Stay); err != nil {
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

// GetBooking は予約を取得する（所有者本人または客室のホテル管理者のみ）
func (s *BookingService) GetBooking(ctx context.Context, ident identity.Identity, id string) (*booking.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ident.Owns(b.UserID) {
		return b, nil
	}
	rm, err := s.roomRepo.GetByID(ctx, b.RoomID)
	if err != nil {
		return nil, err
	}
	if !ident.CanManageHotel(rm.HotelID) {
		return nil, booking.ErrNotBookingOwner
	}
	return b, nil
}

// GetUserBookings はゲスト自身の予約一覧を取得する
func (s *BookingService) GetUserBookings(ctx context.Context, ident identity.Identity, limit, offset int) ([]*booking.Booking, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.bookingRepo.GetByUserID(ctx, ident.UserID, limit, offset)
}

// Checkout はPENDINGの予約に対して外部決済セッションを発行する
func (s *BookingService) Checkout(ctx context.Context, ident identity.Identity, bookingID string) (*payment.Session, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !ident.Owns(b.UserID) {
		return nil, booking.ErrNotBookingOwner
	}
	if b.Status == booking.StatusPaid {
		return nil, booking.ErrBookingAlreadyPaid
	}
	if b.Status == booking.StatusCancelled {
		return nil, booking.ErrBookingCancelled
	}

	session, err := s.provider.CreateSession(ctx, payment.CreateSessionInput{
		BookingID: b.ID,
		RoomID:    b.RoomID,
		UserID:    b.UserID,
		Stay:      b.Stay,
		Amount:    b.TotalPrice,
	})
	if err != nil {
		return nil, err
	}

	b.AttachPaymentSession(session.ID)
	if err := s.bookingRepo.SetPaymentSession(ctx, b.ID, session.ID); err != nil {
		return nil, err
	}
	return session, nil
}

// ConfirmPayment はプロバイダにセッションの支払い状態を照会し、
// 支払い済みであれば予約をPAIDにする。既にPAIDの場合は何もせず成功する
func (s *BookingService) ConfirmPayment(ctx context.Context, ident identity.Identity, bookingID, sessionID string) (*booking.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !ident.Owns(b.UserID) {
		return nil, booking.ErrNotBookingOwner
	}
	if b.PaymentSessionID == nil || *b.PaymentSessionID != sessionID {
		return nil, booking.ErrSessionMismatch
	}
	if b.IsPaid() {
		return b, nil
	}

	status, err := s.provider.GetSessionStatus(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	switch status {
	case payment.SessionStatusNotFound:
		return nil, payment.ErrSessionNotFound
	case payment.SessionStatusUnpaid:
		return nil, payment.ErrPaymentNotCompleted
	}

	if err := b.MarkPaid(); err != nil {
		return nil, err
	}
	if err := s.update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// CancelBooking は予約をキャンセルする
// レコードは削除せず、状態のみCANCELLEDに変更する
func (s *BookingService) CancelBooking(ctx context.Context, ident identity.Identity, id string) (*booking.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ident.Owns(b.UserID) {
		return nil, booking.ErrNotBookingOwner
	}
	if err := b.Cancel(time.Now()); err != nil {
		return nil, err
	}
	if err := s.update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *BookingService) update(ctx context.Context, b *booking.Booking) error {
	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()
	if err := s.bookingRepo.Update(ctx, tx, b); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("コミットに失敗: %w", err)
	}
	return nil
}
