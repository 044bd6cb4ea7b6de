package booking

import "errors"

// Booking ドメインのエラー定義
var (
	ErrBookingNotFound          = errors.New("予約が見つかりません")
	ErrNotBookingOwner          = errors.New("この予約の所有者ではありません")
	ErrBookingCancelled         = errors.New("予約はキャンセル済みです")
	ErrBookingAlreadyCancelled  = errors.New("予約は既にキャンセルされています")
	ErrBookingAlreadyPaid       = errors.New("予約は既に支払い済みです")
	ErrCancelPaidBooking        = errors.New("支払い済みの予約はキャンセルできません。サポートへお問い合わせください")
	ErrCancellationTooLate      = errors.New("キャンセルはチェックインの48時間前までです")
	ErrInvalidStatus            = errors.New("不正な予約状態です")
	ErrRoomIDRequired           = errors.New("客室IDは必須です")
	ErrUserIDRequired           = errors.New("ユーザーIDは必須です")
	ErrInvalidTotalPrice        = errors.New("合計金額は1以上である必要があります")
	ErrSessionMismatch          = errors.New("決済セッションが予約と一致しません")
	ErrNegotiationAlreadyBooked = errors.New("この交渉の予約は既に作成されています")
)
