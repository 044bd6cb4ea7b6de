package room

import "errors"

// Room ドメインのエラー定義
var (
	ErrRoomNotFound     = errors.New("客室が見つかりません")
	ErrRoomNotAvailable = errors.New("指定期間はこの客室を予約できません")
	ErrHotelIDRequired  = errors.New("ホテルIDは必須です")
	ErrRoomNameRequired = errors.New("客室名は必須です")
	ErrInvalidPrice     = errors.New("料金は0以上である必要があります")
)
