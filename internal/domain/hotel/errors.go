package hotel

import "errors"

// Hotel ドメインのエラー定義
var (
	ErrHotelNotFound     = errors.New("ホテルが見つかりません")
	ErrHotelNameRequired = errors.New("ホテル名は必須です")
	ErrNotHotelManager   = errors.New("このホテルの管理者ではありません")
)
