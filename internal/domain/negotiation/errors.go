package negotiation

import "errors"

// Negotiation ドメインのエラー定義
var (
	ErrNegotiationNotFound     = errors.New("価格交渉が見つかりません")
	ErrNegotiationNotActive    = errors.New("この交渉は既に終了しています")
	ErrNoCounterOffer          = errors.New("承諾できる逆提案がありません")
	ErrNotNegotiationOwner     = errors.New("この交渉の提示者ではありません")
	ErrActiveNegotiationExists = errors.New("同じ客室・期間で進行中の交渉が既に存在します")
	ErrInvalidStatus           = errors.New("不正な交渉状態です")
	ErrRoomIDRequired          = errors.New("客室IDは必須です")
	ErrUserIDRequired          = errors.New("ユーザーIDは必須です")
	ErrInvalidPrice            = errors.New("提示価格は1以上である必要があります")
)
