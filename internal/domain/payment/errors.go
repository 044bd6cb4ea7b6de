package payment

import "errors"

// Payment ドメインのエラー定義
var (
	ErrSessionNotFound     = errors.New("決済セッションが見つかりません")
	ErrPaymentNotCompleted = errors.New("決済が完了していません")
	ErrProviderUnavailable = errors.New("決済プロバイダに接続できません")
)
