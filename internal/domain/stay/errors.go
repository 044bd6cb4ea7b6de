package stay

import "errors"

// 宿泊期間のエラー定義
var (
	ErrDatesRequired     = errors.New("チェックイン日とチェックアウト日は必須です")
	ErrEndBeforeStart    = errors.New("チェックアウト日はチェックイン日以降である必要があります")
	ErrInvalidDateFormat = errors.New("日付は YYYY-MM-DD 形式で指定してください")
)
