package transaction

import "context"

// Tx はトランザクションを表すインターフェース
// ドメイン層がインフラ層（sqlx等）に依存しないようにするための抽象化
type Tx interface {
	// Commit はトランザクションをコミットする
	Commit() error
	// Rollback はトランザクションをロールバックする
	Rollback() error
}

// Manager はトランザクションを管理するインターフェース
type Manager interface {
	// Begin は新しいトランザクションを開始する
	Begin(ctx context.Context) (Tx, error)
	// BeginSerializable はSERIALIZABLE分離レベルのトランザクションを開始する
	// 空室確認と書き込みを同一トランザクションで直列化するために使用する
	BeginSerializable(ctx context.Context) (Tx, error)
}
