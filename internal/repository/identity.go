package repository

import "context"

// IDプロバイダが返す不透明なハンドル
type Identity struct {
	UserID string
	Email  string
}

// IdentityProvider は外部のIDプロバイダの境界。
// SessionGuard はこのインターフェースの向こう側を一切見ない。
// OnAuthStateChange のコールバックは SignIn / SignOut 以外の経路
// （トークンリフレッシュ等）でも飛んでくる前提で扱う。
type IdentityProvider interface {
	SignIn(ctx context.Context, email string, password string) (Identity, error)
	SignOut(ctx context.Context) error
	OnAuthStateChange(fn func(identity *Identity)) (unsubscribe func())
}
