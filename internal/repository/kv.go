package repository

import "context"

// KVStore はキー単位の文字列ストア。
// カートの永続化（ブラウザ単位の耐久ストレージ相当）と、
// セッション開始マーカー（タブ単位の揮発ストレージ相当）の両方がこの形で足りる。
// 無いキーは ErrNotFound。
type KVStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
