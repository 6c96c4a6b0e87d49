package usecase

import "time"

// テストで時刻を差し替えるための注入ポイント
type Clock interface {
	Now() time.Time
}
