package repository

import "errors"

// 見つからないときの共通エラー
var ErrNotFound = errors.New("not found")

// 認証失敗（IDプロバイダ）
var ErrInvalidCredentials = errors.New("invalid credentials")

// 停止ユーザー
var ErrUserDisabled = errors.New("user disabled")
