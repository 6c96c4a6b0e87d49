package repository

import (
	"context"
	"sync"

	repo "app/internal/repository"
)

// プロセス寿命のKV。
// セッション開始マーカー置き場（タブを閉じたら消えるストレージ相当）と
// テストのカート永続化に使う。
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

func (m *MemoryKV) Get(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	if !ok {
		return "", repo.ErrNotFound
	}
	return v, nil
}

func (m *MemoryKV) Set(ctx context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryKV) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
