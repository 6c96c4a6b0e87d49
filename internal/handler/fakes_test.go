package handler_test

import (
	"context"
	"sync"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type memKV struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemKV() *memKV {
	return &memKV{values: map[string]string{}}
}

func (f *memKV) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	if !ok {
		return "", repo.ErrNotFound
	}
	return v, nil
}

func (f *memKV) Set(ctx context.Context, key string, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
	return nil
}

func (f *memKV) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.values, key)
	return nil
}

type stubCatalog struct{}

var catalogFixture = []model.Product{
	{ID: 1, Name: "Coconut Argan Hair Oil", Price: 1200, Category: "Hair Treatment", InStock: true},
	{ID: 2, Name: "Rosemary Mint Scalp Oil", Price: 950, Category: "Scalp Treatment", InStock: true},
}

func (s *stubCatalog) List(ctx context.Context) ([]model.Product, error) {
	return catalogFixture, nil
}

func (s *stubCatalog) ListFeatured(ctx context.Context) ([]model.Product, error) {
	return catalogFixture[:1], nil
}

func (s *stubCatalog) FindByID(ctx context.Context, id int64) (model.Product, error) {
	for _, p := range catalogFixture {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Product{}, repo.ErrNotFound
}

func (s *stubCatalog) ReviewsByProductID(ctx context.Context, id int64) ([]model.Review, error) {
	return nil, nil
}

type stubProvider struct {
	signInErr error
}

func (p *stubProvider) SignIn(ctx context.Context, email, password string) (repo.Identity, error) {
	if p.signInErr != nil {
		return repo.Identity{}, p.signInErr
	}
	return repo.Identity{UserID: "u1", Email: email}, nil
}

func (p *stubProvider) SignOut(ctx context.Context) error { return nil }

func (p *stubProvider) OnAuthStateChange(fn func(identity *repo.Identity)) (unsubscribe func()) {
	return func() {}
}

type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFixedClock() *fixedClock {
	return &fixedClock{now: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
