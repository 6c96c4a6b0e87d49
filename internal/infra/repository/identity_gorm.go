package repository

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// 一意制約違反（既に同じメールで登録済み）
const pgUniqueViolation = "23505"

// IDプロバイダのPostgres実装。
// SignIn / SignOut のたびに購読者へ状態変化を通知する。
// 通知はゴルーチンで配る（購読側が自分のロックの中から
// SignOut を呼び返してもデッドロックしないように）。
type IdentityGormProvider struct {
	db *gorm.DB

	mu          sync.Mutex
	current     *repo.Identity
	nextSubID   int
	subscribers map[int]func(identity *repo.Identity)
}

func NewIdentityGormProvider(db *gorm.DB) *IdentityGormProvider {
	return &IdentityGormProvider{
		db:          db,
		subscribers: make(map[int]func(identity *repo.Identity)),
	}
}

// EnsureAdmin は初期管理者を用意する。登録済みなら何もしない。
// email / password が空ならシード無しで起動する。
func (p *IdentityGormProvider) EnsureAdmin(ctx context.Context, email string, password string) error {
	if email == "" || password == "" {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := model.AdminUser{
		Email:        email,
		PasswordHash: string(hash),
		IsActive:     true,
	}

	err = p.db.WithContext(ctx).Create(&user).Error
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return nil
	}
	return err
}

func (p *IdentityGormProvider) SignIn(ctx context.Context, email string, password string) (repo.Identity, error) {
	var user model.AdminUser

	err := p.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repo.Identity{}, repo.ErrInvalidCredentials
	}
	if err != nil {
		return repo.Identity{}, err
	}

	if !user.IsActive {
		return repo.Identity{}, repo.ErrUserDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return repo.Identity{}, repo.ErrInvalidCredentials
	}

	now := time.Now()
	user.LastLoginAt = &now
	_ = p.db.WithContext(ctx).Save(&user).Error

	identity := repo.Identity{
		UserID: strconv.FormatInt(user.ID, 10),
		Email:  user.Email,
	}

	p.mu.Lock()
	p.current = &identity
	p.mu.Unlock()

	p.notify(&identity)
	return identity, nil
}

func (p *IdentityGormProvider) SignOut(ctx context.Context) error {
	p.mu.Lock()
	had := p.current != nil
	p.current = nil
	p.mu.Unlock()

	if had {
		p.notify(nil)
	}
	return nil
}

func (p *IdentityGormProvider) OnAuthStateChange(fn func(identity *repo.Identity)) (unsubscribe func()) {
	p.mu.Lock()
	id := p.nextSubID
	p.nextSubID++
	p.subscribers[id] = fn
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.subscribers, id)
		p.mu.Unlock()
	}
}

func (p *IdentityGormProvider) notify(identity *repo.Identity) {
	p.mu.Lock()
	fns := make([]func(identity *repo.Identity), 0, len(p.subscribers))
	for _, fn := range p.subscribers {
		fns = append(fns, fn)
	}
	p.mu.Unlock()

	for _, fn := range fns {
		go fn(identity)
	}
}
