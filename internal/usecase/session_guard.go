package usecase

import (
	"context"
	"strconv"
	"sync"
	"time"

	repo "app/internal/repository"

	"github.com/rs/zerolog"
)

// 管理者セッションの固定タイムアウト（15分）
const SessionTimeout = 15 * time.Minute

// 有効性の再チェック間隔（1分）
const sessionCheckInterval = time.Minute

// セッション開始時刻のマーカーキー（揮発ストアに置く）
const sessionMarkerKey = "adminSessionStart"

type GuardState string

const (
	StateUnauthenticated      GuardState = "UNAUTHENTICATED"
	StateAuthenticating       GuardState = "AUTHENTICATING"
	StateAuthenticatedValid   GuardState = "AUTHENTICATED_VALID"
	StateAuthenticatedExpired GuardState = "AUTHENTICATED_EXPIRED"
)

// SessionGuard は外部IDプロバイダの上に
// 「この管理者セッションは今も有効か」を導出して載せる層。
// プロバイダ自身のトークン寿命とは独立に15分で必ず切る。
// 有効性の判定は IsSessionValid ただ一つで、
// 周期チェックも保護ビューもここを通る。
type SessionGuard struct {
	provider repo.IdentityProvider
	marker   repo.KVStore
	clock    Clock
	log      zerolog.Logger

	mu          sync.Mutex
	state       GuardState
	identity    *repo.Identity
	unsubscribe func()
}

func NewSessionGuard(provider repo.IdentityProvider, marker repo.KVStore, clock Clock, log zerolog.Logger) *SessionGuard {
	g := &SessionGuard{
		provider: provider,
		marker:   marker,
		clock:    clock,
		log:      log,
		state:    StateUnauthenticated,
	}
	g.unsubscribe = provider.OnAuthStateChange(g.handleAuthState)
	return g
}

// Reset は起動時の強制ログアウト。
// プロバイダ側に残った資格情報は再認証まで信用しない（管理画面なので常にログアウトで始める）。
func (g *SessionGuard) Reset(ctx context.Context) {
	if err := g.provider.SignOut(ctx); err != nil {
		g.log.Debug().Err(err).Msg("no existing session to clear")
	}
	_ = g.marker.Delete(ctx, sessionMarkerKey)

	g.mu.Lock()
	g.state = StateUnauthenticated
	g.identity = nil
	g.mu.Unlock()
}

// Login はプロバイダ認証に成功したら開始時刻を刻んで有効状態に入る。
// プロバイダのエラーはそのまま呼び出し元へ返す。
func (g *SessionGuard) Login(ctx context.Context, email string, password string) (repo.Identity, error) {
	g.mu.Lock()
	g.state = StateAuthenticating
	g.mu.Unlock()

	identity, err := g.provider.SignIn(ctx, email, password)
	if err != nil {
		g.mu.Lock()
		g.state = StateUnauthenticated
		g.identity = nil
		g.mu.Unlock()
		return repo.Identity{}, err
	}

	now := g.clock.Now()
	if err := g.marker.Set(ctx, sessionMarkerKey, strconv.FormatInt(now.UnixMilli(), 10)); err != nil {
		// マーカー無し＝無効セッションなので、認証だけ通った状態を残さない
		_ = g.provider.SignOut(ctx)
		g.mu.Lock()
		g.state = StateUnauthenticated
		g.identity = nil
		g.mu.Unlock()
		return repo.Identity{}, err
	}

	g.mu.Lock()
	g.state = StateAuthenticatedValid
	g.identity = &identity
	g.mu.Unlock()

	g.log.Info().Str("email", identity.Email).Msg("admin session started")
	return identity, nil
}

// Logout はローカル状態を先に消し、プロバイダのサインアウト失敗は飲み込む。
// UIのゲートに効くのはローカル状態なので、呼び出し元には常に成功として返る。
func (g *SessionGuard) Logout(ctx context.Context) {
	_ = g.marker.Delete(ctx, sessionMarkerKey)

	g.mu.Lock()
	g.state = StateUnauthenticated
	g.identity = nil
	g.mu.Unlock()

	if err := g.provider.SignOut(ctx); err != nil {
		g.log.Warn().Err(err).Msg("provider sign-out failed, local session cleared anyway")
	}
}

// IsSessionValid は保存済みの開始時刻と現在時刻だけで決まる純粋な判定。
// マーカーが無い・壊れている場合も無効。
func (g *SessionGuard) IsSessionValid(ctx context.Context) bool {
	start, ok := g.SessionStartTime(ctx)
	if !ok {
		return false
	}
	return g.clock.Now().Sub(start) < SessionTimeout
}

// SessionStartTime は刻まれた開始時刻を返す。無ければ false。
func (g *SessionGuard) SessionStartTime(ctx context.Context) (time.Time, bool) {
	raw, err := g.marker.Get(ctx, sessionMarkerKey)
	if err != nil {
		return time.Time{}, false
	}
	millis, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(millis), true
}

// Remaining は期限までの残り時間。無効なら0。
func (g *SessionGuard) Remaining(ctx context.Context) time.Duration {
	start, ok := g.SessionStartTime(ctx)
	if !ok {
		return 0
	}
	left := SessionTimeout - g.clock.Now().Sub(start)
	if left < 0 {
		return 0
	}
	return left
}

func (g *SessionGuard) State() GuardState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

func (g *SessionGuard) Identity() (repo.Identity, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.identity == nil {
		return repo.Identity{}, false
	}
	return *g.identity, true
}

// Run は1分間隔の有効性チェック。ctxが落ちたら止まる。
// プロバイダ通知と同時に走っても、どちらも「無効なら強制ログアウト」に収束する。
func (g *SessionGuard) Run(ctx context.Context) {
	ticker := time.NewTicker(sessionCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			g.EnforceTimeout(ctx)
		}
	}
}

// EnforceTimeout は1分ティックの本体。
// 認証中セッションの期限切れを検出して強制ログアウトする。
func (g *SessionGuard) EnforceTimeout(ctx context.Context) {
	g.mu.Lock()
	authenticated := g.state == StateAuthenticatedValid
	g.mu.Unlock()

	if !authenticated || g.IsSessionValid(ctx) {
		return
	}

	g.mu.Lock()
	g.state = StateAuthenticatedExpired
	g.mu.Unlock()

	g.log.Info().Msg("admin session expired, logging out")
	g.Logout(ctx)
}

// プロバイダ側の状態変化（別経路のログイン・トークンリフレッシュ・消失）を受ける。
// identityがあっても開始マーカーが無効なら強制ログアウト。
func (g *SessionGuard) handleAuthState(identity *repo.Identity) {
	ctx := context.Background()

	if identity == nil {
		_ = g.marker.Delete(ctx, sessionMarkerKey)
		g.mu.Lock()
		g.state = StateUnauthenticated
		g.identity = nil
		g.mu.Unlock()
		return
	}

	if g.IsSessionValid(ctx) {
		g.mu.Lock()
		g.state = StateAuthenticatedValid
		g.identity = identity
		g.mu.Unlock()
		return
	}

	g.log.Info().Msg("invalid or expired session detected, logging out")
	g.Logout(ctx)
}

// Close は通知購読を外す
func (g *SessionGuard) Close() {
	if g.unsubscribe != nil {
		g.unsubscribe()
	}
}
