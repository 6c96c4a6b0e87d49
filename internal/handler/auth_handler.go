package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"app/internal/config"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// 管理者ログイン・ログアウト・セッション情報のHTTP。
// 有効判定そのものは SessionGuard に訊く。ここはトークン発行と表示用整形だけ。
type AuthHandler struct {
	guard *usecase.SessionGuard
	cfg   config.Config
	clock usecase.Clock
}

func NewAuthHandler(guard *usecase.SessionGuard, cfg config.Config, clock usecase.Clock) *AuthHandler {
	return &AuthHandler{guard: guard, cfg: cfg, clock: clock}
}

type AdminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AdminLoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
	Email     string `json:"email"`
}

type SessionInfoResponse struct {
	Valid            bool   `json:"valid"`
	RemainingSeconds int    `json:"remaining_seconds"`
	Countdown        string `json:"countdown"` // MM:SS
	Warning          bool   `json:"warning"`   // 残り2分以下
}

// 表示用の警告しきい値（ガードの契約ではない）
const warningThreshold = 2 * time.Minute

func (h *AuthHandler) RegisterRoutes(e *echo.Echo, guarded *echo.Group) {
	e.POST("/admin/login", h.login)
	// 期限切れ後でも叩けるようにログアウトはガードの外
	e.POST("/admin/logout", h.logout)
	guarded.GET("/session", h.session)
}

func (h *AuthHandler) login(c echo.Context) error {
	var req AdminLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "email and password are required"})
	}

	identity, err := h.guard.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		// プロバイダのエラーは表示用にそのまま返す
		if errors.Is(err, repo.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})
		}
		if errors.Is(err, repo.ErrUserDisabled) {
			return c.JSON(http.StatusForbidden, ErrorResponse{Error: "user disabled"})
		}
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "login failed"})
	}

	token, err := h.issueToken(identity)
	if err != nil {
		h.guard.Logout(c.Request().Context())
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "login failed"})
	}

	return c.JSON(http.StatusOK, AdminLoginResponse{
		Token:     token,
		ExpiresIn: int(usecase.SessionTimeout.Seconds()),
		Email:     identity.Email,
	})
}

func (h *AuthHandler) logout(c echo.Context) error {
	// ローカル状態が消えれば成功。プロバイダの失敗はガードが飲み込む。
	h.guard.Logout(c.Request().Context())
	return c.JSON(http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *AuthHandler) session(c echo.Context) error {
	ctx := c.Request().Context()

	remaining := h.guard.Remaining(ctx)
	secs := int(remaining.Seconds())

	return c.JSON(http.StatusOK, SessionInfoResponse{
		Valid:            h.guard.IsSessionValid(ctx),
		RemainingSeconds: secs,
		Countdown:        fmt.Sprintf("%02d:%02d", secs/60, secs%60),
		Warning:          remaining > 0 && remaining <= warningThreshold,
	})
}

// セッショントークンを発行。expはガードのタイムアウトに合わせる。
func (h *AuthHandler) issueToken(identity repo.Identity) (string, error) {
	now := h.clock.Now()

	claims := jwt.MapClaims{
		"sub": identity.Email,
		"sid": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(usecase.SessionTimeout).Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString([]byte(h.cfg.JWTSecret))
}
