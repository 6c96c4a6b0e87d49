package middleware

import (
	"errors"
	"net/http"
	"strings"

	"app/internal/config"
	"app/internal/usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

const (
	CtxAdminEmailKey = "admin_email" // string
	CtxSessionIDKey  = "session_id"  // string
)

// 管理ルート用のガード。
// Bearer JWTの検証に加えて、必ず SessionGuard の有効判定を通す。
// JWT自体がまだ生きていても、ガードが無効と言えば強制ログアウトして401。
func SessionGuard(cfg config.Config, guard *usecase.SessionGuard) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//Authorizationヘッダを取得
			authz := c.Request().Header.Get("Authorization")
			if authz == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//Bearer形式か確認してtokenを抜く
			parts := strings.SplitN(authz, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}
			rawToken := strings.TrimSpace(parts[1])
			if rawToken == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//JWTをパースして検証する
			token, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
				if t.Method != jwt.SigningMethodHS256 {
					return nil, errors.New("unexpected signing method")
				}
				return []byte(cfg.JWTSecret), nil
			})
			if err != nil || token == nil || !token.Valid {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			email, ok := claims["sub"].(string)
			if !ok || email == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}
			sid, _ := claims["sid"].(string)

			//有効判定はガードが唯一の正
			ctx := c.Request().Context()
			if !guard.IsSessionValid(ctx) {
				guard.Logout(ctx)
				return c.JSON(http.StatusUnauthorized, errorJSON("session expired"))
			}

			c.Set(CtxAdminEmailKey, email)
			c.Set(CtxSessionIDKey, sid)

			return next(c)
		}
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}
