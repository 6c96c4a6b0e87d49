package handler

import (
	"net/http"

	"app/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

const cartTokenCookie = "cart_token"

// ブラウザごとのカートトークン。無ければ発行してクッキーに入れる。
func cartKeyFromContext(c echo.Context) string {
	if ck, err := c.Cookie(cartTokenCookie); err == nil && ck.Value != "" {
		return ck.Value
	}

	token := uuid.NewString()
	c.SetCookie(&http.Cookie{
		Name:     cartTokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   60 * 60 * 24 * 365,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return token
}
