package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"app/internal/handler"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartServer() *echo.Echo {
	uc := usecase.NewCartUsecase(newMemKV(), &stubCatalog{})
	e := echo.New()
	handler.NewCartHandler(uc).RegisterRoutes(e)
	return e
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) usecase.CartResponse {
	t.Helper()
	var out usecase.CartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestCartHandler_IssuesTokenCookieOnFirstTouch(t *testing.T) {
	e := newCartServer()

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "cart_token", cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	out := decodeCart(t, rec)
	assert.Empty(t, out.Items)
}

func TestCartHandler_CookieCarriesCartAcrossRequests(t *testing.T) {
	e := newCartServer()

	// 追加。初回なのでクッキーが発行される。
	body := strings.NewReader(`{"product_id":1,"quantity":2}`)
	req := httptest.NewRequest(http.MethodPost, "/cart", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	token := cookies[0]

	// 同じクッキーで読むと同じカート
	req = httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(token)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	out := decodeCart(t, rec)
	require.Len(t, out.Items, 1)
	assert.Equal(t, int64(2), out.Items[0].Quantity)
	assert.Equal(t, int64(2400), out.Total)

	// クッキー無しは別の空カート
	req = httptest.NewRequest(http.MethodGet, "/cart", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Empty(t, decodeCart(t, rec).Items)
}

func TestCartHandler_UpdateAndRemove(t *testing.T) {
	e := newCartServer()

	body := strings.NewReader(`{"product_id":1,"quantity":1}`)
	req := httptest.NewRequest(http.MethodPost, "/cart", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	token := rec.Result().Cookies()[0]

	// 数量上書き
	req = httptest.NewRequest(http.MethodPatch, "/cart/items/1", strings.NewReader(`{"quantity":5}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.AddCookie(token)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	out := decodeCart(t, rec)
	require.Len(t, out.Items, 1)
	assert.Equal(t, int64(5), out.Items[0].Quantity)

	// 削除
	req = httptest.NewRequest(http.MethodDelete, "/cart/items/1", nil)
	req.AddCookie(token)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeCart(t, rec).Items)
}

func TestCartHandler_UnknownProductIs400(t *testing.T) {
	e := newCartServer()

	body := strings.NewReader(`{"product_id":99,"quantity":1}`)
	req := httptest.NewRequest(http.MethodPost, "/cart", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp handler.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Error)
}

func TestCartHandler_BadProductIDParam(t *testing.T) {
	e := newCartServer()

	req := httptest.NewRequest(http.MethodDelete, "/cart/items/abc", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartHandler_Clear(t *testing.T) {
	e := newCartServer()

	body := strings.NewReader(`{"product_id":2,"quantity":3}`)
	req := httptest.NewRequest(http.MethodPost, "/cart", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	token := rec.Result().Cookies()[0]

	req = httptest.NewRequest(http.MethodDelete, "/cart", nil)
	req.AddCookie(token)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(token)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Empty(t, decodeCart(t, rec).Items)
}
