package handler

import (
	"errors"
	"net/http"
	"strconv"

	repo "app/internal/repository"

	"github.com/labstack/echo/v4"
)

// /products の公開API
type ProductHandler struct {
	products repo.ProductRepository
}

// DI
func NewProductHandler(products repo.ProductRepository) *ProductHandler {
	return &ProductHandler{products: products}
}

// 公開商品のルートを登録
func (h *ProductHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/products", h.list)
	e.GET("/products/:id", h.detail)
	e.GET("/products/:id/reviews", h.reviews)
}

func (h *ProductHandler) list(c echo.Context) error {
	ctx := c.Request().Context()

	if c.QueryParam("featured") == "true" {
		out, err := h.products.ListFeatured(ctx)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
		}
		return c.JSON(http.StatusOK, out)
	}

	out, err := h.products.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	p, err := h.products.FindByID(c.Request().Context(), id)
	if errors.Is(err, repo.ErrNotFound) {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) reviews(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.products.ReviewsByProductID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
	return c.JSON(http.StatusOK, out)
}
