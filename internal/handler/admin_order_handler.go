package handler

import (
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 管理画面の注文API
type AdminOrderHandler struct {
	uc *usecase.AdminOrderUsecase
}

func NewAdminOrderHandler(uc *usecase.AdminOrderUsecase) *AdminOrderHandler {
	return &AdminOrderHandler{uc: uc}
}

type OrderStatusUpdateRequest struct {
	Status string `json:"status"`
}

func (h *AdminOrderHandler) RegisterRoutes(guarded *echo.Group) {
	guarded.GET("/orders", h.list)
	guarded.GET("/orders/stats", h.stats)
	guarded.GET("/orders/export", h.exportCSV)
	guarded.GET("/orders/:orderId", h.detail)
	guarded.PATCH("/orders/:orderId/status", h.updateStatus)
	guarded.DELETE("/orders/:orderId", h.deleteOrder)
}

func (h *AdminOrderHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context(), usecase.AdminOrderListFilter{
		Status: c.QueryParam("status"),
		Search: c.QueryParam("search"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) stats(c echo.Context) error {
	out, err := h.uc.Stats(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) detail(c echo.Context) error {
	out, err := h.uc.Get(c.Request().Context(), c.Param("orderId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) updateStatus(c echo.Context) error {
	var req OrderStatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	// 失敗はそのまま返す。一覧の再読込は成功を見てから呼び出し側がやる。
	if err := h.uc.UpdateStatus(c.Request().Context(), c.Param("orderId"), req.Status); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "status updated"})
}

func (h *AdminOrderHandler) deleteOrder(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("orderId")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "order deleted"})
}

func (h *AdminOrderHandler) exportCSV(c echo.Context) error {
	csv, err := h.uc.ExportCSV(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="orders.csv"`)
	return c.Blob(http.StatusOK, "text/csv", []byte(csv))
}
