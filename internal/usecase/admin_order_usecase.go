package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/rs/zerolog"
)

// 管理画面向けの注文操作。
// 更新・削除の失敗はそのまま呼び出し元へ返し、一覧は成功後の再読込に任せる
// （先回りして画面側の状態を書き換えない）。
type AdminOrderUsecase struct {
	orders repo.OrderRepository
	log    zerolog.Logger
}

func NewAdminOrderUsecase(orders repo.OrderRepository, log zerolog.Logger) *AdminOrderUsecase {
	return &AdminOrderUsecase{orders: orders, log: log}
}

type AdminOrderListFilter struct {
	Status string // "all" か空で全件
	Search string // 注文ID・氏名・メールの部分一致
}

type OrderStats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Confirmed int `json:"confirmed"`
	Shipped   int `json:"shipped"`
	Delivered int `json:"delivered"`
	Cancelled int `json:"cancelled"`
}

// List は作成日時の降順で返す
func (u *AdminOrderUsecase) List(ctx context.Context, f AdminOrderListFilter) ([]model.Order, error) {
	var (
		orders []model.Order
		err    error
	)

	status := strings.TrimSpace(f.Status)
	if status == "" || status == "all" {
		orders, err = u.orders.List(ctx)
	} else {
		s := model.OrderStatus(status)
		if !s.Valid() {
			return nil, NewHTTPError(http.StatusBadRequest, "invalid status")
		}
		orders, err = u.orders.ListByStatus(ctx, s)
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "order store error")
	}

	term := strings.ToLower(strings.TrimSpace(f.Search))
	if term == "" {
		return orders, nil
	}

	filtered := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		name := strings.ToLower(o.CustomerInfo.FirstName + " " + o.CustomerInfo.LastName)
		if strings.Contains(strings.ToLower(o.OrderID), term) ||
			strings.Contains(name, term) ||
			strings.Contains(strings.ToLower(o.CustomerInfo.Email), term) {
			filtered = append(filtered, o)
		}
	}
	return filtered, nil
}

func (u *AdminOrderUsecase) Stats(ctx context.Context) (OrderStats, error) {
	orders, err := u.orders.List(ctx)
	if err != nil {
		return OrderStats{}, NewHTTPError(http.StatusInternalServerError, "order store error")
	}

	stats := OrderStats{Total: len(orders)}
	for _, o := range orders {
		switch o.Status {
		case model.OrderStatusPending:
			stats.Pending++
		case model.OrderStatusConfirmed:
			stats.Confirmed++
		case model.OrderStatusShipped:
			stats.Shipped++
		case model.OrderStatusDelivered:
			stats.Delivered++
		case model.OrderStatusCancelled:
			stats.Cancelled++
		}
	}
	return stats, nil
}

func (u *AdminOrderUsecase) Get(ctx context.Context, orderID string) (model.Order, error) {
	if strings.TrimSpace(orderID) == "" {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	order, err := u.orders.FindByOrderID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "order store error")
	}
	return order, nil
}

func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, orderID string, status string) error {
	if strings.TrimSpace(orderID) == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	s := model.OrderStatus(strings.TrimSpace(status))
	if !s.Valid() {
		return NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	err := u.orders.UpdateStatus(ctx, orderID, s)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "failed to update order status")
	}
	return nil
}

func (u *AdminOrderUsecase) Delete(ctx context.Context, orderID string) error {
	if strings.TrimSpace(orderID) == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	err := u.orders.Delete(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "failed to delete order")
	}
	return nil
}

// ExportCSV は全注文をCSVにする。注文ゼロならエクスポート無し（404）。
// 住所・明細・備考はダブルクォートで囲む。明細は「name xN」を「; 」で連結。
func (u *AdminOrderUsecase) ExportCSV(ctx context.Context) (string, error) {
	orders, err := u.orders.List(ctx)
	if err != nil {
		return "", NewHTTPError(http.StatusInternalServerError, "order store error")
	}
	if len(orders) == 0 {
		return "", NewHTTPError(http.StatusNotFound, "no orders to export")
	}

	header := "Order ID,Customer Name,Email,Phone,Address,City,Items,Subtotal,Shipping,Total,Status,Order Date,Notes"

	rows := make([]string, 0, len(orders)+1)
	rows = append(rows, header)
	for _, o := range orders {
		rows = append(rows, csvRow(o))
	}
	return strings.Join(rows, "\n"), nil
}

func csvRow(o model.Order) string {
	info := o.CustomerInfo

	items := make([]string, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, fmt.Sprintf("%s x%d", it.Snapshot.Name, it.Quantity))
	}

	notes := info.Notes
	if notes == "" {
		notes = "None"
	}

	fields := []string{
		o.OrderID,
		info.FirstName + " " + info.LastName,
		info.Email,
		info.Phone,
		`"` + info.Address + `"`,
		info.City,
		`"` + strings.Join(items, "; ") + `"`,
		fmt.Sprintf("%d", o.Subtotal),
		fmt.Sprintf("%d", o.Shipping),
		fmt.Sprintf("%d", o.Total),
		string(o.Status),
		o.CreatedAt.Format("2/1/2006"),
		`"` + notes + `"`,
	}
	return strings.Join(fields, ",")
}
