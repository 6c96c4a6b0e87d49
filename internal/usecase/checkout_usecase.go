package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/rs/zerolog"
)

// 送料は全国一律
const ShippingFee int64 = 250

// チェックアウト入力の検証はvalidatorパッケージに寄せる
type CheckoutValidator interface {
	ValidateCustomerInfo(ctx context.Context, info model.CustomerInfo) error
}

// CheckoutUsecase は注文確定の一連
// （注文レコード作成→保存→確認メール→カートクリア）を持つ。
// 保存とメールはどちらも失敗しても止めない。顧客の注文体験を3つの副作用の
// 整合性より優先する設計で、補償トランザクションは無い。
type CheckoutUsecase struct {
	cart      *CartUsecase
	orders    repo.OrderRepository
	mailer    repo.Mailer
	validator CheckoutValidator
	clock     Clock
	log       zerolog.Logger
}

func NewCheckoutUsecase(
	cart *CartUsecase,
	orders repo.OrderRepository,
	mailer repo.Mailer,
	validator CheckoutValidator,
	clock Clock,
	log zerolog.Logger,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		cart:      cart,
		orders:    orders,
		mailer:    mailer,
		validator: validator,
		clock:     clock,
		log:       log,
	}
}

type CheckoutResult struct {
	Order     model.Order `json:"order"`
	EmailSent bool        `json:"email_sent"`
	Message   string      `json:"message"`
}

// PlaceOrder は注文を確定する。
func (u *CheckoutUsecase) PlaceOrder(ctx context.Context, cartKey string, info model.CustomerInfo) (CheckoutResult, error) {
	if err := u.validator.ValidateCustomerInfo(ctx, info); err != nil {
		return CheckoutResult{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	lines, err := u.cart.Lines(ctx, cartKey)
	if err != nil {
		return CheckoutResult{}, err
	}
	if len(lines) == 0 {
		return CheckoutResult{}, NewHTTPError(http.StatusBadRequest, "cart empty")
	}

	now := u.clock.Now()
	subtotal := cartTotal(lines)

	order := model.Order{
		OrderID:      fmt.Sprintf("OO%d", now.UnixMilli()),
		CustomerInfo: info,
		Items:        lines,
		Subtotal:     subtotal,
		Shipping:     ShippingFee,
		Total:        subtotal + ShippingFee,
		Status:       model.OrderStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// 保存失敗は管理画面に出なくなるだけなので注文は止めない
	if _, err := u.orders.Save(ctx, order); err != nil {
		u.log.Warn().Err(err).Str("order_id", order.OrderID).
			Msg("failed to save order, continuing with email")
	}

	// メール失敗も同様に非致命。結果は文言だけ変える。
	emailSent := true
	if err := u.mailer.Send(ctx, orderTemplateParams(order)); err != nil {
		u.log.Warn().Err(err).Str("order_id", order.OrderID).
			Msg("failed to send confirmation email")
		emailSent = false
	}

	if err := u.cart.ClearCart(ctx, cartKey); err != nil {
		return CheckoutResult{}, err
	}

	message := "Order placed successfully!"
	if emailSent {
		message = "Order complete!"
	}

	return CheckoutResult{
		Order:     order,
		EmailSent: emailSent,
		Message:   message,
	}, nil
}

// 確認メールのテンプレートパラメータを組む
func orderTemplateParams(o model.Order) repo.TemplateParams {
	info := o.CustomerInfo
	fullName := info.FirstName + " " + info.LastName

	items := make([]string, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, fmt.Sprintf("%s x %d = %s",
			it.Snapshot.Name, it.Quantity, FormatPrice(it.Snapshot.Price*it.Quantity)))
	}

	address := info.Address + ", " + info.City
	if info.PostalCode != "" {
		address += ", " + info.PostalCode
	}

	notes := info.Notes
	if notes == "" {
		notes = "None"
	}

	return repo.TemplateParams{
		"email":          info.Email,
		"to_name":        fullName,
		"customer_name":  fullName,
		"order_id":       o.OrderID,
		"order_items":    strings.Join(items, "\n"),
		"order_subtotal": FormatPrice(o.Subtotal),
		"order_shipping": FormatPrice(o.Shipping),
		"order_total":    FormatPrice(o.Total),
		"customer_phone": info.Phone,
		"customer_address": address,
		"order_notes":    notes,
		"order_date":     o.CreatedAt.Format("2 January 2006, 15:04"),
	}
}
