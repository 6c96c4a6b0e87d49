package model

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// チェックアウトフォームの入力
type CustomerInfo struct {
	FirstName  string `json:"firstName" bson:"first_name"`
	LastName   string `json:"lastName" bson:"last_name"`
	Email      string `json:"email" bson:"email"`
	Phone      string `json:"phone" bson:"phone"`
	Address    string `json:"address" bson:"address"`
	City       string `json:"city" bson:"city"`
	PostalCode string `json:"postalCode" bson:"postal_code"`
	Notes      string `json:"notes" bson:"notes"`
}

// 注文レコード。チェックアウトが作り、管理画面とCSVエクスポートが読む。
// 注文IDは一意なのでそのままドキュメントキーにする。
type Order struct {
	OrderID      string       `json:"orderId" bson:"_id"`
	CustomerInfo CustomerInfo `json:"customerInfo" bson:"customer_info"`
	Items        []CartLine   `json:"items" bson:"items"`
	Subtotal     int64        `json:"subtotal" bson:"subtotal"`
	Shipping     int64        `json:"shipping" bson:"shipping"`
	Total        int64        `json:"total" bson:"total"`
	Status       OrderStatus  `json:"status" bson:"status"`
	CreatedAt    time.Time    `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time    `json:"updatedAt" bson:"updated_at"`
}
