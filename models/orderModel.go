package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Order struct {
	gorm.Model
	UserID          uint            `json:"user_id"`
	PaymentMethod   string          `json:"payment_method"`
	PaymentStatus   string          `json:"payment_status"`
	TransactionID   string          `json:"transaction_id"`
	TotalAmount     decimal.Decimal `json:"total_amount" gorm:"type:decimal(10,2);not null"`
	ShippingAddress string          `json:"shipping_address"`
	ShippingCity    string          `json:"shipping_city"`
	ShippingZip     string          `json:"shipping_zip" gorm:"type:varchar(10)"`
	ShippingCountry string          `json:"shipping_country"`
	OrderItems      []OrderItem     `json:"order_items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem rows are written once during order creation. Name and Price are
// copies of the product at that moment and are never re-read from the
// products table.
type OrderItem struct {
	gorm.Model
	OrderID   uint            `json:"order_id"`
	ProductID uint            `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Quantity  int             `json:"quantity"`
	Total     decimal.Decimal `json:"total" gorm:"type:decimal(10,2);not null"`
	Color     string          `json:"color"`
	Size      string          `json:"size"`
}
