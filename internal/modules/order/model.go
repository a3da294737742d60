package order

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of an order. Orders start as new and move
// forward through confirmation, payment and delivery; cancellation is
// reachable from any non-terminal state.
type Status string

const (
	StatusNew       Status = "new"
	StatusConfirmed Status = "confirmed"
	StatusPaid      Status = "paid"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// DeliveryMethod is the shipping carrier chosen at checkout.
type DeliveryMethod string

const (
	DeliveryBoxberry    DeliveryMethod = "boxberry"
	DeliveryRussianPost DeliveryMethod = "russian_post"
	DeliveryCDEK        DeliveryMethod = "cdek"
)

// PaymentMethod is how the order is paid. Bank transfer is the only method
// currently offered.
type PaymentMethod string

const PaymentBankTransfer PaymentMethod = "bank_transfer"

// Item is an immutable snapshot of one cart line at submission time, so
// later product or price changes never alter historical orders.
type Item struct {
	ProductID    string  `json:"product_id"`
	ProductName  string  `json:"product_name"`
	ProductImage string  `json:"product_image"`
	Size         string  `json:"size"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
	Total        float64 `json:"total"`
}

// Order is a submitted purchase. The JSON field names are the contract the
// staff panel reads.
type Order struct {
	ID              uuid.UUID      `json:"id"`
	UserID          int64          `json:"user_id"`
	Items           []Item         `json:"items"`
	TotalAmount     float64        `json:"total_amount"`
	CustomerName    string         `json:"customer_name"`
	CustomerPhone   string         `json:"customer_phone"`
	CustomerEmail   string         `json:"customer_email,omitempty"`
	DeliveryAddress string         `json:"delivery_address"`
	DeliveryMethod  DeliveryMethod `json:"delivery_method"`
	PaymentMethod   PaymentMethod  `json:"payment_method"`
	Status          Status         `json:"status"`
	AdminNotes      string         `json:"admin_notes,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// CheckoutForm is the customer-entered data accompanying a submission.
type CheckoutForm struct {
	CustomerName    string         `json:"customer_name"`
	CustomerPhone   string         `json:"customer_phone"`
	CustomerEmail   string         `json:"customer_email,omitempty"`
	DeliveryAddress string         `json:"delivery_address"`
	DeliveryMethod  DeliveryMethod `json:"delivery_method"`
	PaymentMethod   PaymentMethod  `json:"payment_method"`
}

// UpdateStatusRequest is the payload for a staff status change.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// deliveryMethodNames maps carrier codes to the display names used in
// notifications.
var deliveryMethodNames = map[DeliveryMethod]string{
	DeliveryBoxberry:    "Boxberry",
	DeliveryRussianPost: "Почта России",
	DeliveryCDEK:        "СДЭК",
}

// DisplayName returns the human-readable carrier name, falling back to the
// raw code.
func (m DeliveryMethod) DisplayName() string {
	if name, ok := deliveryMethodNames[m]; ok {
		return name
	}
	return string(m)
}

// Valid reports whether the delivery method is one the store offers.
func (m DeliveryMethod) Valid() bool {
	_, ok := deliveryMethodNames[m]
	return ok
}
