package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	StatusPlaced         OrderStatus = "placed"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPreparing      OrderStatus = "preparing"
	StatusOutForDelivery OrderStatus = "out for delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

// OrderLifecycle is the forward path of a successful order.
var OrderLifecycle = []OrderStatus{
	StatusPlaced, StatusConfirmed, StatusPreparing, StatusOutForDelivery, StatusDelivered,
}

func (s OrderStatus) Valid() bool {
	return s == StatusCancelled || s.step() >= 0
}

// Terminal reports whether no further transition is possible.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// InFlight reports whether the order is accepted but not yet delivered.
func (s OrderStatus) InFlight() bool {
	return s == StatusConfirmed || s == StatusPreparing || s == StatusOutForDelivery
}

// CanMoveTo reports whether next is a legal transition from s: the next
// lifecycle step, or cancellation of an open order.
func (s OrderStatus) CanMoveTo(next OrderStatus) bool {
	if s.Terminal() {
		return false
	}
	if next == StatusCancelled {
		return true
	}
	from, to := s.step(), next.step()
	return from >= 0 && to == from+1
}

func (s OrderStatus) step() int {
	for i, st := range OrderLifecycle {
		if st == s {
			return i
		}
	}
	return -1
}

const (
	PaymentCreditCard     = "credit card"
	PaymentDebitCard      = "debit card"
	PaymentCashOnDelivery = "cash on delivery"
	PaymentWallet         = "wallet"

	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
	PaymentRefunded  = "refunded"
)

type Address struct {
	Street  string `bson:"street" json:"street" validate:"required"`
	City    string `bson:"city" json:"city" validate:"required"`
	State   string `bson:"state" json:"state" validate:"required"`
	ZipCode string `bson:"zip_code" json:"zipCode" validate:"required"`
	Country string `bson:"country" json:"country" validate:"required"`
}

type StatusEntry struct {
	Status    OrderStatus `bson:"status" json:"status"`
	Timestamp time.Time   `bson:"timestamp" json:"timestamp"`
	Note      string      `bson:"note" json:"note"`
}

type Order struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	User_id               string             `bson:"user_id" json:"user"`
	Items                 []OrderItem        `bson:"items" json:"items"`
	TotalAmount           float64            `bson:"total_amount" json:"totalAmount"`
	TotalCalories         float64            `bson:"total_calories" json:"totalCalories"`
	NutritionSummary      NutritionSummary   `bson:"nutrition_summary" json:"nutritionSummary"`
	DeliveryAddress       Address            `bson:"delivery_address" json:"deliveryAddress"`
	PaymentMethod         string             `bson:"payment_method" json:"paymentMethod"`
	PaymentStatus         string             `bson:"payment_status" json:"paymentStatus"`
	OrderStatus           OrderStatus        `bson:"order_status" json:"orderStatus"`
	StatusHistory         []StatusEntry      `bson:"status_history" json:"statusHistory"`
	DeliveryInstructions  string             `bson:"delivery_instructions,omitempty" json:"deliveryInstructions,omitempty"`
	OrderNotes            string             `bson:"order_notes,omitempty" json:"orderNotes,omitempty"`
	TaxAmount             float64            `bson:"tax_amount" json:"taxAmount"`
	DeliveryFee           float64            `bson:"delivery_fee" json:"deliveryFee"`
	EstimatedDeliveryTime *time.Time         `bson:"estimated_delivery_time,omitempty" json:"estimatedDeliveryTime,omitempty"`
	ActualDeliveryTime    *time.Time         `bson:"actual_delivery_time,omitempty" json:"actualDeliveryTime,omitempty"`
	Rating                *int               `bson:"rating,omitempty" json:"rating,omitempty"`
	Feedback              string             `bson:"feedback,omitempty" json:"feedback,omitempty"`
	Created_at            time.Time          `bson:"created_at" json:"createdAt"`
	Updated_at            time.Time          `bson:"updated_at" json:"updatedAt"`
}

// ShortID is the suffix shown to customers when referring to an order.
func (o *Order) ShortID() string {
	id := o.ID.Hex()
	if len(id) <= 6 {
		return id
	}
	return id[len(id)-6:]
}
