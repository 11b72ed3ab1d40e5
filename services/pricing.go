package services

import (
	"github.com/shopspring/decimal"

	"github.com/Ayush-478/Veggio/models"
)

var (
	taxRate          = decimal.RequireFromString("0.08")
	freeDeliveryFrom = decimal.NewFromInt(20)
	smallOrderFee    = decimal.NewFromInt(2)
	hundred          = decimal.NewFromInt(100)
)

// DiscountedPrice applies a percentage discount to a unit price.
func DiscountedPrice(price, discount float64) decimal.Decimal {
	off := decimal.NewFromFloat(discount).Div(hundred)
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(1).Sub(off))
}

// Quote is the priced breakdown of a set of cart lines.
type Quote struct {
	Items       []models.OrderItem
	Subtotal    decimal.Decimal
	Tax         decimal.Decimal
	DeliveryFee decimal.Decimal
	Total       decimal.Decimal
}

type pricedLine struct {
	food     *models.Food
	quantity int
}

// quote prices lines at the current catalog price. Line totals and tax are
// rounded to cents; the total is subtotal + tax + delivery fee.
func quote(lines []pricedLine) Quote {
	q := Quote{Items: make([]models.OrderItem, 0, len(lines))}
	for _, l := range lines {
		unit := DiscountedPrice(l.food.Price, l.food.Discount)
		lineTotal := unit.Mul(decimal.NewFromInt(int64(l.quantity))).Round(2)
		q.Subtotal = q.Subtotal.Add(lineTotal)
		q.Items = append(q.Items, models.OrderItem{
			Food_id:    l.food.ID.Hex(),
			Name:       l.food.Name,
			Quantity:   l.quantity,
			Price:      unit.Round(2).InexactFloat64(),
			TotalPrice: lineTotal.InexactFloat64(),
		})
	}
	q.Tax = q.Subtotal.Mul(taxRate).Round(2)
	if q.Subtotal.LessThan(freeDeliveryFrom) {
		q.DeliveryFee = smallOrderFee
	}
	q.Total = q.Subtotal.Add(q.Tax).Add(q.DeliveryFee)
	return q
}
