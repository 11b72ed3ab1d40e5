package models

// OrderItem is a priced snapshot of one cart line at checkout.
type OrderItem struct {
	Food_id    string  `bson:"food_item" json:"foodItem"`
	Name       string  `bson:"name" json:"name"`
	Quantity   int     `bson:"quantity" json:"quantity"`
	Price      float64 `bson:"price" json:"price"`
	TotalPrice float64 `bson:"total_price" json:"totalPrice"`
}
