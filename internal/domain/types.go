package domain

// OrderStatus is the lifecycle value stored on public_orders.status.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderExpired   OrderStatus = "expired"
	OrderCancelled OrderStatus = "cancelled"
)

// Closed reports whether the order can no longer be paid.
func (s OrderStatus) Closed() bool {
	return s == OrderExpired || s == OrderCancelled
}
