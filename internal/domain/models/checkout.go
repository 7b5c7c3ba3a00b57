package models

import "time"

// CheckoutSummary is the trip/payment block shown once an order is paid.
// Money values are in major units of Currency.
type CheckoutSummary struct {
	TripDate      string  `json:"trip_date"`
	DepartureTime string  `json:"departure_time"`
	RouteName     string  `json:"route_name"`
	BoardAt       string  `json:"board_at"`
	ExitAt        string  `json:"exit_at"`
	SeatCount     int     `json:"seat_count"`
	DiscountTotal float64 `json:"discount_total"`
	PromoTotal    float64 `json:"promo_total"`
	PaidAmount    float64 `json:"paid_amount"`
	Currency      string  `json:"currency"`
}

// CheckoutStatus is the response of the public status call.
type CheckoutStatus struct {
	Paid           bool             `json:"paid"`
	ReservationIDs []int64          `json:"reservation_ids,omitempty"`
	Summary        *CheckoutSummary `json:"summary,omitempty"`
	Expired        *bool            `json:"expired,omitempty"`
}

// RetryResult is the response of the public retry call.
type RetryResult struct {
	FormURL string `json:"form_url,omitempty"`
}

// PublicOrder mirrors a row of public_orders.
type PublicOrder struct {
	ID            int64
	Status        string
	TripDate      string
	DepartureTime string
	RouteName     string
	BoardAt       string
	ExitAt        string
	SeatCount     int
	DiscountTotal float64
	PromoTotal    float64
	Total         float64
	PaidAmount    float64
	Currency      string
	ExpiresAt     *time.Time
	CreatedAt     time.Time
}

// PaymentSession is one attempt at the hosted payment form.
type PaymentSession struct {
	ID        string
	OrderID   int64
	Amount    float64
	Currency  string
	FormURL   string
	ExpiresAt time.Time
	CreatedAt time.Time
}
