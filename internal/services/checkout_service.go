package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"publicweb/internal/domain"
	"publicweb/internal/domain/models"
	"publicweb/internal/utils"

	"github.com/google/uuid"
)

// OrderStore is the persistence the checkout service needs.
type OrderStore interface {
	GetOrder(ctx context.Context, id int64) (models.PublicOrder, error)
	ListReservationIDs(ctx context.Context, orderID int64) ([]int64, error)
	SavePaymentSession(ctx context.Context, s models.PaymentSession) error
}

// StatusCache keeps paid status snapshots. A nil snapshot means a miss.
type StatusCache interface {
	GetStatus(ctx context.Context, orderID int64) (*models.CheckoutStatus, error)
	SetStatus(ctx context.Context, orderID int64, st models.CheckoutStatus) error
}

// FormSigner turns a payment session into a hosted form link.
type FormSigner interface {
	FormURL(session models.PaymentSession) (string, error)
}

const (
	msgAlreadyPaid    = "Comanda este deja plătită."
	msgOrderExpired   = "Rezervarea a expirat. Te rugăm să refaci comanda."
	msgInvalidOrderID = "order_id nu este valid."
)

// ParseOrderKey turns a public order id into a stored one. Stored ids are
// positive integers; any other value is a validation error.
func ParseOrderKey(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ValidationError{Msg: msgInvalidOrderID}
	}
	return id, nil
}

// CheckoutService answers the public status and retry calls.
type CheckoutService struct {
	Orders     OrderStore
	Signer     FormSigner
	Cache      StatusCache
	SessionTTL time.Duration
	RequestID  string
	Now        func() time.Time
}

func (s CheckoutService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return utils.NowUTC()
}

// Status classifies the order as paid, pending or expired.
func (s CheckoutService) Status(ctx context.Context, orderID int64) (models.CheckoutStatus, error) {
	if orderID <= 0 {
		return models.CheckoutStatus{}, domain.ValidationError{Field: "order_id", Msg: "id invalid"}
	}

	if s.Cache != nil {
		cached, err := s.Cache.GetStatus(ctx, orderID)
		if err != nil {
			utils.LogEvent(s.RequestID, "checkout", "status", fmt.Sprintf("order_id=%d cache read warning: %v", orderID, err))
		} else if cached != nil {
			return *cached, nil
		}
	}

	order, err := s.Orders.GetOrder(ctx, orderID)
	if err != nil {
		return models.CheckoutStatus{}, err
	}

	if orderStatus(order) != domain.OrderPaid {
		expired := s.isExpired(order)
		return models.CheckoutStatus{Paid: false, Expired: &expired}, nil
	}

	ids, err := s.Orders.ListReservationIDs(ctx, orderID)
	if err != nil {
		return models.CheckoutStatus{}, err
	}
	st := models.CheckoutStatus{
		Paid:           true,
		ReservationIDs: ids,
		Summary:        summaryOf(order),
	}

	if s.Cache != nil {
		if err := s.Cache.SetStatus(ctx, orderID, st); err != nil {
			utils.LogEvent(s.RequestID, "checkout", "status", fmt.Sprintf("order_id=%d cache write warning: %v", orderID, err))
		}
	}
	return st, nil
}

// Retry opens a new payment session for a pending order.
func (s CheckoutService) Retry(ctx context.Context, orderID int64) (models.RetryResult, error) {
	if orderID <= 0 {
		return models.RetryResult{}, domain.ValidationError{Field: "order_id", Msg: "id invalid"}
	}
	order, err := s.Orders.GetOrder(ctx, orderID)
	if err != nil {
		return models.RetryResult{}, err
	}

	switch {
	case orderStatus(order) == domain.OrderPaid:
		return models.RetryResult{}, domain.ConflictError{Resource: "order", Msg: msgAlreadyPaid}
	case s.isExpired(order):
		return models.RetryResult{}, domain.ConflictError{Resource: "order", Msg: msgOrderExpired}
	}

	now := s.now()
	ttl := s.SessionTTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	session := models.PaymentSession{
		ID:        uuid.NewString(),
		OrderID:   order.ID,
		Amount:    order.Total,
		Currency:  currencyOf(order),
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
	formURL, err := s.Signer.FormURL(session)
	if err != nil {
		return models.RetryResult{}, domain.InternalError{Msg: "failed to build payment form url", Err: err}
	}
	session.FormURL = formURL

	if err := s.Orders.SavePaymentSession(ctx, session); err != nil {
		return models.RetryResult{}, err
	}
	utils.LogEvent(s.RequestID, "checkout", "retry", fmt.Sprintf("order_id=%d session=%s", order.ID, session.ID))
	return models.RetryResult{FormURL: formURL}, nil
}

func orderStatus(o models.PublicOrder) domain.OrderStatus {
	return domain.OrderStatus(strings.ToLower(strings.TrimSpace(o.Status)))
}

func (s CheckoutService) isExpired(o models.PublicOrder) bool {
	st := orderStatus(o)
	if st.Closed() {
		return true
	}
	return st != domain.OrderPaid && o.ExpiresAt != nil && s.now().After(*o.ExpiresAt)
}

func currencyOf(o models.PublicOrder) string {
	return strings.ToUpper(utils.FirstNonEmpty(o.Currency, "RON"))
}

func summaryOf(o models.PublicOrder) *models.CheckoutSummary {
	paid := o.PaidAmount
	if paid == 0 {
		paid = o.Total
	}
	return &models.CheckoutSummary{
		TripDate:      o.TripDate,
		DepartureTime: o.DepartureTime,
		RouteName:     o.RouteName,
		BoardAt:       o.BoardAt,
		ExitAt:        o.ExitAt,
		SeatCount:     o.SeatCount,
		DiscountTotal: o.DiscountTotal,
		PromoTotal:    o.PromoTotal,
		PaidAmount:    paid,
		Currency:      currencyOf(o),
	}
}

// LocalBackend lets the finish page call CheckoutService in-process. User
// facing domain errors become *domain.APIError, as they would over HTTP.
type LocalBackend struct {
	Service CheckoutService
}

func (b LocalBackend) FetchCheckoutStatus(ctx context.Context, orderID string) (models.CheckoutStatus, error) {
	id, err := ParseOrderKey(orderID)
	if err != nil {
		return models.CheckoutStatus{}, domain.ToAPIError(err)
	}
	st, err := b.Service.Status(ctx, id)
	return st, domain.ToAPIError(err)
}

func (b LocalBackend) RetryCheckout(ctx context.Context, orderID string) (models.RetryResult, error) {
	id, err := ParseOrderKey(orderID)
	if err != nil {
		return models.RetryResult{}, domain.ToAPIError(err)
	}
	res, err := b.Service.Retry(ctx, id)
	return res, domain.ToAPIError(err)
}
