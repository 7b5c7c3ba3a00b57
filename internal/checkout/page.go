package checkout

import (
	"context"
	"strings"
	"sync"

	"publicweb/internal/domain"
	"publicweb/internal/domain/models"
	"publicweb/internal/utils"
)

// StatusFetcher returns the payment status of an order.
type StatusFetcher interface {
	FetchCheckoutStatus(ctx context.Context, orderID string) (models.CheckoutStatus, error)
}

// RetryRequester opens a new payment session for an order.
type RetryRequester interface {
	RetryCheckout(ctx context.Context, orderID string) (models.RetryResult, error)
}

// Page is a single visit of the finish page. It is safe for concurrent use;
// once Close is called no further state updates are applied.
type Page struct {
	Status    StatusFetcher
	Retrier   RetryRequester
	RequestID string

	orderID string

	mu      sync.Mutex
	state   ViewState
	mounted bool
}

// NewPage resolves the order id from the raw query value. An invalid value
// leaves the page without an order; Load then reports it.
func NewPage(rawOrderID string, status StatusFetcher, retrier RetryRequester) *Page {
	id, ok := ParseOrderID(rawOrderID)
	if !ok {
		id = ""
	}
	return &Page{
		Status:  status,
		Retrier: retrier,
		orderID: id,
		state:   Loading(),
		mounted: true,
	}
}

// OrderID is empty when the link carried no usable order id.
func (p *Page) OrderID() string { return p.orderID }

func (p *Page) State() ViewState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Close tears the visit down. Results still in flight are dropped.
func (p *Page) Close() {
	p.mu.Lock()
	p.mounted = false
	p.mu.Unlock()
}

// setState applies next unless the visit is gone; it reports whether it did.
func (p *Page) setState(ctx context.Context, next ViewState) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.activeLocked(ctx) {
		return false
	}
	p.state = next
	return true
}

func (p *Page) active(ctx context.Context) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.activeLocked(ctx)
}

func (p *Page) activeLocked(ctx context.Context) bool {
	return p.mounted && ctx.Err() == nil
}

// Load fetches the payment status once and settles the view state.
func (p *Page) Load(ctx context.Context) ViewState {
	if p.orderID == "" {
		p.setState(ctx, Failed(MsgMissingOrderID))
		return p.State()
	}

	resp, err := p.Status.FetchCheckoutStatus(ctx, p.orderID)
	var next ViewState
	switch {
	case err != nil:
		next = Failed(errorMessage(err, MsgStatusFailed))
		utils.LogEvent(p.RequestID, "checkout", "status", "order_id="+p.orderID+" err="+err.Error())
	case resp.Paid:
		next = Paid(resp.ReservationIDs, resp.Summary)
	default:
		next = Pending(resp.Expired)
	}

	if !p.setState(ctx, next) {
		utils.LogEvent(p.RequestID, "checkout", "status", "order_id="+p.orderID+" dropped: page closed")
	}
	return p.State()
}

// Retry asks for a new payment link. A non-empty redirect means the caller
// must navigate the browser there; otherwise the returned state is final.
func (p *Page) Retry(ctx context.Context) (string, ViewState) {
	if p.orderID == "" {
		return "", p.State()
	}
	p.setState(ctx, Loading())

	resp, err := p.Retrier.RetryCheckout(ctx, p.orderID)
	if !p.active(ctx) {
		utils.LogEvent(p.RequestID, "checkout", "retry", "order_id="+p.orderID+" dropped: page closed")
		return "", p.State()
	}
	if err != nil {
		utils.LogEvent(p.RequestID, "checkout", "retry", "order_id="+p.orderID+" err="+err.Error())
		p.setState(ctx, Failed(errorMessage(err, MsgRetryFailed)))
		return "", p.State()
	}
	if url := strings.TrimSpace(resp.FormURL); url != "" {
		utils.LogEvent(p.RequestID, "checkout", "retry", "order_id="+p.orderID+" redirect")
		return url, p.State()
	}
	p.setState(ctx, Failed(MsgNoNewLink))
	return "", p.State()
}

func errorMessage(err error, fallback string) string {
	if apiErr, ok := domain.AsAPIError(err); ok {
		return apiErr.Error()
	}
	return fallback
}
