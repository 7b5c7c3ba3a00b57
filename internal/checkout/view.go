// Package checkout holds the view-state logic of the checkout finish page:
// one page visit resolves an order id, asks the backend for the payment
// status and settles on exactly one of loading, error, pending or paid.
package checkout

import (
	"math"
	"strconv"
	"strings"

	"publicweb/internal/domain/models"
)

// Kind names the active view state.
type Kind string

const (
	KindLoading Kind = "loading"
	KindError   Kind = "error"
	KindPending Kind = "pending"
	KindPaid    Kind = "paid"
)

// User-facing messages of the finish page.
const (
	MsgMissingOrderID = "Lipsește order_id din link."
	MsgStatusFailed   = "Nu am putut verifica statusul plății."
	MsgNoNewLink      = "Nu am primit link nou de plată."
	MsgRetryFailed    = "Nu am putut reiniția plata."
)

// ViewState is a tagged union; only the fields of Kind are meaningful.
type ViewState struct {
	Kind           Kind                    `json:"kind"`
	Message        string                  `json:"message,omitempty"`
	Expired        *bool                   `json:"expired,omitempty"`
	ReservationIDs []int64                 `json:"reservationIds,omitempty"`
	Summary        *models.CheckoutSummary `json:"summary,omitempty"`
}

func Loading() ViewState { return ViewState{Kind: KindLoading} }

func Failed(message string) ViewState { return ViewState{Kind: KindError, Message: message} }

func Pending(expired *bool) ViewState { return ViewState{Kind: KindPending, Expired: expired} }

func Paid(reservationIDs []int64, summary *models.CheckoutSummary) ViewState {
	return ViewState{Kind: KindPaid, ReservationIDs: reservationIDs, Summary: summary}
}

// IsExpired is false when the backend did not report the flag.
func (v ViewState) IsExpired() bool {
	return v.Expired != nil && *v.Expired
}

// ParseOrderID accepts any positive finite number, including decimal
// fractions, exponents and 0x/0o/0b integers, and returns it in canonical
// decimal form ("1e3" -> "1000", "0x10" -> "16", "12.5" -> "12.5"). Whether
// such an order exists is for the backend to answer.
func ParseOrderID(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	if n, err := strconv.ParseUint(raw, 10, 64); err == nil {
		return strconv.FormatUint(n, 10), n > 0
	}
	if len(raw) > 2 && raw[0] == '0' {
		base := 0
		switch raw[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			n, err := strconv.ParseUint(raw[2:], base, 64)
			if err != nil || n == 0 {
				return "", false
			}
			return strconv.FormatUint(n, 10), true
		}
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return "", false
	}
	return strconv.FormatFloat(f, 'f', -1, 64), true
}
