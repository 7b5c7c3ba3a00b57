package checkout

import (
	"context"
	"errors"
	"testing"

	"publicweb/internal/domain"
	"publicweb/internal/domain/models"
)

type fakeBackend struct {
	status      models.CheckoutStatus
	statusErr   error
	retry       models.RetryResult
	retryErr    error
	statusCalls int
	retryCalls  int
	lastID      string
	onStatus    func()
	onRetry     func()
}

func (f *fakeBackend) FetchCheckoutStatus(_ context.Context, id string) (models.CheckoutStatus, error) {
	f.statusCalls++
	f.lastID = id
	if f.onStatus != nil {
		f.onStatus()
	}
	return f.status, f.statusErr
}

func (f *fakeBackend) RetryCheckout(_ context.Context, id string) (models.RetryResult, error) {
	f.retryCalls++
	f.lastID = id
	if f.onRetry != nil {
		f.onRetry()
	}
	return f.retry, f.retryErr
}

func boolPtr(v bool) *bool { return &v }

func TestParseOrderID(t *testing.T) {
	cases := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"", "", false},
		{"   ", "", false},
		{"abc", "", false},
		{"0", "", false},
		{"0.0", "", false},
		{"-4", "", false},
		{"-0.5", "", false},
		{"NaN", "", false},
		{"Infinity", "", false},
		{"+Inf", "", false},
		{"1e400", "", false},
		{"0x", "", false},
		{"0x0", "", false},
		{"12.5", "12.5", true},
		{"0.5", "0.5", true},
		{"42", "42", true},
		{" 42 ", "42", true},
		{"007", "7", true},
		{"+42", "42", true},
		{"42.0", "42", true},
		{"1e3", "1000", true},
		{"0x10", "16", true},
		{"0o17", "15", true},
		{"0b101", "5", true},
	}
	for _, tc := range cases {
		got, ok := ParseOrderID(tc.raw)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseOrderID(%q) = %q,%v want %q,%v", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestNewPageStartsLoading(t *testing.T) {
	p := NewPage("7", &fakeBackend{}, &fakeBackend{})
	if p.State().Kind != KindLoading {
		t.Fatalf("initial kind = %s", p.State().Kind)
	}
	if p.OrderID() != "7" {
		t.Fatalf("order id = %q", p.OrderID())
	}
}

func TestLoadInvalidOrderIDSkipsBackend(t *testing.T) {
	for _, raw := range []string{"", "0", "-1", "x"} {
		be := &fakeBackend{}
		st := NewPage(raw, be, be).Load(context.Background())
		if st.Kind != KindError || st.Message != MsgMissingOrderID {
			t.Fatalf("raw=%q: got %+v", raw, st)
		}
		if be.statusCalls != 0 {
			t.Fatalf("raw=%q: status endpoint called", raw)
		}
	}
}

func TestLoadNonIntegerOrderIDReachesBackend(t *testing.T) {
	cases := map[string]string{"12.5": "12.5", "0x10": "16", "1e3": "1000"}
	for raw, want := range cases {
		be := &fakeBackend{statusErr: &domain.APIError{Status: 400, Message: "order_id nu este valid."}}
		st := NewPage(raw, be, be).Load(context.Background())
		if be.statusCalls != 1 || be.lastID != want {
			t.Fatalf("raw=%q: calls=%d id=%q", raw, be.statusCalls, be.lastID)
		}
		if st.Kind != KindError || st.Message != "order_id nu este valid." {
			t.Fatalf("raw=%q: got %+v", raw, st)
		}
	}
}

func TestLoadPaid(t *testing.T) {
	summary := &models.CheckoutSummary{RouteName: "Cluj - Iași", SeatCount: 2, PaidAmount: 240, Currency: "RON"}
	be := &fakeBackend{status: models.CheckoutStatus{Paid: true, ReservationIDs: []int64{11, 12}, Summary: summary}}

	st := NewPage("5", be, be).Load(context.Background())
	if st.Kind != KindPaid {
		t.Fatalf("kind = %s", st.Kind)
	}
	if len(st.ReservationIDs) != 2 || st.ReservationIDs[1] != 12 {
		t.Fatalf("reservation ids = %v", st.ReservationIDs)
	}
	if st.Summary != summary {
		t.Fatalf("summary not carried through")
	}
}

func TestLoadPaidWithoutSummary(t *testing.T) {
	be := &fakeBackend{status: models.CheckoutStatus{Paid: true}}
	st := NewPage("5", be, be).Load(context.Background())
	if st.Kind != KindPaid || st.Summary != nil || st.ReservationIDs != nil {
		t.Fatalf("got %+v", st)
	}
}

func TestLoadPending(t *testing.T) {
	cases := []struct {
		name    string
		expired *bool
		want    bool
	}{
		{"no flag", nil, false},
		{"not expired", boolPtr(false), false},
		{"expired", boolPtr(true), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			be := &fakeBackend{status: models.CheckoutStatus{Paid: false, Expired: tc.expired}}
			st := NewPage("9", be, be).Load(context.Background())
			if st.Kind != KindPending || st.IsExpired() != tc.want {
				t.Fatalf("got %+v", st)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	be := &fakeBackend{statusErr: &domain.APIError{Status: 404, Message: "Comanda nu a fost găsită."}}
	st := NewPage("9", be, be).Load(context.Background())
	if st.Kind != KindError || st.Message != "Comanda nu a fost găsită." {
		t.Fatalf("api error: got %+v", st)
	}

	be = &fakeBackend{statusErr: errors.New("connection refused")}
	st = NewPage("9", be, be).Load(context.Background())
	if st.Kind != KindError || st.Message != MsgStatusFailed {
		t.Fatalf("plain error: got %+v", st)
	}
}

func TestLoadAfterCloseKeepsState(t *testing.T) {
	be := &fakeBackend{status: models.CheckoutStatus{Paid: true}}
	p := NewPage("3", be, be)
	be.onStatus = p.Close

	st := p.Load(context.Background())
	if st.Kind != KindLoading {
		t.Fatalf("state updated after close: %+v", st)
	}
}

func TestLoadCancelledContextKeepsState(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	be := &fakeBackend{status: models.CheckoutStatus{Paid: true}, onStatus: cancel}

	st := NewPage("3", be, be).Load(ctx)
	if st.Kind != KindLoading {
		t.Fatalf("state updated after cancel: %+v", st)
	}
}

func TestRetry(t *testing.T) {
	cases := []struct {
		name     string
		retry    models.RetryResult
		err      error
		redirect string
		message  string
	}{
		{"form url", models.RetryResult{FormURL: "https://pay.example/form?token=abc"}, nil, "https://pay.example/form?token=abc", ""},
		{"no form url", models.RetryResult{}, nil, "", MsgNoNewLink},
		{"api error", models.RetryResult{}, &domain.APIError{Status: 409, Message: "Comanda este deja plătită."}, "", "Comanda este deja plătită."},
		{"plain error", models.RetryResult{}, errors.New("timeout"), "", MsgRetryFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			be := &fakeBackend{retry: tc.retry, retryErr: tc.err}
			redirect, st := NewPage("21", be, be).Retry(context.Background())
			if redirect != tc.redirect {
				t.Fatalf("redirect = %q want %q", redirect, tc.redirect)
			}
			if tc.redirect != "" {
				if st.Kind != KindLoading {
					t.Fatalf("kind while navigating = %s", st.Kind)
				}
				return
			}
			if st.Kind != KindError || st.Message != tc.message {
				t.Fatalf("got %+v", st)
			}
		})
	}
}

func TestRetryWithoutOrderIDIsNoop(t *testing.T) {
	be := &fakeBackend{}
	p := NewPage("", be, be)
	p.Load(context.Background())

	redirect, st := p.Retry(context.Background())
	if redirect != "" || be.retryCalls != 0 {
		t.Fatalf("retry ran without order id")
	}
	if st.Message != MsgMissingOrderID {
		t.Fatalf("state changed: %+v", st)
	}
}

func TestRetryAfterCloseDropsResult(t *testing.T) {
	be := &fakeBackend{retry: models.RetryResult{FormURL: "https://pay.example/form?token=abc"}}
	p := NewPage("21", be, be)
	be.onRetry = p.Close

	redirect, st := p.Retry(context.Background())
	if redirect != "" {
		t.Fatalf("redirect after close = %q", redirect)
	}
	if st.Kind != KindLoading || p.State().Kind != KindLoading {
		t.Fatalf("state updated after close: %+v", st)
	}
}

func TestRetryCancelledContextKeepsLoading(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	be := &fakeBackend{retryErr: &domain.APIError{Status: 409, Message: "Comanda este deja plătită."}, onRetry: cancel}
	p := NewPage("21", be, be)

	redirect, st := p.Retry(ctx)
	if redirect != "" || be.retryCalls != 1 {
		t.Fatalf("redirect=%q calls=%d", redirect, be.retryCalls)
	}
	if st.Kind != KindLoading || p.State().Kind != KindLoading {
		t.Fatalf("state updated after cancel: %+v", st)
	}
}
