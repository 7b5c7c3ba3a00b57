package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"publicweb/internal/domain"
	"publicweb/internal/domain/models"
)

type staticStatus struct {
	st  models.CheckoutStatus
	err error
}

func (s staticStatus) FetchCheckoutStatus(context.Context, string) (models.CheckoutStatus, error) {
	return s.st, s.err
}

func TestReceiptGenerate(t *testing.T) {
	svc := ReceiptService{
		Status: staticStatus{st: models.CheckoutStatus{
			Paid:           true,
			ReservationIDs: []int64{301, 302},
			Summary: &models.CheckoutSummary{
				TripDate: "2025-03-14", DepartureTime: "07:30:00", RouteName: "Brașov - Constanța",
				BoardAt: "Brașov", ExitAt: "Constanța", SeatCount: 2,
				DiscountTotal: 10, PaidAmount: 230, Currency: "RON",
			},
		}},
		Now: func() time.Time { return fixedNow },
	}

	pdf, name, err := svc.Generate(context.Background(), "12")
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("output is not a pdf")
	}
	if name != "CONFIRMARE_12.pdf" {
		t.Fatalf("filename = %q", name)
	}
}

func TestReceiptRequiresPaidOrder(t *testing.T) {
	svc := ReceiptService{Status: staticStatus{st: models.CheckoutStatus{Paid: false}}}
	if _, _, err := svc.Generate(context.Background(), "12"); !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestPDFTextStripsDiacritics(t *testing.T) {
	if got := pdfText("Brașov - Constanța, Iași, Târgu Mureș"); got != "Brasov - Constanta, Iasi, Targu Mures" {
		t.Fatalf("got %q", got)
	}
}
