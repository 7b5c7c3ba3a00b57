package services

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"publicweb/internal/checkout"
	"publicweb/internal/domain"
	"publicweb/internal/domain/models"
	"publicweb/internal/utils"

	"github.com/phpdave11/gofpdf"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const msgNotPaidYet = "Comanda nu este încă plătită."

// ReceiptService renders a PDF payment receipt for a paid order.
type ReceiptService struct {
	Status    checkout.StatusFetcher
	RequestID string
	Now       func() time.Time
}

// Generate returns the PDF bytes and a download filename.
func (s ReceiptService) Generate(ctx context.Context, orderID string) ([]byte, string, error) {
	st, err := s.Status.FetchCheckoutStatus(ctx, orderID)
	if err != nil {
		return nil, "", err
	}
	if !st.Paid {
		return nil, "", domain.ConflictError{Resource: "order", Msg: msgNotPaidYet}
	}
	utils.LogEvent(s.RequestID, "receipt", "generate", "order_id="+orderID)

	issued := time.Now()
	if s.Now != nil {
		issued = s.Now()
	}
	return buildReceiptPDF(orderID, st, issued)
}

func buildReceiptPDF(orderID string, st models.CheckoutStatus, issued time.Time) ([]byte, string, error) {
	sum := models.CheckoutSummary{}
	if st.Summary != nil {
		sum = *st.Summary
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Chitanta", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "CONFIRMARE PLATA")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Comanda        : #%s", orderID),
		fmt.Sprintf("Emis la        : %s", issued.Format("02.01.2006 15:04")),
		fmt.Sprintf("Rezervari      : %s", joinIDs(st.ReservationIDs)),
		fmt.Sprintf("Ruta           : %s", utils.OrDash(sum.RouteName)),
		fmt.Sprintf("Data / Ora     : %s %s", utils.OrDash(utils.DisplayDate(sum.TripDate)), utils.DisplayTime(sum.DepartureTime)),
		fmt.Sprintf("Urcare         : %s", utils.OrDash(sum.BoardAt)),
		fmt.Sprintf("Coborare       : %s", utils.OrDash(sum.ExitAt)),
		fmt.Sprintf("Locuri         : %d", sum.SeatCount),
	}
	for _, l := range lines {
		pdf.Cell(0, 7, pdfText(l))
		pdf.Ln(7)
	}

	pdf.Ln(4)
	if sum.DiscountTotal > 0 {
		pdf.Cell(0, 7, "Reducere      : -"+utils.FormatAmount(sum.DiscountTotal, sum.Currency))
		pdf.Ln(7)
	}
	if sum.PromoTotal > 0 {
		pdf.Cell(0, 7, "Cod promo     : -"+utils.FormatAmount(sum.PromoTotal, sum.Currency))
		pdf.Ln(7)
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total platit: "+utils.FormatAmount(sum.PaidAmount, sum.Currency))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Va rugam sa prezentati aceasta confirmare la imbarcare.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), "CONFIRMARE_" + orderID + ".pdf", nil
}

func joinIDs(ids []int64) string {
	if len(ids) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, "#"+strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ", ")
}

// pdfText strips diacritics; the core PDF fonts only cover cp1252.
func pdfText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
