package handlers

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"publicweb/internal/apiclient"
	"publicweb/internal/checkout"
	"publicweb/internal/domain"
	"publicweb/internal/http/middleware"
	"publicweb/internal/services"

	"github.com/gin-gonic/gin"
)

// Backend is what the finish page needs from the checkout API.
type Backend interface {
	checkout.StatusFetcher
	checkout.RetryRequester
}

const (
	finishPath  = "/checkout/finish"
	retryPath   = "/checkout/finish/retry"
	receiptPath = "/checkout/finish/receipt"
)

// CheckoutPage serves the server-rendered checkout finish page.
type CheckoutPage struct {
	Backend        Backend
	PendingRefresh time.Duration
	BookingURL     string
}

type finishView struct {
	State          checkout.ViewState
	OrderID        string
	RefreshSeconds int
	ShowRetry      bool
	ShowRestart    bool
	RetryAction    string
	ReceiptURL     string
	BookingURL     string
}

func (h CheckoutPage) newPage(c *gin.Context, rawOrderID string) (*checkout.Page, context.Context) {
	reqID := middleware.GetRequestID(c)
	page := checkout.NewPage(rawOrderID, h.Backend, h.Backend)
	page.RequestID = reqID
	return page, apiclient.WithRequestID(c.Request.Context(), reqID)
}

// GET /checkout/finish?order_id=N
func (h CheckoutPage) Finish(c *gin.Context) {
	page, ctx := h.newPage(c, c.Query("order_id"))
	stop := context.AfterFunc(ctx, page.Close)
	defer stop()

	st := page.Load(ctx)
	if ctx.Err() != nil {
		// client went away; nothing to render
		c.Abort()
		return
	}
	h.render(c, page.OrderID(), st)
}

// POST /checkout/finish/retry (form field order_id)
func (h CheckoutPage) Retry(c *gin.Context) {
	raw := c.PostForm("order_id")
	if raw == "" {
		raw = c.Query("order_id")
	}
	page, ctx := h.newPage(c, raw)
	stop := context.AfterFunc(ctx, page.Close)
	defer stop()

	if page.OrderID() == "" {
		h.render(c, "", checkout.Failed(checkout.MsgMissingOrderID))
		return
	}

	redirect, st := page.Retry(ctx)
	if ctx.Err() != nil {
		c.Abort()
		return
	}
	if redirect != "" {
		if wantsJSON(c) {
			c.JSON(http.StatusOK, gin.H{"form_url": redirect})
			return
		}
		c.Redirect(http.StatusSeeOther, redirect)
		return
	}
	h.render(c, page.OrderID(), st)
}

// GET /checkout/finish/receipt?order_id=N
func (h CheckoutPage) Receipt(c *gin.Context) {
	id, ok := checkout.ParseOrderID(c.Query("order_id"))
	if !ok {
		RespondDomainError(c, domain.ValidationError{Msg: checkout.MsgMissingOrderID})
		return
	}
	reqID := middleware.GetRequestID(c)
	svc := services.ReceiptService{Status: h.Backend, RequestID: reqID}

	pdf, filename, err := svc.Generate(apiclient.WithRequestID(c.Request.Context(), reqID), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (h CheckoutPage) render(c *gin.Context, orderID string, st checkout.ViewState) {
	c.Header("Cache-Control", "no-store")
	if wantsJSON(c) {
		c.JSON(http.StatusOK, st)
		return
	}

	view := finishView{
		State:       st,
		OrderID:     orderID,
		RetryAction: retryPath,
		BookingURL:  h.BookingURL,
	}
	if view.BookingURL == "" {
		view.BookingURL = "/"
	}
	switch st.Kind {
	case checkout.KindPending:
		if st.IsExpired() {
			view.ShowRestart = true
			break
		}
		view.ShowRetry = true
		if secs := int(h.PendingRefresh / time.Second); secs > 0 {
			view.RefreshSeconds = secs
		}
	case checkout.KindError:
		view.ShowRetry = orderID != ""
		view.ShowRestart = orderID == ""
	case checkout.KindPaid:
		view.ReceiptURL = receiptPath + "?" + url.Values{"order_id": {orderID}}.Encode()
	}
	c.HTML(http.StatusOK, "finish.html", view)
}
