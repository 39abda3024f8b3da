package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/barbershop-api/internal/domain/payment"
	"github.com/BruksfildServices01/barbershop-api/internal/httperr"
	"github.com/BruksfildServices01/barbershop-api/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-api/internal/usecase/payment"
)

const maxWebhookBytes = 64 << 10

// ======================================================
// HANDLER
// ======================================================

type PaymentHandler struct {
	create   *payment.CreatePayment
	list     *payment.ListPayments
	sales    *payment.SalesTotal
	checkout *payment.Checkout
	webhook  domain.WebhookParser
	log      *zap.Logger
}

// NewPaymentHandler accepts a nil webhook parser; the webhook route then answers 404.
func NewPaymentHandler(
	create *payment.CreatePayment,
	list *payment.ListPayments,
	sales *payment.SalesTotal,
	checkout *payment.Checkout,
	webhook domain.WebhookParser,
	log *zap.Logger,
) *PaymentHandler {
	return &PaymentHandler{
		create:   create,
		list:     list,
		sales:    sales,
		checkout: checkout,
		webhook:  webhook,
		log:      log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type DirectCheckoutRequest struct {
	ServiceID uint `json:"service_id"`
}

type ConfirmCheckoutRequest struct {
	SessionID string `json:"session_id"`
}

// ======================================================
// MANUAL RECORDING
// ======================================================

func (h *PaymentHandler) Create(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}

	var req payment.CreatePaymentInput
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.create.Execute(c.Request.Context(), caller, req)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Created(c, p)
}

// ======================================================
// LISTING
// ======================================================

func (h *PaymentHandler) Mine(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}

	list, err := h.list.Mine(c.Request.Context(), caller)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, list)
}

func (h *PaymentHandler) All(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}

	list, err := h.list.All(c.Request.Context(), caller, payment.ListPaymentsInput{
		Status: c.Query("status"),
		Method: c.Query("method"),
		Date:   c.Query("date"),
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, list)
}

func (h *PaymentHandler) Recent(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(payment.DefaultRecentLimit)))

	list, err := h.list.Recent(c.Request.Context(), caller, limit)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, list)
}

func (h *PaymentHandler) SalesToday(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}

	sum, err := h.sales.Execute(c.Request.Context(), caller, c.Query("date"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, sum)
}

// ======================================================
// CHECKOUT
// ======================================================

func (h *PaymentHandler) CheckoutAppointment(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	session, err := h.checkout.StartAppointmentCheckout(c.Request.Context(), caller, id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.Created(c, session)
}

func (h *PaymentHandler) CheckoutDirect(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}

	var req DirectCheckoutRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.ServiceID == 0 {
		httperr.BadRequest(c, "missing_fields", "service_id is required.")
		return
	}

	session, err := h.checkout.StartDirectCheckout(c.Request.Context(), caller, req.ServiceID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.Created(c, session)
}

func (h *PaymentHandler) ConfirmCheckout(c *gin.Context) {
	if _, ok := currentCaller(c); !ok {
		return
	}

	var req ConfirmCheckoutRequest
	if !bindJSON(c, &req) {
		return
	}

	p, created, err := h.checkout.ConfirmCheckout(c.Request.Context(), req.SessionID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, gin.H{"payment": p, "created": created})
}

// StripeWebhook records completed checkouts pushed by the gateway. It always
// answers 2xx for verified events so the gateway stops retrying.
func (h *PaymentHandler) StripeWebhook(c *gin.Context) {
	if h.webhook == nil {
		httperr.NotFound(c, "webhook_disabled", "Webhook is not configured.")
		return
	}

	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBytes))
	if err != nil {
		httperr.BadRequest(c, "invalid_payload", "Could not read payload.")
		return
	}

	session, err := h.webhook.ParseWebhook(payload, c.GetHeader("Stripe-Signature"))
	if errors.Is(err, domain.ErrIgnoredEvent) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "received": true})
		return
	}
	if err != nil {
		h.log.Warn("webhook rejected", zap.Error(err))
		httperr.BadRequest(c, "invalid_signature", "Webhook signature verification failed.")
		return
	}

	p, created, err := h.checkout.RecordSession(c.Request.Context(), session)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	h.log.Info("webhook payment recorded",
		zap.String("session_id", session.ID),
		zap.Uint("payment_id", p.ID),
		zap.Bool("created", created),
	)
	c.JSON(http.StatusOK, gin.H{"ok": true, "received": true})
}
