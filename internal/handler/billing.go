package handler

import (
	"io"
	"net/http"

	"taglayer/internal/middleware"
	"taglayer/internal/model"
	"taglayer/internal/service"

	"github.com/gin-gonic/gin"
)

// maxWebhookBody caps the webhook payload read to keep a hostile
// sender from exhausting memory.
const maxWebhookBody = 1 << 16

// BillingHandler handles checkout and billing provider webhooks
type BillingHandler struct {
	service *service.BillingService
}

// NewBillingHandler creates a new BillingHandler
func NewBillingHandler(svc *service.BillingService) *BillingHandler {
	return &BillingHandler{service: svc}
}

// Checkout starts a hosted checkout session for a plan upgrade
// @Router /billing/checkout [post]
func (h *BillingHandler) Checkout(c *gin.Context) {
	session := middleware.SessionFrom(c)

	var req model.CheckoutBody
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBinding(c, err)
		return
	}

	url, err := h.service.CreateCheckoutSession(c.Request.Context(), session, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.NewSuccessResponse("Checkout session created", gin.H{"url": url}))
}

// Webhook applies a billing provider event. The route is
// unauthenticated; the payload signature is the credential.
// @Router /billing/webhook [post]
func (h *BillingHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("Could not read payload", ""))
		return
	}

	if err := h.service.HandleWebhook(c.Request.Context(), payload, c.GetHeader("Stripe-Signature")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.NewSuccessResponse("Event processed", nil))
}
