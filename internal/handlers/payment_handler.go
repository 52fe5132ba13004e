package handlers

import (
	"net/http"
	"time"

	"github.com/AdinubaEze/chiifykitchen-backend/internal/repository"
	"github.com/AdinubaEze/chiifykitchen-backend/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type PaymentHandler struct {
	paymentService services.PaymentService
}

func NewPaymentHandler(paymentService services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

func (h *PaymentHandler) Initiate(c *gin.Context) {
	var req struct {
		OrderID       uint            `json:"order_id"`
		Amount        decimal.Decimal `json:"amount"`
		PaymentMethod string          `json:"payment_method"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request format.")
		return
	}

	payment, paymentURL, err := h.paymentService.Initiate(c.Request.Context(), services.InitiatePaymentInput{
		OrderID:       req.OrderID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	data := gin.H{"payment": payment}
	if paymentURL != "" {
		data["payment_url"] = paymentURL
	}
	respondOK(c, "Payment initiated successfully.", data)
}

func (h *PaymentHandler) Verify(c *gin.Context) {
	var req struct {
		OrderID   uint   `json:"order_id"`
		Reference string `json:"reference"`
		Gateway   string `json:"gateway"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request format.")
		return
	}

	verified, err := h.paymentService.Verify(c.Request.Context(), services.VerifyPaymentInput{
		OrderID:   req.OrderID,
		Reference: req.Reference,
		Gateway:   req.Gateway,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !verified {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "failed",
			"message": "Payment verification failed.",
		})
		return
	}
	respondOK(c, "Payment verified successfully.", nil)
}

func (h *PaymentHandler) List(c *gin.Context) {
	filter := repository.PaymentFilter{
		Search:  c.Query("search"),
		Method:  c.Query("method"),
		Status:  c.Query("status"),
		Page:    queryInt(c, "page"),
		PerPage: queryInt(c, "per_page"),
	}
	if v := c.Query("from"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filter.From = &t
		}
	}
	if v := c.Query("to"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			end := t.Add(24*time.Hour - time.Nanosecond)
			filter.To = &end
		}
	}

	payments, total, err := h.paymentService.List(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "Payments retrieved successfully.", gin.H{
		"payments": payments,
		"total":    total,
	})
}

func (h *PaymentHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	payment, err := h.paymentService.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "Payment retrieved successfully.", payment)
}

func (h *PaymentHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req struct {
		Status    string `json:"status"`
		Reference string `json:"reference"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request format.")
		return
	}

	payment, err := h.paymentService.AdminUpdate(c.Request.Context(), id, req.Status, req.Reference)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "Payment updated successfully.", payment)
}
