package handlers

import (
	"net/http"
	"strconv"

	"github.com/AdinubaEze/chiifykitchen-backend/internal/services"
	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderService services.OrderService
}

func NewOrderHandler(orderService services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req struct {
		AddressID      *uint  `json:"address_id"`
		TableID        *uint  `json:"table_id"`
		PaymentMethod  string `json:"payment_method"`
		DeliveryMethod string `json:"delivery_method"`
		Products       []struct {
			ID       uint `json:"id"`
			Quantity int  `json:"quantity"`
		} `json:"products"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request format.")
		return
	}

	in := services.CreateOrderInput{
		AddressID:      req.AddressID,
		TableID:        req.TableID,
		PaymentMethod:  req.PaymentMethod,
		DeliveryMethod: req.DeliveryMethod,
	}
	for _, p := range req.Products {
		in.Products = append(in.Products, services.OrderLine{ProductID: p.ID, Quantity: p.Quantity})
	}

	order, payment, err := h.orderService.Create(c.Request.Context(), CurrentUser(c), in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, "Order placed successfully.", gin.H{
		"order":   order,
		"payment": payment,
	})
}

func (h *OrderHandler) List(c *gin.Context) {
	in := services.ListOrdersInput{
		Status:  c.Query("status"),
		Search:  c.Query("search"),
		Page:    queryInt(c, "page"),
		PerPage: queryInt(c, "per_page"),
	}
	if v := c.Query("user_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			in.UserID = uint(id)
		}
	}

	orders, total, err := h.orderService.List(c.Request.Context(), CurrentUser(c), in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "Orders retrieved successfully.", gin.H{
		"orders": orders,
		"total":  total,
	})
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	order, err := h.orderService.Get(c.Request.Context(), CurrentUser(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "Order retrieved successfully.", order)
}

// Update is the staff-facing status endpoint. Status moves follow the order
// state machine; address changes are only accepted while the order is pending.
func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req struct {
		Status        *string `json:"status"`
		PaymentStatus *string `json:"payment_status"`
		AddressID     *uint   `json:"address_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request format.")
		return
	}

	order, err := h.orderService.AdminUpdate(c.Request.Context(), CurrentUser(c), id, services.AdminUpdateOrderInput{
		Status:        req.Status,
		PaymentStatus: req.PaymentStatus,
		AddressID:     req.AddressID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "Order updated successfully.", order)
}

func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	order, err := h.orderService.CustomerCancel(c.Request.Context(), CurrentUser(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "Order cancelled successfully.", order)
}
