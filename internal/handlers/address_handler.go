package handlers

import (
	"net/http"
	"strconv"

	"github.com/AdinubaEze/chiifykitchen-backend/internal/services"
	"github.com/gin-gonic/gin"
)

type AddressHandler struct {
	addressService services.AddressService
}

func NewAddressHandler(addressService services.AddressService) *AddressHandler {
	return &AddressHandler{addressService: addressService}
}

type addressRequest struct {
	Label  string `json:"label"`
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Phone  string `json:"phone"`
}

func (r addressRequest) toInput() services.AddressInput {
	return services.AddressInput{
		Label:  r.Label,
		Street: r.Street,
		City:   r.City,
		State:  r.State,
		Phone:  r.Phone,
	}
}

func (h *AddressHandler) List(c *gin.Context) {
	user := CurrentUser(c)
	addresses, err := h.addressService.List(c.Request.Context(), user.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "Addresses retrieved successfully.", addresses)
}

func (h *AddressHandler) Create(c *gin.Context) {
	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request format.")
		return
	}

	user := CurrentUser(c)
	address, err := h.addressService.Create(c.Request.Context(), user.ID, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, "Address created successfully.", address)
}

func (h *AddressHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request format.")
		return
	}

	user := CurrentUser(c)
	address, err := h.addressService.Update(c.Request.Context(), user.ID, id, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "Address updated successfully.", address)
}

func (h *AddressHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	user := CurrentUser(c)
	if err := h.addressService.Delete(c.Request.Context(), user.ID, id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "Address deleted successfully.", nil)
}

func (h *AddressHandler) SetDefault(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	user := CurrentUser(c)
	address, err := h.addressService.SetDefault(c.Request.Context(), user.ID, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "Default address updated.", address)
}

// pathID parses the :id route parameter, replying 400 itself when invalid.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid id parameter.")
		return 0, false
	}
	return uint(id), true
}
