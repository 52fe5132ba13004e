package handlers

import (
	"net/http"

	"github.com/AdinubaEze/chiifykitchen-backend/internal/models"
	"github.com/AdinubaEze/chiifykitchen-backend/internal/services"
	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	settingsService services.SettingsService
}

func NewSettingsHandler(settingsService services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Get is the public settings endpoint. Non-admin callers get a redacted view
// with gateway secret keys stripped.
func (h *SettingsHandler) Get(c *gin.Context) {
	setting, err := h.settingsService.Get(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	user := CurrentUser(c)
	if user == nil || !user.IsAdmin() {
		setting = setting.Redacted()
	}
	respondOK(c, "Settings retrieved successfully.", setting)
}

func (h *SettingsHandler) Update(c *gin.Context) {
	var req struct {
		PaymentGateways *models.PaymentGateways `json:"payment_gateways"`
		TransactionMode *string                 `json:"transaction_mode"`
		CompanyInfo     *models.CompanyInfo     `json:"company_info"`
		GeneralSettings *models.GeneralSettings `json:"general_settings"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request format.")
		return
	}

	setting, err := h.settingsService.Update(c.Request.Context(), services.UpdateSettingsInput{
		PaymentGateways: req.PaymentGateways,
		TransactionMode: req.TransactionMode,
		CompanyInfo:     req.CompanyInfo,
		GeneralSettings: req.GeneralSettings,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "Settings updated successfully.", setting)
}

func (h *SettingsHandler) ToggleGateway(c *gin.Context) {
	gatewayID := c.Param("gateway")
	setting, err := h.settingsService.ToggleGateway(c.Request.Context(), gatewayID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "Gateway updated successfully.", setting)
}
