package handlers

import (
	"net/http"

	"github.com/AdinubaEze/chiifykitchen-backend/internal/repository"
	"github.com/AdinubaEze/chiifykitchen-backend/internal/services"
	"github.com/gin-gonic/gin"
)

type TableHandler struct {
	tableService services.TableService
}

func NewTableHandler(tableService services.TableService) *TableHandler {
	return &TableHandler{tableService: tableService}
}

type tableRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Capacity    int    `json:"capacity"`
	Status      string `json:"status"`
	Location    string `json:"location"`
}

func (r tableRequest) toInput() services.TableInput {
	return services.TableInput{
		Name:        r.Name,
		Description: r.Description,
		Capacity:    r.Capacity,
		Status:      r.Status,
		Location:    r.Location,
	}
}

func (h *TableHandler) List(c *gin.Context) {
	filter := repository.TableFilter{
		Status:      c.Query("status"),
		MinCapacity: queryInt(c, "min_capacity"),
		Search:      c.Query("search"),
	}
	tables, err := h.tableService.List(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "Tables retrieved successfully.", tables)
}

func (h *TableHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	table, err := h.tableService.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "Table retrieved successfully.", table)
}

func (h *TableHandler) Create(c *gin.Context) {
	var req tableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request format.")
		return
	}
	table, err := h.tableService.Create(c.Request.Context(), req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, "Table created successfully.", table)
}

func (h *TableHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req tableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request format.")
		return
	}
	table, err := h.tableService.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "Table updated successfully.", table)
}

func (h *TableHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.tableService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "Table deleted successfully.", nil)
}
