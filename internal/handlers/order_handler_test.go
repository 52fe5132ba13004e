package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/AdinubaEze/chiifykitchen-backend/internal/models"
	"github.com/AdinubaEze/chiifykitchen-backend/internal/repository"
	"github.com/AdinubaEze/chiifykitchen-backend/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newOrderTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.Category{},
		&models.Product{},
		&models.Table{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.Setting{},
	))

	user := &models.User{
		Firstname: "Ada",
		Lastname:  "Obi",
		Email:     "ada@example.com",
		Password:  "secret",
		Role:      "customer",
	}
	require.NoError(t, db.Create(user).Error)

	settings := services.NewSettingsService(repository.NewSettingRepository(db), nil)
	orderService := services.NewOrderService(
		db,
		repository.NewOrderRepository(db),
		repository.NewPaymentRepository(db),
		repository.NewTableRepository(db),
		repository.NewProductRepository(db),
		repository.NewAddressRepository(db),
		settings,
	)
	handler := NewOrderHandler(orderService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/orders", func(c *gin.Context) {
		c.Set(contextUserKey, user)
	}, handler.Create)
	return router, db
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateOrderAcceptsCartLineIDs(t *testing.T) {
	router, db := newOrderTestRouter(t)

	product := &models.Product{
		Title:  "Jollof Rice",
		Price:  decimal.RequireFromString("10.00"),
		Status: models.ProductStatusActive,
	}
	require.NoError(t, db.Create(product).Error)

	// Cart lines are keyed "id", not "product_id".
	w := postJSON(router, "/api/orders", `{
		"payment_method": "cash",
		"delivery_method": "pickup",
		"products": [{"id": 1, "quantity": 2}]
	}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Order models.Order `json:"order"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "success", resp.Status)
	require.Len(t, resp.Data.Order.Items, 1)
	require.Equal(t, product.ID, resp.Data.Order.Items[0].ProductID)
	require.Equal(t, 2, resp.Data.Order.Items[0].Quantity)
	require.True(t, resp.Data.Order.Total.Equal(decimal.RequireFromString("20.00")))
}

func TestCreateOrderValidationEnvelope(t *testing.T) {
	router, _ := newOrderTestRouter(t)

	w := postJSON(router, "/api/orders", `{
		"payment_method": "cash",
		"delivery_method": "pickup",
		"products": []
	}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp struct {
		Status  string            `json:"status"`
		Message string            `json:"message"`
		Errors  map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "error", resp.Status)
	require.Equal(t, "Validation failed", resp.Message)
	require.Contains(t, resp.Errors, "products")
}
