package services

import (
	"context"
	"testing"

	"github.com/AdinubaEze/chiifykitchen-backend/internal/models"
	"github.com/AdinubaEze/chiifykitchen-backend/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
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
	return db
}

func newTestOrderService(db *gorm.DB) OrderService {
	settings := NewSettingsService(repository.NewSettingRepository(db), nil)
	return NewOrderService(
		db,
		repository.NewOrderRepository(db),
		repository.NewPaymentRepository(db),
		repository.NewTableRepository(db),
		repository.NewProductRepository(db),
		repository.NewAddressRepository(db),
		settings,
	)
}

func seedUser(t *testing.T, db *gorm.DB, role string) *models.User {
	t.Helper()
	user := &models.User{
		Firstname: "Test",
		Lastname:  "User",
		Email:     role + "-" + t.Name() + "@example.com",
		Password:  "secret",
		Role:      role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedProduct(t *testing.T, db *gorm.DB, price string, discounted *string) *models.Product {
	t.Helper()
	product := &models.Product{
		Title:      "Jollof Rice",
		Price:      decimal.RequireFromString(price),
		Status:     models.ProductStatusActive,
		CategoryID: 1,
	}
	if discounted != nil {
		d := decimal.RequireFromString(*discounted)
		product.DiscountedPrice = &d
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func seedAddress(t *testing.T, db *gorm.DB, userID uint) *models.Address {
	t.Helper()
	address := &models.Address{
		UserID: userID,
		Street: "12 Broad Street",
		City:   "Lagos",
	}
	require.NoError(t, db.Create(address).Error)
	return address
}

func seedTable(t *testing.T, db *gorm.DB) *models.Table {
	t.Helper()
	table := &models.Table{
		Name:     "T1",
		Capacity: 4,
		Status:   models.TableAvailable,
	}
	require.NoError(t, db.Create(table).Error)
	return table
}

func setDeliveryFee(t *testing.T, db *gorm.DB, fee string) {
	t.Helper()
	repo := repository.NewSettingRepository(db)
	setting, err := repo.Get(context.Background())
	require.NoError(t, err)
	setting.GeneralSettings.DeliveryFee = decimal.RequireFromString(fee)
	require.NoError(t, repo.Save(context.Background(), setting))
}

func strPtr(s string) *string { return &s }

func TestCreateOrderPricesCartFromCatalog(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestOrderService(db)
	ctx := context.Background()

	user := seedUser(t, db, "customer")
	address := seedAddress(t, db, user.ID)
	regular := seedProduct(t, db, "10.00", nil)
	discounted := seedProduct(t, db, "8.00", strPtr("5.00"))
	setDeliveryFee(t, db, "2.00")

	order, payment, err := svc.Create(ctx, user, CreateOrderInput{
		AddressID:      &address.ID,
		PaymentMethod:  "paystack",
		DeliveryMethod: "delivery",
		Products: []OrderLine{
			{ProductID: regular.ID, Quantity: 2},
			{ProductID: discounted.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	// 2 x 10.00 plus 1 x 5.00 discounted, fee 2.00 on top.
	require.True(t, order.Subtotal.Equal(decimal.RequireFromString("25.00")), "subtotal %s", order.Subtotal)
	require.True(t, order.DeliveryFee.Equal(decimal.RequireFromString("2.00")))
	require.True(t, order.Total.Equal(decimal.RequireFromString("27.00")), "total %s", order.Total)

	require.Equal(t, models.OrderPending, order.Status)
	require.Equal(t, models.PaymentUnpaid, order.PaymentStatus)
	require.Regexp(t, `^ORD-[0-9A-F]{8}$`, order.Code)
	require.Len(t, order.Items, 2)

	require.NotNil(t, payment)
	require.Equal(t, order.ID, payment.OrderID)
	require.Equal(t, models.PaymentRecPending, payment.Status)
	require.True(t, payment.Amount.Equal(order.Total))
	require.Regexp(t, `^PAY-[0-9A-F]{10}$`, payment.Code)
}

func TestCreateOrderSnapshotsPrices(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestOrderService(db)
	ctx := context.Background()

	user := seedUser(t, db, "customer")
	product := seedProduct(t, db, "10.00", nil)

	order, _, err := svc.Create(ctx, user, CreateOrderInput{
		PaymentMethod:  "cash",
		DeliveryMethod: "pickup",
		Products:       []OrderLine{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	// Catalog changes after the fact must not alter the stored lines.
	product.Price = decimal.RequireFromString("99.00")
	require.NoError(t, db.Save(product).Error)

	reloaded, err := svc.Get(ctx, user, order.ID)
	require.NoError(t, err)
	require.True(t, reloaded.Items[0].Price.Equal(decimal.RequireFromString("10.00")))
	require.True(t, reloaded.Total.Equal(decimal.RequireFromString("10.00")))
}

func TestCreateOrderCashOnlyForDineInOrPickup(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestOrderService(db)
	ctx := context.Background()

	user := seedUser(t, db, "customer")
	address := seedAddress(t, db, user.ID)
	product := seedProduct(t, db, "10.00", nil)

	_, _, err := svc.Create(ctx, user, CreateOrderInput{
		AddressID:      &address.ID,
		PaymentMethod:  "cash",
		DeliveryMethod: "delivery",
		Products:       []OrderLine{{ProductID: product.ID, Quantity: 1}},
	})

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Contains(t, verrs, "payment_method")
}

func TestCreateOrderRequiresAddressForDelivery(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestOrderService(db)
	ctx := context.Background()

	user := seedUser(t, db, "customer")
	product := seedProduct(t, db, "10.00", nil)

	_, _, err := svc.Create(ctx, user, CreateOrderInput{
		PaymentMethod:  "paystack",
		DeliveryMethod: "courier",
		Products:       []OrderLine{{ProductID: product.ID, Quantity: 1}},
	})

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Contains(t, verrs, "address_id")
}

func TestCreateOrderRejectsForeignAddress(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestOrderService(db)
	ctx := context.Background()

	user := seedUser(t, db, "customer")
	other := seedUser(t, db, "staff")
	foreign := seedAddress(t, db, other.ID)
	product := seedProduct(t, db, "10.00", nil)

	_, _, err := svc.Create(ctx, user, CreateOrderInput{
		AddressID:      &foreign.ID,
		PaymentMethod:  "paystack",
		DeliveryMethod: "delivery",
		Products:       []OrderLine{{ProductID: product.ID, Quantity: 1}},
	})

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Contains(t, verrs, "address_id")
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestOrderService(db)
	ctx := context.Background()

	user := seedUser(t, db, "customer")

	_, _, err := svc.Create(ctx, user, CreateOrderInput{
		PaymentMethod:  "paystack",
		DeliveryMethod: "pickup",
		Products:       []OrderLine{{ProductID: 999, Quantity: 1}},
	})

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Contains(t, verrs, "products")
}

func TestCreateDineInOrderOccupiesTable(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestOrderService(db)
	ctx := context.Background()

	user := seedUser(t, db, "customer")
	product := seedProduct(t, db, "10.00", nil)
	table := seedTable(t, db)

	order, _, err := svc.Create(ctx, user, CreateOrderInput{
		TableID:        &table.ID,
		PaymentMethod:  "cash",
		DeliveryMethod: "dine-in",
		Products:       []OrderLine{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	// Cash orders start pending rather than unpaid.
	require.Equal(t, models.PaymentPending, order.PaymentStatus)
	require.True(t, order.DeliveryFee.IsZero())

	var got models.Table
	require.NoError(t, db.First(&got, table.ID).Error)
	require.Equal(t, models.TableOccupied, got.Status)
}

func TestCustomerCancelPendingOrder(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestOrderService(db)
	ctx := context.Background()

	user := seedUser(t, db, "customer")
	product := seedProduct(t, db, "10.00", nil)
	table := seedTable(t, db)

	order, _, err := svc.Create(ctx, user, CreateOrderInput{
		TableID:        &table.ID,
		PaymentMethod:  "cash",
		DeliveryMethod: "dine-in",
		Products:       []OrderLine{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	cancelled, err := svc.CustomerCancel(ctx, user, order.ID)
	require.NoError(t, err)

	require.Equal(t, models.OrderCancelled, cancelled.Status)
	require.True(t, cancelled.CancelledByCustomer)
	require.NotNil(t, cancelled.CustomerCancelledAt)
	// No money was collected, so the order keeps its payment status, but the
	// payment record itself is always closed out as refunded.
	require.Equal(t, models.PaymentPending, cancelled.PaymentStatus)
	require.Equal(t, models.PaymentRecRefunded, cancelled.Payment.Status)

	var got models.Table
	require.NoError(t, db.First(&got, table.ID).Error)
	require.Equal(t, models.TableAvailable, got.Status)
}

func TestCustomerCancelRefundsPaidOrder(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestOrderService(db)
	ctx := context.Background()

	user := seedUser(t, db, "customer")
	admin := seedUser(t, db, "admin")
	product := seedProduct(t, db, "10.00", nil)

	order, _, err := svc.Create(ctx, user, CreateOrderInput{
		PaymentMethod:  "paystack",
		DeliveryMethod: "pickup",
		Products:       []OrderLine{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = svc.AdminUpdate(ctx, admin, order.ID, AdminUpdateOrderInput{
		PaymentStatus: strPtr("paid"),
	})
	require.NoError(t, err)

	cancelled, err := svc.CustomerCancel(ctx, user, order.ID)
	require.NoError(t, err)
	require.Equal(t, models.PaymentRefunded, cancelled.PaymentStatus)
	require.Equal(t, models.PaymentRecRefunded, cancelled.Payment.Status)
}

func TestCustomerCancelRejectedOnceProcessing(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestOrderService(db)
	ctx := context.Background()

	user := seedUser(t, db, "customer")
	admin := seedUser(t, db, "admin")
	product := seedProduct(t, db, "10.00", nil)

	order, _, err := svc.Create(ctx, user, CreateOrderInput{
		PaymentMethod:  "paystack",
		DeliveryMethod: "pickup",
		Products:       []OrderLine{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = svc.AdminUpdate(ctx, admin, order.ID, AdminUpdateOrderInput{
		Status: strPtr("processing"),
	})
	require.NoError(t, err)

	_, err = svc.CustomerCancel(ctx, user, order.ID)
	require.ErrorIs(t, err, ErrOrderNotPending)

	got, err := svc.Get(ctx, user, order.ID)
	require.NoError(t, err)
	require.Equal(t, models.OrderProcessing, got.Status)
	require.False(t, got.CancelledByCustomer)
}

func TestCustomerCancelOwnershipEnforced(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestOrderService(db)
	ctx := context.Background()

	owner := seedUser(t, db, "customer")
	intruder := seedUser(t, db, "staff")
	product := seedProduct(t, db, "10.00", nil)

	order, _, err := svc.Create(ctx, owner, CreateOrderInput{
		PaymentMethod:  "paystack",
		DeliveryMethod: "pickup",
		Products:       []OrderLine{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = svc.CustomerCancel(ctx, intruder, order.ID)
	require.ErrorIs(t, err, ErrNotOrderOwner)
}

func TestAdminUpdateRejectsIllegalTransition(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestOrderService(db)
	ctx := context.Background()

	user := seedUser(t, db, "customer")
	admin := seedUser(t, db, "admin")
	product := seedProduct(t, db, "10.00", nil)

	order, _, err := svc.Create(ctx, user, CreateOrderInput{
		PaymentMethod:  "paystack",
		DeliveryMethod: "pickup",
		Products:       []OrderLine{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	// Pending orders cannot jump straight to delivered.
	_, err = svc.AdminUpdate(ctx, admin, order.ID, AdminUpdateOrderInput{
		Status: strPtr("delivered"),
	})
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestAdminDeliveredMarksUnpaidOrderPaid(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestOrderService(db)
	ctx := context.Background()

	user := seedUser(t, db, "customer")
	admin := seedUser(t, db, "admin")
	product := seedProduct(t, db, "10.00", nil)

	order, _, err := svc.Create(ctx, user, CreateOrderInput{
		PaymentMethod:  "paystack",
		DeliveryMethod: "pickup",
		Products:       []OrderLine{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = svc.AdminUpdate(ctx, admin, order.ID, AdminUpdateOrderInput{Status: strPtr("processing")})
	require.NoError(t, err)

	delivered, err := svc.AdminUpdate(ctx, admin, order.ID, AdminUpdateOrderInput{Status: strPtr("delivered")})
	require.NoError(t, err)

	require.Equal(t, models.OrderDelivered, delivered.Status)
	require.Equal(t, models.PaymentPaid, delivered.PaymentStatus)
	require.Equal(t, models.PaymentRecSuccessful, delivered.Payment.Status)
	require.NotNil(t, delivered.Payment.VerifiedAt)
	require.Equal(t, admin.ID, *delivered.AdminID)
}

func TestAdminCompletedCashOrderCollectsPayment(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestOrderService(db)
	ctx := context.Background()

	user := seedUser(t, db, "customer")
	admin := seedUser(t, db, "admin")
	product := seedProduct(t, db, "10.00", nil)
	table := seedTable(t, db)

	order, _, err := svc.Create(ctx, user, CreateOrderInput{
		TableID:        &table.ID,
		PaymentMethod:  "cash",
		DeliveryMethod: "dine-in",
		Products:       []OrderLine{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = svc.AdminUpdate(ctx, admin, order.ID, AdminUpdateOrderInput{Status: strPtr("processing")})
	require.NoError(t, err)

	completed, err := svc.AdminUpdate(ctx, admin, order.ID, AdminUpdateOrderInput{Status: strPtr("completed")})
	require.NoError(t, err)

	require.Equal(t, models.PaymentPaid, completed.PaymentStatus)

	var got models.Table
	require.NoError(t, db.First(&got, table.ID).Error)
	require.Equal(t, models.TableAvailable, got.Status)
}

func TestAdminCancelRefundsPaidOrder(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestOrderService(db)
	ctx := context.Background()

	user := seedUser(t, db, "customer")
	admin := seedUser(t, db, "admin")
	product := seedProduct(t, db, "10.00", nil)

	order, _, err := svc.Create(ctx, user, CreateOrderInput{
		PaymentMethod:  "paystack",
		DeliveryMethod: "pickup",
		Products:       []OrderLine{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = svc.AdminUpdate(ctx, admin, order.ID, AdminUpdateOrderInput{PaymentStatus: strPtr("paid")})
	require.NoError(t, err)

	cancelled, err := svc.AdminUpdate(ctx, admin, order.ID, AdminUpdateOrderInput{Status: strPtr("cancelled")})
	require.NoError(t, err)

	require.Equal(t, models.OrderCancelled, cancelled.Status)
	require.Equal(t, models.PaymentRefunded, cancelled.PaymentStatus)
	require.False(t, cancelled.CancelledByCustomer)
	require.Equal(t, models.PaymentRecRefunded, cancelled.Payment.Status)
}

func TestAdminAddressLockedOnceProcessing(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestOrderService(db)
	ctx := context.Background()

	user := seedUser(t, db, "customer")
	admin := seedUser(t, db, "admin")
	product := seedProduct(t, db, "10.00", nil)
	address := seedAddress(t, db, user.ID)
	other := seedAddress(t, db, user.ID)

	order, _, err := svc.Create(ctx, user, CreateOrderInput{
		AddressID:      &address.ID,
		PaymentMethod:  "paystack",
		DeliveryMethod: "delivery",
		Products:       []OrderLine{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = svc.AdminUpdate(ctx, admin, order.ID, AdminUpdateOrderInput{Status: strPtr("processing")})
	require.NoError(t, err)

	_, err = svc.AdminUpdate(ctx, admin, order.ID, AdminUpdateOrderInput{AddressID: &other.ID})
	require.ErrorIs(t, err, ErrAddressLocked)
}

func TestListScopesCustomersToOwnOrders(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestOrderService(db)
	ctx := context.Background()

	alice := seedUser(t, db, "customer")
	bob := seedUser(t, db, "staff")
	admin := seedUser(t, db, "admin")
	product := seedProduct(t, db, "10.00", nil)

	for _, u := range []*models.User{alice, bob} {
		_, _, err := svc.Create(ctx, u, CreateOrderInput{
			PaymentMethod:  "paystack",
			DeliveryMethod: "pickup",
			Products:       []OrderLine{{ProductID: product.ID, Quantity: 1}},
		})
		require.NoError(t, err)
	}

	orders, total, err := svc.List(ctx, alice, ListOrdersInput{})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, alice.ID, orders[0].UserID)

	_, _, err = svc.List(ctx, alice, ListOrdersInput{UserID: bob.ID})
	require.ErrorIs(t, err, ErrNotOrderOwner)

	_, total, err = svc.List(ctx, admin, ListOrdersInput{})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
}

func TestGetOrderOwnership(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestOrderService(db)
	ctx := context.Background()

	owner := seedUser(t, db, "customer")
	stranger := seedUser(t, db, "staff")
	admin := seedUser(t, db, "admin")
	product := seedProduct(t, db, "10.00", nil)

	order, _, err := svc.Create(ctx, owner, CreateOrderInput{
		PaymentMethod:  "paystack",
		DeliveryMethod: "pickup",
		Products:       []OrderLine{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = svc.Get(ctx, stranger, order.ID)
	require.ErrorIs(t, err, ErrNotOrderOwner)

	got, err := svc.Get(ctx, admin, order.ID)
	require.NoError(t, err)
	require.Equal(t, order.ID, got.ID)
}
