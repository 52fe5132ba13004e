package services

import (
	"context"
	"testing"

	"github.com/AdinubaEze/chiifykitchen-backend/internal/models"
	"github.com/AdinubaEze/chiifykitchen-backend/internal/repository"
	"github.com/AdinubaEze/chiifykitchen-backend/pkg/gateway"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakePaystack struct {
	verifyResult *gateway.VerifyResult
	verifyErr    error
	initResult   *gateway.InitResult
	initErr      error
	gotSecretKey string
	gotReference string
}

func (f *fakePaystack) VerifyTransaction(ctx context.Context, secretKey, reference string) (*gateway.VerifyResult, error) {
	f.gotSecretKey = secretKey
	f.gotReference = reference
	return f.verifyResult, f.verifyErr
}

func (f *fakePaystack) InitializeTransaction(ctx context.Context, secretKey, email string, amount decimal.Decimal) (*gateway.InitResult, error) {
	f.gotSecretKey = secretKey
	return f.initResult, f.initErr
}

type fakeFlutterwave struct {
	verifyResult *gateway.VerifyResult
	verifyErr    error
}

func (f *fakeFlutterwave) VerifyTransaction(ctx context.Context, secretKey, reference string) (*gateway.VerifyResult, error) {
	return f.verifyResult, f.verifyErr
}

func (f *fakeFlutterwave) CreatePaymentLink(ctx context.Context, secretKey, txRef, email, currency string, amount decimal.Decimal) (*gateway.InitResult, error) {
	return &gateway.InitResult{PaymentURL: "https://flutterwave.test/pay"}, nil
}

func newTestPaymentService(db *gorm.DB, ps *fakePaystack, fw *fakeFlutterwave) PaymentService {
	settings := NewSettingsService(repository.NewSettingRepository(db), nil)
	return NewPaymentService(
		db,
		repository.NewPaymentRepository(db),
		repository.NewOrderRepository(db),
		settings,
		ps,
		fw,
	)
}

func enablePaystack(t *testing.T, db *gorm.DB, secretTestKey string) {
	t.Helper()
	repo := repository.NewSettingRepository(db)
	setting, err := repo.Get(context.Background())
	require.NoError(t, err)
	gw, err := setting.Gateway(models.PaymentGatewayPaystack)
	require.NoError(t, err)
	gw.Enabled = true
	gw.SecretTestKey = secretTestKey
	require.NoError(t, repo.Save(context.Background(), setting))
}

// placeOrder creates a pickup order for a single 10.00 product.
func placeOrder(t *testing.T, db *gorm.DB, paymentMethod string) (*models.Order, *models.Payment) {
	t.Helper()
	svc := newTestOrderService(db)
	user := seedUser(t, db, "customer")
	product := seedProduct(t, db, "10.00", nil)

	order, payment, err := svc.Create(context.Background(), user, CreateOrderInput{
		PaymentMethod:  paymentMethod,
		DeliveryMethod: "pickup",
		Products:       []OrderLine{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	return order, payment
}

func TestInitiateRejectsAmountMismatch(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPaymentService(db, &fakePaystack{}, &fakeFlutterwave{})
	order, _ := placeOrder(t, db, "paystack")

	_, _, err := svc.Initiate(context.Background(), InitiatePaymentInput{
		OrderID:       order.ID,
		Amount:        decimal.RequireFromString("12.00"),
		PaymentMethod: "paystack",
	})
	require.ErrorIs(t, err, ErrAmountMismatch)
}

func TestInitiateToleratesRoundingDifference(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPaymentService(db, &fakePaystack{}, &fakeFlutterwave{})
	order, stub := placeOrder(t, db, "cash")

	payment, _, err := svc.Initiate(context.Background(), InitiatePaymentInput{
		OrderID:       order.ID,
		Amount:        decimal.RequireFromString("10.01"),
		PaymentMethod: "cash",
	})
	require.NoError(t, err)
	// The stub created with the order is reused, not duplicated.
	require.Equal(t, stub.ID, payment.ID)

	var count int64
	require.NoError(t, db.Model(&models.Payment{}).Where("order_id = ?", order.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestInitiatePaystackReturnsCheckoutURL(t *testing.T) {
	db := setupTestDB(t)
	ps := &fakePaystack{initResult: &gateway.InitResult{
		PaymentURL: "https://checkout.paystack.test/abc",
		Reference:  "ps-ref-1",
	}}
	svc := newTestPaymentService(db, ps, &fakeFlutterwave{})
	order, _ := placeOrder(t, db, "paystack")
	enablePaystack(t, db, "sk_test_abc")

	payment, url, err := svc.Initiate(context.Background(), InitiatePaymentInput{
		OrderID:       order.ID,
		Amount:        order.Total,
		PaymentMethod: "paystack",
	})
	require.NoError(t, err)
	require.Equal(t, "https://checkout.paystack.test/abc", url)
	require.Equal(t, "ps-ref-1", payment.Reference)
	require.Equal(t, "sk_test_abc", ps.gotSecretKey)
}

func TestInitiateDisabledGatewayFails(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPaymentService(db, &fakePaystack{}, &fakeFlutterwave{})
	order, _ := placeOrder(t, db, "paystack")

	_, _, err := svc.Initiate(context.Background(), InitiatePaymentInput{
		OrderID:       order.ID,
		Amount:        order.Total,
		PaymentMethod: "paystack",
	})
	require.ErrorIs(t, err, ErrGatewayInitFailed)
}

func TestVerifyCashMarksOrderPaid(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPaymentService(db, &fakePaystack{}, &fakeFlutterwave{})
	order, _ := placeOrder(t, db, "cash")

	verified, err := svc.Verify(context.Background(), VerifyPaymentInput{
		OrderID: order.ID,
		Gateway: "cash",
	})
	require.NoError(t, err)
	require.True(t, verified)

	var got models.Order
	require.NoError(t, db.First(&got, order.ID).Error)
	require.Equal(t, models.PaymentPaid, got.PaymentStatus)
	require.NotNil(t, got.PaymentVerifiedAt)

	var payment models.Payment
	require.NoError(t, db.Where("order_id = ?", order.ID).First(&payment).Error)
	require.Equal(t, models.PaymentRecSuccessful, payment.Status)
	require.NotNil(t, payment.VerifiedAt)
}

func TestVerifyPaystackSuccess(t *testing.T) {
	db := setupTestDB(t)
	ps := &fakePaystack{verifyResult: &gateway.VerifyResult{
		Succeeded: true,
		Reference: "ps-ref-9",
		Amount:    decimal.RequireFromString("10.00"),
		Currency:  "NGN",
	}}
	svc := newTestPaymentService(db, ps, &fakeFlutterwave{})
	order, _ := placeOrder(t, db, "paystack")
	enablePaystack(t, db, "sk_test_abc")

	verified, err := svc.Verify(context.Background(), VerifyPaymentInput{
		OrderID:   order.ID,
		Reference: "ps-ref-9",
		Gateway:   "paystack",
	})
	require.NoError(t, err)
	require.True(t, verified)
	require.Equal(t, "ps-ref-9", ps.gotReference)

	var got models.Order
	require.NoError(t, db.First(&got, order.ID).Error)
	require.Equal(t, models.PaymentPaid, got.PaymentStatus)

	var payment models.Payment
	require.NoError(t, db.Where("order_id = ?", order.ID).First(&payment).Error)
	require.Equal(t, models.PaymentRecSuccessful, payment.Status)
	require.Equal(t, "ps-ref-9", payment.Reference)
}

func TestVerifyShortPaymentNeverMarksPaid(t *testing.T) {
	db := setupTestDB(t)
	// Gateway says success but only 5.00 of a 10.00 order was paid.
	ps := &fakePaystack{verifyResult: &gateway.VerifyResult{
		Succeeded: true,
		Amount:    decimal.RequireFromString("5.00"),
	}}
	svc := newTestPaymentService(db, ps, &fakeFlutterwave{})
	order, _ := placeOrder(t, db, "paystack")
	enablePaystack(t, db, "sk_test_abc")

	verified, err := svc.Verify(context.Background(), VerifyPaymentInput{
		OrderID:   order.ID,
		Reference: "ps-ref-short",
		Gateway:   "paystack",
	})
	require.NoError(t, err)
	require.False(t, verified)

	var got models.Order
	require.NoError(t, db.First(&got, order.ID).Error)
	require.Equal(t, models.PaymentFailed, got.PaymentStatus)
	require.Nil(t, got.PaymentVerifiedAt)

	var payment models.Payment
	require.NoError(t, db.Where("order_id = ?", order.ID).First(&payment).Error)
	require.Equal(t, models.PaymentRecFailed, payment.Status)
}

func TestVerifyDisabledGatewayFails(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPaymentService(db, &fakePaystack{}, &fakeFlutterwave{})
	order, _ := placeOrder(t, db, "paystack")

	verified, err := svc.Verify(context.Background(), VerifyPaymentInput{
		OrderID:   order.ID,
		Reference: "ref",
		Gateway:   "paystack",
	})
	require.NoError(t, err)
	require.False(t, verified)

	var got models.Order
	require.NoError(t, db.First(&got, order.ID).Error)
	require.Equal(t, models.PaymentFailed, got.PaymentStatus)
}

func TestVerifyUnknownGatewayRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPaymentService(db, &fakePaystack{}, &fakeFlutterwave{})
	order, _ := placeOrder(t, db, "paystack")

	_, err := svc.Verify(context.Background(), VerifyPaymentInput{
		OrderID: order.ID,
		Gateway: "stripe",
	})
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Contains(t, verrs, "gateway")
}

func TestAdminUpdateReconcilesOrderState(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPaymentService(db, &fakePaystack{}, &fakeFlutterwave{})
	order, stub := placeOrder(t, db, "paystack")

	payment, err := svc.AdminUpdate(context.Background(), stub.ID, "successful", "manual-ref")
	require.NoError(t, err)
	require.Equal(t, models.PaymentRecSuccessful, payment.Status)
	require.Equal(t, "manual-ref", payment.Reference)
	require.NotNil(t, payment.VerifiedAt)

	var got models.Order
	require.NoError(t, db.First(&got, order.ID).Error)
	require.Equal(t, models.PaymentPaid, got.PaymentStatus)
	require.Equal(t, models.OrderProcessing, got.Status)

	// A refund puts the order out of circulation.
	_, err = svc.AdminUpdate(context.Background(), stub.ID, "refunded", "")
	require.NoError(t, err)
	require.NoError(t, db.First(&got, order.ID).Error)
	require.Equal(t, models.PaymentRefunded, got.PaymentStatus)
	require.Equal(t, models.OrderCancelled, got.Status)
}
