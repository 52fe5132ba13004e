package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AdinubaEze/chiifykitchen-backend/internal/models"
	"github.com/AdinubaEze/chiifykitchen-backend/internal/repository"
	"github.com/AdinubaEze/chiifykitchen-backend/pkg/gateway"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrAmountMismatch       = errors.New("payment amount does not match order total")
	ErrGatewayInitFailed    = errors.New("payment initiation failed")
	ErrUnknownPaymentMethod = errors.New("unknown payment method")
)

// amountTolerance is the maximum accepted difference between the initiated
// amount and the order total.
var amountTolerance = decimal.NewFromFloat(0.01)

// PaystackGateway is the slice of the Paystack client this service needs.
type PaystackGateway interface {
	VerifyTransaction(ctx context.Context, secretKey, reference string) (*gateway.VerifyResult, error)
	InitializeTransaction(ctx context.Context, secretKey, email string, amount decimal.Decimal) (*gateway.InitResult, error)
}

// FlutterwaveGateway is the slice of the Flutterwave client this service needs.
type FlutterwaveGateway interface {
	VerifyTransaction(ctx context.Context, secretKey, reference string) (*gateway.VerifyResult, error)
	CreatePaymentLink(ctx context.Context, secretKey, txRef, email, currency string, amount decimal.Decimal) (*gateway.InitResult, error)
}

type InitiatePaymentInput struct {
	OrderID       uint
	Amount        decimal.Decimal
	PaymentMethod string
}

type VerifyPaymentInput struct {
	OrderID   uint
	Reference string
	Gateway   string
}

type PaymentService interface {
	List(ctx context.Context, filter repository.PaymentFilter) ([]models.Payment, int64, error)
	Get(ctx context.Context, id uint) (*models.Payment, error)
	AdminUpdate(ctx context.Context, id uint, status, reference string) (*models.Payment, error)
	// Initiate records a payment attempt for an order and, for online
	// methods, starts a gateway checkout. Returns the payment and an
	// optional hosted payment URL.
	Initiate(ctx context.Context, in InitiatePaymentInput) (*models.Payment, string, error)
	// Verify reconciles an external gateway result into order state. The
	// boolean is the caller-visible outcome; gateway failures of any kind
	// collapse to false and are only distinguished in logs.
	Verify(ctx context.Context, in VerifyPaymentInput) (bool, error)
}

type paymentService struct {
	db          *gorm.DB
	paymentRepo repository.PaymentRepository
	orderRepo   repository.OrderRepository
	settings    SettingsService
	paystack    PaystackGateway
	flutterwave FlutterwaveGateway
}

func NewPaymentService(
	db *gorm.DB,
	paymentRepo repository.PaymentRepository,
	orderRepo repository.OrderRepository,
	settings SettingsService,
	paystack PaystackGateway,
	flutterwave FlutterwaveGateway,
) PaymentService {
	return &paymentService{
		db:          db,
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
		settings:    settings,
		paystack:    paystack,
		flutterwave: flutterwave,
	}
}

func (s *paymentService) List(ctx context.Context, filter repository.PaymentFilter) ([]models.Payment, int64, error) {
	return s.paymentRepo.List(ctx, filter)
}

func (s *paymentService) Get(ctx context.Context, id uint) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return payment, nil
}

func (s *paymentService) AdminUpdate(ctx context.Context, id uint, status, reference string) (*models.Payment, error) {
	if !models.IsValidPaymentRecStatus(status) {
		return nil, ValidationErrors{"status": "Status must be one of pending, successful, failed or refunded."}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		payments := s.paymentRepo.WithTx(tx)
		orders := s.orderRepo.WithTx(tx)

		payment, err := payments.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return err
		}

		payment.Status = models.PaymentRecStatus(status)
		if reference != "" {
			payment.Reference = reference
		}
		if payment.Status == models.PaymentRecSuccessful {
			now := time.Now()
			payment.VerifiedAt = &now
		} else {
			payment.VerifiedAt = nil
		}
		if err := payments.Update(ctx, payment); err != nil {
			return err
		}

		order, err := orders.GetByID(ctx, payment.OrderID)
		if err != nil {
			return err
		}
		switch payment.Status {
		case models.PaymentRecSuccessful:
			order.PaymentStatus = models.PaymentPaid
			order.Status = models.OrderProcessing
		case models.PaymentRecFailed:
			// Keep the order pending so the customer can retry.
			order.PaymentStatus = models.PaymentFailed
			order.Status = models.OrderPending
		case models.PaymentRecRefunded:
			order.PaymentStatus = models.PaymentRefunded
			order.Status = models.OrderCancelled
		}
		return orders.Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	return s.paymentRepo.GetByID(ctx, id)
}

func (s *paymentService) Initiate(ctx context.Context, in InitiatePaymentInput) (*models.Payment, string, error) {
	switch in.PaymentMethod {
	case "card", models.PaymentGatewayPaystack, models.PaymentGatewayFlutterwave, models.PaymentGatewayCash:
	default:
		return nil, "", ValidationErrors{"payment_method": "Payment method must be one of card, paystack, flutterwave or cash."}
	}

	order, err := s.orderRepo.GetByID(ctx, in.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrOrderNotFound
		}
		return nil, "", err
	}

	if in.Amount.Sub(order.Total).Abs().GreaterThan(amountTolerance) {
		return nil, "", ErrAmountMismatch
	}

	payment, err := s.findOrCreatePayment(ctx, order, in.PaymentMethod)
	if err != nil {
		return nil, "", err
	}

	var paymentURL string
	switch in.PaymentMethod {
	case models.PaymentGatewayCash:
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			payment.Status = models.PaymentRecPending
			if err := s.paymentRepo.WithTx(tx).Update(ctx, payment); err != nil {
				return err
			}
			order.PaymentStatus = models.PaymentPending
			return s.orderRepo.WithTx(tx).Update(ctx, order)
		})
		if err != nil {
			return nil, "", err
		}

	case models.PaymentGatewayPaystack, models.PaymentGatewayFlutterwave:
		init, err := s.initiateOnline(ctx, order, payment, in.PaymentMethod)
		if err != nil {
			zap.S().Errorw("payment initiation failed",
				"order_id", order.ID,
				"payment_method", in.PaymentMethod,
				"error", err,
			)
			return nil, "", ErrGatewayInitFailed
		}
		paymentURL = init.PaymentURL
		if init.Reference != "" {
			payment.Reference = init.Reference
			if err := s.paymentRepo.Update(ctx, payment); err != nil {
				return nil, "", err
			}
		}

	case "card":
		// Card collection happens client-side; nothing to initiate here.
	}

	return payment, paymentURL, nil
}

func (s *paymentService) initiateOnline(ctx context.Context, order *models.Order, payment *models.Payment, method string) (*gateway.InitResult, error) {
	setting, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	secretKey, err := setting.SecretKeyFor(method)
	if err != nil {
		return nil, err
	}

	email := ""
	if order.User != nil {
		email = order.User.Email
	}

	switch method {
	case models.PaymentGatewayPaystack:
		return s.paystack.InitializeTransaction(ctx, secretKey, email, order.Total)
	case models.PaymentGatewayFlutterwave:
		return s.flutterwave.CreatePaymentLink(ctx, secretKey, payment.Code, email, setting.GeneralSettings.Currency, order.Total)
	}
	return nil, ErrUnknownPaymentMethod
}

func (s *paymentService) Verify(ctx context.Context, in VerifyPaymentInput) (bool, error) {
	if !models.IsValidGateway(in.Gateway) {
		return false, ValidationErrors{"gateway": "Gateway must be one of paystack, flutterwave or cash."}
	}

	order, err := s.orderRepo.GetByID(ctx, in.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrOrderNotFound
		}
		return false, err
	}

	payment, err := s.findOrCreatePayment(ctx, order, in.Gateway)
	if err != nil {
		return false, err
	}

	verified := false
	switch in.Gateway {
	case models.PaymentGatewayCash:
		// Cash is settled in person; nothing external to check.
		verified = true
	case models.PaymentGatewayPaystack, models.PaymentGatewayFlutterwave:
		verified = s.verifyOnline(ctx, order, in.Gateway, in.Reference)
	}

	now := time.Now()
	if verified {
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			order.PaymentStatus = models.PaymentPaid
			order.PaymentVerifiedAt = &now
			if err := s.orderRepo.WithTx(tx).Update(ctx, order); err != nil {
				return err
			}
			payment.Status = models.PaymentRecSuccessful
			payment.Reference = in.Reference
			payment.VerifiedAt = &now
			return s.paymentRepo.WithTx(tx).Update(ctx, payment)
		})
		if err != nil {
			return false, err
		}
		return true, nil
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order.PaymentStatus = models.PaymentFailed
		if err := s.orderRepo.WithTx(tx).Update(ctx, order); err != nil {
			return err
		}
		payment.Status = models.PaymentRecFailed
		return s.paymentRepo.WithTx(tx).Update(ctx, payment)
	})
	if err != nil {
		return false, err
	}
	return false, nil
}

// verifyOnline calls the gateway's transaction lookup. Every failure mode —
// missing or disabled configuration, network errors, a non-success gateway
// status, or a short amount — collapses to false; logs carry the distinction.
func (s *paymentService) verifyOnline(ctx context.Context, order *models.Order, gatewayID, reference string) bool {
	log := zap.S().With("order_id", order.ID, "gateway", gatewayID, "reference", reference)

	setting, err := s.settings.Get(ctx)
	if err != nil {
		log.Errorw("payment verification failed: settings unavailable", "error", err)
		return false
	}
	secretKey, err := setting.SecretKeyFor(gatewayID)
	if err != nil {
		log.Errorw("payment verification failed: gateway not usable",
			"transaction_mode", setting.TransactionMode, "error", err)
		return false
	}

	var result *gateway.VerifyResult
	switch gatewayID {
	case models.PaymentGatewayPaystack:
		result, err = s.paystack.VerifyTransaction(ctx, secretKey, reference)
	case models.PaymentGatewayFlutterwave:
		result, err = s.flutterwave.VerifyTransaction(ctx, secretKey, reference)
	}
	if err != nil {
		log.Errorw("payment verification failed: gateway call error", "error", err)
		return false
	}
	if !result.Succeeded {
		log.Errorw("payment verification failed: transaction not successful")
		return false
	}
	// A gateway "success" that paid less than the order total is still a
	// failure.
	if result.Amount.LessThan(order.Total) {
		log.Errorw("payment verification failed: amount paid is less than order total",
			"amount_paid", result.Amount.String(), "order_total", order.Total.String())
		return false
	}
	return true
}

// findOrCreatePayment returns the order's payment record, creating one when
// none exists yet. A second attempt for the same order reuses the existing
// record.
func (s *paymentService) findOrCreatePayment(ctx context.Context, order *models.Order, method string) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByOrderID(ctx, order.ID)
	if err == nil {
		return payment, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	payment = &models.Payment{
		OrderID:       order.ID,
		Code:          newPaymentCode(),
		Amount:        order.Total,
		PaymentMethod: method,
		Status:        models.PaymentRecPending,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to create payment record: %w", err)
	}
	return payment, nil
}
