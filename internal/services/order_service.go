package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AdinubaEze/chiifykitchen-backend/internal/models"
	"github.com/AdinubaEze/chiifykitchen-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrNotOrderOwner     = errors.New("order does not belong to user")
	ErrOrderNotPending   = errors.New("order can only be cancelled while pending")
	ErrInvalidTransition = errors.New("order status transition is not allowed")
	ErrAddressLocked     = errors.New("address can only be changed while the order is pending")
)

type OrderLine struct {
	ProductID uint
	Quantity  int
}

type CreateOrderInput struct {
	AddressID      *uint
	TableID        *uint
	PaymentMethod  string
	DeliveryMethod string
	Products       []OrderLine
}

type AdminUpdateOrderInput struct {
	Status        *string
	PaymentStatus *string
	AddressID     *uint
}

type ListOrdersInput struct {
	UserID  uint // admin only: scope to a specific user
	Status  string
	Search  string
	Page    int
	PerPage int
}

type OrderService interface {
	Create(ctx context.Context, user *models.User, in CreateOrderInput) (*models.Order, *models.Payment, error)
	List(ctx context.Context, actor *models.User, in ListOrdersInput) ([]models.Order, int64, error)
	Get(ctx context.Context, actor *models.User, id uint) (*models.Order, error)
	AdminUpdate(ctx context.Context, admin *models.User, id uint, in AdminUpdateOrderInput) (*models.Order, error)
	CustomerCancel(ctx context.Context, actor *models.User, id uint) (*models.Order, error)
}

type orderService struct {
	db          *gorm.DB
	orderRepo   repository.OrderRepository
	paymentRepo repository.PaymentRepository
	tableRepo   repository.TableRepository
	productRepo repository.ProductRepository
	addressRepo repository.AddressRepository
	settings    SettingsService
}

func NewOrderService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
	tableRepo repository.TableRepository,
	productRepo repository.ProductRepository,
	addressRepo repository.AddressRepository,
	settings SettingsService,
) OrderService {
	return &orderService{
		db:          db,
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		tableRepo:   tableRepo,
		productRepo: productRepo,
		addressRepo: addressRepo,
		settings:    settings,
	}
}

func (s *orderService) Create(ctx context.Context, user *models.User, in CreateOrderInput) (*models.Order, *models.Payment, error) {
	products, err := s.validateCreate(ctx, user, in)
	if err != nil {
		return nil, nil, err
	}

	// Price the cart from the current catalog, snapshotting each line.
	byID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	subtotal := decimal.Zero
	items := make([]models.OrderItem, 0, len(in.Products))
	for _, line := range in.Products {
		product := byID[line.ProductID]
		qty := decimal.NewFromInt(int64(line.Quantity))
		subtotal = subtotal.Add(product.EffectivePrice().Mul(qty))
		items = append(items, models.OrderItem{
			ProductID:       product.ID,
			Quantity:        line.Quantity,
			Price:           product.Price,
			DiscountedPrice: product.DiscountedPrice,
		})
	}

	method := models.DeliveryMethod(in.DeliveryMethod)
	deliveryFee := decimal.Zero
	if method.NeedsAddress() {
		setting, err := s.settings.Get(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load settings: %w", err)
		}
		deliveryFee = setting.GeneralSettings.DeliveryFee
	}
	total := subtotal.Add(deliveryFee)

	paymentStatus := models.PaymentUnpaid
	if in.PaymentMethod == models.PaymentMethodCash {
		paymentStatus = models.PaymentPending
	}

	order := &models.Order{
		Code:           newOrderCode(),
		UserID:         user.ID,
		AddressID:      in.AddressID,
		TableID:        in.TableID,
		Subtotal:       subtotal,
		DeliveryFee:    deliveryFee,
		Total:          total,
		PaymentMethod:  in.PaymentMethod,
		DeliveryMethod: method,
		PaymentStatus:  paymentStatus,
		Status:         models.OrderPending,
		Items:          items,
	}
	payment := &models.Payment{
		Code:          newPaymentCode(),
		Amount:        total,
		PaymentMethod: in.PaymentMethod,
		Status:        models.PaymentRecPending,
	}

	// Order, items, payment stub and table occupancy commit together or not
	// at all.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.WithTx(tx).Create(ctx, order); err != nil {
			return err
		}
		payment.OrderID = order.ID
		if err := s.paymentRepo.WithTx(tx).Create(ctx, payment); err != nil {
			return err
		}
		if in.TableID != nil {
			if err := s.tableRepo.WithTx(tx).UpdateStatus(ctx, *in.TableID, models.TableOccupied); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		zap.S().Errorw("order creation failed", "user_id", user.ID, "error", err)
		return nil, nil, fmt.Errorf("failed to create order: %w", err)
	}

	order.Payment = payment
	return order, payment, nil
}

func (s *orderService) validateCreate(ctx context.Context, user *models.User, in CreateOrderInput) ([]models.Product, error) {
	verrs := ValidationErrors{}

	if !models.IsValidDeliveryMethod(in.DeliveryMethod) {
		verrs["delivery_method"] = "Delivery method must be one of delivery, dine-in, pickup or courier."
	}
	if strings.TrimSpace(in.PaymentMethod) == "" {
		verrs["payment_method"] = "Payment method is required."
	}
	if len(in.Products) == 0 {
		verrs["products"] = "At least one product is required."
	}
	for _, line := range in.Products {
		if line.Quantity < 1 {
			verrs["products"] = "Each product quantity must be at least 1."
			break
		}
	}

	method := models.DeliveryMethod(in.DeliveryMethod)
	if method.NeedsAddress() {
		if in.AddressID == nil {
			verrs["address_id"] = "Address is required for delivery or courier orders."
		} else {
			address, err := s.addressRepo.GetByID(ctx, *in.AddressID)
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				verrs["address_id"] = "Address does not exist."
			case err != nil:
				return nil, err
			case address.UserID != user.ID:
				verrs["address_id"] = "Address does not belong to you."
			}
		}
	}
	if method == models.DeliveryMethodDineIn && in.TableID == nil {
		verrs["table_id"] = "Table is required for dine-in orders."
	}
	if in.TableID != nil {
		if _, err := s.tableRepo.GetByID(ctx, *in.TableID); err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			verrs["table_id"] = "Table does not exist."
		}
	}
	if in.PaymentMethod == models.PaymentMethodCash && !method.AllowsCash() {
		verrs["payment_method"] = "Cash payment is only allowed for dine-in or pickup orders."
	}

	ids := make([]uint, 0, len(in.Products))
	for _, line := range in.Products {
		ids = append(ids, line.ProductID)
	}
	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	found := make(map[uint]bool, len(products))
	for _, p := range products {
		found[p.ID] = true
	}
	for _, line := range in.Products {
		if !found[line.ProductID] {
			verrs["products"] = fmt.Sprintf("Product %d does not exist.", line.ProductID)
			break
		}
	}

	if len(verrs) > 0 {
		return nil, verrs
	}
	return products, nil
}

func (s *orderService) List(ctx context.Context, actor *models.User, in ListOrdersInput) ([]models.Order, int64, error) {
	filter := repository.OrderFilter{
		Status:  in.Status,
		Search:  in.Search,
		Page:    in.Page,
		PerPage: in.PerPage,
	}
	if actor.IsAdmin() {
		filter.UserID = in.UserID
	} else {
		// Customers only ever see their own orders.
		if in.UserID != 0 && in.UserID != actor.ID {
			return nil, 0, ErrNotOrderOwner
		}
		filter.UserID = actor.ID
	}
	return s.orderRepo.List(ctx, filter)
}

func (s *orderService) Get(ctx context.Context, actor *models.User, id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.UserID != actor.ID && !actor.IsAdmin() {
		return nil, ErrNotOrderOwner
	}
	return order, nil
}

func (s *orderService) AdminUpdate(ctx context.Context, admin *models.User, id uint, in AdminUpdateOrderInput) (*models.Order, error) {
	if in.Status != nil && !models.IsValidOrderStatus(*in.Status) {
		return nil, ValidationErrors{"status": "Status is not a known value."}
	}
	if in.PaymentStatus != nil && !models.IsValidPaymentStatus(*in.PaymentStatus) {
		return nil, ValidationErrors{"payment_status": "Payment status is not a known value."}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		orders := s.orderRepo.WithTx(tx)

		order, err := orders.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		if in.AddressID != nil {
			if order.Status != models.OrderPending {
				return ErrAddressLocked
			}
			address, err := s.addressRepo.GetByID(ctx, *in.AddressID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrAddressNotFound
				}
				return err
			}
			if address.UserID != order.UserID {
				return ErrNotAddressOwner
			}
			order.AddressID = in.AddressID
		}

		if in.PaymentStatus != nil {
			order.PaymentStatus = models.PaymentStatus(*in.PaymentStatus)
		}

		if in.Status != nil {
			target := models.OrderStatus(*in.Status)
			if !order.CanTransitionTo(target) {
				return ErrInvalidTransition
			}
			switch target {
			case models.OrderCompleted:
				if order.PaymentMethod == models.PaymentMethodCash {
					order.PaymentStatus = models.PaymentPaid
				}
			case models.OrderCancelled:
				// Admin-initiated cancel: clear any customer-cancel marker
				// and refund a paid order.
				order.CancelledByCustomer = false
				order.CustomerCancelledAt = nil
				if order.PaymentStatus == models.PaymentPaid {
					order.PaymentStatus = models.PaymentRefunded
				}
			case models.OrderDelivered:
				if order.PaymentStatus != models.PaymentPaid && order.Payment != nil {
					order.PaymentStatus = models.PaymentPaid
				}
			}
			order.Status = target
		}

		adminID := admin.ID
		order.AdminID = &adminID

		if order.Payment != nil {
			order.Payment.Status = models.RecordStatusFor(order.PaymentStatus)
			if order.Payment.Status == models.PaymentRecSuccessful && order.Payment.VerifiedAt == nil {
				now := time.Now()
				order.Payment.VerifiedAt = &now
			}
			if err := s.paymentRepo.WithTx(tx).Update(ctx, order.Payment); err != nil {
				return err
			}
		}

		if order.TableID != nil &&
			(order.Status == models.OrderCompleted || order.Status == models.OrderCancelled) {
			if err := s.tableRepo.WithTx(tx).UpdateStatus(ctx, *order.TableID, models.TableAvailable); err != nil {
				return err
			}
		}

		return orders.Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	return s.orderRepo.GetByID(ctx, id)
}

func (s *orderService) CustomerCancel(ctx context.Context, actor *models.User, id uint) (*models.Order, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		orders := s.orderRepo.WithTx(tx)

		order, err := orders.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if order.UserID != actor.ID {
			return ErrNotOrderOwner
		}
		if order.Status != models.OrderPending {
			return ErrOrderNotPending
		}

		now := time.Now()
		order.Status = models.OrderCancelled
		order.CancelledByCustomer = true
		order.CustomerCancelledAt = &now

		// The payment record is always closed out as refunded; the order's own
		// payment status only flips when money was actually collected.
		if order.PaymentStatus == models.PaymentPaid {
			order.PaymentStatus = models.PaymentRefunded
		}
		if order.Payment != nil {
			order.Payment.Status = models.PaymentRecRefunded
			if err := s.paymentRepo.WithTx(tx).Update(ctx, order.Payment); err != nil {
				return err
			}
		}
		if order.TableID != nil {
			if err := s.tableRepo.WithTx(tx).UpdateStatus(ctx, *order.TableID, models.TableAvailable); err != nil {
				return err
			}
		}

		return orders.Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	return s.orderRepo.GetByID(ctx, id)
}

func newOrderCode() string {
	return "ORD-" + randomCode(8)
}

func newPaymentCode() string {
	return "PAY-" + randomCode(10)
}

func randomCode(n int) string {
	code := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return code[:n]
}
