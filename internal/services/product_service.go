package services

import (
	"context"
	"errors"
	"strings"

	"github.com/AdinubaEze/chiifykitchen-backend/internal/models"
	"github.com/AdinubaEze/chiifykitchen-backend/internal/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrProductNotFound = errors.New("product not found")

type ProductInput struct {
	Title           string
	Description     string
	Price           decimal.Decimal
	DiscountedPrice *decimal.Decimal
	Image           string
	Status          *int
	IsFeatured      *bool
	CategoryID      uint
}

type ProductService interface {
	List(ctx context.Context, filter repository.ProductFilter) ([]models.Product, int64, error)
	Get(ctx context.Context, id uint) (*models.Product, error)
	Create(ctx context.Context, admin *models.User, in ProductInput) (*models.Product, error)
	Update(ctx context.Context, admin *models.User, id uint, in ProductInput) (*models.Product, error)
	Delete(ctx context.Context, id uint) error
}

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) ProductService {
	return &productService{productRepo: productRepo, categoryRepo: categoryRepo}
}

func (s *productService) List(ctx context.Context, filter repository.ProductFilter) ([]models.Product, int64, error) {
	return s.productRepo.List(ctx, filter)
}

func (s *productService) Get(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) Create(ctx context.Context, admin *models.User, in ProductInput) (*models.Product, error) {
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}

	product := &models.Product{
		Title:           strings.TrimSpace(in.Title),
		Description:     in.Description,
		Price:           in.Price,
		DiscountedPrice: in.DiscountedPrice,
		Image:           in.Image,
		Status:          models.ProductStatusActive,
		CategoryID:      in.CategoryID,
		AdminID:         admin.ID,
	}
	if in.Status != nil {
		product.Status = *in.Status
	}
	if in.IsFeatured != nil {
		product.IsFeatured = *in.IsFeatured
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) Update(ctx context.Context, admin *models.User, id uint, in ProductInput) (*models.Product, error) {
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}

	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Title = strings.TrimSpace(in.Title)
	product.Description = in.Description
	product.Price = in.Price
	product.DiscountedPrice = in.DiscountedPrice
	product.Image = in.Image
	product.CategoryID = in.CategoryID
	product.AdminID = admin.ID
	if in.Status != nil {
		product.Status = *in.Status
	}
	if in.IsFeatured != nil {
		product.IsFeatured = *in.IsFeatured
	}
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}

func (s *productService) validate(ctx context.Context, in ProductInput) error {
	verrs := ValidationErrors{}
	if strings.TrimSpace(in.Title) == "" {
		verrs["title"] = "Title is required."
	}
	if in.Price.LessThanOrEqual(decimal.Zero) {
		verrs["price"] = "Price must be greater than zero."
	}
	if in.DiscountedPrice != nil && in.DiscountedPrice.GreaterThanOrEqual(in.Price) {
		verrs["discounted_price"] = "Discounted price must be lower than the regular price."
	}
	if in.Status != nil {
		switch *in.Status {
		case models.ProductStatusDeleted, models.ProductStatusActive, models.ProductStatusDisabled:
		default:
			verrs["status"] = "Status is not a known value."
		}
	}
	if in.CategoryID != 0 {
		if _, err := s.categoryRepo.GetByID(ctx, in.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				verrs["category_id"] = "Category does not exist."
			} else {
				return err
			}
		}
	}
	if len(verrs) > 0 {
		return verrs
	}
	return nil
}
