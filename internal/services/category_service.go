package services

import (
	"context"
	"errors"
	"strings"

	"github.com/AdinubaEze/chiifykitchen-backend/internal/models"
	"github.com/AdinubaEze/chiifykitchen-backend/internal/repository"
	"gorm.io/gorm"
)

var ErrCategoryNotFound = errors.New("category not found")

type CategoryInput struct {
	Title       string
	Description string
	Icon        string
}

type CategoryService interface {
	List(ctx context.Context) ([]models.Category, error)
	Get(ctx context.Context, id uint) (*models.Category, error)
	Create(ctx context.Context, in CategoryInput) (*models.Category, error)
	Update(ctx context.Context, id uint, in CategoryInput) (*models.Category, error)
	Delete(ctx context.Context, id uint) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.categoryRepo.GetAll(ctx)
}

func (s *categoryService) Get(ctx context.Context, id uint) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Create(ctx context.Context, in CategoryInput) (*models.Category, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, ValidationErrors{"title": "Title is required."}
	}

	category := &models.Category{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Icon:        in.Icon,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Update(ctx context.Context, id uint, in CategoryInput) (*models.Category, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, ValidationErrors{"title": "Title is required."}
	}

	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Title = strings.TrimSpace(in.Title)
	category.Description = in.Description
	category.Icon = in.Icon
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.categoryRepo.Delete(ctx, id)
}
