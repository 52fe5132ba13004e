package repository

import (
	"context"

	"github.com/AdinubaEze/chiifykitchen-backend/internal/models"
	"gorm.io/gorm"
)

type TableFilter struct {
	Status      string
	MinCapacity int
	Search      string
}

type TableRepository interface {
	WithTx(tx *gorm.DB) TableRepository
	Create(ctx context.Context, table *models.Table) error
	GetByID(ctx context.Context, id uint) (*models.Table, error)
	List(ctx context.Context, filter TableFilter) ([]models.Table, error)
	Update(ctx context.Context, table *models.Table) error
	UpdateStatus(ctx context.Context, id uint, status models.TableStatus) error
	Delete(ctx context.Context, id uint) error
}

type tableRepository struct {
	db *gorm.DB
}

func NewTableRepository(db *gorm.DB) TableRepository {
	return &tableRepository{db: db}
}

func (r *tableRepository) WithTx(tx *gorm.DB) TableRepository {
	return &tableRepository{db: tx}
}

func (r *tableRepository) Create(ctx context.Context, table *models.Table) error {
	return r.db.WithContext(ctx).Create(table).Error
}

func (r *tableRepository) GetByID(ctx context.Context, id uint) (*models.Table, error) {
	var table models.Table
	err := r.db.WithContext(ctx).First(&table, id).Error
	if err != nil {
		return nil, err
	}
	return &table, nil
}

func (r *tableRepository) List(ctx context.Context, filter TableFilter) ([]models.Table, error) {
	query := r.db.WithContext(ctx).Model(&models.Table{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.MinCapacity > 0 {
		query = query.Where("capacity >= ?", filter.MinCapacity)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR description LIKE ? OR location LIKE ?", like, like, like)
	}

	var tables []models.Table
	err := query.Order("name").Find(&tables).Error
	return tables, err
}

func (r *tableRepository) Update(ctx context.Context, table *models.Table) error {
	return r.db.WithContext(ctx).Save(table).Error
}

func (r *tableRepository) UpdateStatus(ctx context.Context, id uint, status models.TableStatus) error {
	return r.db.WithContext(ctx).Model(&models.Table{}).Where("id = ?", id).Update("status", status).Error
}

func (r *tableRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Table{}, id).Error
}
