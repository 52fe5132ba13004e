package services

import (
	"context"
	"errors"
	"strings"

	"github.com/AdinubaEze/chiifykitchen-backend/internal/models"
	"github.com/AdinubaEze/chiifykitchen-backend/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTableNotFound = errors.New("table not found")
	ErrTableOccupied = errors.New("table is currently occupied")
)

type TableInput struct {
	Name        string
	Description string
	Capacity    int
	Status      string
	Location    string
}

type TableService interface {
	List(ctx context.Context, filter repository.TableFilter) ([]models.Table, error)
	Get(ctx context.Context, id uint) (*models.Table, error)
	Create(ctx context.Context, in TableInput) (*models.Table, error)
	Update(ctx context.Context, id uint, in TableInput) (*models.Table, error)
	Delete(ctx context.Context, id uint) error
}

type tableService struct {
	tableRepo repository.TableRepository
}

func NewTableService(tableRepo repository.TableRepository) TableService {
	return &tableService{tableRepo: tableRepo}
}

func (s *tableService) List(ctx context.Context, filter repository.TableFilter) ([]models.Table, error) {
	return s.tableRepo.List(ctx, filter)
}

func (s *tableService) Get(ctx context.Context, id uint) (*models.Table, error) {
	table, err := s.tableRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTableNotFound
		}
		return nil, err
	}
	return table, nil
}

func (s *tableService) Create(ctx context.Context, in TableInput) (*models.Table, error) {
	if err := validateTable(in); err != nil {
		return nil, err
	}

	table := &models.Table{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Capacity:    in.Capacity,
		Status:      models.TableStatus(in.Status),
		Location:    in.Location,
	}
	if in.Status == "" {
		table.Status = models.TableAvailable
	}
	if err := s.tableRepo.Create(ctx, table); err != nil {
		return nil, err
	}
	return table, nil
}

func (s *tableService) Update(ctx context.Context, id uint, in TableInput) (*models.Table, error) {
	if err := validateTable(in); err != nil {
		return nil, err
	}

	table, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	table.Name = strings.TrimSpace(in.Name)
	table.Description = in.Description
	table.Capacity = in.Capacity
	if in.Status != "" {
		table.Status = models.TableStatus(in.Status)
	}
	table.Location = in.Location
	if err := s.tableRepo.Update(ctx, table); err != nil {
		return nil, err
	}
	return table, nil
}

func (s *tableService) Delete(ctx context.Context, id uint) error {
	table, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if table.Status == models.TableOccupied {
		return ErrTableOccupied
	}
	return s.tableRepo.Delete(ctx, id)
}

func validateTable(in TableInput) error {
	verrs := ValidationErrors{}
	if strings.TrimSpace(in.Name) == "" {
		verrs["name"] = "Name is required."
	}
	if in.Capacity < 1 {
		verrs["capacity"] = "Capacity must be at least 1."
	}
	if in.Status != "" && !models.IsValidTableStatus(in.Status) {
		verrs["status"] = "Status must be one of available, occupied, reserved or maintenance."
	}
	if len(verrs) > 0 {
		return verrs
	}
	return nil
}
