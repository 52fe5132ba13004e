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
	ErrAddressNotFound = errors.New("address not found")
	ErrNotAddressOwner = errors.New("address does not belong to user")
)

type AddressInput struct {
	Label  string
	Street string
	City   string
	State  string
	Phone  string
}

type AddressService interface {
	List(ctx context.Context, userID uint) ([]models.Address, error)
	Create(ctx context.Context, userID uint, in AddressInput) (*models.Address, error)
	Update(ctx context.Context, userID, id uint, in AddressInput) (*models.Address, error)
	Delete(ctx context.Context, userID, id uint) error
	SetDefault(ctx context.Context, userID, id uint) (*models.Address, error)
}

type addressService struct {
	addressRepo repository.AddressRepository
}

func NewAddressService(addressRepo repository.AddressRepository) AddressService {
	return &addressService{addressRepo: addressRepo}
}

func (s *addressService) List(ctx context.Context, userID uint) ([]models.Address, error) {
	return s.addressRepo.GetByUserID(ctx, userID)
}

func (s *addressService) Create(ctx context.Context, userID uint, in AddressInput) (*models.Address, error) {
	if err := validateAddress(in); err != nil {
		return nil, err
	}

	count, err := s.addressRepo.CountByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	address := &models.Address{
		UserID:    userID,
		Label:     in.Label,
		Street:    in.Street,
		City:      in.City,
		State:     in.State,
		Phone:     in.Phone,
		IsDefault: count == 0, // first address becomes the default
	}
	if err := s.addressRepo.Create(ctx, address); err != nil {
		return nil, err
	}
	return address, nil
}

func (s *addressService) Update(ctx context.Context, userID, id uint, in AddressInput) (*models.Address, error) {
	if err := validateAddress(in); err != nil {
		return nil, err
	}

	address, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	address.Label = in.Label
	address.Street = in.Street
	address.City = in.City
	address.State = in.State
	address.Phone = in.Phone
	if err := s.addressRepo.Update(ctx, address); err != nil {
		return nil, err
	}
	return address, nil
}

func (s *addressService) Delete(ctx context.Context, userID, id uint) error {
	if _, err := s.getOwned(ctx, userID, id); err != nil {
		return err
	}
	return s.addressRepo.Delete(ctx, id)
}

func (s *addressService) SetDefault(ctx context.Context, userID, id uint) (*models.Address, error) {
	address, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if err := s.addressRepo.ClearDefault(ctx, userID); err != nil {
		return nil, err
	}
	address.IsDefault = true
	if err := s.addressRepo.Update(ctx, address); err != nil {
		return nil, err
	}
	return address, nil
}

func (s *addressService) getOwned(ctx context.Context, userID, id uint) (*models.Address, error) {
	address, err := s.addressRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, err
	}
	if address.UserID != userID {
		return nil, ErrNotAddressOwner
	}
	return address, nil
}

func validateAddress(in AddressInput) error {
	verrs := ValidationErrors{}
	if strings.TrimSpace(in.Street) == "" {
		verrs["street"] = "Street is required."
	}
	if strings.TrimSpace(in.City) == "" {
		verrs["city"] = "City is required."
	}
	if len(verrs) > 0 {
		return verrs
	}
	return nil
}
