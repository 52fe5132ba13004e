package services

import (
	"context"
	"errors"
	"time"

	"github.com/AdinubaEze/chiifykitchen-backend/internal/models"
	"github.com/AdinubaEze/chiifykitchen-backend/internal/redis"
	"github.com/AdinubaEze/chiifykitchen-backend/internal/repository"
	"go.uber.org/zap"
)

const settingsCacheTTL = 30 * time.Minute

type UpdateSettingsInput struct {
	PaymentGateways *models.PaymentGateways
	TransactionMode *string
	CompanyInfo     *models.CompanyInfo
	GeneralSettings *models.GeneralSettings
}

type SettingsService interface {
	Get(ctx context.Context) (*models.Setting, error)
	Update(ctx context.Context, in UpdateSettingsInput) (*models.Setting, error)
	ToggleGateway(ctx context.Context, gatewayID string) (*models.Setting, error)
}

type settingsService struct {
	settingRepo repository.SettingRepository
	cache       *redis.Client
}

func NewSettingsService(settingRepo repository.SettingRepository, cache *redis.Client) SettingsService {
	return &settingsService{settingRepo: settingRepo, cache: cache}
}

func (s *settingsService) Get(ctx context.Context) (*models.Setting, error) {
	if s.cache != nil {
		cached, err := s.cache.GetCachedSettings(ctx)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, redis.ErrCacheMiss) {
			// Cache outage must not fail settings reads.
			zap.S().Warnw("settings cache read failed", "error", err)
		}
	}

	setting, err := s.settingRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.CacheSettings(ctx, setting, settingsCacheTTL); err != nil {
			zap.S().Warnw("settings cache write failed", "error", err)
		}
	}
	return setting, nil
}

func (s *settingsService) Update(ctx context.Context, in UpdateSettingsInput) (*models.Setting, error) {
	if in.TransactionMode != nil &&
		*in.TransactionMode != models.TransactionModeTest &&
		*in.TransactionMode != models.TransactionModeLive {
		return nil, ValidationErrors{"transaction_mode": "Transaction mode must be test or live."}
	}

	setting, err := s.settingRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if in.PaymentGateways != nil {
		setting.PaymentGateways = *in.PaymentGateways
	}
	if in.TransactionMode != nil {
		setting.TransactionMode = *in.TransactionMode
	}
	if in.CompanyInfo != nil {
		setting.CompanyInfo = *in.CompanyInfo
	}
	if in.GeneralSettings != nil {
		setting.GeneralSettings = *in.GeneralSettings
	}

	if err := s.settingRepo.Save(ctx, setting); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return setting, nil
}

func (s *settingsService) ToggleGateway(ctx context.Context, gatewayID string) (*models.Setting, error) {
	setting, err := s.settingRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	gw, err := setting.Gateway(gatewayID)
	if err != nil {
		return nil, err
	}
	gw.Enabled = !gw.Enabled

	if err := s.settingRepo.Save(ctx, setting); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return setting, nil
}

func (s *settingsService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateSettings(ctx); err != nil {
		zap.S().Warnw("settings cache invalidation failed", "error", err)
	}
}
