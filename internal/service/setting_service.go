package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/config"
	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/internal/dto"
	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/internal/model"
	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/internal/repository"
)

// SettingService kiosk policy
type SettingService interface {
	Get(ctx context.Context) (*dto.SettingResponse, error)
	Update(ctx context.Context, req *dto.UpdateSettingRequest) (*dto.SettingResponse, error)
}

type settingService struct {
	cfg    *config.ClockConfig
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSettingService creates a SettingService
func NewSettingService(cfg *config.ClockConfig, repo *repository.Repository, logger *zap.Logger) SettingService {
	return &settingService{cfg: cfg, repo: repo, logger: logger}
}

// ────────────────────── Get ──────────────────────

func (s *settingService) Get(ctx context.Context) (*dto.SettingResponse, error) {
	setting, err := loadSetting(ctx, s.repo, s.cfg.RequireName)
	if err != nil {
		s.logger.Error("failed to load clock setting", zap.Error(err))
		return nil, err
	}
	return toSettingResponse(setting), nil
}

// ────────────────────── Update ──────────────────────

func (s *settingService) Update(ctx context.Context, req *dto.UpdateSettingRequest) (*dto.SettingResponse, error) {
	setting := &model.ClockSetting{RequireName: *req.RequireName}

	if err := s.repo.Setting.Update(ctx, setting); err != nil {
		s.logger.Error("failed to save clock setting", zap.Error(err))
		return nil, err
	}

	s.logger.Info("clock setting updated", zap.Bool("require_name", setting.RequireName))
	return toSettingResponse(setting), nil
}

// loadSetting returns the saved policy, or the configured default when none
// was ever saved.
func loadSetting(ctx context.Context, repo *repository.Repository, requireName bool) (*model.ClockSetting, error) {
	setting, err := repo.Setting.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.ClockSetting{RequireName: requireName}, nil
		}
		return nil, err
	}
	return setting, nil
}

func toSettingResponse(s *model.ClockSetting) *dto.SettingResponse {
	resp := &dto.SettingResponse{RequireName: s.RequireName}
	if !s.UpdatedAt.IsZero() {
		resp.UpdatedAt = s.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return resp
}
