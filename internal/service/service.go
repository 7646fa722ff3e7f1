package service

import (
	"go.uber.org/zap"

	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/config"
	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/internal/repository"
	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/pkg/jwt"
)

// Service aggregates every service
type Service struct {
	Clock    ClockService
	Log      LogService
	Report   ReportService
	Employee EmployeeService
	Setting  SettingService
	Auth     AuthService
}

// NewService creates the Service aggregate. tokens may be nil when Redis is
// not configured.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	tokens TokenBlacklist,
	logger *zap.Logger,
) (*Service, error) {
	auth, err := NewAuthService(&cfg.Auth, jwtMgr, tokens, logger)
	if err != nil {
		return nil, err
	}

	return &Service{
		Clock:    NewClockService(cfg, repo, logger),
		Log:      NewLogService(cfg, repo, logger),
		Report:   NewReportService(cfg, repo, logger),
		Employee: NewEmployeeService(repo, logger),
		Setting:  NewSettingService(&cfg.Clock, repo, logger),
		Auth:     auth,
	}, nil
}
