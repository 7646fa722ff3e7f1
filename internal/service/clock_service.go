package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/config"
	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/internal/dto"
	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/internal/model"
	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/internal/repository"
)

var (
	ErrUnknownCategory = errors.New("unknown category")
)

// PunchResult a stored punch and the outcome of its durable write
type PunchResult struct {
	Log    *model.AttendanceLog
	Commit *repository.Commit
}

// ClockService kiosk punches
type ClockService interface {
	Categories() *dto.CategoriesResponse
	// Punch validates and appends an event. Validation failures leave the
	// log untouched.
	Punch(ctx context.Context, category string, req *dto.PunchRequest) (*PunchResult, error)
}

type clockService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewClockService creates a ClockService
func NewClockService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) ClockService {
	return &clockService{cfg: cfg, repo: repo, logger: logger}
}

func (s *clockService) Categories() *dto.CategoriesResponse {
	def := s.cfg.Clock.DefaultCategory
	if !s.cfg.Clock.HasCategory(def) {
		def = s.cfg.Clock.Categories[0]
	}
	return &dto.CategoriesResponse{
		Categories: append([]string(nil), s.cfg.Clock.Categories...),
		Default:    def,
	}
}

// ────────────────────── Punch ──────────────────────

func (s *clockService) Punch(ctx context.Context, category string, req *dto.PunchRequest) (*PunchResult, error) {
	if !s.cfg.Clock.HasCategory(category) {
		return nil, ErrUnknownCategory
	}

	// 1. policy and roster snapshot
	setting, err := loadSetting(ctx, s.repo, s.cfg.Clock.RequireName)
	if err != nil {
		s.logger.Error("failed to load clock setting", zap.Error(err))
		return nil, err
	}

	employees, err := s.repo.Employee.List(ctx)
	if err != nil {
		s.logger.Error("failed to load roster", zap.Error(err))
		return nil, err
	}

	// 2. validate
	validator := NewEventValidator(ValidatorConfig{RequireName: setting.RequireName})
	punch, err := validator.Validate(PunchInput{
		Name:       req.Name,
		EmployeeID: req.EmployeeID,
		Type:       req.Type,
	}, model.NewRoster(employees))
	if err != nil {
		return nil, err
	}

	// 3. append
	log := &model.AttendanceLog{
		EmployeeID: punch.EmployeeID,
		Name:       punch.Name,
		Type:       punch.Type,
		Category:   category,
	}
	commit, err := s.repo.Log.Append(ctx, log)
	if err != nil {
		s.logger.Error("failed to append punch",
			zap.String("category", category),
			zap.String("employee_id", punch.EmployeeID),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("punch recorded",
		zap.String("id", log.ID),
		zap.String("category", category),
		zap.String("employee_id", log.EmployeeID),
		zap.String("type", log.Type),
	)

	return &PunchResult{Log: log, Commit: commit}, nil
}

func toLogResponse(l *model.AttendanceLog) dto.LogResponse {
	return dto.LogResponse{
		ID:         l.ID,
		EmployeeID: l.EmployeeID,
		Name:       l.Name,
		Type:       l.Type,
		Timestamp:  l.Timestamp.Format(time.RFC3339),
		Category:   l.Category,
	}
}

// ToPunchResponse renders a punch with the commit outcome known so far.
func ToPunchResponse(res *PunchResult) *dto.PunchResponse {
	resp := &dto.PunchResponse{Log: toLogResponse(res.Log)}
	select {
	case <-res.Commit.Done():
		if err := res.Commit.Err(); err != nil {
			resp.SyncError = err.Error()
		} else {
			resp.Synced = true
		}
	default:
	}
	return resp
}
