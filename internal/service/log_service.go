package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/config"
	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/internal/dto"
	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/internal/model"
	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/internal/repository"
)

var (
	ErrInvalidDate     = errors.New("date must be YYYY-MM-DD")
	ErrInvalidTimezone = errors.New("unknown timezone")
)

// LogService admin view of the raw log
type LogService interface {
	// ListDay never fails on a store read error; it returns an empty view
	// flagged as degraded instead.
	ListDay(ctx context.Context, category string, q *dto.DayQuery) (*dto.DayLogsResponse, error)
	Clear(ctx context.Context, category string) (*dto.ClearResponse, error)
}

type logService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewLogService creates a LogService
func NewLogService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) LogService {
	return &logService{cfg: cfg, repo: repo, logger: logger, now: time.Now}
}

// ────────────────────── ListDay ──────────────────────

func (s *logService) ListDay(ctx context.Context, category string, q *dto.DayQuery) (*dto.DayLogsResponse, error) {
	if !s.cfg.Clock.HasCategory(category) {
		return nil, ErrUnknownCategory
	}
	day, loc, err := resolveDay(q, &s.cfg.Clock, s.now())
	if err != nil {
		return nil, err
	}

	resp := &dto.DayLogsResponse{
		Category: category,
		Date:     day.String(),
		Logs:     []dto.DayLogResponse{},
	}

	logs, roster, err := readCategory(ctx, s.repo, category, s.cfg.Store.ListCap)
	if err != nil {
		s.logger.Warn("serving degraded log view",
			zap.String("category", category),
			zap.Error(err),
		)
		resp.Degraded = true
		if logs == nil {
			return resp, nil
		}
	}

	builder := NewReportBuilder(ReportConfig{Location: loc})
	for _, dl := range builder.DayLogs(logs, day, roster) {
		resp.Logs = append(resp.Logs, dto.DayLogResponse{
			LogResponse: toLogResponse(&dl.Log),
			Time:        dl.Log.Timestamp.Format(ClockLayout),
			JacketSize:  dl.JacketSize,
			Latest:      dl.Latest,
		})
	}
	return resp, nil
}

// ────────────────────── Clear ──────────────────────

func (s *logService) Clear(ctx context.Context, category string) (*dto.ClearResponse, error) {
	if !s.cfg.Clock.HasCategory(category) {
		return nil, ErrUnknownCategory
	}

	removed, err := s.repo.Log.ClearByCategory(ctx, category)
	if err != nil {
		s.logger.Error("failed to clear logs", zap.String("category", category), zap.Error(err))
		return nil, err
	}

	s.logger.Warn("logs cleared", zap.String("category", category), zap.Int64("removed", removed))
	return &dto.ClearResponse{Removed: removed}, nil
}

// ── helpers ──

// resolveDay picks the viewer zone (query, then config) and the day in it
// (query, then today).
func resolveDay(q *dto.DayQuery, clock *config.ClockConfig, now time.Time) (Day, *time.Location, error) {
	loc, err := clock.Location()
	if err != nil {
		return Day{}, nil, ErrInvalidTimezone
	}
	if tz := strings.TrimSpace(q.TZ); tz != "" {
		if loc, err = time.LoadLocation(tz); err != nil {
			return Day{}, nil, ErrInvalidTimezone
		}
	}

	if strings.TrimSpace(q.Date) == "" {
		return DayOf(now, loc), loc, nil
	}
	day, err := ParseDay(q.Date)
	if err != nil {
		return Day{}, nil, ErrInvalidDate
	}
	return day, loc, nil
}

// readCategory loads a category's log and the roster. A roster failure
// still returns the logs so callers can render them unenriched.
func readCategory(ctx context.Context, repo *repository.Repository, category string, limit int) ([]model.AttendanceLog, *model.Roster, error) {
	logs, err := repo.Log.ListByCategory(ctx, category, limit)
	if err != nil {
		return nil, nil, err
	}
	employees, err := repo.Employee.List(ctx)
	if err != nil {
		return logs, nil, err
	}
	return logs, model.NewRoster(employees), nil
}
