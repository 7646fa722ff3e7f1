package service

import (
	"bytes"
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/config"
	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/internal/dto"
	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/internal/repository"
)

var (
	ErrExportEmpty = errors.New("no logs for the selected date")
)

// ReportService daily attendance reports
//
//   - Daily returns JSON rows and degrades to an empty report on read errors.
//   - Export returns the xlsx bytes and the download name; the handler sets
//     the response headers.
type ReportService interface {
	Daily(ctx context.Context, category string, q *dto.ReportQuery) (*dto.DailyReportResponse, error)
	Export(ctx context.Context, category string, q *dto.ReportQuery) (*bytes.Buffer, string, error)
}

type reportService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewReportService creates a ReportService
func NewReportService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) ReportService {
	return &reportService{cfg: cfg, repo: repo, logger: logger, now: time.Now}
}

func (s *reportService) builder(q *dto.ReportQuery) (*ReportBuilder, Day, bool, error) {
	day, loc, err := resolveDay(&q.DayQuery, &s.cfg.Clock, s.now())
	if err != nil {
		return nil, Day{}, false, err
	}
	includeJacket := s.cfg.Clock.ExportIncludeJacket
	if q.IncludeJacket != nil {
		includeJacket = *q.IncludeJacket
	}
	return NewReportBuilder(ReportConfig{
		Location:       loc,
		IncludeJacket:  includeJacket,
		SplitAnonymous: s.cfg.Report.SplitAnonymous,
	}), day, includeJacket, nil
}

// ────────────────────── Daily ──────────────────────

func (s *reportService) Daily(ctx context.Context, category string, q *dto.ReportQuery) (*dto.DailyReportResponse, error) {
	if !s.cfg.Clock.HasCategory(category) {
		return nil, ErrUnknownCategory
	}
	builder, day, _, err := s.builder(q)
	if err != nil {
		return nil, err
	}

	resp := &dto.DailyReportResponse{
		Category: category,
		Date:     day.String(),
		Rows:     []dto.ReportRowResponse{},
	}

	logs, roster, err := readCategory(ctx, s.repo, category, s.cfg.Store.ListCap)
	if err != nil {
		s.logger.Warn("serving degraded report",
			zap.String("category", category),
			zap.Error(err),
		)
		resp.Degraded = true
		if logs == nil {
			return resp, nil
		}
	}

	for _, row := range builder.Build(logs, day, roster) {
		resp.Rows = append(resp.Rows, dto.ReportRowResponse{
			EmployeeNo:   row.EmployeeNo,
			EmployeeName: row.EmployeeName,
			Date:         row.Date,
			TimeIn:       row.TimeInText(),
			TimeOut:      row.TimeOutText(),
			JacketSize:   row.JacketSize,
		})
	}
	return resp, nil
}

// ────────────────────── Export ──────────────────────

func (s *reportService) Export(ctx context.Context, category string, q *dto.ReportQuery) (*bytes.Buffer, string, error) {
	if !s.cfg.Clock.HasCategory(category) {
		return nil, "", ErrUnknownCategory
	}
	builder, day, includeJacket, err := s.builder(q)
	if err != nil {
		return nil, "", err
	}

	// unlike Daily, a read failure aborts the export
	logs, roster, err := readCategory(ctx, s.repo, category, s.cfg.Store.ListCap)
	if err != nil {
		s.logger.Error("failed to read logs for export", zap.String("category", category), zap.Error(err))
		return nil, "", err
	}

	rows := builder.Build(logs, day, roster)
	if len(rows) == 0 {
		return nil, "", ErrExportEmpty
	}

	buf, err := WriteWorkbook(ReportSheet, ReportTable(rows, includeJacket))
	if err != nil {
		s.logger.Error("failed to write report workbook", zap.Error(err))
		return nil, "", err
	}

	s.logger.Info("report exported",
		zap.String("category", category),
		zap.String("date", day.String()),
		zap.Int("rows", len(rows)),
	)
	return buf, ExportFilename(day), nil
}
