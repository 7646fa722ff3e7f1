package service

import (
	"bytes"
	"context"
	"errors"
	"io"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/internal/dto"
	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/internal/model"
	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/internal/repository"
)

// ── roster errors ──

var (
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrImportEmpty       = errors.New("no employee rows found in file")
	ErrInvalidImportMode = errors.New("import mode must be replace or upsert")
)

// RosterFilename download name of the roster workbook
const RosterFilename = "Employees.xlsx"

// EmployeeService roster maintenance
type EmployeeService interface {
	// Import parses a spreadsheet and replaces (default) or merges into the
	// roster. A file that fails to parse leaves the roster untouched.
	Import(ctx context.Context, r io.Reader, filename, mode string) (*dto.ImportEmployeeResponse, error)
	List(ctx context.Context, req *dto.PaginationRequest) ([]dto.EmployeeResponse, int64, error)
	Get(ctx context.Context, employeeNo string) (*dto.EmployeeResponse, error)
	Clear(ctx context.Context) (*dto.ClearResponse, error)
	ExportRoster(ctx context.Context) (*bytes.Buffer, string, error)
}

type employeeService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEmployeeService creates an EmployeeService
func NewEmployeeService(repo *repository.Repository, logger *zap.Logger) EmployeeService {
	return &employeeService{repo: repo, logger: logger}
}

// ────────────────────── Import ──────────────────────

func (s *employeeService) Import(ctx context.Context, r io.Reader, filename, mode string) (*dto.ImportEmployeeResponse, error) {
	if mode == "" {
		mode = dto.ImportReplace
	}
	if mode != dto.ImportReplace && mode != dto.ImportUpsert {
		return nil, ErrInvalidImportMode
	}

	records, err := ParseRoster(r, filename)
	if err != nil {
		s.logger.Warn("roster import rejected", zap.String("filename", filename), zap.Error(err))
		return nil, err
	}
	records = model.DedupeEmployees(records)
	if len(records) == 0 {
		return nil, ErrImportEmpty
	}

	if mode == dto.ImportUpsert {
		err = s.repo.Employee.Upsert(ctx, records)
	} else {
		err = s.repo.Employee.ReplaceAll(ctx, records)
	}
	if err != nil {
		s.logger.Error("failed to save roster", zap.String("mode", mode), zap.Error(err))
		return nil, err
	}

	s.logger.Info("roster imported",
		zap.String("filename", filename),
		zap.String("mode", mode),
		zap.Int("total", len(records)),
	)
	return &dto.ImportEmployeeResponse{Total: len(records), Mode: mode}, nil
}

// ────────────────────── List / Get ──────────────────────

func (s *employeeService) List(ctx context.Context, req *dto.PaginationRequest) ([]dto.EmployeeResponse, int64, error) {
	employees, total, err := s.repo.Employee.ListPage(ctx, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("failed to list employees", zap.Error(err))
		return nil, 0, err
	}

	list := make([]dto.EmployeeResponse, 0, len(employees))
	for i := range employees {
		list = append(list, toEmployeeResponse(&employees[i]))
	}
	return list, total, nil
}

func (s *employeeService) Get(ctx context.Context, employeeNo string) (*dto.EmployeeResponse, error) {
	emp, err := s.repo.Employee.GetByEmployeeNo(ctx, model.NormalizeEmployeeNo(employeeNo))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("failed to get employee", zap.String("employee_no", employeeNo), zap.Error(err))
		return nil, err
	}

	resp := toEmployeeResponse(emp)
	return &resp, nil
}

// ────────────────────── Clear ──────────────────────

func (s *employeeService) Clear(ctx context.Context) (*dto.ClearResponse, error) {
	removed, err := s.repo.Employee.Clear(ctx)
	if err != nil {
		s.logger.Error("failed to clear roster", zap.Error(err))
		return nil, err
	}

	s.logger.Warn("roster cleared", zap.Int64("removed", removed))
	return &dto.ClearResponse{Removed: removed}, nil
}

// ────────────────────── ExportRoster ──────────────────────

// ExportRoster an empty roster still yields a header-only workbook usable as
// an import template.
func (s *employeeService) ExportRoster(ctx context.Context) (*bytes.Buffer, string, error) {
	employees, err := s.repo.Employee.List(ctx)
	if err != nil {
		s.logger.Error("failed to list employees for export", zap.Error(err))
		return nil, "", err
	}

	buf, err := EncodeRoster(employees)
	if err != nil {
		s.logger.Error("failed to write roster workbook", zap.Error(err))
		return nil, "", err
	}
	return buf, RosterFilename, nil
}

func toEmployeeResponse(e *model.Employee) dto.EmployeeResponse {
	return dto.EmployeeResponse{
		EmployeeNo:   e.EmployeeNo,
		EmployeeName: e.Name,
		JacketSize:   e.JacketSize,
		Department:   e.Department,
		Position:     e.Position,
	}
}
