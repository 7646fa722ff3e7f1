package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/internal/dto"
	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/internal/model"
	pkgerrors "github.com/CodeJ3010803/Abenson-Time-Monitoring-System/pkg/errors"
)

func setupTestReportService() (ReportService, *testRepos) {
	r := newTestRepos()
	r.logs = newMockLogRepo(
		punch("1", "00123", "jd", model.PunchIn, at(time.UTC, 2024, time.March, 10, 8, 0)),
		punch("2", "00123", "jd", model.PunchOut, at(time.UTC, 2024, time.March, 10, 17, 0)),
		punch("3", "5", "Five", model.PunchIn, at(time.UTC, 2024, time.March, 10, 9, 0)),
	)
	r.repo.Log = r.logs
	r.employees.employees["00123"] = model.Employee{EmployeeNo: "00123", Name: "Jane Doe", JacketSize: "MEDIUM"}

	svc := NewReportService(testConfig(), r.repo, nopLogger)
	return svc, r
}

func TestReportService_Daily(t *testing.T) {
	svc, _ := setupTestReportService()

	resp, err := svc.Daily(context.Background(), "AA", &dto.ReportQuery{DayQuery: dto.DayQuery{Date: "2024-03-10"}})
	if err != nil {
		t.Fatalf("Daily should succeed: %v", err)
	}
	if len(resp.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(resp.Rows))
	}
	jane := resp.Rows[0]
	if jane.EmployeeName != "Jane Doe" || jane.TimeIn != "08:00:00 AM" || jane.TimeOut != "05:00:00 PM" || jane.JacketSize != "MEDIUM" {
		t.Errorf("unexpected row %+v", jane)
	}
}

func TestReportService_Daily_JacketOverride(t *testing.T) {
	svc, _ := setupTestReportService()
	off := false

	resp, err := svc.Daily(context.Background(), "AA", &dto.ReportQuery{
		DayQuery:      dto.DayQuery{Date: "2024-03-10"},
		IncludeJacket: &off,
	})
	if err != nil {
		t.Fatalf("Daily should succeed: %v", err)
	}
	if resp.Rows[0].JacketSize != "" {
		t.Errorf("jacket should be omitted, got %q", resp.Rows[0].JacketSize)
	}
}

func TestReportService_Daily_ReadFailureDegrades(t *testing.T) {
	svc, r := setupTestReportService()
	r.logs.listErr = errReadBoom

	resp, err := svc.Daily(context.Background(), "AA", &dto.ReportQuery{DayQuery: dto.DayQuery{Date: "2024-03-10"}})
	if err != nil {
		t.Fatalf("read failure should degrade, got %v", err)
	}
	if !resp.Degraded || len(resp.Rows) != 0 {
		t.Errorf("expected an empty degraded report, got %+v", resp)
	}
}

func TestReportService_Export(t *testing.T) {
	svc, _ := setupTestReportService()

	buf, filename, err := svc.Export(context.Background(), "AA", &dto.ReportQuery{DayQuery: dto.DayQuery{Date: "2024-03-10"}})
	if err != nil {
		t.Fatalf("Export should succeed: %v", err)
	}
	if filename != "TimeLogs_2024-03-10.xlsx" {
		t.Errorf("unexpected filename %q", filename)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(ReportSheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][5] != "JACKET SIZE" {
		t.Errorf("expected jacket column, got %v", rows[0])
	}
	if rows[1][0] != "00123" || rows[1][1] != "Jane Doe" || rows[1][5] != "MEDIUM" {
		t.Errorf("unexpected first data row %v", rows[1])
	}
}

func TestReportService_Export_EmptyDay(t *testing.T) {
	svc, _ := setupTestReportService()

	buf, filename, err := svc.Export(context.Background(), "AA", &dto.ReportQuery{DayQuery: dto.DayQuery{Date: "2024-03-12"}})
	if !errors.Is(err, ErrExportEmpty) {
		t.Fatalf("expected ErrExportEmpty, got %v", err)
	}
	if buf != nil || filename != "" {
		t.Errorf("no file should be produced")
	}
}

func TestReportService_Export_ReadFailure(t *testing.T) {
	svc, r := setupTestReportService()
	r.logs.listErr = errReadBoom

	_, _, err := svc.Export(context.Background(), "AA", &dto.ReportQuery{DayQuery: dto.DayQuery{Date: "2024-03-10"}})
	if !errors.Is(err, pkgerrors.ErrStoreReadFailed) {
		t.Errorf("expected ErrStoreReadFailed, got %v", err)
	}
}

func TestReportService_CategoryIsolation(t *testing.T) {
	svc, _ := setupTestReportService()

	_, _, err := svc.Export(context.Background(), "TRAINING", &dto.ReportQuery{DayQuery: dto.DayQuery{Date: "2024-03-10"}})
	if !errors.Is(err, ErrExportEmpty) {
		t.Errorf("TRAINING has no logs, expected ErrExportEmpty, got %v", err)
	}
}
