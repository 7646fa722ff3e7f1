package service

import (
	"context"
	"errors"
	"testing"

	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/internal/dto"
	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/internal/model"
	pkgerrors "github.com/CodeJ3010803/Abenson-Time-Monitoring-System/pkg/errors"
)

func setupTestClockService() (ClockService, *testRepos) {
	r := newTestRepos()
	return NewClockService(testConfig(), r.repo, nopLogger), r
}

func TestClockService_Punch_ResolvesRosterName(t *testing.T) {
	svc, r := setupTestClockService()
	r.employees = newMockEmployeeRepo(model.Employee{EmployeeNo: "00123", Name: "Jane Doe", JacketSize: "MEDIUM"})
	r.repo.Employee = r.employees

	res, err := svc.Punch(context.Background(), "AA", &dto.PunchRequest{Name: "jd", EmployeeID: "00123", Type: model.PunchIn})
	if err != nil {
		t.Fatalf("Punch should succeed: %v", err)
	}
	if res.Log.Name != "Jane Doe" || res.Log.Category != "AA" || res.Log.ID == "" {
		t.Errorf("unexpected stored log %+v", res.Log)
	}
	if len(r.logs.logs) != 1 {
		t.Fatalf("expected one log row, got %d", len(r.logs.logs))
	}

	resp := ToPunchResponse(res)
	if !resp.Synced || resp.SyncError != "" {
		t.Errorf("expected a synced response, got %+v", resp)
	}
}

func TestClockService_Punch_MissingNameCreatesNothing(t *testing.T) {
	svc, r := setupTestClockService()

	// no saved setting: the name-required default applies
	_, err := svc.Punch(context.Background(), "AA", &dto.PunchRequest{Type: model.PunchIn})
	if !errors.Is(err, ErrMissingName) {
		t.Fatalf("expected ErrMissingName, got %v", err)
	}
	if len(r.logs.logs) != 0 {
		t.Errorf("no log row should be created, got %d", len(r.logs.logs))
	}
}

func TestClockService_Punch_SavedSettingRelaxesName(t *testing.T) {
	svc, r := setupTestClockService()
	r.settings.setting = &model.ClockSetting{RequireName: false}

	if _, err := svc.Punch(context.Background(), "TRAINING", &dto.PunchRequest{EmployeeID: "42", Type: model.PunchOut}); err != nil {
		t.Fatalf("Punch should succeed: %v", err)
	}
	if r.logs.logs[0].Category != "TRAINING" {
		t.Errorf("expected TRAINING, got %s", r.logs.logs[0].Category)
	}
}

func TestClockService_Punch_UnknownEmployee(t *testing.T) {
	svc, r := setupTestClockService()
	r.employees.employees["1"] = model.Employee{EmployeeNo: "1", Name: "One"}

	_, err := svc.Punch(context.Background(), "AA", &dto.PunchRequest{Name: "x", EmployeeID: "2", Type: model.PunchIn})
	if !errors.Is(err, ErrUnknownEmployee) {
		t.Errorf("expected ErrUnknownEmployee, got %v", err)
	}
	if len(r.logs.logs) != 0 {
		t.Errorf("no log row should be created")
	}
}

func TestClockService_Punch_UnknownCategory(t *testing.T) {
	svc, _ := setupTestClockService()

	_, err := svc.Punch(context.Background(), "NIGHT", &dto.PunchRequest{Name: "x", EmployeeID: "2", Type: model.PunchIn})
	if !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestClockService_Punch_RosterReadFailure(t *testing.T) {
	svc, r := setupTestClockService()
	r.employees.listErr = errReadBoom

	_, err := svc.Punch(context.Background(), "AA", &dto.PunchRequest{Name: "x", EmployeeID: "2", Type: model.PunchIn})
	if !errors.Is(err, pkgerrors.ErrStoreReadFailed) {
		t.Errorf("expected ErrStoreReadFailed, got %v", err)
	}
}

func TestClockService_Punch_AppendFailure(t *testing.T) {
	svc, r := setupTestClockService()
	r.logs.appendErr = errWriteBoom

	_, err := svc.Punch(context.Background(), "AA", &dto.PunchRequest{Name: "x", EmployeeID: "2", Type: model.PunchIn})
	if !errors.Is(err, pkgerrors.ErrStoreWriteFailed) {
		t.Errorf("expected ErrStoreWriteFailed, got %v", err)
	}
}

func TestClockService_Punch_CommitFailureKeepsEvent(t *testing.T) {
	svc, r := setupTestClockService()
	r.logs.commitErr = errWriteBoom

	res, err := svc.Punch(context.Background(), "AA", &dto.PunchRequest{Name: "x", EmployeeID: "2", Type: model.PunchIn})
	if err != nil {
		t.Fatalf("local apply should succeed: %v", err)
	}
	resp := ToPunchResponse(res)
	if resp.Synced || resp.SyncError == "" {
		t.Errorf("expected an unsynced response with an error, got %+v", resp)
	}
	if len(r.logs.logs) != 1 {
		t.Errorf("event should stay visible, got %d rows", len(r.logs.logs))
	}
}

func TestClockService_Categories(t *testing.T) {
	svc, _ := setupTestClockService()

	got := svc.Categories()
	if len(got.Categories) != 2 || got.Categories[0] != "AA" || got.Default != "AA" {
		t.Errorf("unexpected categories %+v", got)
	}
}
