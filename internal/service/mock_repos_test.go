package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/config"
	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/internal/model"
	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/internal/repository"
	pkgerrors "github.com/CodeJ3010803/Abenson-Time-Monitoring-System/pkg/errors"
)

// ── Mock EmployeeRepository ──

type mockEmployeeRepo struct {
	employees map[string]model.Employee
	listErr   error
	writeErr  error
}

func newMockEmployeeRepo(records ...model.Employee) *mockEmployeeRepo {
	m := &mockEmployeeRepo{employees: make(map[string]model.Employee)}
	for _, r := range records {
		m.employees[r.EmployeeNo] = r
	}
	return m
}

func (m *mockEmployeeRepo) sorted() []model.Employee {
	out := make([]model.Employee, 0, len(m.employees))
	for _, e := range m.employees {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeNo < out[j].EmployeeNo })
	return out
}

func (m *mockEmployeeRepo) ReplaceAll(_ context.Context, records []model.Employee) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.employees = make(map[string]model.Employee)
	for _, r := range records {
		m.employees[r.EmployeeNo] = r
	}
	return nil
}

func (m *mockEmployeeRepo) Upsert(_ context.Context, records []model.Employee) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	for _, r := range records {
		m.employees[r.EmployeeNo] = r
	}
	return nil
}

func (m *mockEmployeeRepo) GetByEmployeeNo(_ context.Context, no string) (*model.Employee, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	if e, ok := m.employees[no]; ok {
		return &e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) List(_ context.Context) ([]model.Employee, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.sorted(), nil
}

func (m *mockEmployeeRepo) ListPage(_ context.Context, offset, limit int) ([]model.Employee, int64, error) {
	if m.listErr != nil {
		return nil, 0, m.listErr
	}
	all := m.sorted()
	if offset >= len(all) {
		return []model.Employee{}, int64(len(all)), nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], int64(len(all)), nil
}

func (m *mockEmployeeRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.employees)), nil
}

func (m *mockEmployeeRepo) Clear(_ context.Context) (int64, error) {
	if m.writeErr != nil {
		return 0, m.writeErr
	}
	n := int64(len(m.employees))
	m.employees = make(map[string]model.Employee)
	return n, nil
}

// ── Mock LogRepository ──

type mockLogRepo struct {
	logs      []model.AttendanceLog
	seq       int
	appendErr error
	commitErr error
	listErr   error
	clearErr  error
}

func newMockLogRepo(logs ...model.AttendanceLog) *mockLogRepo {
	return &mockLogRepo{logs: logs}
}

func (m *mockLogRepo) Append(_ context.Context, log *model.AttendanceLog) (*repository.Commit, error) {
	if m.appendErr != nil {
		return nil, m.appendErr
	}
	m.seq++
	if log.ID == "" {
		log.ID = fmt.Sprintf("log-%d", m.seq)
	}
	if log.Timestamp.IsZero() {
		log.Timestamp = time.Now().UTC()
	}
	m.logs = append(m.logs, *log)
	return repository.Resolved(m.commitErr), nil
}

func (m *mockLogRepo) ListByCategory(_ context.Context, category string, limit int) ([]model.AttendanceLog, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []model.AttendanceLog
	for _, l := range m.logs {
		if l.Category == category {
			out = append(out, l)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (m *mockLogRepo) ClearByCategory(_ context.Context, category string) (int64, error) {
	if m.clearErr != nil {
		return 0, m.clearErr
	}
	kept := m.logs[:0]
	var removed int64
	for _, l := range m.logs {
		if l.Category == category {
			removed++
			continue
		}
		kept = append(kept, l)
	}
	m.logs = kept
	return removed, nil
}

// ── Mock SettingRepository ──

type mockSettingRepo struct {
	setting   *model.ClockSetting
	getErr    error
	updateErr error
}

func (m *mockSettingRepo) Get(_ context.Context) (*model.ClockSetting, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.setting == nil {
		return nil, gorm.ErrRecordNotFound
	}
	s := *m.setting
	return &s, nil
}

func (m *mockSettingRepo) Update(_ context.Context, setting *model.ClockSetting) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	setting.Singleton = true
	setting.UpdatedAt = time.Now()
	s := *setting
	m.setting = &s
	return nil
}

// ── fixtures ──

type testRepos struct {
	employees *mockEmployeeRepo
	logs      *mockLogRepo
	settings  *mockSettingRepo
	repo      *repository.Repository
}

func newTestRepos() *testRepos {
	r := &testRepos{
		employees: newMockEmployeeRepo(),
		logs:      newMockLogRepo(),
		settings:  &mockSettingRepo{},
	}
	r.repo = &repository.Repository{
		Employee: r.employees,
		Log:      r.logs,
		Setting:  r.settings,
	}
	return r
}

func testConfig() *config.Config {
	return &config.Config{
		Store: config.StoreConfig{
			Backend: config.StoreLocal,
			ListCap: 10000,
		},
		Clock: config.ClockConfig{
			Categories:          []string{"AA", "TRAINING"},
			DefaultCategory:     "AA",
			Timezone:            "UTC",
			RequireName:         true,
			ExportIncludeJacket: true,
		},
	}
}

var (
	errReadBoom  = fmt.Errorf("%w: connection reset", pkgerrors.ErrStoreReadFailed)
	errWriteBoom = fmt.Errorf("%w: connection reset", pkgerrors.ErrStoreWriteFailed)
)

var nopLogger = zap.NewNop()

func at(loc *time.Location, y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, loc)
}
