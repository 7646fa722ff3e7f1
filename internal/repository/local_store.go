package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/internal/model"
)

// LocalStore keeps logs, roster and setting in process memory and, when a
// path is set, mirrors them to a JSON file after every change. It serves the
// device-local deployment and the authoritative half of the synced backend.
type LocalStore struct {
	mu        sync.RWMutex
	path      string
	logs      map[string][]model.AttendanceLog
	employees map[string]model.Employee
	setting   *model.ClockSetting
}

type localSnapshot struct {
	Logs      map[string][]model.AttendanceLog `json:"logs"`
	Employees []model.Employee                 `json:"employees"`
	Setting   *model.ClockSetting              `json:"setting,omitempty"`
}

// NewMemoryStore creates a LocalStore that never touches disk.
func NewMemoryStore() *LocalStore {
	return &LocalStore{
		logs:      make(map[string][]model.AttendanceLog),
		employees: make(map[string]model.Employee),
	}
}

// OpenLocalStore loads path if it exists. A missing file starts empty.
func OpenLocalStore(path string) (*LocalStore, error) {
	s := NewMemoryStore()
	s.path = path
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read local store: %w", err)
	}

	var snap localSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode local store %s: %w", path, err)
	}
	for cat, logs := range snap.Logs {
		s.logs[cat] = logs
	}
	for _, e := range snap.Employees {
		s.employees[e.EmployeeNo] = e
	}
	s.setting = snap.Setting
	return s, nil
}

// NewLocalRepository exposes a LocalStore through the store interfaces.
func NewLocalRepository(s *LocalStore) *Repository {
	return &Repository{
		Employee: &localEmployeeRepo{s: s},
		Log:      &localLogRepo{s: s},
		Setting:  &localSettingRepo{s: s},
	}
}

// LoadLogs replaces a category's log with rows read elsewhere.
func (s *LocalStore) LoadLogs(category string, logs []model.AttendanceLog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs[category] = append([]model.AttendanceLog(nil), logs...)
}

// persistLocked writes the snapshot to a temp file and renames it over the
// target. Callers hold s.mu.
func (s *LocalStore) persistLocked() error {
	if s.path == "" {
		return nil
	}

	snap := localSnapshot{
		Logs:      s.logs,
		Employees: s.sortedEmployeesLocked(),
		Setting:   s.setting,
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *LocalStore) sortedEmployeesLocked() []model.Employee {
	out := make([]model.Employee, 0, len(s.employees))
	for _, e := range s.employees {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeNo < out[j].EmployeeNo })
	return out
}

// ── logs ──

type localLogRepo struct {
	s *LocalStore
}

// Append applies in memory first; the returned Commit carries the file
// write outcome.
func (r *localLogRepo) Append(_ context.Context, log *model.AttendanceLog) (*Commit, error) {
	prepareLog(log)

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.logs[log.Category] = append(r.s.logs[log.Category], *log)
	return Resolved(wrapWrite(r.s.persistLocked())), nil
}

func (r *localLogRepo) ListByCategory(_ context.Context, category string, limit int) ([]model.AttendanceLog, error) {
	r.s.mu.RLock()
	out := append([]model.AttendanceLog(nil), r.s.logs[category]...)
	r.s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *localLogRepo) ClearByCategory(_ context.Context, category string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := int64(len(r.s.logs[category]))
	delete(r.s.logs, category)
	return n, wrapWrite(r.s.persistLocked())
}

// ── roster ──

type localEmployeeRepo struct {
	s *LocalStore
}

func (r *localEmployeeRepo) ReplaceAll(_ context.Context, records []model.Employee) error {
	now := time.Now().UTC()
	next := make(map[string]model.Employee, len(records))
	for _, e := range model.DedupeEmployees(records) {
		e.CreatedAt, e.UpdatedAt = now, now
		next[e.EmployeeNo] = e
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.employees = next
	return wrapWrite(r.s.persistLocked())
}

func (r *localEmployeeRepo) Upsert(_ context.Context, records []model.Employee) error {
	now := time.Now().UTC()

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range model.DedupeEmployees(records) {
		if prev, ok := r.s.employees[e.EmployeeNo]; ok {
			e.CreatedAt = prev.CreatedAt
		} else {
			e.CreatedAt = now
		}
		e.UpdatedAt = now
		r.s.employees[e.EmployeeNo] = e
	}
	return wrapWrite(r.s.persistLocked())
}

func (r *localEmployeeRepo) GetByEmployeeNo(_ context.Context, employeeNo string) (*model.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.employees[model.NormalizeEmployeeNo(employeeNo)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &e, nil
}

func (r *localEmployeeRepo) List(_ context.Context) ([]model.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.sortedEmployeesLocked(), nil
}

func (r *localEmployeeRepo) ListPage(_ context.Context, offset, limit int) ([]model.Employee, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := r.s.sortedEmployeesLocked()
	total := int64(len(all))
	if offset >= len(all) {
		return []model.Employee{}, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *localEmployeeRepo) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.employees)), nil
}

func (r *localEmployeeRepo) Clear(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := int64(len(r.s.employees))
	r.s.employees = make(map[string]model.Employee)
	return n, wrapWrite(r.s.persistLocked())
}

// ── setting ──

type localSettingRepo struct {
	s *LocalStore
}

func (r *localSettingRepo) Get(_ context.Context) (*model.ClockSetting, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.setting == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r.s.setting
	return &cp, nil
}

func (r *localSettingRepo) Update(_ context.Context, setting *model.ClockSetting) error {
	setting.Singleton = true
	setting.UpdatedAt = time.Now().UTC()
	if setting.CreatedAt.IsZero() {
		setting.CreatedAt = setting.UpdatedAt
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *setting
	r.s.setting = &cp
	return wrapWrite(r.s.persistLocked())
}
