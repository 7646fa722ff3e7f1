package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/internal/model"
	pkgerrors "github.com/CodeJ3010803/Abenson-Time-Monitoring-System/pkg/errors"
)

// EmployeeRepository roster store
type EmployeeRepository interface {
	// ReplaceAll swaps the whole roster atomically.
	ReplaceAll(ctx context.Context, records []model.Employee) error
	// Upsert inserts or overwrites by employee number.
	Upsert(ctx context.Context, records []model.Employee) error
	GetByEmployeeNo(ctx context.Context, employeeNo string) (*model.Employee, error)
	List(ctx context.Context) ([]model.Employee, error)
	ListPage(ctx context.Context, offset, limit int) ([]model.Employee, int64, error)
	Count(ctx context.Context) (int64, error)
	// Clear removes every employee. It cannot be undone.
	Clear(ctx context.Context) (int64, error)
}

// LogRepository attendance log store, partitioned by category
type LogRepository interface {
	// Append assigns ID and Timestamp when unset and stores the event.
	// The error covers the synchronous apply; the Commit reports whether the
	// event reached durable storage.
	Append(ctx context.Context, log *model.AttendanceLog) (*Commit, error)
	// ListByCategory returns at most limit rows, newest first.
	ListByCategory(ctx context.Context, category string, limit int) ([]model.AttendanceLog, error)
	// ClearByCategory deletes a category's whole log. It cannot be undone.
	ClearByCategory(ctx context.Context, category string) (int64, error)
}

// SettingRepository persisted kiosk policy
type SettingRepository interface {
	Get(ctx context.Context) (*model.ClockSetting, error)
	Update(ctx context.Context, setting *model.ClockSetting) error
}

// Repository groups every store the services use.
type Repository struct {
	Employee EmployeeRepository
	Log      LogRepository
	Setting  SettingRepository

	drainers []func()
}

// NewRepository builds the PostgreSQL-backed stores.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Employee: NewEmployeeRepo(db),
		Log:      NewLogRepo(db),
		Setting:  NewSettingRepo(db),
	}
}

// Drain blocks until background commits have finished.
func (r *Repository) Drain() {
	for _, d := range r.drainers {
		d()
	}
}

// ── helpers shared by the backends ──

func prepareLog(log *model.AttendanceLog) {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	if log.Timestamp.IsZero() {
		log.Timestamp = time.Now().UTC()
	}
}

func wrapWrite(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", pkgerrors.ErrStoreWriteFailed, err)
}

func wrapRead(err error) error {
	if err == nil || errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return fmt.Errorf("%w: %w", pkgerrors.ErrStoreReadFailed, err)
}
