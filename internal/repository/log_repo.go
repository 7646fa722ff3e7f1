package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/internal/model"
)

// logRepo GORM implementation of LogRepository. Writes are single-phase, so
// every Commit it returns is already resolved.
type logRepo struct {
	db *gorm.DB
}

// NewLogRepo creates a LogRepository
func NewLogRepo(db *gorm.DB) LogRepository {
	return &logRepo{db: db}
}

func (r *logRepo) Append(ctx context.Context, log *model.AttendanceLog) (*Commit, error) {
	prepareLog(log)
	if err := r.db.WithContext(ctx).Create(log).Error; err != nil {
		return nil, wrapWrite(err)
	}
	return Resolved(nil), nil
}

func (r *logRepo) ListByCategory(ctx context.Context, category string, limit int) ([]model.AttendanceLog, error) {
	var logs []model.AttendanceLog
	query := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order("timestamp DESC")
	// same as the local store: a non-positive limit means no cap
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&logs).Error
	if err != nil {
		return nil, wrapRead(err)
	}
	return logs, nil
}

func (r *logRepo) ClearByCategory(ctx context.Context, category string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("category = ?", category).
		Delete(&model.AttendanceLog{})
	if res.Error != nil {
		return 0, wrapWrite(res.Error)
	}
	return res.RowsAffected, nil
}
