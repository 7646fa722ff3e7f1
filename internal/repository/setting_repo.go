package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/internal/model"
)

type settingRepo struct {
	db *gorm.DB
}

// NewSettingRepo creates a SettingRepository
func NewSettingRepo(db *gorm.DB) SettingRepository {
	return &settingRepo{db: db}
}

func (r *settingRepo) Get(ctx context.Context) (*model.ClockSetting, error) {
	var setting model.ClockSetting
	if err := r.db.WithContext(ctx).First(&setting).Error; err != nil {
		return nil, wrapRead(err)
	}
	return &setting, nil
}

// Update inserts the row on first save; later saves touch only the policy
// columns so created_at keeps its first value.
func (r *settingRepo) Update(ctx context.Context, setting *model.ClockSetting) error {
	setting.Singleton = true
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "singleton"}},
			DoUpdates: clause.AssignmentColumns([]string{"require_name", "updated_at"}),
		}).
		Create(setting).Error
	return wrapWrite(err)
}
