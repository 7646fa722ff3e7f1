package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/internal/model"
)

const employeeBatchSize = 500

// employeeRepo GORM implementation of EmployeeRepository
type employeeRepo struct {
	db *gorm.DB
}

// NewEmployeeRepo creates an EmployeeRepository
func NewEmployeeRepo(db *gorm.DB) EmployeeRepository {
	return &employeeRepo{db: db}
}

func (r *employeeRepo) ReplaceAll(ctx context.Context, records []model.Employee) error {
	records = model.DedupeEmployees(records)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.Employee{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.CreateInBatches(records, employeeBatchSize).Error
	})
	return wrapWrite(err)
}

func (r *employeeRepo) Upsert(ctx context.Context, records []model.Employee) error {
	records = model.DedupeEmployees(records)
	if len(records) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_no"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "jacket_size", "department", "position", "updated_at"}),
		}).
		CreateInBatches(records, employeeBatchSize).Error
	return wrapWrite(err)
}

func (r *employeeRepo) GetByEmployeeNo(ctx context.Context, employeeNo string) (*model.Employee, error) {
	var emp model.Employee
	err := r.db.WithContext(ctx).
		Where("employee_no = ?", model.NormalizeEmployeeNo(employeeNo)).
		First(&emp).Error
	if err != nil {
		return nil, wrapRead(err)
	}
	return &emp, nil
}

func (r *employeeRepo) List(ctx context.Context) ([]model.Employee, error) {
	var emps []model.Employee
	err := r.db.WithContext(ctx).
		Order("employee_no ASC").
		Find(&emps).Error
	if err != nil {
		return nil, wrapRead(err)
	}
	return emps, nil
}

func (r *employeeRepo) ListPage(ctx context.Context, offset, limit int) ([]model.Employee, int64, error) {
	var emps []model.Employee
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Employee{})

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, wrapRead(err)
	}

	if err := db.Order("employee_no ASC").
		Offset(offset).Limit(limit).
		Find(&emps).Error; err != nil {
		return nil, 0, wrapRead(err)
	}

	return emps, total, nil
}

func (r *employeeRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Employee{}).Count(&total).Error; err != nil {
		return 0, wrapRead(err)
	}
	return total, nil
}

func (r *employeeRepo) Clear(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Where("1 = 1").Delete(&model.Employee{})
	if res.Error != nil {
		return 0, wrapWrite(res.Error)
	}
	return res.RowsAffected, nil
}
