package model

import "strings"

// Employee roster entry, table employees
type Employee struct {
	EmployeeNo string `gorm:"type:varchar(64);primaryKey"         json:"employee_no"`
	Name       string `gorm:"type:varchar(200);not null;default:''" json:"employee_name"`
	JacketSize string `gorm:"type:varchar(50);not null;default:''"  json:"jacket_size"`
	Department string `gorm:"type:varchar(100);not null;default:''" json:"department,omitempty"`
	Position   string `gorm:"type:varchar(100);not null;default:''" json:"position,omitempty"`
	BaseModel
}

// TableName table name
func (Employee) TableName() string { return "employees" }

// NormalizeEmployeeNo is the single comparison form of an employee number.
// Numbers are badge strings: they are trimmed and never parsed, so "00123"
// and "123" stay distinct.
func NormalizeEmployeeNo(no string) string {
	return strings.TrimSpace(no)
}

// DedupeEmployees normalizes employee numbers, drops blank ones and keeps the
// last record for every repeated number, in first-seen order.
func DedupeEmployees(records []Employee) []Employee {
	index := make(map[string]int, len(records))
	out := make([]Employee, 0, len(records))
	for _, rec := range records {
		rec.EmployeeNo = NormalizeEmployeeNo(rec.EmployeeNo)
		if rec.EmployeeNo == "" {
			continue
		}
		if i, ok := index[rec.EmployeeNo]; ok {
			out[i] = rec
			continue
		}
		index[rec.EmployeeNo] = len(out)
		out = append(out, rec)
	}
	return out
}
