package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/internal/model"
)

// ── punch validation errors ──

var (
	ErrMissingName       = errors.New("name is required")
	ErrMissingEmployeeID = errors.New("employee id is required")
	ErrUnknownEmployee   = errors.New("employee id not found in roster")
	ErrInvalidPunchType  = errors.New("punch type must be IN or OUT")
)

// UnknownEmployeeError carries the rejected employee number.
type UnknownEmployeeError struct {
	EmployeeID string
}

func (e *UnknownEmployeeError) Error() string {
	return fmt.Sprintf("employee id %q not found in roster", e.EmployeeID)
}

// Is lets errors.Is match ErrUnknownEmployee.
func (e *UnknownEmployeeError) Is(target error) bool {
	return target == ErrUnknownEmployee
}

// PunchInput raw kiosk submission
type PunchInput struct {
	Name       string
	EmployeeID string
	Type       string
}

// ValidatedPunch identity resolved and ready to append
type ValidatedPunch struct {
	Name       string
	EmployeeID string
	Type       string
}

// ValidatorConfig policy the validator runs under
type ValidatorConfig struct {
	RequireName bool
}

// EventValidator checks a punch against the roster. It has no side effects.
type EventValidator struct {
	cfg ValidatorConfig
}

// NewEventValidator creates an EventValidator
func NewEventValidator(cfg ValidatorConfig) *EventValidator {
	return &EventValidator{cfg: cfg}
}

// Validate resolves a punch. An empty roster accepts any employee number;
// once the roster has entries the number must be on it and the roster name
// replaces whatever was typed.
func (v *EventValidator) Validate(in PunchInput, roster *model.Roster) (*ValidatedPunch, error) {
	name := strings.TrimSpace(in.Name)
	if v.cfg.RequireName && name == "" {
		return nil, ErrMissingName
	}

	employeeID := model.NormalizeEmployeeNo(in.EmployeeID)
	if employeeID == "" {
		return nil, ErrMissingEmployeeID
	}

	if !model.ValidPunchType(in.Type) {
		return nil, ErrInvalidPunchType
	}

	if roster.Len() > 0 {
		emp, ok := roster.Lookup(employeeID)
		if !ok {
			return nil, &UnknownEmployeeError{EmployeeID: employeeID}
		}
		if rosterName := strings.TrimSpace(emp.Name); rosterName != "" {
			name = rosterName
		}
	}

	return &ValidatedPunch{
		Name:       name,
		EmployeeID: employeeID,
		Type:       in.Type,
	}, nil
}
