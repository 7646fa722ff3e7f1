package handler

import (
	"time"

	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/internal/service"
)

// Handler aggregates every handler
type Handler struct {
	Auth     *AuthHandler
	Clock    *ClockHandler
	Log      *LogHandler
	Report   *ReportHandler
	Employee *EmployeeHandler
	Setting  *SettingHandler
}

// NewHandler creates the Handler aggregate. commitWait bounds how long a
// punch response waits for its durable write.
func NewHandler(svc *service.Service, commitWait time.Duration) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(svc.Auth),
		Clock:    NewClockHandler(svc.Clock, commitWait),
		Log:      NewLogHandler(svc.Log),
		Report:   NewReportHandler(svc.Report),
		Employee: NewEmployeeHandler(svc.Employee),
		Setting:  NewSettingHandler(svc.Setting),
	}
}
