package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/config"
	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/internal/api/handler"
	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/internal/api/middleware"
	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/internal/service"
	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/pkg/jwt"
	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/pkg/redis"
)

// Setup builds the gin engine. rdb may be nil.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	// ── health ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "store": cfg.Store.Backend})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// kiosk (public)
		v1.GET("/categories", h.Clock.Categories)
		v1.POST("/categories/:category/punches",
			middleware.RateLimit(rdb, middleware.ScopePunch, cfg.RateLimit.Punches, cfg.RateLimit.Window),
			h.Clock.Punch,
		)
		v1.GET("/settings", h.Setting.Get)
		v1.POST("/auth/login",
			middleware.RateLimit(rdb, middleware.ScopeLogin, cfg.RateLimit.Logins, cfg.RateLimit.Window),
			h.Auth.Login,
		)

		// administrator
		admin := v1.Group("")
		admin.Use(middleware.JWTAuth(jwtMgr, rdb), middleware.RoleAuth(service.RoleAdmin))
		{
			admin.POST("/auth/logout", h.Auth.Logout)
			admin.PUT("/settings", h.Setting.Update)

			categories := admin.Group("/categories/:category")
			{
				categories.GET("/logs", h.Log.ListDay)
				categories.DELETE("/logs", h.Log.Clear)
				categories.GET("/reports/daily", h.Report.Daily)
				categories.GET("/reports/daily/export", h.Report.Export)
			}

			employees := admin.Group("/employees")
			{
				employees.GET("", h.Employee.List)
				employees.GET("/export", h.Employee.Export)
				employees.GET("/:employee_no", h.Employee.Get)
				employees.POST("/import", h.Employee.Import)
				employees.DELETE("", h.Employee.Clear)
			}
		}
	}

	return r
}
