package api

import (
	"payroll/internal/auth"
	"payroll/internal/config"
	"payroll/internal/metrics"
	"payroll/internal/service"
	"time"

	"github.com/gin-gonic/gin"
)

// requestTimeout bounds every store round trip made on behalf of a request.
const requestTimeout = 5 * time.Second

// HTTPHandler HTTP 请求处理器
type HTTPHandler struct {
	cfg         config.Config
	directory   *service.Directory
	ledger      *service.Ledger
	authManager *auth.Manager
	metrics     *metrics.Metrics
}

// NewHTTPHandler 创建 HTTP 处理器实例
func NewHTTPHandler(cfg config.Config, directory *service.Directory, ledger *service.Ledger, m *metrics.Metrics) (*HTTPHandler, error) {
	expiry := time.Duration(cfg.JWTExpirationMinutes) * time.Minute
	authManager, err := auth.NewManager(cfg.JWTSecret, cfg.JWTIssuer, expiry)
	if err != nil {
		return nil, err
	}

	return &HTTPHandler{
		cfg:         cfg,
		directory:   directory,
		ledger:      ledger,
		authManager: authManager,
		metrics:     m,
	}, nil
}

// NewRouter 注册全部路由与中间件
func NewRouter(h *HTTPHandler) *gin.Engine {
	r := gin.New()

	r.Use(RequestIDMiddleware())
	r.Use(LoggingMiddleware())
	r.Use(CORSMiddleware(h.cfg.CORSAllowedOrigins))
	r.Use(h.metrics.Middleware())
	r.Use(gin.Recovery())

	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(h.metrics.Handler()))

	apiGroup := r.Group("/api")

	authLimiter := RateLimitMiddleware(h.cfg.AuthRatePerMinute, h.cfg.AuthRateBurst)
	authGroup := apiGroup.Group("/auth")
	authGroup.POST("/login", authLimiter, h.Login)
	authGroup.POST("/register", authLimiter, h.Register)
	authGroup.GET("/me", h.AuthMiddleware(), h.Me)

	protected := apiGroup.Group("")
	protected.Use(h.AuthMiddleware())
	protected.GET("/payroll", h.ListDisbursements)
	protected.GET("/statistics", h.Statistics)
	protected.GET("/statistics/monthly", h.MonthlyStatistics)

	admin := protected.Group("")
	admin.Use(h.RequireAdmin())
	admin.GET("/users", h.ListUsers)
	admin.PUT("/users/:id/approve", h.ApproveUser)
	admin.POST("/payroll", h.RecordDisbursement)

	return r
}
