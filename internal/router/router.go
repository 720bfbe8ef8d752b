package router

import (
	"time"

	"github.com/mrcdevv/autotech-sub000/internal/config"
	"github.com/mrcdevv/autotech-sub000/internal/handler"
	"github.com/mrcdevv/autotech-sub000/internal/middleware"
	"github.com/mrcdevv/autotech-sub000/internal/repository"
	"github.com/mrcdevv/autotech-sub000/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(rdb, cfg.RateLimitPerMinute, time.Minute))

	// ── Repositories ─────────────────────────────────────────────────────────
	clientRepo := repository.NewClientRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	repairOrderRepo := repository.NewRepairOrderRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	bankAccountRepo := repository.NewBankAccountRepository(db)
	estimateRepo := repository.NewEstimateRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	auditRepo := repository.NewPaymentAuditLogRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	reconciler := service.NewReconciler(invoiceRepo, paymentRepo)
	estimateSvc := service.NewEstimateService(estimateRepo, clientRepo, vehicleRepo, repairOrderRepo)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, paymentRepo, clientRepo, vehicleRepo, repairOrderRepo, estimateSvc)
	paymentSvc := service.NewPaymentService(paymentRepo, invoiceRepo, bankAccountRepo, employeeRepo, auditRepo, reconciler)

	// ── Handlers ─────────────────────────────────────────────────────────────
	estimatesH := handler.NewEstimatesHandler(estimateSvc)
	invoicesH := handler.NewInvoicesHandler(invoiceSvc)
	paymentsH := handler.NewPaymentsHandler(paymentSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: recepcionista, mecanico, administrador — declared per-group
		read := middleware.RequireRole("recepcionista", "mecanico", "administrador")
		write := middleware.RequireRole("recepcionista", "administrador")

		estimates := v1.Group("/estimates")
		{
			estimates.GET("", read, estimatesH.List)
			estimates.GET("/:id", read, estimatesH.GetByID)
			estimates.GET("/repair-order/:repairOrderId", read, estimatesH.GetByRepairOrder)
			estimates.GET("/:id/invoice-data", read, estimatesH.InvoiceData)
			estimates.POST("", write, estimatesH.Create)
			estimates.PUT("/:id", write, estimatesH.Update)
			estimates.PATCH("/:id/approve", write, estimatesH.Approve)
			estimates.PATCH("/:id/reject", write, estimatesH.Reject)
			estimates.DELETE("/:id", middleware.RequireRole("administrador"), estimatesH.Delete)
		}

		invoices := v1.Group("/invoices")
		{
			invoices.GET("", read, invoicesH.List)
			invoices.GET("/:id", read, invoicesH.GetByID)
			invoices.GET("/repair-order/:repairOrderId", read, invoicesH.GetByRepairOrder)
			invoices.POST("", write, invoicesH.Create)
			invoices.POST("/from-estimate/:estimateId", write, invoicesH.CreateFromEstimate)
			invoices.PATCH("/:id/mark-paid", middleware.RequireRole("administrador"), invoicesH.MarkAsPaid)
			invoices.DELETE("/:id", middleware.RequireRole("administrador"), invoicesH.Delete)

			// Payment ledger nested under its invoice
			invoices.GET("/:id/payments", read, paymentsH.ListByInvoice)
			invoices.GET("/:id/payments/summary", read, paymentsH.Summary)
			invoices.POST("/:id/payments", write, paymentsH.Create)
		}

		payments := v1.Group("/payments")
		{
			payments.GET("/:paymentId", read, paymentsH.GetByID)
			payments.PUT("/:paymentId", write, paymentsH.Update)
			payments.DELETE("/:paymentId", middleware.RequireRole("administrador"), paymentsH.Delete)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
