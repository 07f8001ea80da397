package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"bitbucket.org/gfmis/budget_backend/config"
	"bitbucket.org/gfmis/budget_backend/controllers"
	"bitbucket.org/gfmis/budget_backend/middlewares"
	"bitbucket.org/gfmis/budget_backend/models"
	"bitbucket.org/gfmis/budget_backend/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const defaultPort = "8080"

// registerAmountValidator backs the `amount` binding tag with the same strict
// parser the handlers use, so malformed money never reaches business logic.
func registerAmountValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("amount", func(fl validator.FieldLevel) bool {
			_, err := utils.ParseAmount(fl.FieldName(), fl.Field().String())
			return err == nil
		})
	}
}

func corsSettings() cors.Config {
	corsConfig := cors.DefaultConfig()
	// In production the allowlist must be explicit; anywhere else allow all.
	allowedOrigins := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if strings.EqualFold(strings.TrimSpace(os.Getenv("GO_ENV")), "production") {
		if allowedOrigins == "" {
			corsConfig.AllowOrigins = []string{}
		} else {
			corsConfig.AllowOrigins = splitAndTrim(allowedOrigins)
		}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AddAllowMethods("GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS")
	corsConfig.AddAllowHeaders("token", "Origin", "Content-Type", "Authorization")
	corsConfig.AddExposeHeaders("Content-Length", "Content-Disposition")
	corsConfig.AllowCredentials = true
	return corsConfig
}

func registerRoutes(r *gin.Engine, db *gorm.DB) {
	admin := string(models.RoleAdmin)
	approver := string(models.RoleApprover)
	reviewer := string(models.RoleReviewer)
	dataEntry := string(models.RoleDataEntry)

	r.POST("/api/auth/login", controllers.Login(db))

	api := r.Group("/api", middlewares.RequireAuth())
	{
		api.GET("/auth/me", controllers.Me(db))
		api.POST("/auth/register", middlewares.Restrict(admin), controllers.Register(db))

		api.GET("/users", middlewares.Restrict(admin), controllers.ListUsers(db))
		api.PATCH("/users/:id/status", middlewares.Restrict(admin), controllers.UpdateUserStatus(db))

		api.POST("/allocations", middlewares.Restrict(admin), controllers.CreateAllocation(db))
		api.POST("/allocations/upload", middlewares.Restrict(admin), controllers.UploadAllocations(db))
		api.GET("/allocations/template", middlewares.Restrict(admin), controllers.DownloadAllocationTemplate())
		api.GET("/appropriations/summary", controllers.AppropriationSummary(db))

		api.GET("/budget/natural-accounts", controllers.NaturalAccounts(db))
		api.GET("/budget/values", controllers.BudgetValues(db))

		api.POST("/expenditures", middlewares.Restrict(dataEntry, admin), controllers.CreateExpenditure(db))
		api.GET("/expenditures", controllers.ListExpenditure(db))
		api.PATCH("/expenditures/:id/review", middlewares.Restrict(reviewer, admin), controllers.ReviewExpenditure(db))
		api.PATCH("/expenditures/:id/approve", middlewares.Restrict(approver, admin), controllers.ApproveExpenditure(db))

		api.POST("/revenues", middlewares.Restrict(dataEntry, admin), controllers.CreateRevenue(db))
		api.GET("/revenues", controllers.ListRevenue(db))
		api.PUT("/revenues/:id", middlewares.Restrict(dataEntry, admin), controllers.UpdateRevenue(db))
		api.DELETE("/revenues/:id", middlewares.Restrict(dataEntry, admin), controllers.DeleteRevenue(db))
		api.PATCH("/revenues/:id/review", middlewares.Restrict(reviewer, admin), controllers.ReviewRevenue(db))
		api.PATCH("/revenues/:id/approve", middlewares.Restrict(approver, admin), controllers.ApproveRevenue(db))

		api.POST("/cash-positions", middlewares.Restrict(dataEntry, admin), controllers.CreateCashPosition(db))
		api.GET("/cash-positions", controllers.ListCashPositions(db))
		api.PUT("/cash-positions/:id", middlewares.Restrict(dataEntry, admin), controllers.UpdateCashPosition(db))
		api.DELETE("/cash-positions/:id", middlewares.Restrict(dataEntry, admin), controllers.DeleteCashPosition(db))
		api.PATCH("/cash-positions/:id/review", middlewares.Restrict(reviewer, admin), controllers.ReviewCashPosition(db))
		api.PATCH("/cash-positions/:id/approve", middlewares.Restrict(approver, admin), controllers.ApproveCashPosition(db))

		api.GET("/reports/economic", controllers.EconomicReport(db))
		api.GET("/reports/expenditures", controllers.DetailedExpenditureReport(db))
		api.GET("/reports/revenue", controllers.RevenueReport(db))
		api.GET("/reports/cash-position", controllers.CashPositionReport(db))
	}
}

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = defaultPort
	}

	logger := config.GetLogger()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	registerAmountValidator()

	db := config.ConnectDatabaseWithRetry()
	config.ConnectRedis()

	sqlDB, _ := db.DB()
	defer func() {
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
	}()
	// AutoMigrate DDL can block tables; deployments that migrate out of band
	// set SKIP_MIGRATIONS=true.
	if !strings.EqualFold(strings.TrimSpace(os.Getenv("SKIP_MIGRATIONS")), "true") {
		models.MigrateTable(db)
	} else {
		logger.WithFields(logrus.Fields{"field": "migrations"}).Warn("SKIP_MIGRATIONS=true; skipping AutoMigrate on startup")
	}

	r := gin.New()
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.Use(cors.New(corsSettings()))
	r.Use(middlewares.AuthMiddleware())
	r.Use(customErrorLogger(logger))
	r.Use(gin.Recovery())
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "route not found"})
	})
	registerRoutes(r, db)

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- srv.ListenAndServe()
	}()

	logger.WithFields(logrus.Fields{
		"port": port,
	}).Info("budget backend listening")

	select {
	case <-sigCtx.Done():
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithFields(logrus.Fields{"field": "http"}).Error("server stopped unexpectedly: " + err.Error())
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithFields(logrus.Fields{"field": "http"}).Error("graceful shutdown failed: " + err.Error())
	}
}

// customErrorLogger logs only requests that collected gin errors.
func customErrorLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			logger.Error(c.Errors.String())
		}
	}
}

func splitAndTrim(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
