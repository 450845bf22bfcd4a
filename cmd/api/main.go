package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"pennywise/internal/config"
	"pennywise/internal/database"
	"pennywise/internal/handlers"
	"pennywise/internal/logger"
	"pennywise/internal/middleware"
	"pennywise/internal/services"
	"pennywise/internal/validator"
)

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Open the database
	dbManager, err := database.NewManager(appConfig.DBPath)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations; a failed migration is fatal
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	ledgerService := services.NewLedgerService(db)
	personService := services.NewPersonService(db)
	accountService := services.NewAccountService(db)
	categoryService := services.NewCategoryService(db)
	transactionService := services.NewTransactionService(db, accountService)
	transferService := services.NewTransferService(db, accountService)
	templateService := services.NewTemplateService(db)
	preferenceService := services.NewPreferenceService(db)
	reportService := services.NewReportService(db)

	// Initialize handlers
	ledgerHandler := handlers.NewLedgerHandler(ledgerService)
	personHandler := handlers.NewPersonHandler(personService)
	accountHandler := handlers.NewAccountHandler(accountService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, templateService)
	transferHandler := handlers.NewTransferHandler(transferService)
	templateHandler := handlers.NewTemplateHandler(templateService)
	preferenceHandler := handlers.NewPreferenceHandler(preferenceService)
	reportHandler := handlers.NewReportHandler(reportService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware for the local frontend
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Ledger routes. The param name is shared with the scoped group
	// below; Gin requires identical wildcard names at the same position.
	ledgers := v1.Group("/ledgers")
	ledgers.POST("", ledgerHandler.CreateLedger)
	ledgers.GET("", ledgerHandler.GetLedgers)
	ledgers.GET("/:ledgerID", ledgerHandler.GetLedgerByID)
	ledgers.PUT("/:ledgerID", ledgerHandler.UpdateLedger)
	ledgers.PUT("/:ledgerID/default", ledgerHandler.SetDefaultLedger)
	ledgers.DELETE("/:ledgerID", ledgerHandler.DeleteLedger)

	// Ledger-scoped resources
	scoped := v1.Group("/ledgers/:ledgerID")
	scoped.POST("/accounts", accountHandler.CreateAccount)
	scoped.GET("/accounts", accountHandler.GetLedgerAccounts)
	scoped.GET("/balance-summary", accountHandler.GetBalanceSummary)
	scoped.POST("/transactions", transactionHandler.CreateTransaction)
	scoped.GET("/transactions", transactionHandler.GetLedgerTransactions)
	scoped.GET("/transactions/recent", transactionHandler.GetRecentTransactions)
	scoped.GET("/transactions/date/:date", transactionHandler.GetTransactionsByDate)
	scoped.POST("/transfers", transferHandler.CreateTransfer)
	scoped.GET("/transfers", transferHandler.GetLedgerTransfers)
	scoped.POST("/templates", templateHandler.CreateTemplate)
	scoped.GET("/templates", templateHandler.GetLedgerTemplates)
	scoped.GET("/reports/daily", reportHandler.GetDailyTotals)
	scoped.GET("/reports/categories", reportHandler.GetCategorySpending)
	scoped.GET("/reports/monthly", reportHandler.GetMonthlyTotals)
	scoped.GET("/reports/export", reportHandler.ExportTransactionsCSV)

	// Account routes
	accounts := v1.Group("/accounts")
	accounts.GET("/:id", accountHandler.GetAccountByID)
	accounts.PUT("/:id", accountHandler.UpdateAccount)
	accounts.PUT("/:id/balance", accountHandler.SetBalance)
	accounts.PUT("/:id/deactivate", accountHandler.DeactivateAccount)
	accounts.DELETE("/:id", accountHandler.DeleteAccount)

	// Transaction routes
	transactions := v1.Group("/transactions")
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Transfer routes
	transfers := v1.Group("/transfers")
	transfers.GET("/:id", transferHandler.GetTransferByID)
	transfers.PUT("/:id", transferHandler.UpdateTransfer)
	transfers.DELETE("/:id", transferHandler.DeleteTransfer)

	// Category routes
	categories := v1.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.GET("/:id", categoryHandler.GetCategoryByID)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)
	categories.POST("/:id/subcategories", categoryHandler.CreateSubcategory)
	categories.GET("/:id/subcategories", categoryHandler.GetSubcategories)

	// Subcategory routes
	subcategories := v1.Group("/subcategories")
	subcategories.PUT("/:id", categoryHandler.UpdateSubcategory)
	subcategories.DELETE("/:id", categoryHandler.DeleteSubcategory)

	// Person routes
	persons := v1.Group("/persons")
	persons.POST("", personHandler.CreatePerson)
	persons.GET("", personHandler.GetPersons)
	persons.GET("/:id", personHandler.GetPersonByID)
	persons.PUT("/:id", personHandler.UpdatePerson)
	persons.DELETE("/:id", personHandler.DeletePerson)

	// Template routes
	templates := v1.Group("/templates")
	templates.GET("/:id", templateHandler.GetTemplateByID)
	templates.PUT("/:id", templateHandler.UpdateTemplate)
	templates.DELETE("/:id", templateHandler.DeleteTemplate)
	templates.POST("/:id/use", templateHandler.UseTemplate)

	// Preference routes
	preferences := v1.Group("/preferences")
	preferences.GET("", preferenceHandler.GetPreferences)
	preferences.PUT("/active-ledger", preferenceHandler.SetActiveLedger)
	preferences.PUT("/theme", preferenceHandler.SetThemeMode)

	log.Infof("Starting Pennywise backend server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
