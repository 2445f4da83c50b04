package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/moneta-app/moneta-backend/internal/middleware"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(
	e *echo.Echo,
	authMiddleware echo.MiddlewareFunc,
	rateLimiter *middleware.RateLimiter,
	expenseHandler *ExpenseHandler,
	categoryHandler *CategoryHandler,
	budgetHandler *BudgetHandler,
	analyticsHandler *AnalyticsHandler,
	exportHandler *ExportHandler,
	receiptHandler *ReceiptHandler,
) {
	// API version 1
	api := e.Group("/api/v1")
	api.Use(authMiddleware)
	api.Use(middleware.RateLimitMiddleware(rateLimiter))

	// Expense routes
	expenses := api.Group("/expenses")
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.ListExpenses)
	expenses.GET("/:id", expenseHandler.GetExpense)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)
	expenses.POST("/:id/receipt", receiptHandler.UploadReceipt)
	expenses.GET("/:id/receipt", receiptHandler.GetReceipt)
	expenses.DELETE("/:id/receipt", receiptHandler.DeleteReceipt)

	// Category routes
	categories := api.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.ListCategories)
	categories.GET("/:id", categoryHandler.GetCategory)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	// Budget routes
	budgets := api.Group("/budgets")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.ListBudgets)
	budgets.GET("/:id", budgetHandler.GetBudget)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)

	// Analytics routes
	analytics := api.Group("/analytics")
	analytics.GET("/summary", analyticsHandler.GetSummary)
	analytics.GET("/categories", analyticsHandler.GetCategoryBreakdown)
	analytics.GET("/trends/daily", analyticsHandler.GetDailyTrends)
	analytics.GET("/trends/monthly", analyticsHandler.GetMonthlyTrends)
	analytics.GET("/budgets", analyticsHandler.GetBudgetAnalysis)
	analytics.GET("/budgets/category", analyticsHandler.GetCategoryBudgetAnalysis)
	analytics.GET("/projection", analyticsHandler.GetBudgetProjection)
	analytics.GET("/insights", analyticsHandler.GetInsights)
	analytics.GET("/anomalies", analyticsHandler.GetAnomalies)
	analytics.GET("/comparison", analyticsHandler.ComparePeriods)
	analytics.GET("/savings", analyticsHandler.GetSavingsOpportunities)

	// Export routes
	api.GET("/export/csv", exportHandler.ExportCSV)
}
