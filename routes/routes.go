package routes

import (
	"net/http"
	"time"

	"backend/config"
	"backend/controllers"
	"backend/middleware"
	"backend/realtime"
	"backend/store"

	"github.com/gin-gonic/gin"
)

func InitializeRoutes(router *gin.Engine, s store.Store, rt realtime.Broadcaster, loc *time.Location, cfg config.Config) {
	menu := controllers.NewMenuController(s)
	tables := controllers.NewTableController(s, rt)
	orders := controllers.NewOrderController(s, rt)
	kots := controllers.NewKOTController(s, rt)
	inventory := controllers.NewInventoryController(s)
	employees := controllers.NewEmployeeController(s)
	expenses := controllers.NewExpenseController(s)
	reports := controllers.NewReportController(s, loc)
	settings := controllers.NewSettingsController(s)
	printers := controllers.NewPrinterController(s)
	photos := controllers.NewPhotoController(s, cfg)

	api := router.Group("/api")
	{
		api.GET("/", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "RestoPOS API", "version": "1.0"})
		})

		api.GET("/menu", menu.GetAllMenuItems)
		api.POST("/menu", menu.CreateMenuItem)
		api.GET("/menu/:id", menu.GetMenuItem)
		api.PUT("/menu/:id", menu.UpdateMenuItem)
		api.DELETE("/menu/:id", menu.DeleteMenuItem)
		api.POST("/menu/:id/photo", photos.UploadMenuPhoto)

		api.GET("/tables", tables.GetAllTables)
		api.PUT("/tables/:id", tables.UpdateTable)

		api.GET("/orders", orders.GetAllOrders)
		api.POST("/orders", orders.CreateOrder)
		api.GET("/orders/:id", orders.GetOrderByID)
		api.PUT("/orders/:id", orders.UpdateOrder)
		api.DELETE("/orders/:id", orders.DeleteOrder)
		api.GET("/takeout/next-token", orders.NextToken)

		api.GET("/kot", kots.GetAllKOTs)
		api.POST("/kot", kots.CreateKOT)
		api.PUT("/kot/:id", kots.UpdateKOT)

		api.GET("/inventory", inventory.GetAllInventory)
		api.POST("/inventory", inventory.CreateInventoryItem)
		api.GET("/inventory/:id", inventory.GetInventoryItem)
		api.PUT("/inventory/:id", inventory.UpdateInventoryItem)
		api.POST("/inventory/:id/adjust", inventory.AdjustInventory)
		api.GET("/inventory/:id/transactions", inventory.GetInventoryTransactions)

		api.GET("/employees", employees.GetAllEmployees)
		api.POST("/employees", employees.CreateEmployee)
		api.POST("/employees/:id/photo", photos.UploadEmployeePhoto)
		api.POST("/auth/login", employees.Login)

		api.GET("/expenses", expenses.GetAllExpenses)
		api.POST("/expenses", expenses.CreateExpense)

		api.GET("/reports/sales", reports.GetSalesReport)
		api.GET("/reports/kitchen-performance", reports.GetKitchenPerformance)
		api.GET("/reports/inventory-status", reports.GetInventoryStatus)
		api.GET("/dashboard/live", reports.GetLiveDashboard)

		api.GET("/settings", settings.GetSettings)
		api.PUT("/settings", settings.UpdateSettings)

		api.GET("/printers", printers.GetAllPrinters)
		api.POST("/printers", printers.CreatePrinter)
		api.DELETE("/printers/:id", printers.DeletePrinter)
	}

	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware())
	{
		admin.PUT("/employees/:id", employees.UpdateEmployee)
		admin.DELETE("/employees/:id", employees.DeleteEmployee)
		admin.DELETE("/expenses/:id", expenses.DeleteExpense)
		admin.DELETE("/inventory/:id", inventory.DeleteInventoryItem)
	}
}
